package hub

import (
	"context"
	"errors"
	"time"

	"github.com/dep2p/go-dishub/internal/core/distributor"
	"github.com/dep2p/go-dishub/internal/core/registry"
	"github.com/dep2p/go-dishub/internal/util/logger"
	"github.com/dep2p/go-dishub/pkg/interfaces"
)

var log = logger.Logger("core.hub")

// Hub 分发引擎
type Hub struct {
	registry    *registry.Registry
	queue       *distributor.Queue
	distributor *distributor.Distributor

	enqueueErrs *logger.Limited
}

var _ interfaces.Hub = (*Hub)(nil)

// New 创建分发引擎
func New(cfg distributor.Config) *Hub {
	reg := registry.New()
	q := distributor.NewQueue(cfg.Capacity, cfg.Backpressure)
	return &Hub{
		registry:    reg,
		queue:       q,
		distributor: distributor.New(cfg, q, reg),
		enqueueErrs: logger.NewLimited(log, time.Second, 5),
	}
}

// Start 启动分发器
func (h *Hub) Start(ctx context.Context) error {
	return h.distributor.Start(ctx)
}

// Stop 停止接收新消息并排空队列
func (h *Hub) Stop(ctx context.Context) error {
	return h.distributor.Stop(ctx)
}

// Register 注册参与者
func (h *Hub) Register(p interfaces.Participant) {
	if h.registry.Add(p) {
		log.Info("参与者加入", "id", p.ID(), "kind", p.Kind())
	}
}

// Unregister 注销参与者
func (h *Hub) Unregister(p interfaces.Participant) {
	if h.registry.Remove(p) {
		log.Info("参与者离开", "id", p.ID(), "kind", p.Kind())
	}
}

// EnqueueBinary 将消息排入分发队列
//
// 无界队列下立即返回。队列已关闭或按策略拒绝时消息被丢弃并限速记录。
func (h *Hub) EnqueueBinary(msg []byte, origin interfaces.Participant) {
	err := h.queue.Push(context.Background(), distributor.Entry{
		Data:       msg,
		Origin:     origin,
		EnqueuedAt: time.Now(),
	})
	if err == nil {
		return
	}

	args := []any{"size", len(msg), "err", err}
	if origin != nil {
		args = append(args, "origin", origin.ID())
	}
	if errors.Is(err, distributor.ErrQueueClosed) {
		h.enqueueErrs.Warn("分发队列已关闭，丢弃消息", args...)
		return
	}
	h.enqueueErrs.Warn("分发队列拒绝消息", args...)
}

// RepeatText 在调用方协程上把文本转发给除 origin 外的所有参与者
func (h *Hub) RepeatText(text string, origin interfaces.Participant) {
	h.registry.ForEachExcept(origin, func(p interfaces.Participant) {
		p.SendText(text)
	})
}

// Participants 返回当前参与者快照
func (h *Hub) Participants() []interfaces.Participant {
	return h.registry.Snapshot()
}

// Registry 返回底层注册表
func (h *Hub) Registry() *registry.Registry {
	return h.registry
}

// Stats 返回分发计数
func (h *Hub) Stats() Stats {
	return Stats{
		Participants: h.registry.Len(),
		Stats:        h.distributor.Stats(),
	}
}

// Stats 引擎计数
type Stats struct {
	Participants int
	distributor.Stats
}

package distributor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dep2p/go-dishub/internal/core/registry"
	"github.com/dep2p/go-dishub/internal/util/logger"
	"github.com/dep2p/go-dishub/pkg/interfaces"
)

var log = logger.Logger("core.distributor")

// Distributor 从队列取出条目并扇出到注册表
type Distributor struct {
	cfg      Config
	queue    *Queue
	registry *registry.Registry

	wg      sync.WaitGroup
	cancel  context.CancelFunc
	started atomic.Bool

	dispatched atomic.Int64
	deliveries atomic.Int64
	abandoned  atomic.Int64
}

// New 创建分发器
func New(cfg Config, q *Queue, reg *registry.Registry) *Distributor {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Distributor{cfg: cfg, queue: q, registry: reg}
}

// Start 启动工作协程
//
// 工作协程的生命周期独立于 ctx，由 Stop 结束。
func (d *Distributor) Start(_ context.Context) error {
	if !d.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx, i)
	}

	log.Info("分发器已启动", "workers", d.cfg.Workers, "capacity", d.cfg.Capacity)
	return nil
}

// Stop 关闭队列并排空
//
// 已入队的消息继续投递，直到队列为空、ctx 到期或超过 DrainTimeout；
// 之后剩余条目被放弃，计入 Abandoned。
func (d *Distributor) Stop(ctx context.Context) error {
	d.queue.Close()
	if !d.started.Load() {
		d.abandon()
		return nil
	}

	if d.cfg.DrainTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.DrainTimeout)
		defer cancel()
	}

	finished := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-ctx.Done():
		d.cancel()
		<-finished
	}
	d.cancel()
	d.abandon()

	log.Info("分发器已停止",
		"dispatched", d.dispatched.Load(),
		"deliveries", d.deliveries.Load(),
		"abandoned", d.abandoned.Load())
	return nil
}

func (d *Distributor) abandon() {
	if rest := d.queue.Drain(); len(rest) > 0 {
		d.abandoned.Add(int64(len(rest)))
		log.Warn("停止时放弃未投递的消息", "count", len(rest))
	}
}

func (d *Distributor) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		if ctx.Err() != nil {
			return
		}
		e, err := d.queue.Pop(ctx)
		if err != nil {
			if !errors.Is(err, ErrQueueClosed) && !errors.Is(err, context.Canceled) {
				log.Error("工作协程退出", "worker", id, "err", err)
			}
			return
		}
		d.Dispatch(e)
	}
}

// Dispatch 把一个条目投递给除来源外的所有参与者
//
// 单个参与者的 panic 由注册表隔离，不影响其余参与者。
func (d *Distributor) Dispatch(e Entry) {
	n := d.registry.ForEachExcept(e.Origin, func(p interfaces.Participant) {
		p.SendBinary(e.Data)
	})
	d.dispatched.Add(1)
	d.deliveries.Add(int64(n))

	if !e.EnqueuedAt.IsZero() {
		if wait := time.Since(e.EnqueuedAt); wait > time.Second {
			log.Debug("消息排队时间过长", "wait", wait, "queued", d.queue.Len())
		}
	}
}

// Stats 分发计数
type Stats struct {
	Dispatched int64
	Deliveries int64
	Abandoned  int64
	Dropped    int64
	QueueLen   int
}

// Stats 返回当前计数
func (d *Distributor) Stats() Stats {
	return Stats{
		Dispatched: d.dispatched.Load(),
		Deliveries: d.deliveries.Load(),
		Abandoned:  d.abandoned.Load(),
		Dropped:    d.queue.Dropped(),
		QueueLen:   d.queue.Len(),
	}
}

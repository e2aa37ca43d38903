package bridge

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-dishub/internal/util/logger"
	"github.com/dep2p/go-dishub/internal/util/outbox"
	"github.com/dep2p/go-dishub/pkg/interfaces"
	"github.com/dep2p/go-dishub/pkg/types"
)

var log = logger.Logger("core.bridge")

// Bridge 跨实例桥接参与者
type Bridge struct {
	cfg   Config
	hub   interfaces.Hub
	tag   uint32
	id    string
	stats *types.ConnectionStatistics
	out   *outbox.Outbox[[]byte]

	mu      sync.Mutex
	pubsub  PubSub
	cancel  context.CancelFunc
	loops   *errgroup.Group
	started bool

	selfDropped atomic.Int64
	malformed   atomic.Int64

	pubErrs *logger.Limited
}

var _ interfaces.Participant = (*Bridge)(nil)

// New 创建桥接，未配置标签时随机生成非零标签
func New(cfg Config, hub interfaces.Hub) *Bridge {
	tag := cfg.Tag
	for tag == 0 {
		tag = rand.Uint32()
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = DefaultConfig().PublishTimeout
	}
	return &Bridge{
		cfg:     cfg,
		hub:     hub,
		tag:     tag,
		id:      "bridge-" + uuid.NewString(),
		stats:   types.NewConnectionStatistics(),
		out:     outbox.New[[]byte](cfg.OutboxSize),
		pubErrs: logger.NewLimited(log, time.Second, 3),
	}
}

// ID 实现 interfaces.Participant
func (b *Bridge) ID() string { return b.id }

// Kind 实现 interfaces.Participant
func (b *Bridge) Kind() types.ParticipantKind { return types.KindBridge }

// Statistics 实现 interfaces.Participant
func (b *Bridge) Statistics() *types.ConnectionStatistics { return b.stats }

// Tag 返回实例标签
func (b *Bridge) Tag() uint32 { return b.tag }

// SelfDropped 返回因自身标签被丢弃的条数
func (b *Bridge) SelfDropped() int64 { return b.selfDropped.Load() }

// Start 使用已建立的连接启动发布与订阅协程，并注册到分发引擎
func (b *Bridge) Start(ps PubSub) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.pubsub = ps
	b.cancel = cancel
	b.started = true

	loops, gctx := errgroup.WithContext(ctx)
	loops.Go(func() error { return b.publishLoop(gctx) })
	loops.Go(func() error { return b.subscribeLoop(gctx) })
	b.loops = loops

	// 任一协程因连接关闭退出时停止另一个并注销，避免继续缓冲
	go func() {
		if err := loops.Wait(); err != nil {
			log.Error("桥接已停止", "channel", b.cfg.Channel, "err", err)
			b.hub.Unregister(b)
		}
	}()

	b.hub.Register(b)
	log.Info("桥接已启动", "channel", b.cfg.Channel, "tag", b.tag)
	return nil
}

// Close 注销、停止协程并关闭连接
func (b *Bridge) Close() error {
	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return ErrNotStarted
	}
	b.started = false
	cancel, ps, loops := b.cancel, b.pubsub, b.loops
	b.mu.Unlock()

	b.hub.Unregister(b)
	cancel()
	err := ps.Close()
	return multierr.Append(loops.Wait(), err)
}

// subscribeLoop 订阅直到 ctx 结束；连接意外中断时重新订阅，连接关闭时返回错误
func (b *Bridge) subscribeLoop(ctx context.Context) error {
	for {
		err := b.pubsub.Subscribe(ctx, func(payload []byte) { b.HandleMessage(payload) })
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, types.ErrPubSubClosed) {
			return fmt.Errorf("bridge subscribe: %w", err)
		}
		log.Warn("桥接订阅中断", "err", err)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Second):
		}
	}
}

// HandleMessage 处理订阅收到的负载，入队时返回 true
func (b *Bridge) HandleMessage(payload []byte) bool {
	tag, msg, err := Decode(payload)
	if err != nil {
		b.malformed.Add(1)
		log.Debug("丢弃格式错误的桥接负载", "err", err)
		return false
	}
	if tag == b.tag {
		b.selfDropped.Add(1)
		return false
	}

	b.stats.MessageReceived(len(msg))
	b.hub.EnqueueBinary(msg, b)
	return true
}

// SendBinary 加上标签前缀后放入待发布缓冲
func (b *Bridge) SendBinary(msg []byte) {
	if !b.out.Offer(Encode(b.tag, msg)) {
		b.stats.MessageDropped()
	}
}

// SendText 桥接只承载二进制 PDU
func (b *Bridge) SendText(string) {}

// publishLoop 发布缓冲中的负载直到 ctx 结束，连接关闭时返回错误
func (b *Bridge) publishLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case payload := <-b.out.C():
			err := b.publish(ctx, payload)
			if errors.Is(err, types.ErrPubSubClosed) && ctx.Err() == nil {
				return fmt.Errorf("bridge publish: %w", err)
			}
		}
	}
}

func (b *Bridge) publish(ctx context.Context, payload []byte) error {
	pctx, cancel := context.WithTimeout(ctx, b.cfg.PublishTimeout)
	defer cancel()

	if err := b.pubsub.Publish(pctx, payload); err != nil {
		if !errors.Is(err, context.Canceled) {
			b.pubErrs.Warn("桥接发布失败", "size", len(payload), "err", err)
		}
		return err
	}
	b.stats.MessageSent(len(payload) - TagLen)
	return nil
}

// Connect 建立 Redis 连接并启动桥接
//
// 连接失败返回错误，桥接不注册。
func (b *Bridge) Connect(ctx context.Context) error {
	ps, err := DialRedis(ctx, b.cfg)
	if err != nil {
		return err
	}
	if err := b.Start(ps); err != nil {
		return multierr.Append(err, ps.Close())
	}
	return nil
}

package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"

	"github.com/dep2p/go-dishub/internal/util/logger"
	"github.com/dep2p/go-dishub/pkg/types"
)

// PubSub 桥接使用的发布订阅连接
type PubSub interface {
	// Publish 发布一条负载，连接永久关闭时返回 types.ErrPubSubClosed
	Publish(ctx context.Context, payload []byte) error

	// Subscribe 阻塞接收负载直到 ctx 结束或连接关闭
	//
	// 连接永久关闭时返回 types.ErrPubSubClosed，其余错误可重新订阅。
	Subscribe(ctx context.Context, handler func(payload []byte)) error

	// Close 关闭全部连接
	Close() error
}

// RedisPubSub 基于 Redis 的发布订阅，发布与订阅各用一个客户端
type RedisPubSub struct {
	pub     *redis.Client
	sub     *redis.Client
	channel string

	recvErrs *logger.Limited
}

var _ PubSub = (*RedisPubSub)(nil)

// DialRedis 建立两条连接并各 Ping 一次
func DialRedis(ctx context.Context, cfg Config) (*RedisPubSub, error) {
	opts := func() *redis.Options {
		return &redis.Options{
			Addr:        cfg.Addr,
			Password:    cfg.Password,
			DB:          cfg.DB,
			DialTimeout: cfg.DialTimeout,
		}
	}
	r := &RedisPubSub{
		pub:      redis.NewClient(opts()),
		sub:      redis.NewClient(opts()),
		channel:  cfg.Channel,
		recvErrs: logger.NewLimited(log, 5*time.Second, 1),
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := multierr.Combine(r.pub.Ping(pingCtx).Err(), r.sub.Ping(pingCtx).Err()); err != nil {
		return nil, multierr.Append(fmt.Errorf("connect redis %s: %w", cfg.Addr, err), r.Close())
	}
	return r, nil
}

// Publish 实现 PubSub
func (r *RedisPubSub) Publish(ctx context.Context, payload []byte) error {
	err := r.pub.Publish(ctx, r.channel, payload).Err()
	if errors.Is(err, redis.ErrClosed) {
		return fmt.Errorf("publish %s: %w", r.channel, types.ErrPubSubClosed)
	}
	return err
}

// Subscribe 实现 PubSub
//
// 连接中断时 go-redis 会在下一次接收时重连，这里只做退避。
func (r *RedisPubSub) Subscribe(ctx context.Context, handler func(payload []byte)) error {
	ps := r.sub.Subscribe(ctx, r.channel)
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		if errors.Is(err, redis.ErrClosed) {
			return fmt.Errorf("subscribe %s: %w", r.channel, types.ErrPubSubClosed)
		}
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}
	log.Info("已订阅桥接频道", "channel", r.channel)

	backoff := 100 * time.Millisecond
	for {
		msg, err := ps.ReceiveMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, redis.ErrClosed) {
				return fmt.Errorf("subscribe %s: %w", r.channel, types.ErrPubSubClosed)
			}
			r.recvErrs.Warn("桥接订阅接收失败，重试", "err", err, "backoff", backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, 5*time.Second)
			continue
		}
		backoff = 100 * time.Millisecond
		handler([]byte(msg.Payload))
	}
}

// Close 实现 PubSub
func (r *RedisPubSub) Close() error {
	return multierr.Combine(r.pub.Close(), r.sub.Close())
}

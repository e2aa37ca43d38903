// Package outbox 提供参与者出站缓冲
//
// 写往慢速外部端点的参与者把消息放进 Outbox，由自己的写协程取出发送。
// 缓冲满时丢弃最旧的一条，分发协程永不因单个参与者阻塞。
package outbox

import "sync/atomic"

// Outbox 有界、丢弃最旧的消息缓冲
type Outbox[T any] struct {
	ch      chan T
	dropped atomic.Int64
}

// New 创建容量为 size 的缓冲（至少为 1）
func New[T any](size int) *Outbox[T] {
	if size < 1 {
		size = 1
	}
	return &Outbox[T]{ch: make(chan T, size)}
}

// Offer 放入一条消息，返回 false 表示为此丢弃了一条消息
func (o *Outbox[T]) Offer(msg T) bool {
	select {
	case o.ch <- msg:
		return true
	default:
	}

	// 满了：丢弃最旧的再试一次
	select {
	case <-o.ch:
		o.dropped.Add(1)
	default:
	}
	select {
	case o.ch <- msg:
	default:
		// 并发生产者抢占了空位
		o.dropped.Add(1)
	}
	return false
}

// C 返回读取通道
func (o *Outbox[T]) C() <-chan T {
	return o.ch
}

// Len 返回当前缓冲条数
func (o *Outbox[T]) Len() int {
	return len(o.ch)
}

// Dropped 返回累计丢弃条数
func (o *Outbox[T]) Dropped() int64 {
	return o.dropped.Load()
}

package mocks

import (
	"context"
	"sync"

	"github.com/dep2p/go-dishub/pkg/types"
)

// ErrPubSubClosed MockPubSub 已关闭
var ErrPubSubClosed = types.ErrPubSubClosed

// MockPubSub 模拟发布订阅连接
//
// Publish 默认把负载直接回送给当前订阅者，模拟共享频道上的自回显。
type MockPubSub struct {
	// 可覆盖的方法
	PublishFunc func(ctx context.Context, payload []byte) error

	// Echo 为 true 时 Publish 会回送给订阅者
	Echo bool

	mu        sync.Mutex
	published [][]byte
	handler   func([]byte)
	ready     chan struct{}
	readyOnce sync.Once
	closed    bool
	done      chan struct{}
}

// NewMockPubSub 创建 MockPubSub
func NewMockPubSub() *MockPubSub {
	return &MockPubSub{
		ready: make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Publish 记录发布
func (m *MockPubSub) Publish(ctx context.Context, payload []byte) error {
	if m.PublishFunc != nil {
		if err := m.PublishFunc(ctx, payload); err != nil {
			return err
		}
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrPubSubClosed
	}
	m.published = append(m.published, append([]byte(nil), payload...))
	h, echo := m.handler, m.Echo
	m.mu.Unlock()

	if echo && h != nil {
		h(payload)
	}
	return nil
}

// Subscribe 保存回调并阻塞到 ctx 结束或 Close
func (m *MockPubSub) Subscribe(ctx context.Context, handler func(payload []byte)) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrPubSubClosed
	}
	m.handler = handler
	m.readyOnce.Do(func() { close(m.ready) })
	m.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m.done:
		return ErrPubSubClosed
	}
}

// Deliver 模拟频道上收到一条负载
func (m *MockPubSub) Deliver(payload []byte) {
	<-m.ready
	m.mu.Lock()
	h := m.handler
	m.mu.Unlock()
	h(payload)
}

// Ready 订阅建立后关闭
func (m *MockPubSub) Ready() <-chan struct{} {
	return m.ready
}

// Close 关闭连接
func (m *MockPubSub) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

// Published 返回已发布负载副本
func (m *MockPubSub) Published() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.published...)
}

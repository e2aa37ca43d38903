package mocks

import (
	"sync"

	"github.com/dep2p/go-dishub/pkg/interfaces"
)

// EnqueueCall 一次 EnqueueBinary 调用
type EnqueueCall struct {
	Data   []byte
	Origin interfaces.Participant
}

// TextCall 一次 RepeatText 调用
type TextCall struct {
	Text   string
	Origin interfaces.Participant
}

// MockHub 模拟分发引擎入口
type MockHub struct {
	// 可覆盖的方法
	EnqueueBinaryFunc func(msg []byte, origin interfaces.Participant)
	RepeatTextFunc    func(text string, origin interfaces.Participant)

	mu           sync.Mutex
	registered   []interfaces.Participant
	unregistered []interfaces.Participant
	enqueued     []EnqueueCall
	texts        []TextCall
}

// NewMockHub 创建 MockHub
func NewMockHub() *MockHub {
	return &MockHub{}
}

// Register 记录注册
func (m *MockHub) Register(p interfaces.Participant) {
	m.mu.Lock()
	m.registered = append(m.registered, p)
	m.mu.Unlock()
}

// Unregister 记录注销
func (m *MockHub) Unregister(p interfaces.Participant) {
	m.mu.Lock()
	m.unregistered = append(m.unregistered, p)
	m.mu.Unlock()
}

// EnqueueBinary 记录入队（拷贝数据）
func (m *MockHub) EnqueueBinary(msg []byte, origin interfaces.Participant) {
	if m.EnqueueBinaryFunc != nil {
		m.EnqueueBinaryFunc(msg, origin)
	}
	m.mu.Lock()
	m.enqueued = append(m.enqueued, EnqueueCall{Data: append([]byte(nil), msg...), Origin: origin})
	m.mu.Unlock()
}

// RepeatText 记录文本转发
func (m *MockHub) RepeatText(text string, origin interfaces.Participant) {
	if m.RepeatTextFunc != nil {
		m.RepeatTextFunc(text, origin)
	}
	m.mu.Lock()
	m.texts = append(m.texts, TextCall{Text: text, Origin: origin})
	m.mu.Unlock()
}

// Enqueued 返回入队调用副本
func (m *MockHub) Enqueued() []EnqueueCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]EnqueueCall(nil), m.enqueued...)
}

// Texts 返回文本转发调用副本
func (m *MockHub) Texts() []TextCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TextCall(nil), m.texts...)
}

// Registered 返回注册调用副本
func (m *MockHub) Registered() []interfaces.Participant {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]interfaces.Participant(nil), m.registered...)
}

// Unregistered 返回注销调用副本
func (m *MockHub) Unregistered() []interfaces.Participant {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]interfaces.Participant(nil), m.unregistered...)
}

package mocks

import (
	"sync"

	"github.com/dep2p/go-dishub/pkg/types"
)

// MockParticipant 模拟参与者
type MockParticipant struct {
	IDValue   string
	KindValue types.ParticipantKind

	// 可覆盖的方法
	SendTextFunc   func(text string)
	SendBinaryFunc func(msg []byte)

	stats *types.ConnectionStatistics

	mu     sync.Mutex
	texts  []string
	binary [][]byte
}

// NewMockParticipant 创建客户端类型的 MockParticipant
func NewMockParticipant(id string) *MockParticipant {
	return &MockParticipant{
		IDValue:   id,
		KindValue: types.KindClient,
		stats:     types.NewConnectionStatistics(),
	}
}

// ID 返回标识
func (m *MockParticipant) ID() string { return m.IDValue }

// Kind 返回类型
func (m *MockParticipant) Kind() types.ParticipantKind { return m.KindValue }

// SendText 记录文本消息
func (m *MockParticipant) SendText(text string) {
	if m.SendTextFunc != nil {
		m.SendTextFunc(text)
	}
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()
	m.Statistics().MessageSent(len(text))
}

// SendBinary 记录二进制消息（拷贝）
func (m *MockParticipant) SendBinary(msg []byte) {
	if m.SendBinaryFunc != nil {
		m.SendBinaryFunc(msg)
	}
	m.mu.Lock()
	m.binary = append(m.binary, append([]byte(nil), msg...))
	m.mu.Unlock()
	m.Statistics().MessageSent(len(msg))
}

// Statistics 返回统计
func (m *MockParticipant) Statistics() *types.ConnectionStatistics {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stats == nil {
		m.stats = types.NewConnectionStatistics()
	}
	return m.stats
}

// Texts 返回已收到的文本消息副本
func (m *MockParticipant) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}

// Binary 返回已收到的二进制消息副本
func (m *MockParticipant) Binary() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.binary...)
}

// Reset 清空调用记录
func (m *MockParticipant) Reset() {
	m.mu.Lock()
	m.texts = nil
	m.binary = nil
	m.mu.Unlock()
}

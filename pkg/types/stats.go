package types

import (
	"sync"
	"sync/atomic"
	"time"
)

// ============================================================================
//                              ConnectionStatistics - 参与者统计
// ============================================================================

// ConnectionStatistics 单个参与者的收发统计
//
// 计数器单调递增，只由所属参与者的收发路径修改，任何监控方都可以读取。
type ConnectionStatistics struct {
	createdAt time.Time

	messagesSent     atomic.Int64
	messagesReceived atomic.Int64
	bytesSent        atomic.Int64
	bytesReceived    atomic.Int64
	messagesDropped  atomic.Int64

	latencyMu sync.Mutex
	latency   LatencySummary
}

// NewConnectionStatistics 创建统计，记录创建时间
func NewConnectionStatistics() *ConnectionStatistics {
	return &ConnectionStatistics{createdAt: time.Now()}
}

// MessageSent 记录一条成功发送的消息
func (s *ConnectionStatistics) MessageSent(size int) {
	s.messagesSent.Add(1)
	s.bytesSent.Add(int64(size))
}

// MessageReceived 记录一条收到的消息
func (s *ConnectionStatistics) MessageReceived(size int) {
	s.messagesReceived.Add(1)
	s.bytesReceived.Add(int64(size))
}

// MessageDropped 记录一条被过滤器或缓冲策略丢弃的出站消息
func (s *ConnectionStatistics) MessageDropped() {
	s.messagesDropped.Add(1)
}

// ObserveLatency 记录一个延迟样本
func (s *ConnectionStatistics) ObserveLatency(d time.Duration) {
	s.latencyMu.Lock()
	s.latency.observe(d)
	s.latencyMu.Unlock()
}

// CreatedAt 返回创建时间
func (s *ConnectionStatistics) CreatedAt() time.Time {
	return s.createdAt
}

// Snapshot 返回当前统计的快照
func (s *ConnectionStatistics) Snapshot() StatsSnapshot {
	s.latencyMu.Lock()
	lat := s.latency
	s.latencyMu.Unlock()

	return StatsSnapshot{
		CreatedAt:        s.createdAt,
		MessagesSent:     s.messagesSent.Load(),
		MessagesReceived: s.messagesReceived.Load(),
		BytesSent:        s.bytesSent.Load(),
		BytesReceived:    s.bytesReceived.Load(),
		MessagesDropped:  s.messagesDropped.Load(),
		Latency:          lat,
	}
}

// StatsSnapshot 统计快照（值类型）
type StatsSnapshot struct {
	CreatedAt        time.Time
	MessagesSent     int64
	MessagesReceived int64
	BytesSent        int64
	BytesReceived    int64
	MessagesDropped  int64
	Latency          LatencySummary
}

// Uptime 返回自创建以来的时长
func (s StatsSnapshot) Uptime() time.Duration {
	return time.Since(s.CreatedAt)
}

// ============================================================================
//                              LatencySummary - 延迟摘要
// ============================================================================

// LatencySummary 延迟样本摘要
type LatencySummary struct {
	Count int64
	Sum   time.Duration
	Min   time.Duration
	Max   time.Duration
}

func (l *LatencySummary) observe(d time.Duration) {
	if l.Count == 0 || d < l.Min {
		l.Min = d
	}
	if d > l.Max {
		l.Max = d
	}
	l.Count++
	l.Sum += d
}

// Mean 返回平均延迟，无样本时为 0
func (l LatencySummary) Mean() time.Duration {
	if l.Count == 0 {
		return 0
	}
	return l.Sum / time.Duration(l.Count)
}

package distributor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dep2p/go-dishub/pkg/interfaces"
	"github.com/dep2p/go-dishub/pkg/types"
)

// Entry 队列条目，入队后不再修改，只被消费一次
type Entry struct {
	Data []byte

	// Origin 来源参与者，nil 表示发给所有参与者
	Origin interfaces.Participant

	EnqueuedAt time.Time
}

// Queue 并发安全的 FIFO 队列，支持多生产者多消费者
type Queue struct {
	capacity int
	policy   types.Backpressure

	mu     sync.Mutex
	items  []Entry
	head   int
	closed bool

	// notEmpty / notFull 容量为 1 的信号通道
	notEmpty chan struct{}
	notFull  chan struct{}
	done     chan struct{}

	dropped atomic.Int64
}

// NewQueue 创建队列，capacity 为 0 表示无界
func NewQueue(capacity int, policy types.Backpressure) *Queue {
	if capacity < 0 {
		capacity = 0
	}
	return &Queue{
		capacity: capacity,
		policy:   policy,
		notEmpty: make(chan struct{}, 1),
		notFull:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Push 入队
//
// 无界队列从不阻塞。有界队列满时按策略处理：block 等待空位，
// drop-oldest 丢弃队头，reject 返回 ErrQueueFull。
func (q *Queue) Push(ctx context.Context, e Entry) error {
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return ErrQueueClosed
		}

		if q.capacity == 0 || q.lenLocked() < q.capacity {
			q.appendLocked(e)
			if q.capacity > 0 && q.lenLocked() < q.capacity {
				signal(q.notFull)
			}
			q.mu.Unlock()
			return nil
		}

		switch q.policy {
		case types.BackpressureDropOldest:
			q.popLocked()
			q.dropped.Add(1)
			q.appendLocked(e)
			q.mu.Unlock()
			return nil
		case types.BackpressureReject:
			q.mu.Unlock()
			q.dropped.Add(1)
			return ErrQueueFull
		}
		q.mu.Unlock()

		select {
		case <-q.notFull:
		case <-q.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Pop 出队，队列为空时阻塞
//
// 队列关闭后仍会返回剩余条目，排空后返回 ErrQueueClosed。
func (q *Queue) Pop(ctx context.Context) (Entry, error) {
	for {
		q.mu.Lock()
		if q.lenLocked() > 0 {
			e := q.popLocked()
			if q.lenLocked() > 0 {
				signal(q.notEmpty)
			}
			q.mu.Unlock()
			signal(q.notFull)
			return e, nil
		}
		if q.closed {
			q.mu.Unlock()
			return Entry{}, ErrQueueClosed
		}
		q.mu.Unlock()

		select {
		case <-q.notEmpty:
		case <-q.done:
		case <-ctx.Done():
			return Entry{}, ctx.Err()
		}
	}
}

// Close 关闭队列，之后 Push 返回 ErrQueueClosed
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.done)
	}
}

// Drain 取出并返回全部剩余条目
func (q *Queue) Drain() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	rest := append([]Entry(nil), q.items[q.head:]...)
	q.items = nil
	q.head = 0
	return rest
}

// Len 返回当前条目数
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lenLocked()
}

// Dropped 返回因队列满被丢弃或拒绝的条目数
func (q *Queue) Dropped() int64 {
	return q.dropped.Load()
}

// Closed 是否已关闭
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *Queue) lenLocked() int {
	return len(q.items) - q.head
}

func (q *Queue) appendLocked(e Entry) {
	q.items = append(q.items, e)
	signal(q.notEmpty)
}

func (q *Queue) popLocked() Entry {
	e := q.items[q.head]
	q.items[q.head] = Entry{}
	q.head++

	// 队头空洞过半时压缩
	if q.head > 64 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return e
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

package metrics

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// ============================================================================
//                              RateMeter - 速率计算器
// ============================================================================

// RateMeter 基于 1 秒桶的滑动窗口速率计算器
type RateMeter struct {
	mu      sync.Mutex
	buckets []int64
	head    int64 // 最新桶对应的 Unix 秒
	clk     clock.Clock
}

// NewRateMeter 创建窗口为 window 的速率计算器（至少 1 秒）
func NewRateMeter(window time.Duration) *RateMeter {
	return newRateMeter(window, clock.New())
}

func newRateMeter(window time.Duration, clk clock.Clock) *RateMeter {
	n := int(window / time.Second)
	if n < 1 {
		n = 1
	}
	return &RateMeter{
		buckets: make([]int64, n),
		clk:     clk,
	}
}

// advance 把窗口推进到 sec，清空跳过的桶
func (r *RateMeter) advance(sec int64) {
	if r.head == 0 {
		r.head = sec
		return
	}
	gap := sec - r.head
	if gap <= 0 {
		return
	}
	n := int64(len(r.buckets))
	if gap >= n {
		clear(r.buckets)
	} else {
		for s := r.head + 1; s <= sec; s++ {
			r.buckets[s%n] = 0
		}
	}
	r.head = sec
}

// Add 计入 v
func (r *RateMeter) Add(v int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sec := r.clk.Now().Unix()
	r.advance(sec)
	r.buckets[sec%int64(len(r.buckets))] += v
}

// Rate 返回窗口内每秒平均值
func (r *RateMeter) Rate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.advance(r.clk.Now().Unix())
	var total int64
	for _, v := range r.buckets {
		total += v
	}
	return float64(total) / float64(len(r.buckets))
}

// Reset 清空窗口
func (r *RateMeter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.buckets)
	r.head = 0
}

package registry

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-dishub/internal/util/logger"
	"github.com/dep2p/go-dishub/pkg/interfaces"
)

var log = logger.Logger("core.registry")

// Registry 并发安全的参与者集合
type Registry struct {
	mu       sync.Mutex
	members  map[interfaces.Participant]struct{}
	snapshot atomic.Pointer[[]interfaces.Participant]
}

// New 创建空注册表
func New() *Registry {
	r := &Registry{members: make(map[interfaces.Participant]struct{})}
	empty := []interfaces.Participant{}
	r.snapshot.Store(&empty)
	return r
}

// Add 加入参与者，已存在时返回 false
func (r *Registry) Add(p interfaces.Participant) bool {
	if p == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[p]; ok {
		return false
	}
	r.members[p] = struct{}{}
	r.publishLocked()

	log.Debug("参与者已注册", "id", p.ID(), "kind", p.Kind(), "total", len(r.members))
	return true
}

// Remove 移除参与者，不存在时返回 false
func (r *Registry) Remove(p interfaces.Participant) bool {
	if p == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[p]; !ok {
		return false
	}
	delete(r.members, p)
	r.publishLocked()

	log.Debug("参与者已注销", "id", p.ID(), "kind", p.Kind(), "total", len(r.members))
	return true
}

func (r *Registry) publishLocked() {
	list := make([]interfaces.Participant, 0, len(r.members))
	for p := range r.members {
		list = append(list, p)
	}
	r.snapshot.Store(&list)
}

// Snapshot 返回当前成员快照，调用方不得修改
func (r *Registry) Snapshot() []interfaces.Participant {
	return *r.snapshot.Load()
}

// Len 返回成员数
func (r *Registry) Len() int {
	return len(*r.snapshot.Load())
}

// Contains 是否包含参与者
func (r *Registry) Contains(p interfaces.Participant) bool {
	for _, m := range r.Snapshot() {
		if m == p {
			return true
		}
	}
	return false
}

// ForEachExcept 对快照中除 origin 外的每个参与者调用 fn
//
// origin 为 nil 时遍历全部。某个参与者上的 panic 被恢复并记录，
// 不影响其余参与者。返回成功调用的次数。
func (r *Registry) ForEachExcept(origin interfaces.Participant, fn func(interfaces.Participant)) int {
	n := 0
	for _, p := range r.Snapshot() {
		if origin != nil && p == origin {
			continue
		}
		if r.call(p, fn) {
			n++
		}
	}
	return n
}

func (r *Registry) call(p interfaces.Participant, fn func(interfaces.Participant)) (ok bool) {
	defer func() {
		if v := recover(); v != nil {
			log.Error("向参与者投递时发生 panic", "id", p.ID(), "kind", p.Kind(), "panic", fmt.Sprint(v))
			ok = false
		}
	}()
	fn(p)
	return true
}

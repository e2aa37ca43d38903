package filter

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/dep2p/go-dishub/pkg/interfaces"
	"github.com/dep2p/go-dishub/pkg/types"
)

// scriptOptions 脚本中 filter_options 表的映射，键名按 gluamapper 规则
// 由 entry_point 转为 EntryPoint
type scriptOptions struct {
	EntryPoint string
	TimeoutMs  int
}

// LuaFilter 基于 gopher-lua 的脚本过滤器
//
// 同一 LState 不可并发使用，Evaluate 串行执行。
type LuaFilter struct {
	mu      sync.Mutex
	L       *lua.LState
	fn      *lua.LFunction
	entry   string
	timeout time.Duration
	closed  bool

	evals  atomic.Int64
	errors atomic.Int64
}

var _ interfaces.Filter = (*LuaFilter)(nil)

// NewLuaFilter 编译脚本并查找入口函数
//
// 脚本中的 filter_options 可覆盖入口函数名与超时。
// 求值总有超时上限，timeout 不大于 0 时使用 DefaultTimeout。
func NewLuaFilter(script, entryPoint string, timeout time.Duration) (*LuaFilter, error) {
	if script == "" {
		return nil, ErrEmptyScript
	}
	if entryPoint == "" {
		entryPoint = DefaultEntryPoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	L := newSandbox()
	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("filter: compile script: %w", err)
	}

	if tbl, ok := L.GetGlobal("filter_options").(*lua.LTable); ok {
		var opts scriptOptions
		if err := gluamapper.Map(tbl, &opts); err != nil {
			L.Close()
			return nil, fmt.Errorf("filter: filter_options: %w", err)
		}
		if opts.EntryPoint != "" {
			entryPoint = opts.EntryPoint
		}
		if opts.TimeoutMs > 0 {
			timeout = time.Duration(opts.TimeoutMs) * time.Millisecond
		}
	}

	fn, ok := L.GetGlobal(entryPoint).(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("%w: %s", ErrNoEntryPoint, entryPoint)
	}

	return &LuaFilter{
		L:       L,
		fn:      fn,
		entry:   entryPoint,
		timeout: timeout,
	}, nil
}

// EntryPoint 返回实际使用的入口函数名
func (f *LuaFilter) EntryPoint() string { return f.entry }

// Timeout 返回单次求值超时
func (f *LuaFilter) Timeout() time.Duration { return f.timeout }

// Evaluations 返回求值次数
func (f *LuaFilter) Evaluations() int64 { return f.evals.Load() }

// Errors 返回求值出错次数
func (f *LuaFilter) Errors() int64 { return f.errors.Load() }

// Evaluate 实现 interfaces.Filter
func (f *LuaFilter) Evaluate(msg []byte) (types.FilterResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return types.NoOpinion(), ErrClosed
	}
	f.evals.Add(1)

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()
	f.L.SetContext(ctx)
	defer f.L.RemoveContext()
	defer f.L.SetTop(0)

	err := f.L.CallByParam(lua.P{Fn: f.fn, NRet: 1, Protect: true}, lua.LString(msg))
	if err != nil {
		f.errors.Add(1)
		return types.NoOpinion(), fmt.Errorf("filter: %s: %w", f.entry, err)
	}

	switch ret := f.L.Get(-1).(type) {
	case lua.LBool:
		if ret {
			return types.Pass(), nil
		}
		return types.Drop(), nil
	case lua.LString:
		return types.Rewrite([]byte(ret)), nil
	default:
		return types.NoOpinion(), nil
	}
}

// Close 释放 LState
func (f *LuaFilter) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		f.L.Close()
	}
}

// ============================================================================
//                              沙箱
// ============================================================================

var sandboxLibs = []struct {
	name string
	fn   lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

var removedGlobals = []string{"dofile", "loadfile", "load", "loadstring", "require", "module"}

func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range sandboxLibs {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("dis", L.SetFuncs(L.NewTable(), disHelpers))
	return L
}

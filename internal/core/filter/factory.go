package filter

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/dep2p/go-dishub/internal/util/logger"
	"github.com/dep2p/go-dishub/pkg/interfaces"
)

// Factory 为每个新连接创建独立的过滤器实例
type Factory struct {
	cfg    Config
	script string

	built  atomic.Int64
	failed atomic.Int64

	buildErrs *logger.Limited
}

// NewFactory 加载脚本并试编译一次
//
// 未启用或没有脚本时返回的 Factory 不产生过滤器。
// 脚本文件读取失败或编译失败返回错误。
func NewFactory(cfg Config) (*Factory, error) {
	f := &Factory{
		cfg:       cfg,
		buildErrs: logger.NewLimited(log, 10*time.Second, 1),
	}
	if !cfg.Enable {
		return f, nil
	}

	script := cfg.Script
	if script == "" && cfg.ScriptFile != "" {
		data, err := os.ReadFile(cfg.ScriptFile)
		if err != nil {
			return f, fmt.Errorf("filter: read script: %w", err)
		}
		script = string(data)
	}
	if script == "" {
		return f, nil
	}

	check, err := NewLuaFilter(script, cfg.EntryPoint, cfg.Timeout)
	if err != nil {
		return f, err
	}
	log.Info("过滤脚本已加载", "entry", check.EntryPoint(), "timeout", check.Timeout())
	check.Close()

	f.script = script
	return f, nil
}

// Enabled 是否会产生过滤器
func (f *Factory) Enabled() bool {
	return f != nil && f.script != ""
}

// New 为一个连接创建过滤器，未启用或创建失败时返回 nil
//
// 返回 nil 意味着该连接的消息全部放行。
func (f *Factory) New() interfaces.Filter {
	if !f.Enabled() {
		return nil
	}
	lf, err := NewLuaFilter(f.script, f.cfg.EntryPoint, f.cfg.Timeout)
	if err != nil {
		f.failed.Add(1)
		f.buildErrs.Warn("创建过滤器失败，连接不做过滤", "err", err)
		return nil
	}
	f.built.Add(1)
	return lf
}

// Release 释放 New 返回的过滤器
func Release(flt interfaces.Filter) {
	if lf, ok := flt.(*LuaFilter); ok {
		lf.Close()
	}
}

// Built 返回已创建的过滤器数
func (f *Factory) Built() int64 { return f.built.Load() }

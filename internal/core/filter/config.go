package filter

import (
	"time"

	"github.com/dep2p/go-dishub/config"
)

const (
	// DefaultEntryPoint 默认入口函数名
	DefaultEntryPoint = "aoim"

	// DefaultTimeout 默认单次求值超时
	DefaultTimeout = 50 * time.Millisecond
)

// Config 过滤配置
type Config struct {
	Enable     bool
	EntryPoint string
	Script     string
	ScriptFile string

	// Timeout 单次求值超时，不大于 0 时使用 DefaultTimeout
	Timeout time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		EntryPoint: DefaultEntryPoint,
		Timeout:    DefaultTimeout,
	}
}

// ConfigFromUnified 从统一配置创建
func ConfigFromUnified(cfg *config.Config) Config {
	out := DefaultConfig()
	if cfg == nil {
		return out
	}
	f := cfg.Filter
	out.Enable = f.Enable
	if f.EntryPoint != "" {
		out.EntryPoint = f.EntryPoint
	}
	out.Script = f.Script
	out.ScriptFile = f.ScriptFile
	out.Timeout = f.Timeout.Duration()
	return out
}

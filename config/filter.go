package config

import (
	"fmt"
	"time"
)

// FilterConfig 客户端出站过滤配置
type FilterConfig struct {
	// Enable 是否启用过滤子系统
	Enable bool `json:"enable"`

	// EntryPoint 脚本入口函数名
	EntryPoint string `json:"entry_point"`

	// Script 内联脚本，优先于 ScriptFile
	Script string `json:"script,omitempty"`

	// ScriptFile 脚本文件路径
	ScriptFile string `json:"script_file,omitempty"`

	// Timeout 单次求值超时，0 表示使用过滤器默认值（50ms）
	Timeout Duration `json:"timeout"`
}

// DefaultFilterConfig 返回默认过滤配置
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		Enable:     false,
		EntryPoint: "aoim",
		Timeout:    Duration(50 * time.Millisecond),
	}
}

// Validate 校验过滤配置
//
// 启用但没有脚本不算错误：过滤器缺失时消息一律放行。
func (c FilterConfig) Validate() error {
	if !c.Enable {
		return nil
	}
	if c.EntryPoint == "" {
		return fmt.Errorf("filter: entry_point is empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("filter: %w: timeout", ErrNegativeDuration)
	}
	return nil
}

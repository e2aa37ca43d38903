package config

import (
	"fmt"
	"strings"
)

// MetricsConfig Prometheus 指标配置
type MetricsConfig struct {
	Enable bool   `json:"enable"`
	Path   string `json:"path"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{Enable: true, Path: "/metrics"}
}

// Validate 校验指标配置
func (c MetricsConfig) Validate() error {
	if c.Enable && !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("metrics: path must start with '/', got %q", c.Path)
	}
	return nil
}

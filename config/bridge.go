package config

import (
	"fmt"
	"time"
)

// BridgeConfig 跨实例桥接配置
type BridgeConfig struct {
	// Enable 是否启用 Redis 发布订阅桥接
	Enable bool `json:"enable"`

	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db,omitempty"`

	// Channel 发布订阅频道名
	Channel string `json:"channel"`

	// DialTimeout 启动时连接超时
	DialTimeout Duration `json:"dial_timeout"`
}

// DefaultBridgeConfig 返回默认桥接配置
func DefaultBridgeConfig() BridgeConfig {
	return BridgeConfig{
		Enable:      false,
		Host:        "localhost",
		Port:        6379,
		Channel:     "DIS",
		DialTimeout: Duration(5 * time.Second),
	}
}

// Addr 返回 host:port
func (c BridgeConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate 校验桥接配置
func (c BridgeConfig) Validate() error {
	if !c.Enable {
		return nil
	}
	if c.Host == "" {
		return fmt.Errorf("bridge: host is empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("bridge: %w: port %d", ErrInvalidPort, c.Port)
	}
	if c.Channel == "" {
		return fmt.Errorf("bridge: channel is empty")
	}
	if c.DialTimeout < 0 {
		return fmt.Errorf("bridge: %w: dial_timeout", ErrNegativeDuration)
	}
	return nil
}

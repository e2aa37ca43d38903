package config

import (
	"fmt"
	"strings"
	"time"
)

// WebSocketConfig 客户端会话配置
type WebSocketConfig struct {
	// Enable 是否启用 WebSocket 会话
	Enable bool `json:"enable"`

	// ListenAddr HTTP 监听地址
	ListenAddr string `json:"listen_addr"`

	// Path 升级路径
	Path string `json:"path"`

	// SendBuffer 每个会话的出站缓冲条数，满时丢弃最旧
	SendBuffer int `json:"send_buffer"`

	// WriteTimeout 单次写超时
	WriteTimeout Duration `json:"write_timeout"`

	// ReadLimit 单条入站消息上限（字节）
	ReadLimit int64 `json:"read_limit"`

	// AllowedOrigins 允许的 Origin，空表示不校验
	AllowedOrigins []string `json:"allowed_origins,omitempty"`
}

// DefaultWebSocketConfig 返回默认会话配置
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		Enable:       true,
		ListenAddr:   ":8080",
		Path:         "/dis",
		SendBuffer:   256,
		WriteTimeout: Duration(10 * time.Second),
		ReadLimit:    64 * 1024,
	}
}

// Validate 校验会话配置
func (c WebSocketConfig) Validate() error {
	if !c.Enable {
		return nil
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("websocket: listen_addr is empty")
	}
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("websocket: path must start with '/', got %q", c.Path)
	}
	if c.SendBuffer < 1 {
		return fmt.Errorf("websocket: send_buffer must be >= 1, got %d", c.SendBuffer)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("websocket: %w: write_timeout", ErrNegativeDuration)
	}
	if c.ReadLimit < 12 {
		return fmt.Errorf("websocket: read_limit %d too small", c.ReadLimit)
	}
	return nil
}

package wsconn

import (
	"time"

	"github.com/dep2p/go-dishub/config"
)

const (
	// pongWait 等待对端 pong 的最长时间
	pongWait = 60 * time.Second

	// pingPeriod 发送 ping 的间隔，须小于 pongWait
	pingPeriod = pongWait * 9 / 10
)

// Config 会话配置
type Config struct {
	Enable         bool
	Path           string
	SendBuffer     int
	WriteTimeout   time.Duration
	ReadLimit      int64
	AllowedOrigins []string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Enable:       true,
		Path:         "/dis",
		SendBuffer:   256,
		WriteTimeout: 10 * time.Second,
		ReadLimit:    64 * 1024,
	}
}

// ConfigFromUnified 从统一配置创建
func ConfigFromUnified(cfg *config.Config) Config {
	out := DefaultConfig()
	if cfg == nil {
		return out
	}
	w := cfg.WebSocket
	out.Enable = w.Enable
	if w.Path != "" {
		out.Path = w.Path
	}
	if w.SendBuffer > 0 {
		out.SendBuffer = w.SendBuffer
	}
	if w.WriteTimeout > 0 {
		out.WriteTimeout = w.WriteTimeout.Duration()
	}
	if w.ReadLimit > 0 {
		out.ReadLimit = w.ReadLimit
	}
	out.AllowedOrigins = w.AllowedOrigins
	return out
}

package bridge

import (
	"time"

	"github.com/dep2p/go-dishub/config"
)

// Config 桥接配置
type Config struct {
	Enable   bool
	Addr     string
	Password string
	DB       int
	Channel  string

	DialTimeout    time.Duration
	PublishTimeout time.Duration

	// OutboxSize 待发布缓冲条数，满时丢弃最旧
	OutboxSize int

	// Tag 固定标签，0 表示随机生成
	Tag uint32
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Addr:           "localhost:6379",
		Channel:        "DIS",
		DialTimeout:    5 * time.Second,
		PublishTimeout: 2 * time.Second,
		OutboxSize:     1024,
	}
}

// ConfigFromUnified 从统一配置创建
func ConfigFromUnified(cfg *config.Config) Config {
	out := DefaultConfig()
	if cfg == nil {
		return out
	}
	b := cfg.Bridge
	out.Enable = b.Enable
	out.Addr = b.Addr()
	out.Password = b.Password
	out.DB = b.DB
	out.Channel = b.Channel
	if b.DialTimeout > 0 {
		out.DialTimeout = b.DialTimeout.Duration()
	}
	return out
}

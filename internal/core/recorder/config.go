package recorder

import (
	"github.com/dep2p/go-dishub/config"
)

// Config 记录与回放配置
type Config struct {
	Enable bool
	File   string

	// Port 写入帧的 UDP 端口
	Port int

	// Buffer 待写缓冲条数
	Buffer int

	ReplayFile     string
	ReplayRealtime bool
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		File:   "dishub.pcap",
		Port:   3000,
		Buffer: 1024,
	}
}

// ConfigFromUnified 从统一配置创建
func ConfigFromUnified(cfg *config.Config) Config {
	out := DefaultConfig()
	if cfg == nil {
		return out
	}
	out.Enable = cfg.Recorder.Enable
	if cfg.Recorder.File != "" {
		out.File = cfg.Recorder.File
	}
	if cfg.Network.Port > 0 {
		out.Port = cfg.Network.Port
	}
	out.ReplayFile = cfg.Recorder.ReplayFile
	out.ReplayRealtime = cfg.Recorder.ReplayRealtime
	return out
}

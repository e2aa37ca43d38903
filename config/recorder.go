package config

import "fmt"

// RecorderConfig 抓包记录配置
type RecorderConfig struct {
	// Enable 是否把扇出流量写入 pcap 文件
	Enable bool `json:"enable"`

	// File pcap 输出路径
	File string `json:"file"`

	// ReplayFile 启动时回放的 pcap 文件，空表示不回放
	ReplayFile string `json:"replay_file,omitempty"`

	// ReplayRealtime 回放时按抓包时间间隔发送
	ReplayRealtime bool `json:"replay_realtime,omitempty"`
}

// DefaultRecorderConfig 返回默认抓包配置
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{File: "dishub.pcap"}
}

// Validate 校验抓包配置
func (c RecorderConfig) Validate() error {
	if c.Enable && c.File == "" {
		return fmt.Errorf("recorder: file is empty")
	}
	return nil
}

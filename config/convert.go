package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// FromJSON 以默认配置为底解析 JSON，缺省字段保留默认值
//
//	{
//	  "network": {"mode": "multicast", "port": 3000},
//	  "bridge":  {"enable": true, "host": "redis", "channel": "DIS"},
//	  "distributor": {"drain_timeout": "2s"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Load 从文件加载并校验配置
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: 用户指定的配置文件路径是预期行为
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := FromJSON(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ToJSON 以缩进格式序列化配置
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Clone 深拷贝配置
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	if c.Network.Destinations != nil {
		out.Network.Destinations = append([]string(nil), c.Network.Destinations...)
	}
	if c.WebSocket.AllowedOrigins != nil {
		out.WebSocket.AllowedOrigins = append([]string(nil), c.WebSocket.AllowedOrigins...)
	}
	return &out
}

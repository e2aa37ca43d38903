// Package config 提供 dishub 的统一配置
//
// 主 Config 嵌入各组件子配置，每个子配置在独立文件中定义，
// 支持 JSON 加载、默认值与校验：
//
//	cfg := config.NewConfig()
//	cfg.Network.Mode = types.ModeMulticast
//	cfg.Bridge.Enable = true
//
//	cfg, err := config.Load("dishub.json")
package config

// Config dishub 的完整配置
//
//   - Network: 本地网络 UDP 广播/组播传输
//   - Bridge: 跨实例 Redis 发布订阅桥接
//   - Filter: 客户端出站过滤脚本
//   - Distributor: 分发队列与工作协程
//   - WebSocket: 客户端会话监听
//   - Recorder: 抓包记录
//   - Metrics: Prometheus 指标
type Config struct {
	Network     NetworkConfig     `json:"network"`
	Bridge      BridgeConfig      `json:"bridge"`
	Filter      FilterConfig      `json:"filter"`
	Distributor DistributorConfig `json:"distributor"`
	WebSocket   WebSocketConfig   `json:"websocket"`
	Recorder    RecorderConfig    `json:"recorder"`
	Metrics     MetricsConfig     `json:"metrics"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Network:     DefaultNetworkConfig(),
		Bridge:      DefaultBridgeConfig(),
		Filter:      DefaultFilterConfig(),
		Distributor: DefaultDistributorConfig(),
		WebSocket:   DefaultWebSocketConfig(),
		Recorder:    DefaultRecorderConfig(),
		Metrics:     DefaultMetricsConfig(),
	}
}

// Validate 依次校验所有子配置
func (c *Config) Validate() error {
	validators := []interface{ Validate() error }{
		c.Network,
		c.Bridge,
		c.Filter,
		c.Distributor,
		c.WebSocket,
		c.Recorder,
		c.Metrics,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

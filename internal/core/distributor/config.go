package distributor

import (
	"fmt"
	"time"

	"github.com/dep2p/go-dishub/config"
	"github.com/dep2p/go-dishub/pkg/types"
)

// Config 分发配置
type Config struct {
	// Workers 工作协程数
	Workers int

	// Capacity 队列容量，0 表示无界
	Capacity int

	// Backpressure 有界队列满时策略
	Backpressure types.Backpressure

	// DrainTimeout Stop 排空队列的上限，0 表示只受 Stop 的 ctx 约束
	DrainTimeout time.Duration
}

// DefaultConfig 单协程、无界队列
func DefaultConfig() Config {
	return Config{
		Workers:      1,
		Backpressure: types.BackpressureBlock,
		DrainTimeout: 5 * time.Second,
	}
}

// ConfigFromUnified 从统一配置创建
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		Workers:      cfg.Distributor.Workers,
		Capacity:     cfg.Distributor.QueueCapacity,
		Backpressure: cfg.Distributor.Backpressure,
		DrainTimeout: cfg.Distributor.DrainTimeout.Duration(),
	}
}

// Validate 校验配置
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers=%d", ErrInvalidConfig, c.Workers)
	}
	if c.Capacity < 0 {
		return fmt.Errorf("%w: capacity=%d", ErrInvalidConfig, c.Capacity)
	}
	return nil
}

// WithWorkers 设置工作协程数
func (c Config) WithWorkers(n int) Config {
	c.Workers = n
	return c
}

// WithCapacity 设置容量与满时策略
func (c Config) WithCapacity(n int, policy types.Backpressure) Config {
	c.Capacity = n
	c.Backpressure = policy
	return c
}

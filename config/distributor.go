package config

import (
	"fmt"
	"time"

	"github.com/dep2p/go-dishub/pkg/types"
)

// DistributorConfig 分发队列与工作协程配置
type DistributorConfig struct {
	// Workers 分发协程数，1 时保证全局 FIFO
	Workers int `json:"workers"`

	// QueueCapacity 队列容量，0 表示无界
	QueueCapacity int `json:"queue_capacity"`

	// Backpressure 有界队列满时策略
	Backpressure types.Backpressure `json:"backpressure"`

	// DrainTimeout 停止时排空队列的最长时间
	DrainTimeout Duration `json:"drain_timeout"`
}

// DefaultDistributorConfig 返回默认分发配置
func DefaultDistributorConfig() DistributorConfig {
	return DistributorConfig{
		Workers:       1,
		QueueCapacity: 0,
		Backpressure:  types.BackpressureBlock,
		DrainTimeout:  Duration(5 * time.Second),
	}
}

// Validate 校验分发配置
func (c DistributorConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("distributor: workers must be >= 1, got %d", c.Workers)
	}
	if c.QueueCapacity < 0 {
		return fmt.Errorf("distributor: queue_capacity must be >= 0, got %d", c.QueueCapacity)
	}
	if c.DrainTimeout < 0 {
		return fmt.Errorf("distributor: %w: drain_timeout", ErrNegativeDuration)
	}
	return nil
}

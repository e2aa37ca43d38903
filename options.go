package dishub

import (
	"fmt"

	"go.uber.org/fx"

	"github.com/dep2p/go-dishub/config"
)

// Option 用户配置选项函数
type Option func(*nodeConfig) error

// nodeConfig 内部选项结构
type nodeConfig struct {
	config *config.Config

	// logFile 日志输出文件
	logFile string

	// userFxOptions 追加到 Fx 应用的用户选项
	userFxOptions []fx.Option
}

func newNodeConfig() *nodeConfig {
	return &nodeConfig{config: config.NewConfig()}
}

// WithConfig 使用完整配置
//
// 配置会被复制，调用方之后的修改不影响节点。
func WithConfig(cfg *config.Config) Option {
	return func(c *nodeConfig) error {
		if cfg == nil {
			return config.ErrNilConfig
		}
		c.config = cfg.Clone()
		return nil
	}
}

// WithConfigFile 从 JSON 文件加载配置
//
// 文件中未出现的字段保持默认值。
func WithConfigFile(path string) Option {
	return func(c *nodeConfig) error {
		if path == "" {
			return fmt.Errorf("config file: %w", ErrEmptyPath)
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		c.config = cfg
		return nil
	}
}

// WithLogFile 将日志输出重定向到指定文件
//
// 文件以追加模式打开，节点 Close 时关闭。
func WithLogFile(path string) Option {
	return func(c *nodeConfig) error {
		if path == "" {
			return fmt.Errorf("log file: %w", ErrEmptyPath)
		}
		c.logFile = path
		return nil
	}
}

// WithFxOptions 追加 Fx 选项
//
// 用于注入额外参与者或替换模块，例如测试中用 fx.Decorate 替换组件。
func WithFxOptions(opts ...fx.Option) Option {
	return func(c *nodeConfig) error {
		c.userFxOptions = append(c.userFxOptions, opts...)
		return nil
	}
}

package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/dep2p/go-dishub/config"
	"github.com/dep2p/go-dishub/internal/core/hub"
)

// Config 指标配置
type Config struct {
	// Enabled 是否启用指标收集
	Enabled bool

	// Path HTTP 暴露路径
	Path string

	// RateWindow 扇出速率窗口
	RateWindow time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Path:       "/metrics",
		RateWindow: time.Minute,
	}
}

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) Config {
	out := DefaultConfig()
	if cfg == nil {
		return out
	}
	out.Enabled = cfg.Metrics.Enable
	if cfg.Metrics.Path != "" {
		out.Path = cfg.Metrics.Path
	}
	return out
}

// Params Metrics 依赖参数
type Params struct {
	fx.In

	Hub        *hub.Hub
	UnifiedCfg *config.Config `optional:"true"`
}

// Exporter 指标注册表与 HTTP 处理器
type Exporter struct {
	Path     string
	Registry *prometheus.Registry
	Tap      *Tap
	Handler  http.Handler
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(NewExporterFromParams),
	fx.Invoke(registerLifecycle),
)

// NewExporterFromParams 从参数创建 Exporter，未启用时返回 nil
func NewExporterFromParams(p Params) (*Exporter, error) {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enabled {
		return nil, nil
	}
	return NewExporter(cfg, p.Hub)
}

// NewExporter 创建独立注册表并注册采集器
func NewExporter(cfg Config, src Source) (*Exporter, error) {
	tap := NewTap(cfg.RateWindow)
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewCollector(src, tap)); err != nil {
		return nil, err
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	return &Exporter{
		Path:     cfg.Path,
		Registry: reg,
		Tap:      tap,
		Handler:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}, nil
}

type lifecycleInput struct {
	fx.In

	LC       fx.Lifecycle
	Hub      *hub.Hub
	Exporter *Exporter `optional:"true"`
}

func registerLifecycle(input lifecycleInput) {
	e := input.Exporter
	if e == nil {
		return
	}
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			input.Hub.Register(e.Tap)
			return nil
		},
		OnStop: func(_ context.Context) error {
			input.Hub.Unregister(e.Tap)
			return nil
		},
	})
}

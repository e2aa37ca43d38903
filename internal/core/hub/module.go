package hub

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-dishub/config"
	"github.com/dep2p/go-dishub/internal/core/distributor"
	"github.com/dep2p/go-dishub/pkg/interfaces"
)

// Params Hub 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Result Hub 提供的结果
type Result struct {
	fx.Out

	Hub       *Hub
	Interface interfaces.Hub
}

// ProvideHub 从统一配置创建 Hub
func ProvideHub(p Params) (Result, error) {
	cfg := distributor.ConfigFromUnified(p.UnifiedCfg)
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	h := New(cfg)
	return Result{Hub: h, Interface: h}, nil
}

// Module 是 hub 的 Fx 模块
var Module = fx.Module("hub",
	fx.Provide(ProvideHub),
	fx.Invoke(registerLifecycle),
)

type lifecycleInput struct {
	fx.In

	LC  fx.Lifecycle
	Hub *Hub
}

// registerLifecycle 先于各传输启动，晚于各传输停止
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return input.Hub.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return input.Hub.Stop(ctx)
		},
	})
}

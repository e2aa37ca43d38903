package bridge

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-dishub/config"
	"github.com/dep2p/go-dishub/pkg/interfaces"
)

// Params 桥接依赖参数
type Params struct {
	fx.In

	Hub        interfaces.Hub
	UnifiedCfg *config.Config `optional:"true"`
}

// ProvideBridge 创建桥接，未启用时返回 nil
func ProvideBridge(p Params) *Bridge {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enable {
		return nil
	}
	return New(cfg, p.Hub)
}

// Module 是 bridge 的 Fx 模块
var Module = fx.Module("bridge",
	fx.Provide(ProvideBridge),
	fx.Invoke(registerLifecycle),
)

type lifecycleInput struct {
	fx.In

	LC     fx.Lifecycle
	Bridge *Bridge `optional:"true"`
}

func registerLifecycle(input lifecycleInput) {
	b := input.Bridge
	if b == nil {
		return
	}

	connected := false
	input.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := b.Connect(ctx); err != nil {
				log.Error("桥接连接失败，跨实例扇出不可用", "addr", b.cfg.Addr, "err", err)
				return nil
			}
			connected = true
			return nil
		},
		OnStop: func(_ context.Context) error {
			if !connected {
				return nil
			}
			return b.Close()
		},
	})
}

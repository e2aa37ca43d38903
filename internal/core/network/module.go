package network

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-dishub/config"
	"github.com/dep2p/go-dishub/pkg/interfaces"
)

// Params 本地网络传输依赖参数
type Params struct {
	fx.In

	Hub        interfaces.Hub
	UnifiedCfg *config.Config `optional:"true"`
}

// ProvideTransport 创建本地网络传输，未启用时返回 nil
func ProvideTransport(p Params) (*Transport, error) {
	cfg, err := ConfigFromUnified(p.UnifiedCfg)
	if err != nil {
		return nil, err
	}
	if !cfg.Enable {
		return nil, nil
	}
	return New(cfg, p.Hub), nil
}

// Module 是 network 的 Fx 模块
var Module = fx.Module("network",
	fx.Provide(ProvideTransport),
	fx.Invoke(registerLifecycle),
)

type lifecycleInput struct {
	fx.In

	LC        fx.Lifecycle
	Transport *Transport `optional:"true"`
}

// registerLifecycle 打开失败只记录日志，其余部分照常运行
func registerLifecycle(input lifecycleInput) {
	t := input.Transport
	if t == nil {
		return
	}

	started := false
	input.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := t.Start(ctx); err != nil {
				log.Error("本地网络传输启动失败，未注册", "err", err)
				return nil
			}
			started = true
			return nil
		},
		OnStop: func(_ context.Context) error {
			if !started {
				return nil
			}
			return t.Close()
		},
	})
}

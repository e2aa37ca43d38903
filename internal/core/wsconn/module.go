package wsconn

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-dishub/config"
	"github.com/dep2p/go-dishub/internal/core/filter"
	"github.com/dep2p/go-dishub/pkg/interfaces"
)

// Params 会话模块依赖参数
type Params struct {
	fx.In

	Hub        interfaces.Hub
	Filters    *filter.Factory `optional:"true"`
	UnifiedCfg *config.Config  `optional:"true"`
}

// ProvideHandler 创建会话处理器，未启用时返回 nil
func ProvideHandler(p Params) *Handler {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enable {
		return nil
	}
	return NewHandler(cfg, p.Hub, p.Filters)
}

// Module 是 wsconn 的 Fx 模块
var Module = fx.Module("wsconn",
	fx.Provide(ProvideHandler),
	fx.Invoke(registerLifecycle),
)

type lifecycleInput struct {
	fx.In

	LC      fx.Lifecycle
	Handler *Handler `optional:"true"`
}

func registerLifecycle(input lifecycleInput) {
	if input.Handler == nil {
		return
	}
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			input.Handler.Close()
			return nil
		},
	})
}

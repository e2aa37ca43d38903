package filter

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-dishub/config"
)

// Params 过滤模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// ProvideFactory 提供过滤器工厂
//
// 脚本有误时只告警，返回不产生过滤器的工厂，消息全部放行。
func ProvideFactory(p Params) *Factory {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	f, err := NewFactory(cfg)
	if err != nil {
		log.Warn("过滤脚本不可用，出站消息不做过滤", "err", err)
	}
	return f
}

// Module 是 filter 的 Fx 模块
var Module = fx.Module("filter",
	fx.Provide(ProvideFactory),
)

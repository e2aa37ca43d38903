package recorder

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/fx"

	"github.com/dep2p/go-dishub/config"
	"github.com/dep2p/go-dishub/pkg/interfaces"
)

// Params 记录模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// ProvideRecorder 创建记录器，未启用时返回 nil
func ProvideRecorder(p Params) *Recorder {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enable {
		return nil
	}
	return New(cfg)
}

// Module 是 recorder 的 Fx 模块
var Module = fx.Module("recorder",
	fx.Provide(ProvideRecorder),
	fx.Invoke(registerLifecycle),
	fx.Invoke(registerReplay),
)

type lifecycleInput struct {
	fx.In

	LC       fx.Lifecycle
	Hub      interfaces.Hub
	Recorder *Recorder `optional:"true"`
}

func registerLifecycle(input lifecycleInput) {
	r := input.Recorder
	if r == nil {
		return
	}
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if err := r.Open(); err != nil {
				return err
			}
			input.Hub.Register(r)
			return nil
		},
		OnStop: func(_ context.Context) error {
			input.Hub.Unregister(r)
			return r.Close()
		},
	})
}

type replayInput struct {
	fx.In

	LC         fx.Lifecycle
	Hub        interfaces.Hub
	UnifiedCfg *config.Config `optional:"true"`
}

// registerReplay 启动后在后台回放抓包文件，回放失败只记录日志
func registerReplay(input replayInput) {
	cfg := ConfigFromUnified(input.UnifiedCfg)
	if cfg.ReplayFile == "" {
		return
	}

	var (
		cancel context.CancelFunc
		wg     sync.WaitGroup
	)
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := Replay(ctx, cfg.ReplayFile, input.Hub, cfg.ReplayRealtime)
				if err != nil && !errors.Is(err, context.Canceled) {
					log.Error("抓包回放失败", "file", cfg.ReplayFile, "err", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			wg.Wait()
			return nil
		},
	})
}

package dishub

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dep2p/go-dishub/internal/core/bridge"
	"github.com/dep2p/go-dishub/internal/core/filter"
	"github.com/dep2p/go-dishub/internal/core/hub"
	"github.com/dep2p/go-dishub/internal/core/metrics"
	"github.com/dep2p/go-dishub/internal/core/network"
	"github.com/dep2p/go-dishub/internal/core/recorder"
	"github.com/dep2p/go-dishub/internal/core/wsconn"
	"github.com/dep2p/go-dishub/internal/util/logger"
)

var fxLogger = logger.Logger("dishub.fx")

// buildFxApp 构建 Fx 应用
//
// hub 总是加载，其余模块按配置加载。hub 最先启动、最后停止，
// 停止时各传输先注销，再排空分发队列。
func buildFxApp(cfg *nodeConfig, node *Node) (*fx.App, error) {
	if err := cfg.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	c := cfg.config

	modules := []fx.Option{
		fx.Supply(c),
		hub.Module,
	}

	if c.Metrics.Enable {
		modules = append(modules, metrics.Module)
	}
	if c.Network.Enable {
		modules = append(modules, network.Module)
	}
	if c.Bridge.Enable {
		modules = append(modules, bridge.Module)
	}
	if c.WebSocket.Enable {
		modules = append(modules, filter.Module, wsconn.Module)
	}
	if c.Recorder.Enable || c.Recorder.ReplayFile != "" {
		modules = append(modules, recorder.Module)
	}
	fxLogger.Debug("模块已选择",
		"network", c.Network.Enable,
		"bridge", c.Bridge.Enable,
		"websocket", c.WebSocket.Enable,
		"recorder", c.Recorder.Enable,
		"metrics", c.Metrics.Enable)

	if len(cfg.userFxOptions) > 0 {
		modules = append(modules, cfg.userFxOptions...)
	}

	modules = append(modules,
		fx.Invoke(injectNodeComponents(node)),
		fx.WithLogger(newFxEventLogger),
	)

	return fx.New(modules...), nil
}

// newFxEventLogger fx 事件日志，只输出失败事件
//
// 成功的 Provide/Invoke/OnStart 事件在 Info 级别，被 Warn 级别的 core 过滤。
func newFxEventLogger() fxevent.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(logger.Writer()),
		zapcore.WarnLevel,
	)
	l := &fxevent.ZapLogger{Logger: zap.New(core).Named("dishub.fx")}
	l.UseErrorLevel(zapcore.ErrorLevel)
	return l
}

// nodeInjectParams 注入到 Node 的组件
type nodeInjectParams struct {
	fx.In

	Hub *hub.Hub

	Network  *network.Transport `optional:"true"`
	Bridge   *bridge.Bridge     `optional:"true"`
	Sessions *wsconn.Handler    `optional:"true"`
	Recorder *recorder.Recorder `optional:"true"`
	Metrics  *metrics.Exporter  `optional:"true"`
}

func injectNodeComponents(node *Node) interface{} {
	return func(p nodeInjectParams) {
		node.hub = p.Hub
		node.network = p.Network
		node.bridge = p.Bridge
		node.sessions = p.Sessions
		node.recorder = p.Recorder
		node.metrics = p.Metrics
	}
}

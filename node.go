package dishub

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-dishub/internal/core/bridge"
	"github.com/dep2p/go-dishub/internal/core/hub"
	"github.com/dep2p/go-dishub/internal/core/metrics"
	"github.com/dep2p/go-dishub/internal/core/network"
	"github.com/dep2p/go-dishub/internal/core/recorder"
	"github.com/dep2p/go-dishub/internal/core/wsconn"
	"github.com/dep2p/go-dishub/internal/util/logger"
)

var log = logger.Logger("dishub")

// startTimeout Fx 应用启动超时
const startTimeout = 30 * time.Second

// ════════════════════════════════════════════════════════════════════════════
//                              节点状态
// ════════════════════════════════════════════════════════════════════════════

// NodeState 节点状态
type NodeState int

const (
	// StateIdle 已创建，未启动
	StateIdle NodeState = iota

	// StateStarting 启动中
	StateStarting

	// StateRunning 运行中
	StateRunning

	// StateStopping 停止中
	StateStopping

	// StateStopped 已停止
	StateStopped
)

// String 返回状态的字符串表示
func (s NodeState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              Node
// ════════════════════════════════════════════════════════════════════════════

// Node 一个 dishub 实例
//
// Node 只管理组件生命周期，HTTP 服务由调用方用 Handler() 挂载。
type Node struct {
	config *nodeConfig
	app    *fx.App

	// 由 Fx 注入
	hub      *hub.Hub
	network  *network.Transport
	bridge   *bridge.Bridge
	sessions *wsconn.Handler
	recorder *recorder.Recorder
	metrics  *metrics.Exporter

	logFile *os.File

	mu      sync.Mutex
	state   NodeState
	started bool
	closed  bool
}

// New 创建节点但不启动
//
// 示例：
//
//	node, err := dishub.New(
//	    dishub.WithConfigFile("dishub.json"),
//	    dishub.WithLogFile("dishub.log"),
//	)
func New(opts ...Option) (*Node, error) {
	cfg := newNodeConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	node := &Node{config: cfg}

	if cfg.logFile != "" {
		f, err := os.OpenFile(cfg.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		node.logFile = f
	}

	app, err := buildFxApp(cfg, node)
	if err != nil {
		node.closeLogFile()
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	if err := app.Err(); err != nil {
		node.closeLogFile()
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	node.app = app
	return node, nil
}

// Start 启动全部组件
//
// 本地网络绑定失败与桥接连接失败不会导致启动失败，对应参与者不注册。
func (n *Node) Start(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return ErrNodeClosed
	}
	if n.started {
		return ErrAlreadyStarted
	}

	n.state = StateStarting
	log.Info("正在启动节点", "version", Version)

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()
	if err := n.app.Start(startCtx); err != nil {
		n.state = StateIdle
		log.Error("节点启动失败", "err", err)
		return fmt.Errorf("start failed: %w", err)
	}

	n.state = StateRunning
	n.started = true
	log.Info("节点已启动", "participants", len(n.hub.Participants()))
	return nil
}

// Stop 注销各传输，排空分发队列后停止
//
// ctx 截止时仍在队列中的消息被放弃。
func (n *Node) Stop(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return ErrNodeClosed
	}
	if !n.started {
		return ErrNotStarted
	}
	return n.stopLocked(ctx)
}

func (n *Node) stopLocked(ctx context.Context) error {
	n.state = StateStopping
	log.Info("正在停止节点")

	err := n.app.Stop(ctx)
	n.state = StateStopped
	n.started = false
	if err != nil {
		log.Error("停止节点失败", "err", err)
		return fmt.Errorf("stop fx app: %w", err)
	}
	log.Info("节点已停止", "abandoned", n.hub.Stats().Abandoned)
	return nil
}

// Close 停止节点并释放资源，之后不可再启动
func (n *Node) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}

	var err error
	if n.started {
		ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
		err = n.stopLocked(ctx)
		cancel()
	}
	n.closed = true
	return multierr.Append(err, n.closeLogFile())
}

func (n *Node) closeLogFile() error {
	if n.logFile == nil {
		return nil
	}
	logger.SetOutput(os.Stderr)
	err := n.logFile.Close()
	n.logFile = nil
	return err
}

// ════════════════════════════════════════════════════════════════════════════
//                              访问器
// ════════════════════════════════════════════════════════════════════════════

// State 返回节点状态
func (n *Node) State() NodeState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Hub 返回分发引擎
func (n *Node) Hub() *hub.Hub { return n.hub }

// Network 返回本地网络传输，未启用时为 nil
func (n *Node) Network() *network.Transport { return n.network }

// Bridge 返回跨实例桥接，未启用时为 nil
func (n *Node) Bridge() *bridge.Bridge { return n.bridge }

// Recorder 返回抓包记录器，未启用时为 nil
func (n *Node) Recorder() *recorder.Recorder { return n.recorder }

// Stats 返回分发引擎计数
func (n *Node) Stats() hub.Stats { return n.hub.Stats() }

// Handler 返回挂载了 WebSocket 会话与指标的 HTTP 处理器
func (n *Node) Handler() http.Handler {
	mux := http.NewServeMux()
	if n.sessions != nil {
		mux.Handle(n.sessions.Path(), n.sessions)
	}
	if n.metrics != nil {
		mux.Handle(n.metrics.Path, n.metrics.Handler)
	}
	return mux
}

package wsconn

import (
	"net/http"
	"slices"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dep2p/go-dishub/internal/core/filter"
	"github.com/dep2p/go-dishub/pkg/interfaces"
)

// Handler 把 HTTP 请求升级为 WebSocket 会话参与者
type Handler struct {
	cfg      Config
	hub      interfaces.Hub
	filters  *filter.Factory
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  map[*Conn]struct{}
	closed bool
	wg     sync.WaitGroup
}

var _ http.Handler = (*Handler)(nil)

// NewHandler 创建会话处理器，filters 可为 nil
func NewHandler(cfg Config, hub interfaces.Hub, filters *filter.Factory) *Handler {
	h := &Handler{
		cfg:     cfg,
		hub:     hub,
		filters: filters,
		conns:   make(map[*Conn]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// Path 返回升级路径
func (h *Handler) Path() string { return h.cfg.Path }

func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(h.cfg.AllowedOrigins, r.Header.Get("Origin"))
}

// ServeHTTP 升级连接并在会话存续期间阻塞
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug("WebSocket 升级失败", "remote", r.RemoteAddr, "err", err)
		return
	}

	var flt interfaces.Filter
	if h.filters != nil {
		flt = h.filters.New()
	}
	c := newConn(ws, h.hub, flt, h.cfg)

	if !h.track(c) {
		c.shutdown()
		filter.Release(flt)
		return
	}
	defer h.untrack(c)

	h.hub.Register(c)
	log.Info("客户端已连接", "id", c.ID(), "remote", c.RemoteAddr(), "filtered", flt != nil)

	go c.writeLoop()
	c.readLoop()

	h.hub.Unregister(c)
	c.close()
	filter.Release(flt)
	log.Info("客户端已断开", "id", c.ID(), "remote", c.RemoteAddr())
}

func (h *Handler) track(c *Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.conns[c] = struct{}{}
	h.wg.Add(1)
	return true
}

func (h *Handler) untrack(c *Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
	h.wg.Done()
}

// Active 返回当前会话数
func (h *Handler) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close 拒绝新会话，关闭现有会话并等待其退出
func (h *Handler) Close() {
	h.mu.Lock()
	h.closed = true
	conns := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.shutdown()
	}
	h.wg.Wait()
}

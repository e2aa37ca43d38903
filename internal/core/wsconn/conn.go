package wsconn

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dep2p/go-dishub/internal/core/filter"
	"github.com/dep2p/go-dishub/internal/util/logger"
	"github.com/dep2p/go-dishub/internal/util/outbox"
	"github.com/dep2p/go-dishub/pkg/interfaces"
	"github.com/dep2p/go-dishub/pkg/types"
)

var log = logger.Logger("core.wsconn")

// frame 待写出的一帧
type frame struct {
	kind   int
	data   []byte
	queued time.Time
}

// Conn 一个客户端 WebSocket 会话
type Conn struct {
	id     string
	ws     *websocket.Conn
	hub    interfaces.Hub
	filter interfaces.Filter
	stats  *types.ConnectionStatistics
	out    *outbox.Outbox[frame]
	cfg    Config

	filtered atomic.Int64

	done      chan struct{}
	closeOnce sync.Once
}

var _ interfaces.Participant = (*Conn)(nil)

func newConn(ws *websocket.Conn, hub interfaces.Hub, flt interfaces.Filter, cfg Config) *Conn {
	return &Conn{
		id:     "ws-" + uuid.NewString(),
		ws:     ws,
		hub:    hub,
		filter: flt,
		stats:  types.NewConnectionStatistics(),
		out:    outbox.New[frame](cfg.SendBuffer),
		cfg:    cfg,
		done:   make(chan struct{}),
	}
}

// ID 实现 interfaces.Participant
func (c *Conn) ID() string { return c.id }

// Kind 实现 interfaces.Participant
func (c *Conn) Kind() types.ParticipantKind { return types.KindClient }

// Statistics 实现 interfaces.Participant
func (c *Conn) Statistics() *types.ConnectionStatistics { return c.stats }

// RemoteAddr 返回对端地址
func (c *Conn) RemoteAddr() string { return c.ws.RemoteAddr().String() }

// Filtered 返回被过滤器丢弃的条数
func (c *Conn) Filtered() int64 { return c.filtered.Load() }

// SendBinary 投递到出站缓冲，过滤在写协程中执行
//
// 在分发协程上只做入队，慢过滤器只拖慢本会话。
func (c *Conn) SendBinary(msg []byte) {
	c.enqueue(frame{kind: websocket.BinaryMessage, data: msg})
}

// SendText 投递文本消息，不经过滤器
func (c *Conn) SendText(text string) {
	c.enqueue(frame{kind: websocket.TextMessage, data: []byte(text)})
}

// outbound 对二进制帧应用过滤器，返回 false 表示丢弃
func (c *Conn) outbound(f frame) (frame, bool) {
	if f.kind != websocket.BinaryMessage {
		return f, true
	}
	data, ok := filter.Apply(c.filter, f.data)
	if !ok {
		c.filtered.Add(1)
		return f, false
	}
	f.data = data
	return f, true
}

func (c *Conn) enqueue(f frame) {
	select {
	case <-c.done:
		return
	default:
	}
	f.queued = time.Now()
	if !c.out.Offer(f) {
		c.stats.MessageDropped()
	}
}

// writeLoop 取出缓冲帧写出，定期发送 ping
func (c *Conn) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case queued := <-c.out.C():
			f, ok := c.outbound(queued)
			if !ok {
				continue
			}
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if err := c.ws.WriteMessage(f.kind, f.data); err != nil {
				log.Debug("写入客户端失败，关闭会话", "id", c.id, "err", err)
				c.close()
				return
			}
			c.stats.MessageSent(len(f.data))
			c.stats.ObserveLatency(time.Since(f.queued))
		case <-ticker.C:
			deadline := time.Now().Add(c.cfg.WriteTimeout)
			if err := c.ws.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.close()
				return
			}
		}
	}
}

// readLoop 读取入站消息直到连接关闭
func (c *Conn) readLoop() {
	c.ws.SetReadLimit(c.cfg.ReadLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("客户端连接异常关闭", "id", c.id, "err", err)
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))

		switch kind {
		case websocket.TextMessage:
			c.stats.MessageReceived(len(data))
			c.hub.RepeatText(string(data), c)
		case websocket.BinaryMessage:
			c.stats.MessageReceived(len(data))
			c.hub.EnqueueBinary(data, c)
		}
	}
}

// close 停止写协程并关闭底层连接，可重复调用
func (c *Conn) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

// shutdown 发送关闭帧后关闭连接
func (c *Conn) shutdown() {
	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown")
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, deadline)
	c.close()
}

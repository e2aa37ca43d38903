package network

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dep2p/go-dishub/internal/util/logger"
	"github.com/dep2p/go-dishub/pkg/interfaces"
	"github.com/dep2p/go-dishub/pkg/lib/pdu"
	"github.com/dep2p/go-dishub/pkg/types"
)

var log = logger.Logger("core.network")

// Transport 本地网络参与者
type Transport struct {
	cfg   Config
	hub   interfaces.Hub
	tag   uint16
	id    string
	stats *types.ConnectionStatistics

	mu      sync.RWMutex
	conn    *net.UDPConn
	targets []*net.UDPAddr

	wg     sync.WaitGroup
	cancel context.CancelFunc

	counters Counters

	readErrs *logger.Limited
	sendErrs *logger.Limited
}

// Counters 接收路径计数
type Counters struct {
	Received    atomic.Int64
	SelfDropped atomic.Int64
	Undecodable atomic.Int64
	EntityState atomic.Int64
}

var _ interfaces.Participant = (*Transport)(nil)

// New 创建本地网络传输，未配置标签时随机生成 1..65535 的标签
func New(cfg Config, hub interfaces.Hub) *Transport {
	if cfg.MaxDatagramSize <= 0 {
		cfg.MaxDatagramSize = DefaultConfig().MaxDatagramSize
	}
	tag := cfg.Tag
	if tag == 0 {
		tag = uint16(rand.IntN(0xFFFF)) + 1
	}
	return &Transport{
		cfg:      cfg,
		hub:      hub,
		tag:      tag,
		id:       "network-" + uuid.NewString(),
		stats:    types.NewConnectionStatistics(),
		readErrs: logger.NewLimited(log, time.Second, 3),
		sendErrs: logger.NewLimited(log, time.Second, 3),
	}
}

// ID 实现 interfaces.Participant
func (t *Transport) ID() string { return t.id }

// Kind 实现 interfaces.Participant
func (t *Transport) Kind() types.ParticipantKind { return types.KindNetwork }

// Statistics 实现 interfaces.Participant
func (t *Transport) Statistics() *types.ConnectionStatistics { return t.stats }

// Tag 返回本传输的防环标签
func (t *Transport) Tag() uint16 { return t.tag }

// Counters 返回接收路径计数
func (t *Transport) Counters() *Counters { return &t.counters }

// LocalAddr 返回绑定地址，未打开时为 nil
func (t *Transport) LocalAddr() *net.UDPAddr {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.conn == nil {
		return nil
	}
	return t.conn.LocalAddr().(*net.UDPAddr)
}

// Targets 返回发送目的地址
func (t *Transport) Targets() []*net.UDPAddr {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]*net.UDPAddr(nil), t.targets...)
}

// Open 绑定套接字并确定发送目的地址
func (t *Transport) Open(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		return ErrAlreadyOpen
	}

	conn, err := listen(ctx, t.cfg)
	if err != nil {
		return err
	}

	targets, err := t.resolveTargets()
	if err != nil {
		_ = conn.Close()
		return err
	}

	t.conn = conn
	t.targets = targets
	log.Info("本地网络传输已打开",
		"mode", t.cfg.Mode,
		"addr", conn.LocalAddr(),
		"tag", t.tag,
		"targets", len(targets))
	return nil
}

func (t *Transport) resolveTargets() ([]*net.UDPAddr, error) {
	if len(t.cfg.Destinations) > 0 {
		return append([]*net.UDPAddr(nil), t.cfg.Destinations...), nil
	}

	switch t.cfg.Mode {
	case types.ModeMulticast:
		return []*net.UDPAddr{{IP: t.cfg.MulticastGroup, Port: t.cfg.Port}}, nil
	case types.ModeBroadcast:
		ips, err := BroadcastAddrs()
		if err != nil {
			return nil, fmt.Errorf("discover broadcast addresses: %w", err)
		}
		if len(ips) == 0 {
			log.Warn("未发现广播地址，使用 255.255.255.255")
			ips = []net.IP{net.IPv4bcast}
		}
		out := make([]*net.UDPAddr, 0, len(ips))
		for _, ip := range ips {
			out = append(out, &net.UDPAddr{IP: ip, Port: t.cfg.Port})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownNetworkMode, t.cfg.Mode)
	}
}

// Start 打开套接字、注册到分发引擎并启动接收循环
func (t *Transport) Start(ctx context.Context) error {
	if err := t.Open(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.hub.Register(t)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.run(runCtx)
	}()
	return nil
}

// Close 注销并关闭套接字，等待接收循环退出
func (t *Transport) Close() error {
	t.hub.Unregister(t)
	if t.cancel != nil {
		t.cancel()
	}

	t.mu.Lock()
	conn := t.conn
	t.conn = nil
	t.mu.Unlock()

	var err error
	if conn != nil {
		err = conn.Close()
	}
	t.wg.Wait()
	return err
}

// run 接收循环，只在套接字关闭时退出
func (t *Transport) run(ctx context.Context) {
	t.mu.RLock()
	conn := t.conn
	t.mu.RUnlock()
	if conn == nil {
		return
	}

	buf := make([]byte, t.cfg.MaxDatagramSize)
	for {
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				log.Debug("接收循环退出")
				return
			}
			t.readErrs.Warn("读取数据报失败", "err", err)
			continue
		}
		if t.HandleDatagram(buf[:n]) {
			log.Debug("数据报已入队", "from", from, "size", n)
		}
	}
}

// HandleDatagram 处理一个收到的数据报，入队时返回 true
//
// data 可以是复用缓冲区的切片，入队的是它的拷贝。标签字段原样保留。
func (t *Transport) HandleDatagram(data []byte) bool {
	h, err := pdu.Decode(data)
	if err != nil {
		t.counters.Undecodable.Add(1)
		return false
	}
	if h.Padding == t.tag {
		t.counters.SelfDropped.Add(1)
		return false
	}
	if h.IsEntityState() {
		t.counters.EntityState.Add(1)
	}

	msg := bytes.Clone(data)
	t.counters.Received.Add(1)
	t.stats.MessageReceived(len(msg))
	t.hub.EnqueueBinary(msg, t)
	return true
}

// SendBinary 写入标签后发往组播组或每个广播地址
func (t *Transport) SendBinary(msg []byte) {
	tagged, err := pdu.WithTag(msg, t.tag)
	if err != nil {
		log.Debug("无法解码的消息不发往本地网络", "size", len(msg), "err", err)
		return
	}

	t.mu.RLock()
	conn, targets := t.conn, t.targets
	t.mu.RUnlock()
	if conn == nil {
		return
	}

	sent := false
	for _, addr := range targets {
		if _, err := conn.WriteToUDP(tagged, addr); err != nil {
			t.sendErrs.Warn("发送数据报失败", "to", addr, "err", err)
			continue
		}
		sent = true
	}
	if sent {
		t.stats.MessageSent(len(tagged))
	}
}

// SendText 本地网络没有文本消息
func (t *Transport) SendText(string) {}

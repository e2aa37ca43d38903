package network

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"syscall"

	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"

	"github.com/dep2p/go-dishub/pkg/types"
)

// reuseControl 设置 SO_REUSEADDR 与 SO_BROADCAST
func reuseControl(_, _ string, c syscall.RawConn) error {
	var opErr error
	err := c.Control(func(fd uintptr) {
		if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
			opErr = fmt.Errorf("set SO_REUSEADDR: %w", err)
			return
		}
		if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1); err != nil {
			opErr = fmt.Errorf("set SO_BROADCAST: %w", err)
		}
	})
	if err != nil {
		return err
	}
	return opErr
}

// listen 绑定 UDP 套接字，组播模式下加入组播组
func listen(ctx context.Context, cfg Config) (*net.UDPConn, error) {
	lc := net.ListenConfig{Control: reuseControl}
	addr := net.JoinHostPort(cfg.BindAddr, strconv.Itoa(cfg.Port))

	pc, err := lc.ListenPacket(ctx, "udp4", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	conn := pc.(*net.UDPConn)

	if cfg.Mode == types.ModeMulticast {
		if err := joinGroup(conn, cfg); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return conn, nil
}

func joinGroup(conn *net.UDPConn, cfg Config) error {
	var ifi *net.Interface
	if cfg.Interface != "" {
		var err error
		ifi, err = net.InterfaceByName(cfg.Interface)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrNoInterface, cfg.Interface)
		}
	}

	p := ipv4.NewPacketConn(conn)
	if err := p.JoinGroup(ifi, &net.UDPAddr{IP: cfg.MulticastGroup}); err != nil {
		return fmt.Errorf("join multicast group %s: %w", cfg.MulticastGroup, err)
	}
	if ifi != nil {
		if err := p.SetMulticastInterface(ifi); err != nil {
			return fmt.Errorf("set multicast interface: %w", err)
		}
	}
	if err := p.SetMulticastLoopback(cfg.MulticastLoopback); err != nil {
		return fmt.Errorf("set multicast loopback: %w", err)
	}
	return nil
}

package network

import (
	"fmt"
	"net"

	"github.com/dep2p/go-dishub/config"
	"github.com/dep2p/go-dishub/pkg/types"
)

// Config 本地网络传输配置
type Config struct {
	Enable            bool
	Mode              types.NetworkMode
	Port              int
	MulticastGroup    net.IP
	Interface         string
	MulticastLoopback bool
	MaxDatagramSize   int

	// Tag 0 表示随机生成
	Tag uint16

	BindAddr     string
	Destinations []*net.UDPAddr
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Enable:            true,
		Mode:              types.ModeBroadcast,
		Port:              3000,
		MulticastGroup:    net.IPv4(239, 1, 2, 3),
		MulticastLoopback: true,
		MaxDatagramSize:   8192,
	}
}

// ConfigFromUnified 从统一配置创建
func ConfigFromUnified(cfg *config.Config) (Config, error) {
	if cfg == nil {
		return DefaultConfig(), nil
	}
	n := cfg.Network
	out := Config{
		Enable:            n.Enable,
		Mode:              n.Mode,
		Port:              n.Port,
		MulticastGroup:    net.ParseIP(n.MulticastGroup),
		Interface:         n.Interface,
		MulticastLoopback: n.MulticastLoopback,
		MaxDatagramSize:   n.MaxDatagramSize,
		Tag:               n.Tag,
		BindAddr:          n.BindAddr,
	}
	for _, d := range n.Destinations {
		addr, err := net.ResolveUDPAddr("udp4", d)
		if err != nil {
			return Config{}, fmt.Errorf("network: resolve destination %q: %w", d, err)
		}
		out.Destinations = append(out.Destinations, addr)
	}
	return out, nil
}

// WithTag 固定标签
func (c Config) WithTag(tag uint16) Config {
	c.Tag = tag
	return c
}

// WithBind 绑定到指定地址与端口
func (c Config) WithBind(addr string, port int) Config {
	c.BindAddr = addr
	c.Port = port
	return c
}

// WithDestinations 显式目的地址
func (c Config) WithDestinations(addrs ...*net.UDPAddr) Config {
	c.Destinations = addrs
	return c
}

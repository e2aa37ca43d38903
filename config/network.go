package config

import (
	"fmt"
	"net"

	"github.com/dep2p/go-dishub/pkg/types"
)

// NetworkConfig 本地网络传输配置
type NetworkConfig struct {
	// Enable 是否启用本地网络 UDP 传输
	Enable bool `json:"enable"`

	// Mode 发送模式：broadcast 或 multicast
	Mode types.NetworkMode `json:"mode"`

	// Port UDP 端口，0 表示由系统分配
	Port int `json:"port"`

	// MulticastGroup 组播组地址（仅组播模式）
	MulticastGroup string `json:"multicast_group"`

	// Interface 组播加入使用的网卡名，空表示系统默认
	Interface string `json:"interface,omitempty"`

	// MulticastLoopback 是否接收本机发出的组播
	MulticastLoopback bool `json:"multicast_loopback"`

	// MaxDatagramSize 接收缓冲区大小，需容纳拼包
	MaxDatagramSize int `json:"max_datagram_size"`

	// Tag 固定防环标签，0 表示启动时随机生成
	Tag uint16 `json:"tag,omitempty"`

	// BindAddr 绑定的本地 IP，空表示所有地址（接收广播需要）
	BindAddr string `json:"bind_addr,omitempty"`

	// Destinations 显式广播目的地址（host:port），非空时替代网卡发现
	Destinations []string `json:"destinations,omitempty"`
}

// DefaultNetworkConfig 返回默认本地网络配置
func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		Enable:            true,
		Mode:              types.ModeBroadcast,
		Port:              3000,
		MulticastGroup:    "239.1.2.3",
		MulticastLoopback: true,
		MaxDatagramSize:   8192,
	}
}

// Validate 校验本地网络配置
func (c NetworkConfig) Validate() error {
	if !c.Enable {
		return nil
	}
	if c.Mode != types.ModeBroadcast && c.Mode != types.ModeMulticast {
		return fmt.Errorf("network: %w: %s", types.ErrUnknownNetworkMode, c.Mode)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("network: %w: port %d", ErrInvalidPort, c.Port)
	}
	if c.MaxDatagramSize < 12 || c.MaxDatagramSize > 65535 {
		return fmt.Errorf("network: max_datagram_size %d out of range", c.MaxDatagramSize)
	}
	for _, d := range c.Destinations {
		if _, err := net.ResolveUDPAddr("udp4", d); err != nil {
			return fmt.Errorf("network: invalid destination %q: %w", d, err)
		}
	}
	if c.Mode == types.ModeMulticast {
		ip := net.ParseIP(c.MulticastGroup)
		if ip == nil || ip.To4() == nil || !ip.IsMulticast() {
			return fmt.Errorf("network: %w: %q", ErrInvalidMulticastGroup, c.MulticastGroup)
		}
	}
	return nil
}

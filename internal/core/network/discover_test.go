package network

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ipnet(cidr string) *net.IPNet {
	ip, n, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(err)
	}
	n.IP = ip
	return n
}

func TestBroadcastOf(t *testing.T) {
	assert.Equal(t, "192.168.1.255", broadcastOf(ipnet("192.168.1.20/24")).String())
	assert.Equal(t, "10.255.255.255", broadcastOf(ipnet("10.1.2.3/8")).String())

	// 链路本地、回环、IPv6 不适用
	assert.Nil(t, broadcastOf(ipnet("169.254.3.4/16")))
	assert.Nil(t, broadcastOf(ipnet("127.0.0.1/8")))
	assert.Nil(t, broadcastOf(ipnet("fe80::1/64")))
	assert.Nil(t, broadcastOf(ipnet("2001:db8::1/64")))
}

func TestBroadcastOf_IPv6Mask(t *testing.T) {
	n := &net.IPNet{IP: net.ParseIP("172.16.5.9"), Mask: net.CIDRMask(112, 128)}
	assert.Equal(t, "172.16.255.255", broadcastOf(n).String())
}

func TestBroadcastOf_ZeroBroadcast(t *testing.T) {
	// 0.0.0.0/32 的广播值为 0.0.0.0
	n := &net.IPNet{IP: net.IPv4zero, Mask: net.CIDRMask(32, 32)}
	assert.Nil(t, broadcastOf(n))
}

func TestBroadcastAddrs_Filtering(t *testing.T) {
	up := net.FlagUp | net.FlagBroadcast
	entries := []ifaceEntry{
		{Name: "eth0", Flags: up, Addrs: []net.Addr{ipnet("192.168.1.20/24"), ipnet("fe80::1/64")}},
		{Name: "eth1", Flags: up, Addrs: []net.Addr{ipnet("192.168.1.21/24")}}, // 重复广播地址
		{Name: "eth2", Flags: net.FlagBroadcast, Addrs: []net.Addr{ipnet("10.0.0.1/8")}}, // down
		{Name: "lo", Flags: net.FlagUp | net.FlagLoopback, Addrs: []net.Addr{ipnet("127.0.0.1/8")}},
		{Name: "wlan0", Flags: up, Addrs: []net.Addr{ipnet("169.254.10.1/16"), ipnet("172.20.0.5/16")}},
		{Name: "tun0", Flags: up, Addrs: []net.Addr{&net.IPAddr{IP: net.ParseIP("10.8.0.1")}}},
	}

	got := broadcastAddrs(entries)

	var names []string
	for _, ip := range got {
		names = append(names, ip.String())
	}
	assert.Equal(t, []string{"192.168.1.255", "172.20.255.255"}, names)
}

func TestBroadcastAddrs_Host(t *testing.T) {
	ips, err := BroadcastAddrs()
	assert.NoError(t, err)
	for _, ip := range ips {
		assert.NotNil(t, ip.To4())
		assert.False(t, ip.Equal(net.IPv4zero))
	}
}

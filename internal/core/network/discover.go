package network

import (
	"net"
)

// ifaceEntry 一块网卡的标志与地址
type ifaceEntry struct {
	Name  string
	Flags net.Flags
	Addrs []net.Addr
}

// BroadcastAddrs 枚举本机所有 up 网卡的 IPv4 广播地址
func BroadcastAddrs() ([]net.IP, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	entries := make([]ifaceEntry, 0, len(ifaces))
	for _, ifi := range ifaces {
		addrs, err := ifi.Addrs()
		if err != nil {
			log.Debug("读取网卡地址失败", "iface", ifi.Name, "err", err)
			continue
		}
		entries = append(entries, ifaceEntry{Name: ifi.Name, Flags: ifi.Flags, Addrs: addrs})
	}
	return broadcastAddrs(entries), nil
}

// broadcastAddrs 跳过 down、无广播能力、链路本地以及广播值为 0.0.0.0 的地址，结果去重
func broadcastAddrs(entries []ifaceEntry) []net.IP {
	var out []net.IP
	seen := make(map[string]struct{})

	for _, e := range entries {
		if e.Flags&net.FlagUp == 0 || e.Flags&net.FlagBroadcast == 0 {
			continue
		}
		for _, a := range e.Addrs {
			ipnet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			bcast := broadcastOf(ipnet)
			if bcast == nil {
				continue
			}
			key := bcast.String()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, bcast)
		}
	}
	return out
}

// broadcastOf 计算 IPv4 子网的广播地址，不适用时返回 nil
func broadcastOf(ipnet *net.IPNet) net.IP {
	ip := ipnet.IP.To4()
	if ip == nil || ip.IsLinkLocalUnicast() || ip.IsLoopback() {
		return nil
	}
	mask := ipnet.Mask
	if len(mask) == net.IPv6len {
		mask = mask[12:]
	}
	if len(mask) != net.IPv4len {
		return nil
	}

	bcast := make(net.IP, net.IPv4len)
	for i := range bcast {
		bcast[i] = ip[i] | ^mask[i]
	}
	if bcast.Equal(net.IPv4zero) {
		return nil
	}
	return bcast
}

package recorder

import (
	"fmt"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// maxUDPPayload IPv4 下单个 UDP 报文的最大负载
const maxUDPPayload = 65507

var (
	frameSrcMAC = net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	frameDstMAC = net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	frameSrcIP  = net.IPv4(127, 0, 0, 1).To4()
	frameDstIP  = net.IPv4bcast.To4()
)

// buildFrame 把一条 PDU 封装为以太网广播帧
func buildFrame(buf gopacket.SerializeBuffer, port int, msg []byte) ([]byte, error) {
	if len(msg) > maxUDPPayload {
		return nil, fmt.Errorf("recorder: payload %d exceeds udp limit", len(msg))
	}

	eth := &layers.Ethernet{
		SrcMAC:       frameSrcMAC,
		DstMAC:       frameDstMAC,
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    frameSrcIP,
		DstIP:    frameDstIP,
	}
	udp := &layers.UDP{
		SrcPort: layers.UDPPort(port),
		DstPort: layers.UDPPort(port),
	}
	if err := udp.SetNetworkLayerForChecksum(ip); err != nil {
		return nil, err
	}

	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := buf.Clear(); err != nil {
		return nil, err
	}
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, udp, gopacket.Payload(msg)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package recorder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/dep2p/go-dishub/pkg/interfaces"
	"github.com/dep2p/go-dishub/pkg/lib/pdu"
)

// pcapngMagic pcapng 节头块类型
var pcapngMagic = []byte{0x0a, 0x0d, 0x0d, 0x0a}

type packetReader interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

func openReader(r io.Reader) (packetReader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(4)
	if err != nil {
		return nil, fmt.Errorf("recorder: read magic: %w", err)
	}
	if string(magic) == string(pcapngMagic) {
		return pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
	}
	return pcapgo.NewReader(br)
}

func firstLayer(link layers.LinkType) (gopacket.LayerType, error) {
	switch link {
	case layers.LinkTypeEthernet:
		return layers.LayerTypeEthernet, nil
	case layers.LinkTypeRaw, layers.LinkTypeIPv4:
		return layers.LayerTypeIPv4, nil
	case layers.LinkTypeLinuxSLL:
		return layers.LayerTypeLinuxSLL, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedLink, link)
	}
}

// ReplayStats 回放结果
type ReplayStats struct {
	Packets  int
	Enqueued int
	Skipped  int
}

// Replay 读取抓包文件，把其中的 DIS PDU 以无来源方式入队
//
// 非 UDP 或无法解码为 DIS 头部的包被跳过。realtime 为 true 时按抓包时间间隔发送。
func Replay(ctx context.Context, path string, hub interfaces.Hub, realtime bool) (ReplayStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return ReplayStats{}, err
	}
	defer f.Close()

	src, err := openReader(f)
	if err != nil {
		return ReplayStats{}, err
	}
	first, err := firstLayer(src.LinkType())
	if err != nil {
		return ReplayStats{}, err
	}

	var (
		eth     layers.Ethernet
		sll     layers.LinuxSLL
		ip4     layers.IPv4
		udp     layers.UDP
		payload gopacket.Payload
		decoded []gopacket.LayerType
		stats   ReplayStats
		prev    time.Time
	)
	parser := gopacket.NewDecodingLayerParser(first, &eth, &sll, &ip4, &udp, &payload)
	parser.IgnoreUnsupported = true

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		data, ci, err := src.ReadPacketData()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("recorder: read packet: %w", err)
		}
		stats.Packets++

		msg, ok := udpPayload(parser, data, &decoded, &udp)
		if !ok {
			stats.Skipped++
			continue
		}
		if _, err := pdu.Decode(msg); err != nil {
			stats.Skipped++
			continue
		}

		if realtime && !prev.IsZero() {
			if err := sleep(ctx, ci.Timestamp.Sub(prev)); err != nil {
				return stats, err
			}
		}
		prev = ci.Timestamp

		hub.EnqueueBinary(append([]byte(nil), msg...), nil)
		stats.Enqueued++
	}

	log.Info("抓包回放完成", "file", path, "packets", stats.Packets, "enqueued", stats.Enqueued, "skipped", stats.Skipped)
	return stats, nil
}

func udpPayload(parser *gopacket.DecodingLayerParser, data []byte, decoded *[]gopacket.LayerType, udp *layers.UDP) ([]byte, bool) {
	_ = parser.DecodeLayers(data, decoded)
	for _, lt := range *decoded {
		if lt == layers.LayerTypeUDP {
			return udp.Payload, true
		}
	}
	return nil, false
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package metrics

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dep2p/go-dishub/pkg/interfaces"
	"github.com/dep2p/go-dishub/pkg/lib/pdu"
	"github.com/dep2p/go-dishub/pkg/types"
)

// Tap 观测扇出流量的参与者
//
// 只计数，不转发。
type Tap struct {
	id    string
	stats *types.ConnectionStatistics

	byType      [pdu.MaxPDUType + 1]atomic.Int64
	undecodable atomic.Int64
	texts       atomic.Int64

	bytesRate *RateMeter
	msgsRate  *RateMeter
}

var _ interfaces.Participant = (*Tap)(nil)

// NewTap 创建观测参与者，window 为速率窗口
func NewTap(window time.Duration) *Tap {
	return &Tap{
		id:        "tap-" + uuid.NewString(),
		stats:     types.NewConnectionStatistics(),
		bytesRate: NewRateMeter(window),
		msgsRate:  NewRateMeter(window),
	}
}

// ID 实现 interfaces.Participant
func (t *Tap) ID() string { return t.id }

// Kind 实现 interfaces.Participant
func (t *Tap) Kind() types.ParticipantKind { return types.KindObserver }

// Statistics 实现 interfaces.Participant
func (t *Tap) Statistics() *types.ConnectionStatistics { return t.stats }

// SendBinary 按 PDU 类型计数
func (t *Tap) SendBinary(msg []byte) {
	t.stats.MessageSent(len(msg))
	t.bytesRate.Add(int64(len(msg)))
	t.msgsRate.Add(1)

	h, err := pdu.Decode(msg)
	if err != nil {
		t.undecodable.Add(1)
		return
	}
	t.byType[h.PDUType].Add(1)
}

// SendText 计数文本消息
func (t *Tap) SendText(string) {
	t.texts.Add(1)
}

// PDUCount 返回某类型 PDU 的累计条数
func (t *Tap) PDUCount(pduType uint8) int64 {
	if int(pduType) >= len(t.byType) {
		return 0
	}
	return t.byType[pduType].Load()
}

// Texts 返回文本消息条数
func (t *Tap) Texts() int64 { return t.texts.Load() }

// Undecodable 返回无法解码的条数
func (t *Tap) Undecodable() int64 { return t.undecodable.Load() }

// BytesRate 返回最近窗口的扇出字节速率
func (t *Tap) BytesRate() float64 { return t.bytesRate.Rate() }

// MessagesRate 返回最近窗口的扇出条数速率
func (t *Tap) MessagesRate() float64 { return t.msgsRate.Rate() }

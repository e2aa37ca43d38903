package types

import (
	"fmt"
	"strings"
)

// ============================================================================
//                              ParticipantKind - 参与者类型
// ============================================================================

// ParticipantKind 参与者类型
type ParticipantKind int

const (
	// KindUnknown 未知
	KindUnknown ParticipantKind = iota
	// KindClient 客户端会话（WebSocket）
	KindClient
	// KindNetwork 本地网络 UDP 传输
	KindNetwork
	// KindBridge 跨实例桥接
	KindBridge
	// KindRecorder 抓包记录器
	KindRecorder
	// KindObserver 流量观测（指标采集）
	KindObserver
)

// String 返回参与者类型的字符串表示
func (k ParticipantKind) String() string {
	switch k {
	case KindClient:
		return "client"
	case KindNetwork:
		return "network"
	case KindBridge:
		return "bridge"
	case KindRecorder:
		return "recorder"
	case KindObserver:
		return "observer"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              NetworkMode - 本地网络模式
// ============================================================================

// NetworkMode 本地网络发送模式
type NetworkMode int

const (
	// ModeBroadcast 向每个广播地址发送
	ModeBroadcast NetworkMode = iota
	// ModeMulticast 向组播组发送
	ModeMulticast
)

// String 返回模式名
func (m NetworkMode) String() string {
	switch m {
	case ModeBroadcast:
		return "broadcast"
	case ModeMulticast:
		return "multicast"
	default:
		return fmt.Sprintf("NetworkMode(%d)", int(m))
	}
}

// ParseNetworkMode 解析模式名（不区分大小写）
//
// 只接受 broadcast 与 multicast，其余一律返回 ErrUnknownNetworkMode。
func ParseNetworkMode(s string) (NetworkMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "broadcast":
		return ModeBroadcast, nil
	case "multicast":
		return ModeMulticast, nil
	default:
		return ModeBroadcast, fmt.Errorf("%w: %q", ErrUnknownNetworkMode, s)
	}
}

// MarshalText 实现 encoding.TextMarshaler
func (m NetworkMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (m *NetworkMode) UnmarshalText(text []byte) error {
	v, err := ParseNetworkMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ============================================================================
//                              Backpressure - 有界队列满时策略
// ============================================================================

// Backpressure 有界分发队列已满时的处理策略
type Backpressure int

const (
	// BackpressureBlock 阻塞生产者直到有空位
	BackpressureBlock Backpressure = iota
	// BackpressureDropOldest 丢弃最旧的条目
	BackpressureDropOldest
	// BackpressureReject 拒绝新条目
	BackpressureReject
)

// String 返回策略名
func (b Backpressure) String() string {
	switch b {
	case BackpressureBlock:
		return "block"
	case BackpressureDropOldest:
		return "drop-oldest"
	case BackpressureReject:
		return "reject"
	default:
		return fmt.Sprintf("Backpressure(%d)", int(b))
	}
}

// ParseBackpressure 解析策略名
func ParseBackpressure(s string) (Backpressure, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "block", "":
		return BackpressureBlock, nil
	case "drop-oldest", "dropoldest", "dropold":
		return BackpressureDropOldest, nil
	case "reject":
		return BackpressureReject, nil
	default:
		return BackpressureBlock, fmt.Errorf("%w: %q", ErrUnknownBackpressure, s)
	}
}

// MarshalText 实现 encoding.TextMarshaler
func (b Backpressure) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (b *Backpressure) UnmarshalText(text []byte) error {
	v, err := ParseBackpressure(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ============================================================================
//                              FilterVerdict - 过滤结论
// ============================================================================

// FilterVerdict 过滤器对一条消息的结论
type FilterVerdict int

const (
	// VerdictNoOpinion 无意见（按放行处理）
	VerdictNoOpinion FilterVerdict = iota
	// VerdictPass 放行
	VerdictPass
	// VerdictDrop 丢弃
	VerdictDrop
	// VerdictRewrite 以改写后的消息放行
	VerdictRewrite
)

// String 返回结论名
func (v FilterVerdict) String() string {
	switch v {
	case VerdictPass:
		return "pass"
	case VerdictDrop:
		return "drop"
	case VerdictRewrite:
		return "rewrite"
	default:
		return "no-opinion"
	}
}

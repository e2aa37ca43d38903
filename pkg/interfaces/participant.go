package interfaces

import "github.com/dep2p/go-dishub/pkg/types"

// Participant 能收发消息的端点
//
// 身份即实例身份：两个 Participant 仅当是同一实例时相等。
//
// SendText / SendBinary 对调用方而言不得阻塞到影响其他参与者，
// 写往慢速外部端点的实现自行负责缓冲或丢弃。发送失败由实现者
// 记录日志，不向分发器返回，也不会导致其被移出注册表。
type Participant interface {
	// ID 返回用于日志与指标的标识
	ID() string

	// Kind 返回参与者类型
	Kind() types.ParticipantKind

	// SendText 发送文本消息
	SendText(text string)

	// SendBinary 发送二进制消息（PDU）
	SendBinary(msg []byte)

	// Statistics 返回该参与者的统计
	Statistics() *types.ConnectionStatistics
}

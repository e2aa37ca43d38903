package types

import "errors"

var (
	// ErrUnknownNetworkMode 未知的本地网络模式
	ErrUnknownNetworkMode = errors.New("types: unknown network mode")

	// ErrUnknownBackpressure 未知的背压策略
	ErrUnknownBackpressure = errors.New("types: unknown backpressure policy")

	// ErrPubSubClosed 发布订阅连接已永久关闭，不可重试
	ErrPubSubClosed = errors.New("types: pubsub connection closed")
)

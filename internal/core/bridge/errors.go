package bridge

import "errors"

var (
	// ErrShortPayload 负载不足 4 字节标签
	ErrShortPayload = errors.New("bridge: payload shorter than tag")

	// ErrNotStarted 桥接尚未启动
	ErrNotStarted = errors.New("bridge: not started")

	// ErrAlreadyStarted 重复启动
	ErrAlreadyStarted = errors.New("bridge: already started")
)

package distributor

import "errors"

var (
	// ErrQueueClosed 队列已关闭
	ErrQueueClosed = errors.New("distributor: queue closed")

	// ErrQueueFull 有界队列已满（reject 策略）
	ErrQueueFull = errors.New("distributor: queue full")

	// ErrAlreadyStarted 重复启动
	ErrAlreadyStarted = errors.New("distributor: already started")

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("distributor: invalid config")
)

package dishub

import "errors"

// 公共错误定义
var (
	// ErrNotStarted 节点未启动
	ErrNotStarted = errors.New("dishub: node not started")

	// ErrAlreadyStarted 节点已启动
	ErrAlreadyStarted = errors.New("dishub: node already started")

	// ErrNodeClosed 节点已关闭
	ErrNodeClosed = errors.New("dishub: node closed")

	// ErrEmptyPath 路径为空
	ErrEmptyPath = errors.New("dishub: empty path")
)

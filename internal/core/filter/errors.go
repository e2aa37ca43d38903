package filter

import "errors"

var (
	// ErrNoEntryPoint 脚本未定义入口函数
	ErrNoEntryPoint = errors.New("filter: entry point not defined")

	// ErrEmptyScript 脚本为空
	ErrEmptyScript = errors.New("filter: empty script")

	// ErrClosed 过滤器已关闭
	ErrClosed = errors.New("filter: closed")
)

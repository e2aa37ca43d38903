package recorder

import "errors"

var (
	// ErrAlreadyOpen 记录文件已打开
	ErrAlreadyOpen = errors.New("recorder: already open")

	// ErrNotOpen 记录文件未打开
	ErrNotOpen = errors.New("recorder: not open")

	// ErrUnsupportedLink 抓包文件的链路类型不支持
	ErrUnsupportedLink = errors.New("recorder: unsupported link type")
)

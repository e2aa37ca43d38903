package network

import "errors"

var (
	// ErrNotOpen 套接字尚未打开
	ErrNotOpen = errors.New("network: socket not open")

	// ErrAlreadyOpen 套接字已打开
	ErrAlreadyOpen = errors.New("network: socket already open")

	// ErrNoInterface 找不到指定网卡
	ErrNoInterface = errors.New("network: interface not found")
)

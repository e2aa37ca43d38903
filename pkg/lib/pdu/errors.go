package pdu

import "errors"

var (
	// ErrTooShort 数据不足一个头部
	ErrTooShort = errors.New("pdu: buffer shorter than header")

	// ErrBadVersion 协议版本超出范围
	ErrBadVersion = errors.New("pdu: unsupported protocol version")

	// ErrBadType PDU 类型超出范围
	ErrBadType = errors.New("pdu: unknown pdu type")

	// ErrBadLength 长度字段与缓冲区不符
	ErrBadLength = errors.New("pdu: length field out of range")
)

package bridge

import (
	"encoding/binary"
	"fmt"
)

// TagLen 标签前缀长度
const TagLen = 4

// Encode 返回 tag(4 字节大端) + msg
func Encode(tag uint32, msg []byte) []byte {
	out := make([]byte, TagLen+len(msg))
	binary.BigEndian.PutUint32(out, tag)
	copy(out[TagLen:], msg)
	return out
}

// Decode 拆出标签与消息，消息与 payload 共享底层数组
func Decode(payload []byte) (uint32, []byte, error) {
	if len(payload) < TagLen {
		return 0, nil, fmt.Errorf("%w: %d bytes", ErrShortPayload, len(payload))
	}
	return binary.BigEndian.Uint32(payload), payload[TagLen:], nil
}

package pdu

import (
	"github.com/google/gopacket"
)

// Decode 解码 data 开头的 PDU 头部
func Decode(data []byte) (*Header, error) {
	h := &Header{}
	if err := h.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
		return nil, err
	}
	return h, nil
}

// Tag 读取标签字段
func Tag(data []byte) (uint16, error) {
	h, err := Decode(data)
	if err != nil {
		return 0, err
	}
	return h.Padding, nil
}

// WithTag 返回标签字段被替换为 tag 的新消息
//
// 先完整解码头部再重新编码，data 本身不被修改。
// 拼包中第一个 PDU 之后的字节原样保留。
func WithTag(data []byte, tag uint16) ([]byte, error) {
	h, err := Decode(data)
	if err != nil {
		return nil, err
	}
	h.Padding = tag

	buf := gopacket.NewSerializeBufferExpectedSize(HeaderLen+len(h.Payload), 0)
	if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, h, gopacket.Payload(h.Payload)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Build 用给定头部字段和主体构造一条 PDU，长度字段自动填写
func Build(h Header, body []byte) ([]byte, error) {
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true}
	if err := gopacket.SerializeLayers(buf, opts, &h, gopacket.Payload(body)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package pdu

import (
	"encoding/binary"
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	// HeaderLen DIS 头部长度
	HeaderLen = 12

	// TagOffset 标签字段（padding）偏移
	TagOffset = 10

	// MaxVersion 支持的最高协议版本（IEEE 1278.1-2012）
	MaxVersion = 7

	// MaxPDUType 已定义的最大 PDU 类型
	MaxPDUType = 72

	// PDUTypeEntityState 实体状态 PDU
	PDUTypeEntityState = 1
)

// LayerTypeDIS DIS 头部在 gopacket 中的层类型
var LayerTypeDIS = gopacket.RegisterLayerType(1278, gopacket.LayerTypeMetadata{
	Name:    "DIS",
	Decoder: gopacket.DecodeFunc(decodeDIS),
})

// Header DIS PDU 头部
type Header struct {
	layers.BaseLayer

	ProtocolVersion uint8
	ExerciseID      uint8
	PDUType         uint8
	ProtocolFamily  uint8
	Timestamp       uint32
	Length          uint16
	Padding         uint16
}

// LayerType 实现 gopacket.Layer
func (h *Header) LayerType() gopacket.LayerType { return LayerTypeDIS }

// CanDecode 实现 gopacket.DecodingLayer
func (h *Header) CanDecode() gopacket.LayerClass { return LayerTypeDIS }

// NextLayerType 实现 gopacket.DecodingLayer
//
// PDU 主体不再细分，剩余部分作为负载。
func (h *Header) NextLayerType() gopacket.LayerType { return gopacket.LayerTypePayload }

// DecodeFromBytes 实现 gopacket.DecodingLayer
//
// data 可以是多个 PDU 的拼包，只解码第一个 PDU 的头部；
// Payload 覆盖头部之后的全部剩余字节。
func (h *Header) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < HeaderLen {
		df.SetTruncated()
		return fmt.Errorf("%w: %d bytes", ErrTooShort, len(data))
	}

	h.ProtocolVersion = data[0]
	h.ExerciseID = data[1]
	h.PDUType = data[2]
	h.ProtocolFamily = data[3]
	h.Timestamp = binary.BigEndian.Uint32(data[4:8])
	h.Length = binary.BigEndian.Uint16(data[8:10])
	h.Padding = binary.BigEndian.Uint16(data[TagOffset:HeaderLen])

	if h.ProtocolVersion == 0 || h.ProtocolVersion > MaxVersion {
		return fmt.Errorf("%w: %d", ErrBadVersion, h.ProtocolVersion)
	}
	if h.PDUType == 0 || h.PDUType > MaxPDUType {
		return fmt.Errorf("%w: %d", ErrBadType, h.PDUType)
	}
	if int(h.Length) < HeaderLen || int(h.Length) > len(data) {
		return fmt.Errorf("%w: length=%d buffer=%d", ErrBadLength, h.Length, len(data))
	}

	h.BaseLayer = layers.BaseLayer{Contents: data[:HeaderLen], Payload: data[HeaderLen:]}
	return nil
}

// SerializeTo 实现 gopacket.SerializableLayer
func (h *Header) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	payloadLen := len(b.Bytes())
	bytes, err := b.PrependBytes(HeaderLen)
	if err != nil {
		return err
	}
	if opts.FixLengths {
		h.Length = uint16(HeaderLen + payloadLen)
	}

	bytes[0] = h.ProtocolVersion
	bytes[1] = h.ExerciseID
	bytes[2] = h.PDUType
	bytes[3] = h.ProtocolFamily
	binary.BigEndian.PutUint32(bytes[4:8], h.Timestamp)
	binary.BigEndian.PutUint16(bytes[8:10], h.Length)
	binary.BigEndian.PutUint16(bytes[TagOffset:HeaderLen], h.Padding)
	return nil
}

// IsEntityState 是否为实体状态 PDU
func (h *Header) IsEntityState() bool {
	return h.PDUType == PDUTypeEntityState
}

func decodeDIS(data []byte, p gopacket.PacketBuilder) error {
	h := &Header{}
	if err := h.DecodeFromBytes(data, p); err != nil {
		return err
	}
	p.AddLayer(h)
	return p.NextDecoder(h.NextLayerType())
}

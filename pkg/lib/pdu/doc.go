// Package pdu 提供 DIS PDU 头部编解码
//
// DIS 头部固定 12 字节，大端序：
//
//	0  protocolVersion  uint8
//	1  exerciseID       uint8
//	2  pduType          uint8
//	3  protocolFamily   uint8
//	4  timestamp        uint32
//	8  length           uint16  整个 PDU 长度（含头部）
//	10 padding          uint16  本地网络防环标签
//
// Header 实现了 gopacket 的 DecodingLayer 与 SerializableLayer，
// 既可以单独解码，也可以挂在 UDP 负载之后参与 gopacket 的解析链。
// 除标签字段外，其余内容对中继而言都是不透明的。
package pdu

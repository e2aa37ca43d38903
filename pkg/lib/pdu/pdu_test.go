package pdu

import (
	"testing"

	"github.com/google/gopacket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entityState(t *testing.T, tag uint16) []byte {
	t.Helper()
	msg, err := Build(Header{
		ProtocolVersion: 6,
		ExerciseID:      1,
		PDUType:         PDUTypeEntityState,
		ProtocolFamily:  1,
		Timestamp:       0x01020304,
		Padding:         tag,
	}, []byte{0xAA, 0xBB, 0xCC, 0xDD})
	require.NoError(t, err)
	return msg
}

// ============================================================================
//                              解码
// ============================================================================

func TestBuild_FixesLength(t *testing.T) {
	msg := entityState(t, 0)

	require.Len(t, msg, HeaderLen+4)
	assert.Equal(t, []byte{0x00, 0x10}, msg[8:10])
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, msg[4:8])
}

func TestDecode(t *testing.T) {
	msg := entityState(t, 0x1234)

	h, err := Decode(msg)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), h.ProtocolVersion)
	assert.Equal(t, uint16(len(msg)), h.Length)
	assert.Equal(t, uint16(0x1234), h.Padding)
	assert.True(t, h.IsEntityState())
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, h.Payload)
}

func TestDecode_Rejects(t *testing.T) {
	good := entityState(t, 0)

	_, err := Decode(good[:HeaderLen-1])
	assert.ErrorIs(t, err, ErrTooShort)

	bad := append([]byte(nil), good...)
	bad[0] = 0
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrBadVersion)

	bad = append([]byte(nil), good...)
	bad[2] = 200
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrBadType)

	// 长度字段大于实际数据
	_, err = Decode(good[:len(good)-1])
	assert.ErrorIs(t, err, ErrBadLength)

	// 长度字段小于头部
	bad = append([]byte(nil), good...)
	bad[8], bad[9] = 0, 4
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrBadLength)
}

func TestDecode_Bundled(t *testing.T) {
	first := entityState(t, 5)
	second := entityState(t, 9)
	bundle := append(append([]byte(nil), first...), second...)

	tag, err := Tag(bundle)
	require.NoError(t, err)
	assert.Equal(t, uint16(5), tag)
}

// ============================================================================
//                              标签改写
// ============================================================================

func TestWithTag(t *testing.T) {
	msg := entityState(t, 0)
	orig := append([]byte(nil), msg...)

	tagged, err := WithTag(msg, 77)
	require.NoError(t, err)

	assert.Equal(t, orig, msg, "输入不应被修改")
	assert.Equal(t, []byte{0x00, 0x4D}, tagged[TagOffset:HeaderLen])

	// 除标签外逐字节相同
	assert.Equal(t, orig[:TagOffset], tagged[:TagOffset])
	assert.Equal(t, orig[HeaderLen:], tagged[HeaderLen:])
}

func TestWithTag_KeepsBundleTail(t *testing.T) {
	bundle := append(entityState(t, 1), entityState(t, 2)...)

	tagged, err := WithTag(bundle, 3)
	require.NoError(t, err)
	require.Len(t, tagged, len(bundle))

	assert.Equal(t, bundle[HeaderLen+4:], tagged[HeaderLen+4:])
}

func TestWithTag_Undecodable(t *testing.T) {
	_, err := WithTag([]byte{1, 2, 3}, 7)
	assert.Error(t, err)
}

// ============================================================================
//                              gopacket 解析链
// ============================================================================

func TestLayer_NewPacket(t *testing.T) {
	msg := entityState(t, 42)

	pkt := gopacket.NewPacket(msg, LayerTypeDIS, gopacket.Default)
	require.Nil(t, pkt.ErrorLayer())

	layer := pkt.Layer(LayerTypeDIS)
	require.NotNil(t, layer)
	h := layer.(*Header)
	assert.Equal(t, uint16(42), h.Padding)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, pkt.ApplicationLayer().Payload())
}

func TestLayer_DecodingLayerParser(t *testing.T) {
	var h Header
	var payload gopacket.Payload
	parser := gopacket.NewDecodingLayerParser(LayerTypeDIS, &h, &payload)

	decoded := []gopacket.LayerType{}
	err := parser.DecodeLayers(entityState(t, 8), &decoded)
	require.NoError(t, err)
	assert.Equal(t, []gopacket.LayerType{LayerTypeDIS, gopacket.LayerTypePayload}, decoded)
	assert.Equal(t, uint16(8), h.Padding)
}

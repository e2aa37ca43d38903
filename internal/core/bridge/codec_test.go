package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	payload := Encode(0x01020304, []byte("pdu"))
	assert.Equal(t, []byte{1, 2, 3, 4, 'p', 'd', 'u'}, payload)

	tag, msg, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), tag)
	assert.Equal(t, []byte("pdu"), msg)
}

func TestDecode_TagOnly(t *testing.T) {
	tag, msg, err := Decode([]byte{0, 0, 0, 9})
	require.NoError(t, err)
	assert.Equal(t, uint32(9), tag)
	assert.Empty(t, msg)
}

func TestDecode_Short(t *testing.T) {
	for _, in := range [][]byte{nil, {1}, {1, 2, 3}} {
		_, _, err := Decode(in)
		assert.ErrorIs(t, err, ErrShortPayload)
	}
}

package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveFastPathRoundtrip(t *testing.T) {
	cases := []struct {
		typeID uint8
		value  any
	}{
		{TypeIDBool, true},
		{TypeIDBool, false},
		{TypeIDInt8, int8(-12)},
		{TypeIDInt16, int16(-1000)},
		{TypeIDInt32, int32(123456)},
		{TypeIDInt64, int64(-9000000000)},
		{TypeIDFloat32, float32(3.5)},
		{TypeIDFloat64, float64(-2.25)},
	}
	for _, c := range cases {
		encoded, err := writePrimitiveFast(c.typeID, c.value)
		require.NoError(t, err)
		decoded, err := readPrimitiveFast(c.typeID, bytes.NewReader(encoded))
		require.NoError(t, err)
		assert.Equal(t, c.value, decoded)
	}
}

func TestVarSizeRoundtrip(t *testing.T) {
	for _, w := range []VarSizeWidth{VarSize0, VarSize1, VarSize2, VarSize4} {
		n := 0
		switch w {
		case VarSize1:
			n = 200
		case VarSize2:
			n = 40000
		case VarSize4:
			n = 100000
		}
		encoded, err := encodeVarSize(n, w)
		require.NoError(t, err)
		decoded, err := decodeVarSize(bytes.NewReader(encoded), w)
		require.NoError(t, err)
		assert.Equal(t, n, decoded)
	}
}

func TestSmallestVarSize(t *testing.T) {
	assert.Equal(t, VarSize0, smallestVarSize(0))
	assert.Equal(t, VarSize1, smallestVarSize(255))
	assert.Equal(t, VarSize2, smallestVarSize(256))
	assert.Equal(t, VarSize2, smallestVarSize(65535))
	assert.Equal(t, VarSize4, smallestVarSize(65536))
}

package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixBijection(t *testing.T) {
	varSizes := []VarSizeWidth{VarSize0, VarSize1, VarSize2, VarSize4}
	for _, fixed := range []bool{true, false} {
		for _, hasOrdinal := range []bool{true, false} {
			for _, hasName := range []bool{true, false} {
				for _, vs := range varSizes {
					p := Prefix{FixedWidth: fixed, HasOrdinal: hasOrdinal, HasName: hasName}
					if !fixed {
						p.VarSize = vs
					}
					b, err := p.Encode()
					require.NoError(t, err)
					got, err := DecodePrefix(b)
					require.NoError(t, err)
					assert.Equal(t, p.FixedWidth, got.FixedWidth)
					assert.Equal(t, p.HasOrdinal, got.HasOrdinal)
					assert.Equal(t, p.HasName, got.HasName)
					if !fixed {
						assert.Equal(t, p.VarSize, got.VarSize)
					}
				}
			}
		}
	}
}

func TestPrefixReservedBitsZero(t *testing.T) {
	b, err := Prefix{FixedWidth: true, HasOrdinal: true, HasName: true}.Encode()
	require.NoError(t, err)
	assert.Zero(t, b&0x7, "reserved low 3 bits must be zero")
}

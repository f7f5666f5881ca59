package wire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMUTF8Roundtrip(t *testing.T) {
	cases := []string{
		"",
		"Kirk",
		"hello world",
		"\x00null-inside",
		"emoji \U0001F600 surrogate pair",
		"mixed é中\U0001F680",
	}
	for _, s := range cases {
		encoded := EncodeMUTF8(s)
		decoded, err := DecodeMUTF8(encoded)
		require.NoError(t, err)
		assert.Equal(t, s, decoded)
	}
}

func TestMUTF8NullEncodesOverlong(t *testing.T) {
	encoded := EncodeMUTF8("\x00")
	assert.Equal(t, []byte{0xC0, 0x80}, encoded)
}

func TestWriteNameRejectsTooLong(t *testing.T) {
	long := strings.Repeat("x", 300)
	var buf bytes.Buffer
	err := WriteName(&buf, long)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNameTooLong)
}

func TestWriteReadNameRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteName(&buf, "Wylie"))
	got, err := ReadName(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Wylie", got)
}

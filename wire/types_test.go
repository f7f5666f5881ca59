package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTypeDictionaryHasPrimitivesStringAndMessage(t *testing.T) {
	d := DefaultTypeDictionary()
	for _, id := range []uint8{
		TypeIDBool, TypeIDInt8, TypeIDInt16, TypeIDInt32, TypeIDInt64,
		TypeIDFloat32, TypeIDFloat64, TypeIDString, TypeIDMessage,
	} {
		_, ok := d.GetByTypeID(id)
		assert.True(t, ok, "type-id %d should be registered", id)
	}
}

func TestGetUnknownTypeRoundtripsBytes(t *testing.T) {
	d := DefaultTypeDictionary()
	unknown := d.GetUnknownType(200)
	assert.Equal(t, uint8(200), unknown.TypeID)
	assert.False(t, unknown.FixedWidth)

	encoded, err := unknown.Write([]byte{9, 8, 7}, d)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8, 7}, encoded)
}

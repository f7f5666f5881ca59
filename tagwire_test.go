package tagwire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zippoxer/tagwire/objectgraph"
	"github.com/zippoxer/tagwire/wire"
)

func TestContextSerializeDeserializeMessage(t *testing.T) {
	ctx := NewContext()

	msg := wire.NewMessage()
	msg.AddNamed("id", wire.TypeIDInt32, true, int32(42))
	msg.AddNamed("label", wire.TypeIDString, false, "widget")

	var buf bytes.Buffer
	require.NoError(t, ctx.Serialize(msg, 0, &buf))

	env, err := ctx.Deserialize(&buf)
	require.NoError(t, err)

	idField, ok := env.Message.ByName("id")
	require.True(t, ok)
	assert.Equal(t, int32(42), idField.Value)

	labelField, ok := env.Message.ByName("label")
	require.True(t, ok)
	assert.Equal(t, "widget", labelField.Value)
}

func TestEncodeDecodeMessageBytes(t *testing.T) {
	ctx := NewContext()

	msg := wire.NewMessage()
	msg.AddOrdinal(1, wire.TypeIDBool, true, true)

	data, err := EncodeMessage(ctx, msg, 0)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	env, err := DecodeMessage(ctx, data)
	require.NoError(t, err)

	f, ok := env.Message.ByOrdinal(1)
	require.True(t, ok)
	assert.Equal(t, true, f.Value)
}

type point struct {
	X, Y int32
}

func pointSurrogate() objectgraph.Surrogate {
	return objectgraph.Surrogate{
		Encode: func(obj any, w *objectgraph.Writer, sc *objectgraph.SerializationContext) error {
			p := obj.(*point)
			if err := w.Add("x", p.X); err != nil {
				return err
			}
			return w.Add("y", p.Y)
		},
		Decode: func(msg *wire.Message, dc *objectgraph.DeserializationContext, index int) (any, error) {
			p := &point{}
			if f, ok := msg.ByName("x"); ok {
				p.X, _ = f.Value.(int32)
			}
			if f, ok := msg.ByName("y"); ok {
				p.Y, _ = f.Value.(int32)
			}
			return p, nil
		},
	}
}

func TestContextSerializeGraphRoundTrip(t *testing.T) {
	ctx := NewContext()
	objectgraph.RegisterSurrogate[*point](ctx.TypeMap(), pointSurrogate())

	root := &point{X: 3, Y: 4}

	data, err := EncodeGraph(ctx, root, 0)
	require.NoError(t, err)

	decoded, err := DecodeGraph(ctx, data)
	require.NoError(t, err)

	got := decoded.(*point)
	assert.Equal(t, int32(3), got.X)
	assert.Equal(t, int32(4), got.Y)
}

// TestDeserializeGraphWithoutPriorEncode covers the ordinary
// separate-process case the type-name chain exists for: a receiver that
// only ever decodes must be able to resolve a type it registered but
// never itself encoded. encoderCtx stands in for a separate encoding
// process; decoderCtx is constructed fresh, registers the same surrogate,
// and decodes bytes it never had any hand in producing.
func TestDeserializeGraphWithoutPriorEncode(t *testing.T) {
	encoderCtx := NewContext()
	objectgraph.RegisterSurrogate[*point](encoderCtx.TypeMap(), pointSurrogate())

	data, err := EncodeGraph(encoderCtx, &point{X: 10, Y: 20}, 0)
	require.NoError(t, err)

	decoderCtx := NewContext()
	objectgraph.RegisterSurrogate[*point](decoderCtx.TypeMap(), pointSurrogate())

	decoded, err := DecodeGraph(decoderCtx, data)
	require.NoError(t, err)

	got := decoded.(*point)
	assert.Equal(t, int32(10), got.X)
	assert.Equal(t, int32(20), got.Y)
}

func TestContextDefaultsAreUsable(t *testing.T) {
	ctx := NewContext()
	assert.NotNil(t, ctx.dict)
	assert.NotNil(t, ctx.typeMap)
	assert.NotNil(t, ctx.strategy)
}

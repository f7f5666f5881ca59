package objectgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zippoxer/tagwire/wire"
)

// node is a small reference type used across these tests to exercise
// reference-eligible fields, shared back-references, and type-delta
// compression across repeated occurrences of the same runtime type.
type node struct {
	Name  string
	Left  *node
	Right *node
}

func nodeSurrogate() Surrogate {
	return Surrogate{
		Encode: func(obj any, w *Writer, ctx *SerializationContext) error {
			n := obj.(*node)
			if err := w.Add("name", n.Name); err != nil {
				return err
			}
			if n.Left != nil {
				if err := w.Add("left", n.Left); err != nil {
					return err
				}
			}
			if n.Right != nil {
				if err := w.Add("right", n.Right); err != nil {
					return err
				}
			}
			return nil
		},
		Decode: func(msg *wire.Message, ctx *DeserializationContext, index int) (any, error) {
			n := &node{}
			if f, ok := msg.ByName("name"); ok {
				n.Name, _ = f.Value.(string)
			}
			if f, ok := msg.ByName("left"); ok {
				obj, err := ctx.Resolve(f, index)
				if err != nil {
					return nil, err
				}
				n.Left = obj.(*node)
			}
			if f, ok := msg.ByName("right"); ok {
				obj, err := ctx.Resolve(f, index)
				if err != nil {
					return nil, err
				}
				n.Right = obj.(*node)
			}
			return n, nil
		},
	}
}

// cyclic is a self-referential type used to exercise WriteInline's cycle
// detection, which plain reference-eligible fields never trigger.
type cyclic struct {
	Name string
	Next *cyclic
}

func cyclicSurrogate() Surrogate {
	return Surrogate{
		Encode: func(obj any, w *Writer, ctx *SerializationContext) error {
			c := obj.(*cyclic)
			if err := w.Add("name", c.Name); err != nil {
				return err
			}
			if c.Next != nil {
				if err := w.WriteInline("next", c.Next); err != nil {
					return err
				}
			}
			return nil
		},
		Decode: func(msg *wire.Message, ctx *DeserializationContext, index int) (any, error) {
			c := &cyclic{}
			if f, ok := msg.ByName("name"); ok {
				c.Name, _ = f.Value.(string)
			}
			if f, ok := msg.ByName("next"); ok {
				obj, err := ctx.Resolve(f, index)
				if err != nil {
					return nil, err
				}
				c.Next = obj.(*cyclic)
			}
			return c, nil
		},
	}
}

func newTestTypeMap() (*TypeMap, TypeMappingStrategy) {
	strategy := NewDefaultStrategy()
	tm := NewTypeMap(strategy)
	RegisterSurrogate[*node](tm, nodeSurrogate())
	RegisterSurrogate[*cyclic](tm, cyclicSurrogate())
	return tm, strategy
}

func TestSerializeGraphSimpleRoundTrip(t *testing.T) {
	tm, strategy := newTestTypeMap()

	root := &node{Name: "root", Left: &node{Name: "left"}, Right: &node{Name: "right"}}

	sc := NewSerializationContext(tm, strategy)
	msg, err := sc.SerializeGraph(root)
	require.NoError(t, err)

	dc := NewDeserializationContext(tm, strategy)
	decoded, err := dc.DeserializeGraph(msg)
	require.NoError(t, err)

	got := decoded.(*node)
	assert.Equal(t, "root", got.Name)
	require.NotNil(t, got.Left)
	require.NotNil(t, got.Right)
	assert.Equal(t, "left", got.Left.Name)
	assert.Equal(t, "right", got.Right.Name)
}

// TestSharedLeafBackReference covers spec scenario 4: a root with two
// fields referencing the same child. The second occurrence must compress
// to a single relative back-reference, and the decoded graph must carry
// reference identity between the two fields.
func TestSharedLeafBackReference(t *testing.T) {
	tm, strategy := newTestTypeMap()

	leaf := &node{Name: "leaf"}
	root := &node{Name: "root", Left: leaf, Right: leaf}

	sc := NewSerializationContext(tm, strategy)
	msg, err := sc.SerializeGraph(root)
	require.NoError(t, err)

	leftField, ok := msg.ByName("left")
	require.True(t, ok)
	rightField, ok := msg.ByName("right")
	require.True(t, ok)

	assert.Equal(t, wire.TypeIDMessage, leftField.TypeID, "first occurrence is a full sub-message")
	assert.Equal(t, wire.TypeIDInt32, rightField.TypeID, "second occurrence compresses to a back-reference")

	dc := NewDeserializationContext(tm, strategy)
	decoded, err := dc.DeserializeGraph(msg)
	require.NoError(t, err)

	got := decoded.(*node)
	require.NotNil(t, got.Left)
	require.NotNil(t, got.Right)
	assert.Same(t, got.Left, got.Right, "shared leaf must decode to the same object")
}

// TestInlineCycleDetected covers spec scenario 5: root A inlines B, B
// inlines A.
func TestInlineCycleDetected(t *testing.T) {
	tm, strategy := newTestTypeMap()

	a := &cyclic{Name: "a"}
	b := &cyclic{Name: "b"}
	a.Next = b
	b.Next = a

	sc := NewSerializationContext(tm, strategy)
	_, err := sc.SerializeGraph(a)
	assert.ErrorIs(t, err, ErrInlineCycle)
}

// TestTypeDeltaCompression covers spec scenario 6: several objects of
// the same runtime type in a row compress to one type-name chain
// followed by integer deltas.
func TestTypeDeltaCompression(t *testing.T) {
	tm, strategy := newTestTypeMap()

	root := &node{
		Name: "root",
		Left: &node{
			Name: "mid",
			Left: &node{Name: "tail"},
		},
	}

	sc := NewSerializationContext(tm, strategy)
	msg, err := sc.SerializeGraph(root)
	require.NoError(t, err)

	rootTypeInfo := msg.AllByOrdinal(TypeIDFieldOrdinal)
	require.Len(t, rootTypeInfo, 1)
	assert.Equal(t, wire.TypeIDString, rootTypeInfo[0].TypeID, "root is the first node seen: a name chain")

	leftField, ok := msg.ByName("left")
	require.True(t, ok)
	midMsg, ok := leftField.Value.(*wire.Message)
	require.True(t, ok)

	midTypeInfo := midMsg.AllByOrdinal(TypeIDFieldOrdinal)
	require.Len(t, midTypeInfo, 1)
	assert.Equal(t, wire.TypeIDInt32, midTypeInfo[0].TypeID, "second node of the same type: a delta")
	assert.LessOrEqual(t, midTypeInfo[0].Value.(int32), int32(0), "type delta is non-positive")

	dc := NewDeserializationContext(tm, strategy)
	decoded, err := dc.DeserializeGraph(msg)
	require.NoError(t, err)

	got := decoded.(*node)
	assert.Equal(t, "root", got.Name)
	require.NotNil(t, got.Left)
	assert.Equal(t, "mid", got.Left.Name)
	require.NotNil(t, got.Left.Left)
	assert.Equal(t, "tail", got.Left.Left.Name)
}

func TestSerializeGraphRejectsUnregisteredType(t *testing.T) {
	strategy := NewDefaultStrategy()
	tm := NewTypeMap(strategy)

	sc := NewSerializationContext(tm, strategy)
	_, err := sc.SerializeGraph(&node{Name: "orphan"})
	assert.ErrorIs(t, err, ErrUnregisteredType)
}

func TestWriterReadbackIsInvalid(t *testing.T) {
	tm, strategy := newTestTypeMap()
	sc := NewSerializationContext(tm, strategy)

	var capturedErr error
	tm.Register(typeOf[*node](), Surrogate{
		Encode: func(obj any, w *Writer, ctx *SerializationContext) error {
			_, capturedErr = w.Get("name")
			return nil
		},
		Decode: nodeSurrogate().Decode,
	})

	_, err := sc.SerializeGraph(&node{Name: "x"})
	require.NoError(t, err)
	assert.ErrorIs(t, capturedErr, ErrInvalidFacadeOperation)
}

func TestEnqueueDefersToTopLevelSibling(t *testing.T) {
	strategy := NewDefaultStrategy()
	tm := NewTypeMap(strategy)

	type ref struct {
		Name   string
		Friend *ref
	}

	var surrogate Surrogate
	surrogate = Surrogate{
		Encode: func(obj any, w *Writer, ctx *SerializationContext) error {
			r := obj.(*ref)
			if err := w.Add("name", r.Name); err != nil {
				return err
			}
			if r.Friend != nil {
				if err := w.Enqueue("friend", r.Friend); err != nil {
					return err
				}
			}
			return nil
		},
		Decode: func(msg *wire.Message, ctx *DeserializationContext, index int) (any, error) {
			r := &ref{}
			if f, ok := msg.ByName("name"); ok {
				r.Name, _ = f.Value.(string)
			}
			if f, ok := msg.ByName("friend"); ok {
				obj, err := ctx.Resolve(f, index)
				if err != nil {
					return nil, err
				}
				r.Friend = obj.(*ref)
			}
			return r, nil
		},
	}
	RegisterSurrogate[*ref](tm, surrogate)

	a := &ref{Name: "a"}
	b := &ref{Name: "b"}
	a.Friend = b

	sc := NewSerializationContext(tm, strategy)
	msg, err := sc.SerializeGraph(a)
	require.NoError(t, err)

	friendField, ok := msg.ByName("friend")
	require.True(t, ok)
	assert.Equal(t, wire.TypeIDInt32, friendField.TypeID, "enqueued reference is written as a relative index")

	var siblingCount int
	for _, f := range msg.Fields() {
		if !f.HasName() && !f.HasOrdinal() {
			siblingCount++
		}
	}
	assert.Equal(t, 1, siblingCount, "b is drained exactly once as a top-level sibling")

	dc := NewDeserializationContext(tm, strategy)
	decoded, err := dc.DeserializeGraph(msg)
	require.NoError(t, err)

	got := decoded.(*ref)
	assert.Equal(t, "a", got.Name)
	require.NotNil(t, got.Friend)
	assert.Equal(t, "b", got.Friend.Name)
	assert.Nil(t, got.Friend.Friend)
}

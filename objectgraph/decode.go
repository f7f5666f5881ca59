package objectgraph

import (
	"fmt"
	"reflect"

	"github.com/zippoxer/tagwire/wire"
)

// DeserializationContext is the object-graph decoder (spec §4.9): it
// walks the message tree SerializeGraph produced, re-instantiating
// objects via surrogate factories resolved by wire type-name or
// type-delta, and resolving back-references by index.
type DeserializationContext struct {
	typeMap  *TypeMap
	strategy TypeMappingStrategy

	objects []any
	types   []reflect.Type

	// pending holds the top-level sibling messages SerializeGraph
	// appended during queue drain, not yet decoded. A reference to an
	// index beyond the objects decoded so far is necessarily a reference
	// to the next undecoded pending sibling — the same FIFO order the
	// encoder assigned it in — so Resolve consumes pending on demand
	// instead of requiring a separate drain pass up front.
	pending []*wire.Message
	cursor  int
}

// NewDeserializationContext returns a DeserializationContext ready for a
// single DeserializeGraph call.
func NewDeserializationContext(typeMap *TypeMap, strategy TypeMappingStrategy) *DeserializationContext {
	return &DeserializationContext{typeMap: typeMap, strategy: strategy}
}

// DeserializeGraph is the inverse of SerializationContext.SerializeGraph:
// top's named/ordinal fields are the root object's own content; any
// trailing anonymous message-valued fields are the queue-drained
// siblings.
func (ctx *DeserializationContext) DeserializeGraph(top *wire.Message) (any, error) {
	rootMsg := wire.NewMessage()
	for _, f := range top.Fields() {
		if !f.HasName() && !f.HasOrdinal() {
			sub, ok := f.Value.(*wire.Message)
			if !ok {
				return nil, fmt.Errorf("objectgraph: malformed top-level sibling field")
			}
			ctx.pending = append(ctx.pending, sub)
			continue
		}
		rootMsg.Add(f)
	}

	root, err := ctx.decodeAt(rootMsg, 0)
	if err != nil {
		return nil, err
	}

	// Decode any sibling nothing in the graph ended up referencing, for
	// parity with the encoder, which drains every queued object
	// unconditionally regardless of whether anything still points at it.
	for ctx.cursor < len(ctx.pending) {
		idx := len(ctx.objects)
		msg := ctx.pending[ctx.cursor]
		ctx.cursor++
		if _, err := ctx.decodeAt(msg, idx); err != nil {
			return nil, err
		}
	}

	return root, nil
}

// Resolve interprets f as an object-valued field written by
// Writer.Add/AddOrdinal/WriteInline/Enqueue: a message-typed field
// decodes (or recursively decodes) to the nested object; an int32-typed
// field is a relative reference from containerIndex, resolved against
// objects already decoded or, for a forward reference into the encode
// queue, decoded on demand from the next pending sibling (spec §4.9).
func (ctx *DeserializationContext) Resolve(f wire.Field, containerIndex int) (any, error) {
	switch f.TypeID {
	case wire.TypeIDMessage:
		sub, ok := f.Value.(*wire.Message)
		if !ok {
			return nil, fmt.Errorf("objectgraph: message field did not carry a sub-message")
		}
		return ctx.decodeAt(sub, len(ctx.objects))
	case wire.TypeIDInt32:
		delta, ok := f.Value.(int32)
		if !ok {
			return nil, fmt.Errorf("objectgraph: reference field did not carry an int32 delta")
		}
		target := containerIndex + int(delta)
		if target < 0 {
			return nil, ErrInvalidBackReference
		}
		if target < len(ctx.objects) {
			if ctx.objects[target] == nil {
				return nil, ErrInvalidBackReference
			}
			return ctx.objects[target], nil
		}
		if target != len(ctx.objects) || ctx.cursor >= len(ctx.pending) {
			return nil, ErrInvalidBackReference
		}
		msg := ctx.pending[ctx.cursor]
		ctx.cursor++
		return ctx.decodeAt(msg, target)
	default:
		return nil, fmt.Errorf("objectgraph: field with type-id %d is not object-valued", f.TypeID)
	}
}

// decodeAt resolves msg's runtime type, allocates index in the objects
// vector, and invokes that type's surrogate decoder. index must equal
// len(ctx.objects) at the time of the call — the decode walk visits
// sub-messages in the same order the encoder assigned indices in.
func (ctx *DeserializationContext) decodeAt(msg *wire.Message, index int) (any, error) {
	t, err := ctx.resolveType(msg, index)
	if err != nil {
		return nil, err
	}

	surrogate, ok := ctx.typeMap.GetSurrogateFactory(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnresolvedType, t)
	}

	ctx.growTo(index)
	ctx.types[index] = t

	obj, err := surrogate.Decode(msg, ctx, index)
	if err != nil {
		return nil, err
	}
	ctx.objects[index] = obj
	return obj, nil
}

// resolveType reads msg's type-information field(s) at TypeIDFieldOrdinal
// (spec §4.8.4): a single integer delta means "use the type already
// resolved at index+delta"; one or more strings means "use the first
// that resolves, through the strategy, to a registered surrogate".
func (ctx *DeserializationContext) resolveType(msg *wire.Message, index int) (reflect.Type, error) {
	entries := msg.AllByOrdinal(TypeIDFieldOrdinal)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: missing type information", ErrUnresolvedType)
	}

	if entries[0].TypeID == wire.TypeIDInt32 {
		delta, ok := entries[0].Value.(int32)
		if !ok {
			return nil, fmt.Errorf("%w: malformed type delta", ErrUnresolvedType)
		}
		target := index + int(delta)
		if target < 0 || target >= len(ctx.types) || ctx.types[target] == nil {
			return nil, ErrInvalidBackReference
		}
		return ctx.types[target], nil
	}

	for _, f := range entries {
		name, ok := f.Value.(string)
		if !ok {
			continue
		}
		t, ok := ctx.strategy.GetType(name)
		if !ok {
			continue
		}
		if _, ok := ctx.typeMap.GetSurrogateFactory(t); ok {
			return t, nil
		}
	}
	return nil, ErrUnresolvedType
}

func (ctx *DeserializationContext) growTo(index int) {
	for len(ctx.objects) <= index {
		ctx.objects = append(ctx.objects, nil)
	}
	for len(ctx.types) <= index {
		ctx.types = append(ctx.types, nil)
	}
}

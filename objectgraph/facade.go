package objectgraph

import (
	"fmt"

	"github.com/zippoxer/tagwire/wire"
)

// Writer is the streaming, write-only message facade a surrogate
// populates during encode (spec §4.8.2). Every mutating call translates
// directly into an append on the underlying wire.Message; nothing ever
// materializes as a value the surrogate could read back.
type Writer struct {
	ctx   *SerializationContext
	msg   *wire.Message
	index int
}

// Add appends value under name. A value whose runtime type carries a
// registered surrogate is reference-eligible (spec §4.8.3): if it has
// already been emitted, this writes a single relative back-reference
// field instead of repeating it; otherwise it recurses immediately into
// a fresh nested sub-message. Anything else is written as a plain wire
// scalar.
func (w *Writer) Add(name string, value any) error {
	return w.add(&name, nil, value)
}

// AddOrdinal is Add addressed by ordinal instead of name.
func (w *Writer) AddOrdinal(ordinal int16, value any) error {
	return w.add(nil, &ordinal, value)
}

// WriteInline appends obj as a nested sub-message here and now. The
// identity map is never consulted, so obj is always written in full;
// reaching obj again while it is still being inlined is a cycle and
// fails with ErrInlineCycle (spec §4.8.3).
func (w *Writer) WriteInline(name string, obj any) error {
	return w.addObject(&name, nil, obj, true)
}

// WriteInlineOrdinal is WriteInline addressed by ordinal.
func (w *Writer) WriteInlineOrdinal(ordinal int16, obj any) error {
	return w.addObject(nil, &ordinal, obj, true)
}

// Enqueue reserves obj's position as a future top-level sibling message
// and writes the relative reference to that position under name. If obj
// is new, its content is produced later when the encode queue drains
// (spec §4.8.1, "Encode queue"); if obj was already seen, this is
// identical to a reference-eligible Add.
func (w *Writer) Enqueue(name string, obj any) error {
	return w.enqueue(&name, nil, obj)
}

// EnqueueOrdinal is Enqueue addressed by ordinal.
func (w *Writer) EnqueueOrdinal(ordinal int16, obj any) error {
	return w.enqueue(nil, &ordinal, obj)
}

// Get, GetOrdinal and their kin are part of the mutable-container
// contract the facade otherwise satisfies, but readback is not
// supported: the facade streams directly to the wire and never holds a
// value to give back (spec §4.8.2).
func (w *Writer) Get(name string) (any, error) { return nil, ErrInvalidFacadeOperation }

// GetOrdinal is Get addressed by ordinal.
func (w *Writer) GetOrdinal(ordinal int16) (any, error) { return nil, ErrInvalidFacadeOperation }

func (w *Writer) add(name *string, ordinal *int16, value any) error {
	if value != nil && w.ctx.typeMap.hasSurrogateFor(value) {
		return w.addObject(name, ordinal, value, false)
	}
	return w.addScalar(name, ordinal, value)
}

func (w *Writer) enqueue(name *string, ordinal *int16, obj any) error {
	delta := w.ctx.reserve(obj, w.index)
	return w.addScalar(name, ordinal, delta)
}

func (w *Writer) addScalar(name *string, ordinal *int16, value any) error {
	typeID, fixedWidth, ok := scalarTypeID(value)
	if !ok {
		return fmt.Errorf("objectgraph: %T is neither a registered object type nor a wire scalar", value)
	}
	if name != nil {
		w.msg.AddNamed(*name, typeID, fixedWidth, value)
	} else {
		w.msg.AddOrdinal(*ordinal, typeID, fixedWidth, value)
	}
	return nil
}

func (w *Writer) addObject(name *string, ordinal *int16, obj any, inline bool) error {
	if inline {
		if w.ctx.inlineStack.contains(obj) {
			return ErrInlineCycle
		}
	} else if prevIndex, ok := w.ctx.idMap.get(obj); ok {
		return w.addScalar(name, ordinal, int32(prevIndex-w.index))
	}

	sub, err := w.ctx.encodeNested(obj)
	if err != nil {
		return err
	}
	if name != nil {
		w.msg.AddNamed(*name, wire.TypeIDMessage, false, sub)
	} else {
		w.msg.AddOrdinal(*ordinal, wire.TypeIDMessage, false, sub)
	}
	return nil
}

// scalarTypeID maps a Go value to the wire scalar that carries it,
// mirroring the seven-primitive fast path plus the general string type
// (spec §4.1, §4.3). Anything else — including a message value produced
// by the engine itself — is not a "plain scalar" as far as the facade's
// own dispatch is concerned.
func scalarTypeID(value any) (typeID uint8, fixedWidth bool, ok bool) {
	switch value.(type) {
	case bool:
		return wire.TypeIDBool, true, true
	case int8:
		return wire.TypeIDInt8, true, true
	case int16:
		return wire.TypeIDInt16, true, true
	case int32:
		return wire.TypeIDInt32, true, true
	case int64:
		return wire.TypeIDInt64, true, true
	case float32:
		return wire.TypeIDFloat32, true, true
	case float64:
		return wire.TypeIDFloat64, true, true
	case string:
		return wire.TypeIDString, false, true
	default:
		return 0, false, false
	}
}

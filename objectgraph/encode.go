package objectgraph

import (
	"fmt"
	"reflect"

	"github.com/zippoxer/tagwire/wire"
)

// TypeIDFieldOrdinal is the reserved ordinal the engine uses to carry
// type information on every emitted sub-message (spec §4.8.4): either a
// single integer type-delta, or one or more type-name strings forming a
// fallback chain. No surrogate may write a field at this ordinal.
const TypeIDFieldOrdinal int16 = 0

// queuedObject is an object whose message-index has been reserved but
// whose content is produced later, when the encode queue drains (spec
// §3, "Encode queue").
type queuedObject struct {
	obj   any
	index int
}

// SerializationContext is the object-graph encoder (spec §4.8): it owns
// the identity map, inline stack, type-delta table and encode queue for
// exactly one SerializeGraph call. Construct a fresh context per call —
// its per-operation fields are not meant to be reset and reused (spec
// Design Notes, "Shared context state").
type SerializationContext struct {
	typeMap  *TypeMap
	strategy TypeMappingStrategy

	idMap            *identityMap
	lastTypes        map[reflect.Type]int
	inlineStack      *inlineStack
	encodeQueue      []queuedObject
	currentMessageID int
}

// NewSerializationContext returns a SerializationContext ready for a
// single SerializeGraph call, using typeMap for surrogate lookup and
// strategy for runtime-type <-> wire-name conversion.
func NewSerializationContext(typeMap *TypeMap, strategy TypeMappingStrategy) *SerializationContext {
	return &SerializationContext{
		typeMap:     typeMap,
		strategy:    strategy,
		idMap:       newIdentityMap(),
		lastTypes:   make(map[reflect.Type]int),
		inlineStack: &inlineStack{},
	}
}

// SerializeGraph encodes root and every object it transitively
// references, inlines, or enqueues into a single message (spec §4.8.1).
// The root's own fields become the returned message's fields directly;
// any object enqueued via Writer.Enqueue is appended afterward as an
// additional top-level, unnamed, message-valued field, in FIFO order.
func (ctx *SerializationContext) SerializeGraph(root any) (*wire.Message, error) {
	if ctx.currentMessageID != 0 {
		return nil, fmt.Errorf("objectgraph: SerializationContext reused across SerializeGraph calls")
	}

	top := wire.NewMessage()

	index := ctx.nextIndex()
	ctx.idMap.set(root, index)
	ctx.inlineStack.push(root, index)
	err := ctx.runSurrogate(top, root, index)
	ctx.inlineStack.pop()
	if err != nil {
		return nil, err
	}

	for len(ctx.encodeQueue) > 0 {
		q := ctx.encodeQueue[0]
		ctx.encodeQueue = ctx.encodeQueue[1:]

		sub := wire.NewMessage()
		ctx.inlineStack.push(q.obj, q.index)
		err := ctx.runSurrogate(sub, q.obj, q.index)
		ctx.inlineStack.pop()
		if err != nil {
			return nil, err
		}
		top.Add(wire.Field{TypeID: wire.TypeIDMessage, Value: sub})
	}

	return top, nil
}

// encodeNested encodes obj as a brand-new sub-message: it reserves the
// next index, registers obj in the identity map, and invokes obj's
// surrogate against a fresh Writer over a fresh sub-message. Used for
// both reference-eligible objects seen for the first time and for
// WriteInline (spec §4.8.3, "a new sub-message increments
// currentMessageId, registers the object in idMap...").
func (ctx *SerializationContext) encodeNested(obj any) (*wire.Message, error) {
	index := ctx.nextIndex()
	ctx.idMap.set(obj, index)

	msg := wire.NewMessage()
	ctx.inlineStack.push(obj, index)
	err := ctx.runSurrogate(msg, obj, index)
	ctx.inlineStack.pop()
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// reserve returns obj's relative position from containerIndex: if obj is
// already known, that's a plain back-reference; otherwise obj's index is
// reserved now and obj is pushed onto the encode queue for later
// out-of-line emission.
func (ctx *SerializationContext) reserve(obj any, containerIndex int) int32 {
	if idx, ok := ctx.idMap.get(obj); ok {
		return int32(idx - containerIndex)
	}
	idx := ctx.nextIndex()
	ctx.idMap.set(obj, idx)
	ctx.encodeQueue = append(ctx.encodeQueue, queuedObject{obj: obj, index: idx})
	return int32(idx - containerIndex)
}

// runSurrogate writes type information for obj into msg (subject to
// type-delta compression), looks up obj's surrogate, and invokes it with
// a Writer bound to msg and index.
func (ctx *SerializationContext) runSurrogate(msg *wire.Message, obj any, index int) error {
	t := reflect.TypeOf(obj)

	if err := ctx.writeTypeInfo(msg, t, index); err != nil {
		return err
	}

	surrogate, ok := ctx.typeMap.GetSurrogateFactory(t)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnregisteredType, t)
	}
	ctx.lastTypes[t] = index

	w := &Writer{ctx: ctx, msg: msg, index: index}
	return surrogate.Encode(obj, w, ctx)
}

// writeTypeInfo emits the type-delta or type-name chain for t at
// TypeIDFieldOrdinal (spec §4.8.4). It consults lastTypes as it stood
// before this object's own entry is recorded, so two objects of the same
// type in a row compress to a single non-positive integer delta; the
// first object of a previously-unseen type instead gets a chain of one
// string per type in typeMap.Chain(t), most-specific first.
func (ctx *SerializationContext) writeTypeInfo(msg *wire.Message, t reflect.Type, index int) error {
	if lastIndex, ok := ctx.lastTypes[t]; ok {
		delta := int32(lastIndex - index)
		msg.AddOrdinal(TypeIDFieldOrdinal, wire.TypeIDInt32, true, delta)
		return nil
	}

	for _, chainType := range ctx.typeMap.Chain(t) {
		name := ctx.strategy.GetName(chainType)
		msg.AddOrdinal(TypeIDFieldOrdinal, wire.TypeIDString, false, name)
	}
	return nil
}

func (ctx *SerializationContext) nextIndex() int {
	idx := ctx.currentMessageID
	ctx.currentMessageID++
	return idx
}

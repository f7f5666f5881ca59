package objectgraph

import "github.com/zippoxer/tagwire/wire"

// Encoder populates msg with obj's fields, using ctx to inline, reference,
// or queue any sub-objects (spec §6: "encode(obj, mutContainer, serCtx)").
// msg is the write-only streaming facade described in spec §4.8.2.
type Encoder func(obj any, msg *Writer, ctx *SerializationContext) error

// Decoder reconstructs an object from msg, using ctx to resolve
// back-references among sibling sub-messages (spec §6: "decode(container,
// deserCtx) -> obj"). index is msg's own position in the object vector,
// needed to turn a relative back-reference field into an absolute index
// via ctx.Resolve.
type Decoder func(msg *wire.Message, ctx *DeserializationContext, index int) (any, error)

// Surrogate is the encode/decode pair attached to a runtime type (spec §3).
type Surrogate struct {
	Encode Encoder
	Decode Decoder
}

package tagwire

import (
	"bytes"
	"io"

	"github.com/zippoxer/tagwire/objectgraph"
	"github.com/zippoxer/tagwire/wire"
)

// Serialize writes msg to sink as a complete envelope addressed by
// taxonomyID (0 = none), using c's type dictionary and taxonomy resolver
// (spec.md §4.6).
func (c *Context) Serialize(msg *wire.Message, taxonomyID int16, sink io.Writer) error {
	return wire.WriteEnvelope(sink, msg, taxonomyID, c.version, c.dict, c.resolver)
}

// Deserialize reads one complete envelope from source and returns it.
func (c *Context) Deserialize(source io.Reader) (*wire.Envelope, error) {
	return wire.ReadEnvelope(source, c.dict, c.resolver)
}

// SerializeGraph encodes root — an arbitrary Go value whose runtime type
// (and that of everything it transitively references) has a surrogate
// registered in c.TypeMap() — as a message, then writes it to sink as a
// complete envelope addressed by taxonomyID (spec.md §4.8).
func (c *Context) SerializeGraph(root any, taxonomyID int16, sink io.Writer) error {
	sc := objectgraph.NewSerializationContext(c.typeMap, c.strategy)
	msg, err := sc.SerializeGraph(root)
	if err != nil {
		return err
	}
	return c.Serialize(msg, taxonomyID, sink)
}

// DeserializeGraph reads one complete envelope from source and
// reconstructs the object graph it encodes (spec.md §4.9).
func (c *Context) DeserializeGraph(source io.Reader) (any, error) {
	env, err := c.Deserialize(source)
	if err != nil {
		return nil, err
	}
	dc := objectgraph.NewDeserializationContext(c.typeMap, c.strategy)
	return dc.DeserializeGraph(env.Message)
}

// EncodeMessage is a []byte convenience wrapper over Context.Serialize,
// mirroring the teacher's Bucket.Put convenience layer over
// codec.Marshal.
func EncodeMessage(c *Context, msg *wire.Message, taxonomyID int16) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Serialize(msg, taxonomyID, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeMessage is a []byte convenience wrapper over Context.Deserialize,
// mirroring the teacher's Bucket.Get convenience layer over
// codec.Unmarshal.
func DecodeMessage(c *Context, data []byte) (*wire.Envelope, error) {
	return c.Deserialize(bytes.NewReader(data))
}

// EncodeGraph is a []byte convenience wrapper over Context.SerializeGraph.
func EncodeGraph(c *Context, root any, taxonomyID int16) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.SerializeGraph(root, taxonomyID, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeGraph is a []byte convenience wrapper over Context.DeserializeGraph.
func DecodeGraph(c *Context, data []byte) (any, error) {
	return c.DeserializeGraph(bytes.NewReader(data))
}

// Package wire implements the tagged binary message format: the envelope
// header, the per-field prefix byte, the modified-UTF-8 string codec, the
// fixed-vs-variable-width type dictionary, and the envelope encoder/decoder
// built on top of them.
//
// wire has no notion of objects or graphs — it reads and writes trees of
// Field/Message values. The objectgraph package builds an object
// serializer on top of this wire format.
package wire

// Package objectgraph implements the object-graph serializer built on top
// of package wire: the type map and type-mapping strategy that connect Go
// types to wire type-names, the surrogate contract used to populate and
// reconstruct objects, and the serialization/deserialization contexts
// that drive a single graph encode or decode — the encode queue, identity
// map, inline-cycle detector, streaming sub-message facade, and the
// relative back-reference and type-delta compression schemes.
package objectgraph

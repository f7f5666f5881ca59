// Package tagwire implements a self-describing, tagged binary message
// format and an object-graph serializer on top of it.
//
// A message is a tree of named/ordinal-keyed fields whose leaves are
// typed scalars or recursive sub-messages; an envelope wraps each
// top-level message with a small header carrying a version and an
// optional taxonomy id. The wire codec itself lives in the wire
// subpackage; the object-graph engine, which encodes arbitrary typed
// objects as messages and compresses repeated types and back-references,
// lives in the objectgraph subpackage. This package bundles both behind
// a single Context.
package tagwire

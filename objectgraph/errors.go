package objectgraph

import "errors"

// Sentinel errors for the object-graph engine. Distinct and
// non-overlapping, matched with errors.Is; human detail is added at the
// call site with fmt.Errorf("...: %w", ...).
var (
	// ErrUnregisteredType is returned at encode time when no surrogate
	// is registered for an object's runtime type.
	ErrUnregisteredType = errors.New("objectgraph: no surrogate registered for type")

	// ErrInlineCycle is returned when an object appears twice on the
	// inline stack — it would recurse into itself as a nested
	// sub-message rather than terminate.
	ErrInlineCycle = errors.New("objectgraph: cycle detected in inlined objects")

	// ErrInvalidFacadeOperation is returned when a caller performs a
	// readback operation on the write-only streaming facade.
	ErrInvalidFacadeOperation = errors.New("objectgraph: streaming facade does not support readback")

	// ErrUnresolvedType is returned at decode time when neither an
	// integer type-delta nor any candidate type name resolves to a
	// registered surrogate.
	ErrUnresolvedType = errors.New("objectgraph: could not resolve object type")

	// ErrInvalidBackReference is returned when a relative back-reference
	// or type-delta points outside the range of objects emitted so far.
	ErrInvalidBackReference = errors.New("objectgraph: back-reference out of range")
)

package objectgraph

import (
	"reflect"
	"sync"
)

// TypeMap owns surrogate registrations: runtime type -> surrogate factory
// (spec §4.7). Registration is append-only; its order never affects
// correctness.
type TypeMap struct {
	mu         sync.RWMutex
	strategy   TypeMappingStrategy
	surrogates map[reflect.Type]Surrogate

	// supertypes optionally extends a type's type-delta chain (spec
	// §4.8.4) beyond itself — Go has no class inheritance, so this
	// models the one place spec.md's "inheritance chain from T up to
	// the universal root" has a natural Go analogue: a concrete type
	// advertising older/more-general names after its own. On decode a
	// chain name is used only if its own type has a registered
	// surrogate, so a supertype name helps only a receiver that
	// registered a surrogate for that supertype.
	supertypes map[reflect.Type][]reflect.Type
}

// NewTypeMap returns an empty TypeMap whose registrations are named
// through strategy. Every Register/RegisterWithSupertypes call resolves
// and caches t's wire-name (and its supertypes') immediately, so a
// strategy instance shared with a DeserializationContext can resolve
// those names on decode even if that process never itself ran an encode
// for the type — decode's string-chain path (resolveType) only ever
// looks a name up, it never learns one.
func NewTypeMap(strategy TypeMappingStrategy) *TypeMap {
	return &TypeMap{
		strategy:   strategy,
		surrogates: make(map[reflect.Type]Surrogate),
		supertypes: make(map[reflect.Type][]reflect.Type),
	}
}

// Register attaches a surrogate to t and resolves t's wire-name through
// the TypeMap's strategy, so the name is known before any encode runs.
func (tm *TypeMap) Register(t reflect.Type, s Surrogate) {
	tm.RegisterWithSupertypes(t, s)
}

// RegisterWithSupertypes attaches a surrogate to t and extends t's
// type-delta chain with supertypes, in order, after t itself. t and every
// supertype have their wire-name resolved through the strategy here, at
// registration time, not deferred to the first encode.
func (tm *TypeMap) RegisterWithSupertypes(t reflect.Type, s Surrogate, supertypes ...reflect.Type) {
	tm.mu.Lock()
	tm.surrogates[t] = s
	if len(supertypes) > 0 {
		tm.supertypes[t] = supertypes
	}
	tm.mu.Unlock()

	tm.strategy.GetName(t)
	for _, supertype := range supertypes {
		tm.strategy.GetName(supertype)
	}
}

// GetSurrogateFactory returns the surrogate registered for t, if any.
func (tm *TypeMap) GetSurrogateFactory(t reflect.Type) (Surrogate, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	s, ok := tm.surrogates[t]
	return s, ok
}

// Chain returns t's type-delta chain: t itself, then any supertypes
// registered via RegisterWithSupertypes, in order.
func (tm *TypeMap) Chain(t reflect.Type) []reflect.Type {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	chain := append([]reflect.Type{t}, tm.supertypes[t]...)
	return chain
}

// hasSurrogateFor reports whether value's dynamic type has a registered
// surrogate, which is how the streaming facade tells an object field
// from a plain wire scalar.
func (tm *TypeMap) hasSurrogateFor(value any) bool {
	_, ok := tm.GetSurrogateFactory(reflect.TypeOf(value))
	return ok
}

// RegisterSurrogate attaches a surrogate to T, saving the caller from
// spelling out reflect.TypeOf((*T)(nil)).Elem() at every call site —
// the same convenience the teacher's struct.go provides over raw
// reflection for key-field lookups.
func RegisterSurrogate[T any](tm *TypeMap, s Surrogate) {
	tm.Register(typeOf[T](), s)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

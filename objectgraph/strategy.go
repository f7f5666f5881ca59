package objectgraph

import (
	"reflect"
	"sync"
)

// TypeMappingStrategy converts a runtime type into a stable wire
// type-name and back (spec §4.7, §6).
type TypeMappingStrategy interface {
	GetName(t reflect.Type) string
	GetType(name string) (reflect.Type, bool)
}

// DefaultStrategy names a named type by its fully qualified Go name
// (package path + type name), and any other type — including a pointer
// such as *T — by its reflect String form, which carries only the
// package name. It remembers every type it has named so it
// can resolve the name back later. This mirrors the reflect.Type cache in
// the teacher's struct.go (structCache/structCacheMu): a name can only be
// resolved back to a reflect.Type the strategy has already seen, since Go
// has no standard registry from an arbitrary string to a type.
// TypeMap.Register/RegisterWithSupertypes call GetName for every
// registration (and every supertype), which is what populates byName in
// practice — before any encode or decode runs, not as a side effect of one.
type DefaultStrategy struct {
	mu     sync.RWMutex
	byType map[reflect.Type]string
	byName map[string]reflect.Type
}

// NewDefaultStrategy returns an empty DefaultStrategy.
func NewDefaultStrategy() *DefaultStrategy {
	return &DefaultStrategy{
		byType: make(map[reflect.Type]string),
		byName: make(map[string]reflect.Type),
	}
}

// GetName returns t's wire name, registering it for later
// GetType lookups if this is the first time this type has been named.
func (s *DefaultStrategy) GetName(t reflect.Type) string {
	s.mu.RLock()
	name, ok := s.byType[t]
	s.mu.RUnlock()
	if ok {
		return name
	}

	name = qualifiedName(t)
	s.mu.Lock()
	s.byType[t] = name
	s.byName[name] = t
	s.mu.Unlock()
	return name
}

// GetType resolves a previously named type back from its wire name.
func (s *DefaultStrategy) GetType(name string) (reflect.Type, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.byName[name]
	return t, ok
}

func qualifiedName(t reflect.Type) string {
	if t.PkgPath() == "" {
		// Builtin or unnamed types (e.g. int, []byte) have no package path.
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

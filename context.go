package tagwire

import (
	"github.com/zippoxer/tagwire/objectgraph"
	"github.com/zippoxer/tagwire/wire"
)

// Context bundles a type dictionary, a taxonomy resolver, and the
// object-graph type map/strategy pair. It is the single entry point for
// Serialize and Deserialize (spec.md §4.6). A Context's fields are fixed
// at construction and never mutated afterward, so the same Context may
// be shared across concurrent encode/decode operations; all per-operation
// state lives in the serialization/deserialization contexts each
// operation constructs for itself.
type Context struct {
	dict     *wire.TypeDictionary
	resolver wire.TaxonomyResolver
	typeMap  *objectgraph.TypeMap
	strategy objectgraph.TypeMappingStrategy
	version  byte
}

// ContextOption configures a Context at construction.
type ContextOption func(c *Context)

// WithTypeDictionary overrides the default wire type dictionary.
func WithTypeDictionary(d *wire.TypeDictionary) ContextOption {
	return func(c *Context) { c.dict = d }
}

// WithTaxonomyResolver attaches a taxonomy resolver. Without one, no
// name/ordinal rewriting happens on encode or decode: the taxonomy-id
// passed to Serialize is still written to the envelope header, and
// decoded messages carry only whichever of name/ordinal the encoder
// supplied.
func WithTaxonomyResolver(r wire.TaxonomyResolver) ContextOption {
	return func(c *Context) { c.resolver = r }
}

// WithTypeMap overrides the default, empty object-graph type map.
func WithTypeMap(tm *objectgraph.TypeMap) ContextOption {
	return func(c *Context) { c.typeMap = tm }
}

// WithTypeMappingStrategy overrides the default type-mapping strategy.
func WithTypeMappingStrategy(s objectgraph.TypeMappingStrategy) ContextOption {
	return func(c *Context) { c.strategy = s }
}

// WithVersion overrides the envelope version byte written by Serialize.
func WithVersion(v byte) ContextOption {
	return func(c *Context) { c.version = v }
}

// NewContext returns a Context configured by the given options. Unset
// fields default to wire.DefaultTypeDictionary, no taxonomy resolver, a
// fresh empty objectgraph.TypeMap, and objectgraph.NewDefaultStrategy.
func NewContext(options ...ContextOption) *Context {
	strategy := objectgraph.NewDefaultStrategy()
	c := &Context{
		dict:     wire.DefaultTypeDictionary(),
		typeMap:  objectgraph.NewTypeMap(strategy),
		strategy: strategy,
		version:  1,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// TypeMap returns the Context's object-graph type map, for registering
// surrogates against (typically via objectgraph.RegisterSurrogate).
func (c *Context) TypeMap() *objectgraph.TypeMap { return c.typeMap }

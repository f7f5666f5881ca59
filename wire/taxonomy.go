package wire

import "fmt"

// Taxonomy is a bijection between a set of 16-bit ordinals and field
// names, built from two parallel arrays and held as a pair of lookup
// maps, one per direction (spec §4.5). Unknown keys on
// either side return absent rather than an error — an unmapped field is
// simply left as-is by the envelope codec.
type Taxonomy struct {
	nameByOrdinal map[int16]string
	ordinalByName map[string]int16
}

// NewTaxonomy builds a Taxonomy from two equal-length parallel arrays.
func NewTaxonomy(ordinals []int16, names []string) (*Taxonomy, error) {
	if len(ordinals) != len(names) {
		return nil, fmt.Errorf("wire: taxonomy arrays have different lengths (%d ordinals, %d names)",
			len(ordinals), len(names))
	}
	t := &Taxonomy{
		nameByOrdinal: make(map[int16]string, len(ordinals)),
		ordinalByName: make(map[string]int16, len(ordinals)),
	}
	for i, ord := range ordinals {
		name := names[i]
		t.nameByOrdinal[ord] = name
		t.ordinalByName[name] = ord
	}
	return t, nil
}

// NameFor returns the name mapped to ordinal, if any.
func (t *Taxonomy) NameFor(ordinal int16) (string, bool) {
	name, ok := t.nameByOrdinal[ordinal]
	return name, ok
}

// OrdinalFor returns the ordinal mapped to name, if any.
func (t *Taxonomy) OrdinalFor(name string) (int16, bool) {
	ordinal, ok := t.ordinalByName[name]
	return ordinal, ok
}

// TaxonomyResolver maps a 16-bit taxonomy-id to a Taxonomy. Resolving id
// 0 or an unknown id returns (nil, false); the envelope codec then skips
// name/ordinal rewriting entirely (spec §4.5).
type TaxonomyResolver interface {
	Resolve(id int16) (*Taxonomy, bool)
}

// MapResolver is a TaxonomyResolver backed by a plain map, the obvious
// concrete implementation spec.md leaves to the implementer (spec §4.5
// specifies only the interface).
type MapResolver map[int16]*Taxonomy

// Resolve implements TaxonomyResolver.
func (r MapResolver) Resolve(id int16) (*Taxonomy, bool) {
	if id == 0 {
		return nil, false
	}
	t, ok := r[id]
	return t, ok
}

package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyBijection(t *testing.T) {
	tax, err := NewTaxonomy([]int16{5, 14}, []string{"Kirk", "Wylie"})
	require.NoError(t, err)

	name, ok := tax.NameFor(5)
	require.True(t, ok)
	assert.Equal(t, "Kirk", name)

	ordinal, ok := tax.OrdinalFor("Wylie")
	require.True(t, ok)
	assert.Equal(t, int16(14), ordinal)

	_, ok = tax.NameFor(999)
	assert.False(t, ok)
	_, ok = tax.OrdinalFor("nobody")
	assert.False(t, ok)
}

func TestNewTaxonomyRejectsMismatchedLengths(t *testing.T) {
	_, err := NewTaxonomy([]int16{1, 2}, []string{"only-one"})
	assert.Error(t, err)
}

func TestMapResolverIgnoresIDZero(t *testing.T) {
	tax, err := NewTaxonomy([]int16{1}, []string{"a"})
	require.NoError(t, err)
	resolver := MapResolver{0: tax, 45: tax}

	_, ok := resolver.Resolve(0)
	assert.False(t, ok, "taxonomy-id 0 always means \"none\"")

	got, ok := resolver.Resolve(45)
	assert.True(t, ok)
	assert.Same(t, tax, got)

	_, ok = resolver.Resolve(999)
	assert.False(t, ok)
}

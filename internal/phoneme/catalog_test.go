package phoneme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSymbolsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range Catalog() {
		require.NotEmpty(t, p.Symbol)
		require.NotEmpty(t, p.Description)
		assert.False(t, seen[p.Symbol], "duplicate symbol %q", p.Symbol)
		seen[p.Symbol] = true
	}
}

func TestLookup(t *testing.T) {
	p, ok := Lookup("ʃ")
	require.True(t, ok)
	assert.Equal(t, CategoryPulmonic, p.Category)
	assert.Equal(t, "voiceless postalveolar fricative", p.Description)

	_, ok = Lookup("Q9")
	assert.False(t, ok)
}

func TestByCategoryCoversCatalog(t *testing.T) {
	total := 0
	for _, c := range Categories() {
		entries := ByCategory(c)
		assert.NotEmpty(t, entries, "category %s has no entries", c)
		total += len(entries)
	}
	assert.Equal(t, len(Catalog()), total)
}

func TestFilterKnown(t *testing.T) {
	in := []string{"p", "zz", "a", "p", "", "ˈ", "☃"}
	assert.Equal(t, []string{"p", "a", "ˈ"}, FilterKnown(in))
	assert.Nil(t, FilterKnown(nil))
}

func TestCatalogReturnsCopy(t *testing.T) {
	c := Catalog()
	c[0].Symbol = "mutated"
	assert.NotEqual(t, "mutated", Catalog()[0].Symbol)
}

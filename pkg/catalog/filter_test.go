package catalog

import (
	"testing"

	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/stretchr/testify/assert"
)

func sampleEntries() []data.Entry {
	return []data.Entry{
		{ID: "1", Name: "Bulbasaur", Number: 1, Types: []string{"Grass", "Poison"}},
		{ID: "4", Name: "Charmander", Number: 4, Types: []string{"Fire"}},
		{ID: "6", Name: "Charizard", Number: 6, Types: []string{"Fire", "Flying"}},
		{ID: "7", Name: "Squirtle", Number: 7, Types: []string{"Water"}},
		{ID: "25", Name: "Pikachu", Number: 25, Types: []string{"Electric"}},
	}
}

func names(entries []data.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	entries := sampleEntries()

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"zero criteria keeps everything", Criteria{}, names(entries)},
		{"search ignores case", Criteria{Search: "CHAR"}, []string{"Charmander", "Charizard"}},
		{"search is a substring", Criteria{Search: "kach"}, []string{"Pikachu"}},
		{"type filter", Criteria{Type: "Fire"}, []string{"Charmander", "Charizard"}},
		{"type is case sensitive", Criteria{Type: "fire"}, []string{}},
		{"search and type", Criteria{Search: "izard", Type: "Flying"}, []string{"Charizard"}},
		{"no match", Criteria{Search: "mew"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(entries, tt.criteria)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestFilterIsSubsetInOrder(t *testing.T) {
	entries := sampleEntries()
	got := Filter(entries, Criteria{Search: "a"})

	// every result appears in the input, in the same relative order
	j := 0
	for _, g := range got {
		for j < len(entries) && entries[j].ID != g.ID {
			j++
		}
		assert.Less(t, j, len(entries), "%s out of order or missing", g.Name)
		j++
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	c := Criteria{Search: "char", Type: "Fire"}
	once := Filter(sampleEntries(), c)
	twice := Filter(once, c)
	assert.Equal(t, once, twice)
}

func TestFilterEmptyInput(t *testing.T) {
	assert.Equal(t, []data.Entry{}, Filter(nil, Criteria{Search: "x"}))
}

func TestTypes(t *testing.T) {
	assert.Equal(t,
		[]string{"Grass", "Poison", "Fire", "Flying", "Water", "Electric"},
		Types(sampleEntries()))
	assert.Equal(t, []string{}, Types(nil))
}

func TestSuggest(t *testing.T) {
	entries := sampleEntries()

	got := Suggest(entries, "pikchu", 3)
	assert.Equal(t, []string{"Pikachu"}, got)

	assert.Empty(t, Suggest(entries, "   ", 3))
	assert.Empty(t, Suggest(entries, "char", 0))
	assert.Len(t, Suggest(entries, "c", 1), 1)
}

func TestCriteria(t *testing.T) {
	c := Criteria{}.WithSearch("pika").WithType("Electric")
	assert.Equal(t, Criteria{Search: "pika", Type: "Electric"}, c)
	assert.False(t, c.IsZero())
	assert.True(t, c.Clear().IsZero())

	store := NewCriteriaStore()
	store.Set(c)
	got := store.Update(func(c Criteria) Criteria { return c.WithType("") })
	assert.Equal(t, Criteria{Search: "pika"}, got)
	assert.Equal(t, got, store.Get())
}

package components

import (
	"strings"
	"testing"

	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/data"
)

func testItems(n int) []data.Entry {
	names := []string{"Bulbasaur", "Ivysaur", "Venusaur", "Charmander", "Charmeleon", "Charizard", "Squirtle", "Wartortle"}
	items := make([]data.Entry, n)
	for i := 0; i < n; i++ {
		items[i] = data.Entry{ID: names[i], Name: names[i], Number: i + 1, Types: []string{"Grass"}}
	}
	return items
}

func TestNewEntryList(t *testing.T) {
	list := NewEntryList(styles.NewTheme(styles.Light), nil)

	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0, got %d", list.SelectedIndex)
	}
	if len(list.Items) != 0 {
		t.Errorf("Expected 0 items, got %d", len(list.Items))
	}
	if list.View() != "" {
		t.Error("Expected empty view for empty list")
	}
}

func TestEntryListSetItemsClampsSelection(t *testing.T) {
	list := NewEntryList(styles.NewTheme(styles.Light), nil)
	list.SetItems(testItems(3))
	list.SelectedIndex = 2

	list.SetItems(testItems(1))
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex clamped to 0, got %d", list.SelectedIndex)
	}

	list.SetItems(nil)
	if list.Selected() != nil {
		t.Error("Expected no selection for empty list")
	}
}

func TestEntryListNavigationWraps(t *testing.T) {
	list := NewEntryList(styles.NewTheme(styles.Light), nil)
	list.SetItems(testItems(3))

	list.Prev()
	if list.SelectedIndex != 2 {
		t.Errorf("Expected Prev to wrap to 2, got %d", list.SelectedIndex)
	}
	list.Next()
	if list.SelectedIndex != 0 {
		t.Errorf("Expected Next to wrap to 0, got %d", list.SelectedIndex)
	}
	list.Next()
	if got := list.Selected(); got == nil || got.Name != "Ivysaur" {
		t.Errorf("Expected Ivysaur selected, got %+v", got)
	}
}

func TestEntryListViewShowsFavorites(t *testing.T) {
	list := NewEntryList(styles.NewTheme(styles.Light), func(name string) bool {
		return name == "Ivysaur"
	})
	list.SetItems(testItems(2))

	view := list.View()
	if !strings.Contains(view, "#001") || !strings.Contains(view, "Bulbasaur") {
		t.Error("Expected view to contain number and name")
	}
	if strings.Count(view, "★") != 1 {
		t.Errorf("Expected exactly one favorite mark, got %d", strings.Count(view, "★"))
	}
}

func TestEntryListWindowFollowsSelection(t *testing.T) {
	list := NewEntryList(styles.NewTheme(styles.Light), nil)
	list.Height = 2 * cardHeight
	list.SetItems(testItems(8))
	list.SelectedIndex = 7

	view := list.View()
	if strings.Contains(view, "Bulbasaur") {
		t.Error("Expected first entry scrolled out of view")
	}
	if !strings.Contains(view, "Wartortle") {
		t.Error("Expected selected entry in view")
	}
	if !strings.Contains(view, "Showing 7-8 of 8") {
		t.Errorf("Expected window footer, got %q", view)
	}
}

func TestEntryListReveal(t *testing.T) {
	list := NewEntryList(styles.NewTheme(styles.Light), nil)
	list.SetItems(testItems(3))
	list.HideAll()

	if strings.Contains(list.View(), "Bulbasaur") {
		t.Error("Expected hidden cards")
	}

	if !list.Reveal() {
		t.Error("Expected more cards to reveal")
	}
	view := list.View()
	if !strings.Contains(view, "Bulbasaur") || strings.Contains(view, "Ivysaur") {
		t.Error("Expected only the first card revealed")
	}

	list.Reveal()
	if list.Reveal() {
		t.Error("Expected reveal to finish after the last card")
	}
	if !strings.Contains(list.View(), "Venusaur") {
		t.Error("Expected every card revealed")
	}
}

func TestSkeleton(t *testing.T) {
	view := Skeleton(styles.NewTheme(styles.Dark), 40, 3)
	if strings.Count(view, "\n") != 3*cardHeight {
		t.Errorf("Expected 3 cards of %d lines, got %q", cardHeight, view)
	}
	if !strings.Contains(view, "░") {
		t.Error("Expected placeholder blocks")
	}
}

func TestStatBar(t *testing.T) {
	bar := StatBar(styles.NewTheme(styles.Light), "Max CP", 50, 100, 10)
	if !strings.HasPrefix(bar, "Max CP ") {
		t.Errorf("Unexpected label in %q", bar)
	}
	if strings.Count(bar, "█") != 5 {
		t.Errorf("Expected half-filled bar, got %q", bar)
	}
}

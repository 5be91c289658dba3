package screens

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/pokedex/pkg/catalog"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/services"
	"github.com/kerbaras/pokedex/pkg/sources"
)

type fakePokedex struct {
	mu sync.Mutex

	entries     []data.Entry
	listErr     error
	details     map[string]*data.Detail
	detailErr   error
	favorites   map[string]bool
	toggleErr   error
	suggestions []string

	progress   chan services.ExportProgress
	exportPath string
	exportErr  error
	exported   []string
}

func newFakePokedex() *fakePokedex {
	return &fakePokedex{
		entries:   testEntries(),
		details:   map[string]*data.Detail{"Pikachu": testDetail()},
		favorites: make(map[string]bool),
		progress:  make(chan services.ExportProgress, 10),
	}
}

func (f *fakePokedex) ListEntries(ctx context.Context) ([]data.Entry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

func (f *fakePokedex) Suggest(term string, limit int) []string {
	return f.suggestions
}

func (f *fakePokedex) GetDetail(ctx context.Context, name string) (*data.Detail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	d, ok := f.details[name]
	if !ok {
		return nil, &sources.NotFoundError{Name: name}
	}
	return d, nil
}

func (f *fakePokedex) IsFavorited(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.favorites[name]
}

func (f *fakePokedex) ToggleFavorite(ctx context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	current := f.favorites[name]
	if f.toggleErr != nil {
		return current, &catalog.PersistenceError{Op: "write", Key: name, Err: f.toggleErr}
	}
	f.favorites[name] = !current
	return !current, nil
}

func (f *fakePokedex) Favorites(ctx context.Context) ([]*data.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*data.Favorite
	for _, e := range f.entries {
		if f.favorites[e.Name] {
			out = append(out, &data.Favorite{Name: e.Name, Favorited: true})
		}
	}
	return out, nil
}

func (f *fakePokedex) Stats(ctx context.Context) (*data.Stats, error) {
	favorites, _ := f.Favorites(ctx)
	return &data.Stats{Favorites: len(favorites)}, nil
}

func (f *fakePokedex) Sprite(ctx context.Context, imageURL string, width, height int) (string, error) {
	return "[sprite]", nil
}

func (f *fakePokedex) ExportFavorites(ctx context.Context, outputDir string) (string, error) {
	f.mu.Lock()
	f.exported = append(f.exported, outputDir)
	f.mu.Unlock()
	if f.exportErr != nil {
		return "", f.exportErr
	}
	return f.exportPath, nil
}

func (f *fakePokedex) ExportProgress() <-chan services.ExportProgress {
	return f.progress
}

func testEntries() []data.Entry {
	return []data.Entry{
		{ID: "1", Name: "Bulbasaur", Number: 1, Types: []string{"Grass", "Poison"}},
		{ID: "4", Name: "Charmander", Number: 4, Types: []string{"Fire"}},
		{ID: "7", Name: "Squirtle", Number: 7, Types: []string{"Water"}},
		{ID: "25", Name: "Pikachu", Number: 25, Image: "http://img/25.png", Types: []string{"Electric"}},
	}
}

func testDetail() *data.Detail {
	return &data.Detail{
		Entry:          data.Entry{ID: "25", Name: "Pikachu", Number: 25, Image: "http://img/25.png", Types: []string{"Electric"}},
		Classification: "Mouse Pokémon",
		Height:         data.Range{Minimum: "0.35m", Maximum: "0.45m"},
		Weight:         data.Range{Minimum: "5.25kg", Maximum: "6.75kg"},
		MaxCP:          938,
		MaxHP:          1002,
		Resistant:      []string{"Electric", "Flying", "Steel"},
		Weaknesses:     []string{"Ground"},
		Evolutions:     []data.Entry{{ID: "26", Name: "Raichu", Number: 26}},
	}
}

var errOffline = errors.New("network unreachable")

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

var windowSize = tea.WindowSizeMsg{Width: 100, Height: 40}

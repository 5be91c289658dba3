package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/notify"
	"github.com/kerbaras/pokedex/pkg/sources"
)

type mockCatalog struct {
	listFunc   func(first int) ([]data.Entry, error)
	detailFunc func(name string) (*data.Detail, error)

	mu        sync.Mutex
	listCalls int
}

func (m *mockCatalog) ListEntries(ctx context.Context, first int) ([]data.Entry, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	if m.listFunc != nil {
		return m.listFunc(first)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCatalog) GetDetail(ctx context.Context, name string) (*data.Detail, error) {
	if m.detailFunc != nil {
		return m.detailFunc(name)
	}
	return nil, &sources.NotFoundError{Name: name}
}

func (m *mockCatalog) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

type mockStore struct {
	mu        sync.Mutex
	favorites map[string]bool
	count     int
	setErr    error
	listErr   error
	closed    bool
}

func newMockStore() *mockStore {
	return &mockStore{favorites: make(map[string]bool)}
}

func (m *mockStore) GetFavorite(ctx context.Context, name string) (bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.favorites[name]
	return v, ok, nil
}

func (m *mockStore) SetFavorite(ctx context.Context, name string, favorited bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.favorites[name] = favorited
	return nil
}

func (m *mockStore) ListFavorites(ctx context.Context) ([]*data.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*data.Favorite
	for name, v := range m.favorites {
		if v {
			out = append(out, &data.Favorite{Name: name, Favorited: true})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockStore) GetStats(ctx context.Context) (*data.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &data.Stats{Favorites: m.count}, nil
}

func (m *mockStore) IncrementFavoriteCount(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count++
	return nil
}

func (m *mockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

type mockDispatcher struct {
	permission notify.Permission

	mu    sync.Mutex
	sends []string
}

func (m *mockDispatcher) RequestPermission() notify.Permission { return m.permission }

func (m *mockDispatcher) Send(title, body string) {
	if m.permission != notify.Granted {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, title+"|"+body)
}

func (m *mockDispatcher) sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sends...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEntries() []data.Entry {
	return []data.Entry{
		{ID: "1", Name: "Bulbasaur", Number: 1, Types: []string{"Grass", "Poison"}},
		{ID: "4", Name: "Charmander", Number: 4, Types: []string{"Fire"}},
		{ID: "6", Name: "Charizard", Number: 6, Types: []string{"Fire", "Flying"}},
		{ID: "25", Name: "Pikachu", Number: 25, Types: []string{"Electric"}},
	}
}

func testDetail(name string, number int, image string) *data.Detail {
	return &data.Detail{
		Entry:          data.Entry{ID: name, Name: name, Number: number, Image: image, Types: []string{"Electric"}},
		Classification: "Mouse Pokémon",
		MaxCP:          777,
		MaxHP:          887,
	}
}

func createTestPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 203, B: 5, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

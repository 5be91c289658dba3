package screens

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/catalog"
	"github.com/kerbaras/pokedex/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDetails(t *testing.T, dex *fakePokedex, name string) *DetailsScreen {
	t.Helper()
	s := NewDetailsScreen(dex, styles.NewTheme(styles.Light), name)
	s.Update(windowSize)
	s.Init()
	return s
}

func TestDetailsLoads(t *testing.T) {
	dex := newFakePokedex()
	dex.favorites["Pikachu"] = true
	s := newTestDetails(t, dex, "Pikachu")

	_, cmd := s.Update(s.loadDetail())
	require.Equal(t, catalog.Loaded, s.Status())
	assert.True(t, s.Favorited())
	require.NotNil(t, cmd, "sprite should load")

	s.Update(cmd())
	view := s.View()
	assert.Contains(t, view, "#025 Pikachu")
	assert.Contains(t, view, "Mouse Pokémon")
	assert.Contains(t, view, "0.35m – 0.45m")
	assert.Contains(t, view, "Raichu")
	assert.Contains(t, view, "[sprite]")
}

func TestDetailsToggleFavorite(t *testing.T) {
	dex := newFakePokedex()
	s := newTestDetails(t, dex, "Pikachu")
	s.Update(s.loadDetail())

	_, cmd := s.Update(keyRunes("f"))
	require.NotNil(t, cmd)
	assert.True(t, s.Favorited(), "flag flips before the write completes")

	// a second press waits for the first write
	_, again := s.Update(keyRunes("f"))
	assert.Nil(t, again)

	s.Update(cmd())
	assert.True(t, s.Favorited())
	assert.True(t, dex.IsFavorited("Pikachu"))
}

func TestDetailsToggleRollsBackOnWriteFailure(t *testing.T) {
	dex := newFakePokedex()
	dex.toggleErr = errors.New("disk full")
	s := newTestDetails(t, dex, "Pikachu")
	s.Update(s.loadDetail())

	_, cmd := s.Update(keyRunes("f"))
	require.NotNil(t, cmd)
	assert.True(t, s.Favorited())

	s.Update(cmd())
	assert.False(t, s.Favorited())
	assert.Contains(t, s.View(), "Could not save favorite")
}

func TestDetailsIgnoresStaleMessages(t *testing.T) {
	dex := newFakePokedex()
	s := newTestDetails(t, dex, "Pikachu")
	s.Update(s.loadDetail())

	s.Update(favoriteToggledMsg{name: "Raichu", favorited: true})
	assert.False(t, s.Favorited())

	s.Update(detailLoadedMsg{name: "Raichu", err: errOffline})
	assert.Equal(t, catalog.Loaded, s.Status())
}

func TestDetailsRetryOnlyForFetchErrors(t *testing.T) {
	dex := newFakePokedex()
	dex.detailErr = &sources.FetchError{Op: "detail", Err: errOffline}
	s := newTestDetails(t, dex, "Pikachu")

	s.Update(s.loadDetail())
	assert.Equal(t, catalog.Failed, s.Status())
	assert.Contains(t, s.View(), "Press r to retry")

	_, cmd := s.Update(keyRunes("r"))
	assert.NotNil(t, cmd)
	assert.Equal(t, catalog.Loading, s.Status())
}

func TestDetailsNotFound(t *testing.T) {
	s := newTestDetails(t, newFakePokedex(), "Missingno")

	s.Update(s.loadDetail())
	assert.Equal(t, catalog.Failed, s.Status())
	assert.Contains(t, s.View(), `No Pokémon named "Missingno"`)

	_, cmd := s.Update(keyRunes("r"))
	assert.Nil(t, cmd)
	assert.Equal(t, catalog.Failed, s.Status())
}

func TestDetailsOpenEvolution(t *testing.T) {
	s := newTestDetails(t, newFakePokedex(), "Pikachu")
	s.Update(s.loadDetail())

	_, cmd := s.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, SwitchScreenMsg{Screen: "details", Data: "Raichu"}, cmd())
}

func TestDetailsBack(t *testing.T) {
	s := newTestDetails(t, newFakePokedex(), "Pikachu")

	_, cmd := s.Update(key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.Equal(t, SwitchScreenMsg{Screen: "back"}, cmd())
}

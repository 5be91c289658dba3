package screens

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHome(t *testing.T, dex *fakePokedex, opts HomeOptions) *HomeScreen {
	t.Helper()
	h := NewHomeScreen(dex, styles.NewTheme(styles.Light), nil, opts)
	h.Init()
	t.Cleanup(h.Suspend)
	h.Update(windowSize)
	return h
}

func loaded(t *testing.T, h *HomeScreen) {
	t.Helper()
	h.Update(h.loadEntries())
	require.Equal(t, catalog.Loaded, h.Status())
}

func TestHomeLoadsEntries(t *testing.T) {
	h := newTestHome(t, newFakePokedex(), HomeOptions{})
	assert.Equal(t, catalog.Loading, h.Status())
	assert.Contains(t, h.View(), "Loading Pokémon")

	loaded(t, h)
	assert.Len(t, h.Visible(), 4)
	assert.Contains(t, h.View(), "Pikachu")
}

func TestHomeSearchCommitFilters(t *testing.T) {
	h := newTestHome(t, newFakePokedex(), HomeOptions{})
	loaded(t, h)

	_, cmd := h.Update(searchCommittedMsg{term: "CHAR"})
	assert.NotNil(t, cmd, "listener should be re-armed")
	require.Len(t, h.Visible(), 1)
	assert.Equal(t, "Charmander", h.Visible()[0].Name)
	assert.Equal(t, "CHAR", h.Criteria().Search)
}

func TestHomeTypingCommitsOnlyLatestTerm(t *testing.T) {
	h := newTestHome(t, newFakePokedex(), HomeOptions{Debounce: 20 * time.Millisecond})
	loaded(t, h)

	for _, r := range "pika" {
		h.Update(keyRunes(string(r)))
	}
	// nothing applied until the debounce fires
	assert.Len(t, h.Visible(), 4)

	got := make(chan tea.Msg, 1)
	go func() { got <- h.listenForCommit() }()

	select {
	case msg := <-got:
		require.Equal(t, searchCommittedMsg{term: "pika"}, msg)
		h.Update(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("search was never committed")
	}

	require.Len(t, h.Visible(), 1)
	assert.Equal(t, "Pikachu", h.Visible()[0].Name)
}

func TestHomeSuspendCancelsPendingCommit(t *testing.T) {
	h := newTestHome(t, newFakePokedex(), HomeOptions{Debounce: 20 * time.Millisecond})
	loaded(t, h)

	h.Update(keyRunes("s"))
	h.Suspend()
	time.Sleep(60 * time.Millisecond)

	select {
	case term := <-h.commits:
		t.Fatalf("unexpected commit %q", term)
	default:
	}
}

func TestHomeGlobalStoreSharesCriteria(t *testing.T) {
	shared := catalog.NewCriteriaStore()
	h := NewHomeScreen(newFakePokedex(), styles.NewTheme(styles.Light), shared, HomeOptions{UseGlobalStore: true})
	h.Init()
	defer h.Suspend()
	loaded(t, h)

	h.Update(searchCommittedMsg{term: "squ"})
	assert.Equal(t, "squ", shared.Get().Search)

	local := NewHomeScreen(newFakePokedex(), styles.NewTheme(styles.Light), shared, HomeOptions{})
	assert.Equal(t, catalog.Criteria{}, local.Criteria())
}

func TestHomeTypeFilterCycles(t *testing.T) {
	h := newTestHome(t, newFakePokedex(), HomeOptions{ShowTypeFilter: true})
	loaded(t, h)

	h.Update(key(tea.KeyCtrlT))
	assert.Equal(t, "Grass", h.Criteria().Type)
	require.Len(t, h.Visible(), 1)
	assert.Equal(t, "Bulbasaur", h.Visible()[0].Name)

	// Poison, Fire, Water, Electric, then back to all
	for i := 0; i < 5; i++ {
		h.Update(key(tea.KeyCtrlT))
	}
	assert.Equal(t, "", h.Criteria().Type)
	assert.Len(t, h.Visible(), 4)
}

func TestHomeTypeFilterDisabled(t *testing.T) {
	h := newTestHome(t, newFakePokedex(), HomeOptions{})
	loaded(t, h)

	h.Update(key(tea.KeyCtrlT))
	assert.Equal(t, "", h.Criteria().Type)
}

func TestHomeClearResetsCriteria(t *testing.T) {
	h := newTestHome(t, newFakePokedex(), HomeOptions{ShowTypeFilter: true})
	loaded(t, h)

	h.Update(searchCommittedMsg{term: "zzz"})
	h.Update(key(tea.KeyCtrlT))
	h.Update(key(tea.KeyCtrlX))

	assert.True(t, h.Criteria().IsZero())
	assert.Len(t, h.Visible(), 4)
}

func TestHomeEmptyStateSuggests(t *testing.T) {
	dex := newFakePokedex()
	dex.suggestions = []string{"Pikachu"}
	h := newTestHome(t, dex, HomeOptions{})
	loaded(t, h)

	h.Update(searchCommittedMsg{term: "pikchu"})
	view := h.View()
	assert.Contains(t, view, `No Pokémon found for "pikchu"`)
	assert.Contains(t, view, "Did you mean: Pikachu?")
}

func TestHomeLoadFailureAndRetry(t *testing.T) {
	dex := newFakePokedex()
	dex.listErr = errOffline
	h := newTestHome(t, dex, HomeOptions{})

	h.Update(h.loadEntries())
	assert.Equal(t, catalog.Failed, h.Status())
	assert.Contains(t, h.View(), "Press ctrl+r to retry")

	dex.listErr = nil
	_, cmd := h.Update(key(tea.KeyCtrlR))
	assert.NotNil(t, cmd)
	assert.Equal(t, catalog.Loading, h.Status())

	loaded(t, h)
}

func TestHomeRetryIgnoredWhenLoaded(t *testing.T) {
	h := newTestHome(t, newFakePokedex(), HomeOptions{})
	loaded(t, h)

	_, cmd := h.Update(key(tea.KeyCtrlR))
	assert.Nil(t, cmd)
	assert.Equal(t, catalog.Loaded, h.Status())
}

func TestHomeEnterOpensDetails(t *testing.T) {
	h := newTestHome(t, newFakePokedex(), HomeOptions{})
	loaded(t, h)

	h.Update(key(tea.KeyDown))
	_, cmd := h.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, SwitchScreenMsg{Screen: "details", Data: "Charmander"}, cmd())
}

func TestHomeEscTogglesCapture(t *testing.T) {
	h := newTestHome(t, newFakePokedex(), HomeOptions{})
	assert.True(t, h.Capturing())

	h.Update(key(tea.KeyEsc))
	assert.False(t, h.Capturing())

	h.Update(keyRunes("/"))
	assert.True(t, h.Capturing())
}

func TestHomeAnimatesCards(t *testing.T) {
	h := newTestHome(t, newFakePokedex(), HomeOptions{AnimateCards: true})

	_, cmd := h.Update(h.loadEntries())
	assert.NotNil(t, cmd, "reveal tick expected")

	for i := 0; i < 10 && cmd != nil; i++ {
		_, cmd = h.Update(revealMsg{})
	}
	assert.Nil(t, cmd)
	assert.Contains(t, h.View(), "Squirtle")
}

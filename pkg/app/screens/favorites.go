package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/pokedex/pkg/app/components"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/services"
)

type FavoritesScreen struct {
	dex       Pokedex
	theme     *styles.Theme
	exportDir string

	favorites []*data.Favorite
	stats     *data.Stats
	selected  int
	loaded    bool

	progress   *components.ProgressTracker
	listening  bool
	exporting  bool
	exportPath string

	width  int
	height int
	err    error
}

func NewFavoritesScreen(dex Pokedex, theme *styles.Theme, exportDir string) *FavoritesScreen {
	return &FavoritesScreen{
		dex:       dex,
		theme:     theme,
		exportDir: exportDir,
		progress:  components.NewProgressTracker(theme, 80),
	}
}

func (s *FavoritesScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.loadFavorites}
	if !s.listening {
		s.listening = true
		cmds = append(cmds, s.listenForProgress)
	}
	return tea.Batch(cmds...)
}

func (s *FavoritesScreen) Favorites() []*data.Favorite {
	return s.favorites
}

func (s *FavoritesScreen) selectedFavorite() *data.Favorite {
	if s.selected < 0 || s.selected >= len(s.favorites) {
		return nil
	}
	return s.favorites[s.selected]
}

func (s *FavoritesScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.progress.SetWidth(msg.Width - 4)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.favorites)-1 {
				s.selected++
			}
		case "r":
			return s, s.loadFavorites
		case "enter":
			if f := s.selectedFavorite(); f != nil {
				return s, switchTo("details", f.Name)
			}
		case "f":
			if f := s.selectedFavorite(); f != nil {
				return s, s.unfavorite(f.Name)
			}
		case "e":
			if s.exporting || len(s.favorites) == 0 {
				return s, nil
			}
			s.exporting = true
			s.exportPath = ""
			s.err = nil
			s.progress.Clear()
			return s, s.export
		}

	case favoritesLoadedMsg:
		s.loaded = true
		s.err = msg.err
		if msg.err == nil {
			s.favorites = msg.favorites
			s.stats = msg.stats
		}
		if s.selected >= len(s.favorites) {
			s.selected = max(len(s.favorites)-1, 0)
		}

	case unfavoritedMsg:
		if msg.err != nil {
			s.err = msg.err
		}
		return s, s.loadFavorites

	case services.ExportProgress:
		s.progress.Update(msg)
		return s, s.listenForProgress

	case exportDoneMsg:
		s.exporting = false
		s.exportPath = msg.path
		s.err = msg.err
	}

	return s, nil
}

func (s *FavoritesScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := s.theme.Title.Render("⭐ Favorites")
	if s.stats != nil {
		header += " " + s.theme.Muted.Render(fmt.Sprintf("(favorited %d times)", s.stats.Favorites))
	}

	var errorMsg string
	if s.err != nil {
		errorMsg = s.theme.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	}

	var body string
	switch {
	case !s.loaded:
		body = components.Skeleton(s.theme, s.width, 2)
	case len(s.favorites) == 0:
		body = s.theme.Muted.Render("No favorites yet. Press f on a Pokémon to add it.")
	default:
		body = s.renderList()
	}

	var saved string
	if s.exportPath != "" && !s.progress.HasActive() {
		saved = s.theme.StatusOK.Render("Field guide saved to "+s.exportPath) + "\n"
	}

	help := s.theme.Help.Render(
		"↑/k ↓/j: navigate • enter: details • f: unfavorite • e: export field guide • r: refresh • tab: pokédex",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s%s\n%s",
		header,
		errorMsg,
		body,
		s.progress.View(),
		saved,
		help,
	)
}

func (s *FavoritesScreen) renderList() string {
	var b strings.Builder
	for i, f := range s.favorites {
		line := fmt.Sprintf("%s %s", s.theme.FavoriteMark(true), f.Name)
		if i == s.selected {
			line = s.theme.Selected.Render(line)
		} else {
			line = s.theme.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// Messages
type favoritesLoadedMsg struct {
	favorites []*data.Favorite
	stats     *data.Stats
	err       error
}

type unfavoritedMsg struct {
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

// Commands
func (s *FavoritesScreen) loadFavorites() tea.Msg {
	ctx := context.Background()
	favorites, err := s.dex.Favorites(ctx)
	if err != nil {
		return favoritesLoadedMsg{err: err}
	}
	stats, err := s.dex.Stats(ctx)
	if err != nil {
		return favoritesLoadedMsg{err: err}
	}
	return favoritesLoadedMsg{favorites: favorites, stats: stats}
}

func (s *FavoritesScreen) unfavorite(name string) tea.Cmd {
	return func() tea.Msg {
		_, err := s.dex.ToggleFavorite(context.Background(), name)
		return unfavoritedMsg{err: err}
	}
}

func (s *FavoritesScreen) export() tea.Msg {
	path, err := s.dex.ExportFavorites(context.Background(), s.exportDir)
	return exportDoneMsg{path: path, err: err}
}

func (s *FavoritesScreen) listenForProgress() tea.Msg {
	progress, ok := <-s.dex.ExportProgress()
	if !ok {
		return nil
	}
	return progress
}

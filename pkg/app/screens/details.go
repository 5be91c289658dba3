package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/pokedex/pkg/app/components"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/catalog"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/sources"
)

const (
	maxCPScale = 4000
	maxHPScale = 4200

	spriteWidth  = 32
	spriteHeight = 16
)

type DetailsScreen struct {
	dex   Pokedex
	theme *styles.Theme
	name  string

	spinner   spinner.Model
	status    catalog.LoadStatus
	detail    *data.Detail
	favorited bool
	saving    bool
	sprite    string
	selected  int

	err     error
	warning string

	width  int
	height int
}

func NewDetailsScreen(dex Pokedex, theme *styles.Theme, name string) *DetailsScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &DetailsScreen{
		dex:      dex,
		theme:    theme,
		name:     name,
		spinner:  sp,
		status:   catalog.Idle,
		selected: -1,
	}
}

func (s *DetailsScreen) Init() tea.Cmd {
	s.status = catalog.Loading
	s.err = nil
	return tea.Batch(s.loadDetail, s.spinner.Tick)
}

func (s *DetailsScreen) Name() string {
	return s.name
}

func (s *DetailsScreen) Status() catalog.LoadStatus {
	return s.status
}

func (s *DetailsScreen) Favorited() bool {
	return s.favorited
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case spinner.TickMsg:
		if s.status != catalog.Loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case detailLoadedMsg:
		if msg.name != s.name {
			return s, nil
		}
		if msg.err != nil {
			s.status = catalog.Failed
			s.err = msg.err
			return s, nil
		}
		s.status = catalog.Loaded
		s.detail = msg.detail
		s.favorited = s.dex.IsFavorited(msg.detail.Name)
		s.selected = -1
		if len(msg.detail.Evolutions) > 0 {
			s.selected = 0
		}
		if msg.detail.Image != "" {
			return s, s.loadSprite(msg.detail.Image)
		}

	case spriteLoadedMsg:
		if msg.name != s.name || msg.err != nil {
			return s, nil
		}
		s.sprite = msg.art

	case favoriteToggledMsg:
		if msg.name != s.name {
			return s, nil
		}
		s.saving = false
		s.favorited = msg.favorited
		if msg.err != nil {
			s.warning = fmt.Sprintf("Could not save favorite: %s", msg.err)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return s, switchTo("back", nil)
		case "f":
			if s.status != catalog.Loaded || s.saving {
				return s, nil
			}
			s.favorited = !s.favorited
			s.saving = true
			s.warning = ""
			return s, s.toggleFavorite(s.detail.Name)
		case "r":
			if s.status == catalog.Failed && sources.IsRetryable(s.err) {
				return s, s.Init()
			}
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.detail != nil && s.selected < len(s.detail.Evolutions)-1 {
				s.selected++
			}
		case "enter":
			if s.detail != nil && s.selected >= 0 && s.selected < len(s.detail.Evolutions) {
				return s, switchTo("details", s.detail.Evolutions[s.selected].Name)
			}
		}
	}

	return s, nil
}

func (s *DetailsScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	switch s.status {
	case catalog.Failed:
		return s.renderError()
	case catalog.Loaded:
	default:
		return fmt.Sprintf("%s %s\n\n%s",
			s.spinner.View(),
			s.theme.StatusLoading.Render(fmt.Sprintf("Loading %s...", s.name)),
			components.Skeleton(s.theme, s.width, 1),
		)
	}

	d := s.detail
	header := s.theme.Title.Render(fmt.Sprintf("#%03d %s", d.Number, d.Name)) + " " +
		s.theme.FavoriteMark(s.favorited)

	badges := make([]string, len(d.Types))
	for i, t := range d.Types {
		badges[i] = s.theme.TypeBadge(t)
	}

	var warning string
	if s.warning != "" {
		warning = s.theme.Warning.Render(s.warning) + "\n\n"
	}

	info := s.renderInfo()
	body := info
	if s.sprite != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, s.sprite, "  ", info)
	}

	help := s.theme.Help.Render("f: favorite • ↑/↓: evolutions • enter: open evolution • esc: back")

	return fmt.Sprintf("%s\n%s\n%s\n\n%s%s\n\n%s\n%s",
		header,
		s.theme.Subtitle.Render(d.Classification),
		strings.Join(badges, " "),
		warning,
		body,
		s.renderEvolutions(),
		help,
	)
}

func (s *DetailsScreen) renderInfo() string {
	d := s.detail
	barWidth := max(s.width/4, 10)

	lines := []string{
		s.theme.Text.Render(fmt.Sprintf("Height  %s", formatRange(d.Height))),
		s.theme.Text.Render(fmt.Sprintf("Weight  %s", formatRange(d.Weight))),
		"",
		components.StatBar(s.theme, "Max CP", d.MaxCP, maxCPScale, barWidth),
		components.StatBar(s.theme, "Max HP", d.MaxHP, maxHPScale, barWidth),
	}
	if len(d.Resistant) > 0 {
		lines = append(lines, "", s.theme.Muted.Render("Resistant: "+strings.Join(d.Resistant, ", ")))
	}
	if len(d.Weaknesses) > 0 {
		lines = append(lines, s.theme.Muted.Render("Weak to: "+strings.Join(d.Weaknesses, ", ")))
	}

	return s.theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (s *DetailsScreen) renderEvolutions() string {
	evolutions := s.detail.Evolutions
	if len(evolutions) == 0 {
		return s.theme.Muted.Render("No further evolutions")
	}

	var b strings.Builder
	b.WriteString(s.theme.Subtitle.Render("Evolutions"))
	b.WriteString("\n")
	for i, evo := range evolutions {
		line := fmt.Sprintf("#%03d %s", evo.Number, evo.Name)
		if i == s.selected {
			line = s.theme.Selected.Render("▸ " + line)
		} else {
			line = s.theme.Text.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (s *DetailsScreen) renderError() string {
	var lines []string
	if sources.IsNotFound(s.err) {
		lines = []string{
			s.theme.StatusError.Render(fmt.Sprintf("No Pokémon named %q", s.name)),
		}
	} else {
		lines = []string{
			s.theme.StatusError.Render(fmt.Sprintf("Could not load %s", s.name)),
			s.theme.Muted.Render(s.err.Error()),
		}
		if sources.IsRetryable(s.err) {
			lines = append(lines, "", s.theme.Text.Render("Press r to retry"))
		}
	}
	card := s.theme.Card.Width(max(s.width-4, 20)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return card + "\n" + s.theme.Help.Render("esc: back")
}

func formatRange(r data.Range) string {
	switch {
	case r.Minimum == "" && r.Maximum == "":
		return "?"
	case r.Minimum == r.Maximum || r.Maximum == "":
		return r.Minimum
	case r.Minimum == "":
		return r.Maximum
	}
	return r.Minimum + " – " + r.Maximum
}

// Messages
type detailLoadedMsg struct {
	name   string
	detail *data.Detail
	err    error
}

type spriteLoadedMsg struct {
	name string
	art  string
	err  error
}

type favoriteToggledMsg struct {
	name      string
	favorited bool
	err       error
}

// Commands
func (s *DetailsScreen) loadDetail() tea.Msg {
	detail, err := s.dex.GetDetail(context.Background(), s.name)
	return detailLoadedMsg{name: s.name, detail: detail, err: err}
}

func (s *DetailsScreen) loadSprite(url string) tea.Cmd {
	name := s.name
	return func() tea.Msg {
		art, err := s.dex.Sprite(context.Background(), url, spriteWidth, spriteHeight)
		return spriteLoadedMsg{name: name, art: art, err: err}
	}
}

func (s *DetailsScreen) toggleFavorite(key string) tea.Cmd {
	name := s.name
	return func() tea.Msg {
		favorited, err := s.dex.ToggleFavorite(context.Background(), key)
		return favoriteToggledMsg{name: name, favorited: favorited, err: err}
	}
}

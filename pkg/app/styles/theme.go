package styles

import "github.com/charmbracelet/lipgloss"

const (
	Light = "light"
	Dark  = "dark"
)

// Palette is the set of colors a theme is built from.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Foreground lipgloss.Color
}

var (
	LightPalette = Palette{
		Primary:    lipgloss.Color("#E3350D"),
		Secondary:  lipgloss.Color("#30A7D7"),
		Success:    lipgloss.Color("#4DAD5B"),
		Warning:    lipgloss.Color("#EE9A1D"),
		Error:      lipgloss.Color("#C62828"),
		Info:       lipgloss.Color("#1565C0"),
		Muted:      lipgloss.Color("#8A8A8A"),
		Surface:    lipgloss.Color("#F2F2F2"),
		Foreground: lipgloss.Color("#212121"),
	}

	DarkPalette = Palette{
		Primary:    lipgloss.Color("#FF6B6B"),
		Secondary:  lipgloss.Color("#C792EA"),
		Success:    lipgloss.Color("#C3E88D"),
		Warning:    lipgloss.Color("#FFCB6B"),
		Error:      lipgloss.Color("#F07178"),
		Info:       lipgloss.Color("#82AAFF"),
		Muted:      lipgloss.Color("#546E7A"),
		Surface:    lipgloss.Color("#37474F"),
		Foreground: lipgloss.Color("#EEFFFF"),
	}

	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

// typeColors follows the in-game type palette.
var typeColors = map[string]lipgloss.Color{
	"Normal":   lipgloss.Color("#A8A77A"),
	"Fire":     lipgloss.Color("#EE8130"),
	"Water":    lipgloss.Color("#6390F0"),
	"Electric": lipgloss.Color("#F7D02C"),
	"Grass":    lipgloss.Color("#7AC74C"),
	"Ice":      lipgloss.Color("#96D9D6"),
	"Fighting": lipgloss.Color("#C22E28"),
	"Poison":   lipgloss.Color("#A33EA1"),
	"Ground":   lipgloss.Color("#E2BF65"),
	"Flying":   lipgloss.Color("#A98FF3"),
	"Psychic":  lipgloss.Color("#F95587"),
	"Bug":      lipgloss.Color("#A6B91A"),
	"Rock":     lipgloss.Color("#B6A136"),
	"Ghost":    lipgloss.Color("#735797"),
	"Dragon":   lipgloss.Color("#6F35FC"),
	"Dark":     lipgloss.Color("#705746"),
	"Steel":    lipgloss.Color("#B7B7CE"),
	"Fairy":    lipgloss.Color("#D685AD"),
}

// Theme holds every style the screens render with. Screens keep a pointer,
// so Toggle restyles the whole program.
type Theme struct {
	mode    string
	Palette Palette

	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Text          lipgloss.Style
	Muted         lipgloss.Style
	Selected      lipgloss.Style
	Card          lipgloss.Style
	ActiveCard    lipgloss.Style
	Skeleton      lipgloss.Style
	StatusLoading lipgloss.Style
	StatusOK      lipgloss.Style
	StatusError   lipgloss.Style
	Warning       lipgloss.Style
	ProgressBar   lipgloss.Style
	ProgressEmpty lipgloss.Style
	ActiveTab     lipgloss.Style
	InactiveTab   lipgloss.Style
	Help          lipgloss.Style
	Input         lipgloss.Style
	FocusedInput  lipgloss.Style
	Favorite      lipgloss.Style
}

// NewTheme builds the theme for mode. Anything but "dark" is light.
func NewTheme(mode string) *Theme {
	t := &Theme{}
	t.apply(mode)
	return t
}

func (t *Theme) Mode() string {
	return t.mode
}

func (t *Theme) IsDark() bool {
	return t.mode == Dark
}

// Toggle switches between light and dark.
func (t *Theme) Toggle() {
	if t.IsDark() {
		t.apply(Light)
	} else {
		t.apply(Dark)
	}
}

func (t *Theme) apply(mode string) {
	p := LightPalette
	if mode == Dark {
		p = DarkPalette
	} else {
		mode = Light
	}
	t.mode = mode
	t.Palette = p

	t.Title = lipgloss.NewStyle().Foreground(p.Primary).Bold(true).MarginBottom(1)
	t.Subtitle = lipgloss.NewStyle().Foreground(p.Secondary).Italic(true)
	t.Text = lipgloss.NewStyle().Foreground(p.Foreground)
	t.Muted = lipgloss.NewStyle().Foreground(p.Muted)
	t.Selected = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		BorderStyle(RoundedBorder).
		BorderForeground(p.Primary).
		Padding(0, 1)
	t.Card = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(p.Secondary).
		Padding(0, 2)
	t.ActiveCard = lipgloss.NewStyle().
		Border(ThickBorder).
		BorderForeground(p.Primary).
		Padding(0, 2)
	t.Skeleton = lipgloss.NewStyle().Foreground(p.Surface)
	t.StatusLoading = lipgloss.NewStyle().Foreground(p.Info).Bold(true)
	t.StatusOK = lipgloss.NewStyle().Foreground(p.Success).Bold(true)
	t.StatusError = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	t.Warning = lipgloss.NewStyle().Foreground(p.Warning)
	t.ProgressBar = lipgloss.NewStyle().Foreground(p.Primary)
	t.ProgressEmpty = lipgloss.NewStyle().Foreground(p.Muted)
	t.ActiveTab = lipgloss.NewStyle().
		Foreground(p.Primary).
		Background(p.Surface).
		Padding(0, 2).
		Bold(true)
	t.InactiveTab = lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 2)
	t.Help = lipgloss.NewStyle().Foreground(p.Muted).Italic(true).MarginTop(1)
	t.Input = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(p.Secondary).
		Padding(0, 1)
	t.FocusedInput = lipgloss.NewStyle().
		Border(RoundedBorder).
		BorderForeground(p.Primary).
		Padding(0, 1)
	t.Favorite = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
}

// TypeColor returns the badge color for a type label.
func TypeColor(label string) lipgloss.Color {
	if c, ok := typeColors[label]; ok {
		return c
	}
	return lipgloss.Color("#777777")
}

// TypeBadge renders a type label as a colored pill.
func (t *Theme) TypeBadge(label string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(TypeColor(label)).
		Padding(0, 1).
		Render(label)
}

// StatusStyle picks the style for an export or load status.
func (t *Theme) StatusStyle(status string) lipgloss.Style {
	switch status {
	case "fetching", "building", "loading":
		return t.StatusLoading
	case "fetched", "complete", "loaded":
		return t.StatusOK
	case "error", "failed":
		return t.StatusError
	default:
		return t.Muted
	}
}

// FavoriteMark renders ★ or ☆.
func (t *Theme) FavoriteMark(favorited bool) string {
	if favorited {
		return t.Favorite.Render("★")
	}
	return t.Muted.Render("☆")
}

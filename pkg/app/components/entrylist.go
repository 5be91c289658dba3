package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/data"
)

// cardHeight is the number of lines a rendered card takes, borders included.
const cardHeight = 4

type EntryList struct {
	Items         []data.Entry
	SelectedIndex int
	Width         int
	Height        int
	// Focused highlights the selected card.
	Focused bool

	theme       *styles.Theme
	isFavorited func(name string) bool
	revealed    int
}

func NewEntryList(theme *styles.Theme, isFavorited func(name string) bool) *EntryList {
	if isFavorited == nil {
		isFavorited = func(string) bool { return false }
	}
	return &EntryList{
		Items:       []data.Entry{},
		Width:       80,
		Height:      20,
		theme:       theme,
		isFavorited: isFavorited,
		revealed:    -1,
	}
}

func (l *EntryList) SetItems(items []data.Entry) {
	l.Items = items
	if l.SelectedIndex >= len(items) && len(items) > 0 {
		l.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		l.SelectedIndex = 0
	}
}

func (l *EntryList) Next() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex++
	if l.SelectedIndex >= len(l.Items) {
		l.SelectedIndex = 0
	}
}

func (l *EntryList) Prev() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex--
	if l.SelectedIndex < 0 {
		l.SelectedIndex = len(l.Items) - 1
	}
}

func (l *EntryList) Selected() *data.Entry {
	if len(l.Items) == 0 || l.SelectedIndex >= len(l.Items) {
		return nil
	}
	return &l.Items[l.SelectedIndex]
}

// HideAll hides every card until Reveal is called.
func (l *EntryList) HideAll() {
	l.revealed = 0
}

// Reveal shows one more card and reports whether cards remain hidden.
func (l *EntryList) Reveal() bool {
	if l.revealed < 0 {
		return false
	}
	l.revealed++
	if l.revealed >= l.pageSize() || l.revealed >= len(l.Items) {
		l.revealed = -1
		return false
	}
	return true
}

func (l *EntryList) RevealAll() {
	l.revealed = -1
}

func (l *EntryList) pageSize() int {
	n := l.Height / cardHeight
	if n < 1 {
		n = 1
	}
	return n
}

// window returns the [start, end) range of items to draw, keeping the
// selection in view.
func (l *EntryList) window() (int, int) {
	size := l.pageSize()
	if len(l.Items) <= size {
		return 0, len(l.Items)
	}
	start := l.SelectedIndex - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > len(l.Items) {
		end = len(l.Items)
		start = end - size
	}
	return start, end
}

func (l *EntryList) View() string {
	if len(l.Items) == 0 {
		return ""
	}

	var b strings.Builder
	start, end := l.window()
	for i := start; i < end; i++ {
		if l.revealed >= 0 && i-start >= l.revealed {
			break
		}
		b.WriteString(l.renderCard(i))
		b.WriteString("\n")
	}

	if end-start < len(l.Items) {
		b.WriteString(l.theme.Muted.Render(
			fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(l.Items)),
		))
	}
	return b.String()
}

func (l *EntryList) renderCard(i int) string {
	entry := l.Items[i]

	cardStyle := l.theme.Card
	if l.Focused && i == l.SelectedIndex {
		cardStyle = l.theme.ActiveCard
	}

	title := lipgloss.JoinHorizontal(lipgloss.Top,
		l.theme.Muted.Render(fmt.Sprintf("#%03d ", entry.Number)),
		l.theme.Text.Bold(true).Render(entry.Name),
	)
	if l.isFavorited(entry.Name) {
		title += " " + l.theme.FavoriteMark(true)
	}

	badges := make([]string, len(entry.Types))
	for j, t := range entry.Types {
		badges[j] = l.theme.TypeBadge(t)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		strings.Join(badges, " "),
	)

	width := l.Width - 4
	if width < 20 {
		width = 20
	}
	return cardStyle.Width(width).Render(content)
}

package components

import (
	"fmt"
	"strings"

	"github.com/kerbaras/pokedex/pkg/app/styles"
)

// Skeleton renders count placeholder cards shown while the catalog loads.
func Skeleton(theme *styles.Theme, width, count int) string {
	inner := width - 8
	if inner < 12 {
		inner = 12
	}
	var b strings.Builder
	for i := 0; i < count; i++ {
		// stagger line lengths so the cards don't look identical
		title := inner/2 + (i*7)%(inner/3+1)
		content := theme.Skeleton.Render(strings.Repeat("░", title)) + "\n" +
			theme.Skeleton.Render(strings.Repeat("░", inner/4))
		b.WriteString(theme.Card.Width(width - 4).Render(content))
		b.WriteString("\n")
	}
	return b.String()
}

// StatBar renders "label value" followed by a bar scaled against max.
func StatBar(theme *styles.Theme, label string, value, max, width int) string {
	bar := renderProgressBar(theme, value, max, width)
	return fmt.Sprintf("%-7s %5d %s", label, value, bar)
}

package components

import (
	"fmt"
	"strings"

	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/services"
)

// ProgressTracker shows a running field guide export.
type ProgressTracker struct {
	theme   *styles.Theme
	entries map[string]*services.ExportProgress
	order   []string
	overall *services.ExportProgress
	width   int
}

func NewProgressTracker(theme *styles.Theme, width int) *ProgressTracker {
	return &ProgressTracker{
		theme:   theme,
		entries: make(map[string]*services.ExportProgress),
		width:   width,
	}
}

func (p *ProgressTracker) SetWidth(width int) {
	p.width = width
}

func (p *ProgressTracker) Update(progress services.ExportProgress) {
	prog := progress
	if progress.Name == "" {
		p.overall = &prog
		return
	}

	if p.overall == nil || p.overall.Status == "complete" {
		p.overall = &services.ExportProgress{Status: "fetching", Total: progress.Total}
	}
	p.overall.Current = progress.Current
	p.overall.Total = progress.Total

	if progress.Status == "fetched" {
		// finished entries drop off the list
		delete(p.entries, progress.Name)
		p.removeFromOrder(progress.Name)
		return
	}
	if _, ok := p.entries[progress.Name]; !ok {
		p.order = append(p.order, progress.Name)
	}
	p.entries[progress.Name] = &prog
}

func (p *ProgressTracker) removeFromOrder(name string) {
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			return
		}
	}
}

func (p *ProgressTracker) Clear() {
	p.entries = make(map[string]*services.ExportProgress)
	p.order = nil
	p.overall = nil
}

// HasActive reports whether an export is still running.
func (p *ProgressTracker) HasActive() bool {
	if p.overall == nil {
		return false
	}
	return p.overall.Status != "complete" && p.overall.Status != "error"
}

func (p *ProgressTracker) View() string {
	if p.overall == nil && len(p.entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(p.theme.Title.Render("Field Guide Export"))
	b.WriteString("\n")

	if o := p.overall; o != nil {
		if o.Total > 0 {
			b.WriteString(renderProgressBar(p.theme, o.Current, o.Total, p.width-4))
			b.WriteString("\n")
		}
		status := o.Status
		if o.Total > 0 {
			status = fmt.Sprintf("%s (%d/%d)", o.Status, o.Current, o.Total)
		}
		b.WriteString(p.theme.StatusStyle(o.Status).Render(status))
		b.WriteString("\n")
		if o.Path != "" {
			b.WriteString(p.theme.Muted.Render("Saved to " + o.Path))
			b.WriteString("\n")
		}
		if o.Error != nil {
			b.WriteString(p.theme.StatusError.Render(fmt.Sprintf("Error: %s", o.Error)))
			b.WriteString("\n")
		}
	}

	for _, name := range p.order {
		progress := p.entries[name]
		line := fmt.Sprintf("%s: %s", name, progress.Status)
		if progress.Error != nil {
			line = fmt.Sprintf("%s (%s)", line, progress.Error)
		}
		b.WriteString(p.theme.StatusStyle(progress.Status).Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func renderProgressBar(theme *styles.Theme, current, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return theme.ProgressBar.Render(strings.Repeat("█", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat("░", width-filled))
}

// SimpleProgress renders a simple progress bar
func SimpleProgress(theme *styles.Theme, current, total, width int) string {
	return renderProgressBar(theme, current, total, width)
}

package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/pokedex/pkg/app/components"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/catalog"
	"github.com/kerbaras/pokedex/pkg/data"
)

const revealInterval = 40 * time.Millisecond

// HomeOptions selects the home screen variant.
type HomeOptions struct {
	// ShowTypeFilter enables the ctrl+t type cycler.
	ShowTypeFilter bool
	// UseGlobalStore keeps the criteria in the shared store so they survive
	// screen changes. Otherwise they live in the screen.
	UseGlobalStore bool
	// AnimateCards reveals result cards one by one after a load.
	AnimateCards bool
	Debounce     time.Duration
}

type HomeScreen struct {
	dex    Pokedex
	theme  *styles.Theme
	shared *catalog.CriteriaStore
	opts   HomeOptions

	local     catalog.Criteria
	input     textinput.Model
	debouncer *catalog.Debouncer
	commits   chan string
	listening bool

	spinner spinner.Model
	status  catalog.LoadStatus
	entries []data.Entry
	types   []string
	list    *components.EntryList
	err     error

	width  int
	height int
}

func NewHomeScreen(dex Pokedex, theme *styles.Theme, shared *catalog.CriteriaStore, opts HomeOptions) *HomeScreen {
	if shared == nil {
		shared = catalog.NewCriteriaStore()
	}

	ti := textinput.New()
	ti.Placeholder = "Search Pokémon..."
	ti.Focus()
	ti.CharLimit = 50
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	list := components.NewEntryList(theme, dex.IsFavorited)
	list.Focused = true

	h := &HomeScreen{
		dex:     dex,
		theme:   theme,
		shared:  shared,
		opts:    opts,
		input:   ti,
		commits: make(chan string, 1),
		spinner: sp,
		status:  catalog.Idle,
		list:    list,
	}
	if opts.UseGlobalStore {
		h.input.SetValue(shared.Get().Search)
	}
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}

	if h.debouncer == nil {
		h.debouncer = catalog.NewDebouncer(h.opts.Debounce, h.pushCommit)
		// input typed right before the screen was suspended
		if h.input.Value() != h.criteria().Search {
			h.debouncer.Set(h.input.Value())
		}
	}
	if !h.listening {
		h.listening = true
		cmds = append(cmds, h.listenForCommit)
	}
	if h.status == catalog.Idle {
		h.status = catalog.Loading
		cmds = append(cmds, h.loadEntries, h.spinner.Tick)
	}
	h.refresh()

	return tea.Batch(cmds...)
}

// Suspend cancels any pending search commit. Init resumes the screen.
func (h *HomeScreen) Suspend() {
	if h.debouncer != nil {
		h.debouncer.Stop()
		h.debouncer = nil
	}
}

// Capturing reports whether key presses are going to the search input.
func (h *HomeScreen) Capturing() bool {
	return h.input.Focused()
}

func (h *HomeScreen) Criteria() catalog.Criteria {
	return h.criteria()
}

func (h *HomeScreen) Status() catalog.LoadStatus {
	return h.status
}

// Visible returns the entries currently shown.
func (h *HomeScreen) Visible() []data.Entry {
	return h.list.Items
}

func (h *HomeScreen) criteria() catalog.Criteria {
	if h.opts.UseGlobalStore {
		return h.shared.Get()
	}
	return h.local
}

func (h *HomeScreen) setCriteria(c catalog.Criteria) {
	if h.opts.UseGlobalStore {
		h.shared.Set(c)
	} else {
		h.local = c
	}
	h.refresh()
}

func (h *HomeScreen) refresh() {
	h.list.SetItems(catalog.Filter(h.entries, h.criteria()))
}

// pushCommit runs on the debouncer's timer goroutine and keeps only the
// newest committed term in the channel.
func (h *HomeScreen) pushCommit(term string) {
	for {
		select {
		case h.commits <- term:
			return
		default:
		}
		select {
		case <-h.commits:
		default:
		}
	}
}

func (h *HomeScreen) cycleType() {
	c := h.criteria()
	next := ""
	if len(h.types) > 0 {
		idx := -1
		for i, t := range h.types {
			if t == c.Type {
				idx = i
				break
			}
		}
		if idx+1 < len(h.types) {
			next = h.types[idx+1]
		}
	}
	h.setCriteria(c.WithType(next))
}

func (h *HomeScreen) clearFilters() {
	h.input.SetValue("")
	if h.debouncer != nil {
		h.debouncer.Set("")
		h.debouncer.Flush()
	}
	h.setCriteria(h.criteria().Clear())
}

func (h *HomeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width = msg.Width
		h.height = msg.Height
		h.list.Width = msg.Width - 4
		h.list.Height = msg.Height - 14
		h.input.Width = min(40, max(msg.Width-12, 10))
		return h, nil

	case spinner.TickMsg:
		if h.status != catalog.Loading {
			return h, nil
		}
		h.spinner, cmd = h.spinner.Update(msg)
		return h, cmd

	case entriesLoadedMsg:
		if msg.err != nil {
			h.status = catalog.Failed
			h.err = msg.err
			return h, nil
		}
		h.status = catalog.Loaded
		h.err = nil
		h.entries = msg.entries
		h.types = catalog.Types(msg.entries)
		h.refresh()
		if h.opts.AnimateCards {
			h.list.HideAll()
			return h, revealTick()
		}
		return h, nil

	case revealMsg:
		if h.list.Reveal() {
			return h, revealTick()
		}
		return h, nil

	case searchCommittedMsg:
		h.setCriteria(h.criteria().WithSearch(msg.term))
		return h, h.listenForCommit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+t":
			if h.opts.ShowTypeFilter {
				h.cycleType()
			}
			return h, nil
		case "ctrl+x":
			h.clearFilters()
			return h, nil
		case "ctrl+r":
			if h.status == catalog.Failed {
				h.status = catalog.Loading
				h.err = nil
				return h, tea.Batch(h.loadEntries, h.spinner.Tick)
			}
			return h, nil
		case "up":
			h.list.Prev()
			return h, nil
		case "down":
			h.list.Next()
			return h, nil
		case "enter":
			if selected := h.list.Selected(); selected != nil && h.status == catalog.Loaded {
				return h, switchTo("details", selected.Name)
			}
			return h, nil
		case "esc":
			if h.input.Focused() {
				h.input.Blur()
				return h, nil
			}
			h.input.Focus()
			return h, textinput.Blink
		}

		if !h.input.Focused() {
			switch msg.String() {
			case "j":
				h.list.Next()
			case "k":
				h.list.Prev()
			case "/":
				h.input.Focus()
				return h, textinput.Blink
			}
			return h, nil
		}
	}

	if h.input.Focused() {
		before := h.input.Value()
		h.input, cmd = h.input.Update(msg)
		if h.input.Value() != before && h.debouncer != nil {
			h.debouncer.Set(h.input.Value())
		}
	}

	return h, cmd
}

func (h *HomeScreen) View() string {
	if h.width == 0 {
		return "Loading..."
	}

	header := h.theme.Title.Render("Pokédex")

	inputStyle := h.theme.Input
	if h.input.Focused() {
		inputStyle = h.theme.FocusedInput
	}
	inputView := inputStyle.Render(h.input.View())

	var filter string
	if h.opts.ShowTypeFilter {
		label := h.theme.Muted.Render("All types")
		if t := h.criteria().Type; t != "" {
			label = h.theme.TypeBadge(t)
		}
		filter = "\n" + h.theme.Subtitle.Render("Type: ") + label
	}

	var body string
	switch h.status {
	case catalog.Failed:
		body = h.renderError()
	case catalog.Loaded:
		if len(h.list.Items) == 0 {
			body = h.renderEmpty()
		} else {
			body = h.list.View()
		}
	default:
		body = h.spinner.View() + h.theme.StatusLoading.Render(" Loading Pokémon...") + "\n\n" +
			components.Skeleton(h.theme, h.width, 3)
	}

	help := []string{"↑/↓: navigate", "enter: details", "esc: focus list"}
	if h.opts.ShowTypeFilter {
		help = append(help, "ctrl+t: type")
	}
	help = append(help, "ctrl+x: clear", "tab: favorites", "ctrl+c: quit")

	return fmt.Sprintf("%s\n%s%s\n\n%s\n%s",
		header,
		inputView,
		filter,
		body,
		h.theme.Help.Render(strings.Join(help, " • ")),
	)
}

func (h *HomeScreen) renderError() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		h.theme.StatusError.Render("Could not load the Pokédex"),
		h.theme.Muted.Render(h.err.Error()),
		"",
		h.theme.Text.Render("Press ctrl+r to retry"),
	)
	return h.theme.Card.Width(max(h.width-4, 20)).Render(content)
}

func (h *HomeScreen) renderEmpty() string {
	c := h.criteria()
	msg := "No Pokémon found"
	if c.Search != "" {
		msg = fmt.Sprintf("No Pokémon found for %q", c.Search)
	}
	if c.Type != "" {
		msg += " of type " + c.Type
	}
	lines := []string{h.theme.Muted.Render(msg)}

	if suggestions := h.dex.Suggest(c.Search, 3); len(suggestions) > 0 {
		lines = append(lines, h.theme.Subtitle.Render("Did you mean: "+strings.Join(suggestions, ", ")+"?"))
	}
	return strings.Join(lines, "\n")
}

// Messages
type entriesLoadedMsg struct {
	entries []data.Entry
	err     error
}

type searchCommittedMsg struct {
	term string
}

type revealMsg struct{}

// Commands
func (h *HomeScreen) loadEntries() tea.Msg {
	entries, err := h.dex.ListEntries(context.Background())
	return entriesLoadedMsg{entries: entries, err: err}
}

func (h *HomeScreen) listenForCommit() tea.Msg {
	return searchCommittedMsg{term: <-h.commits}
}

func revealTick() tea.Cmd {
	return tea.Tick(revealInterval, func(time.Time) tea.Msg {
		return revealMsg{}
	})
}

package screens

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/catalog"
	"github.com/kerbaras/pokedex/pkg/services"
)

type screenType int

const (
	homeView screenType = iota
	favoritesView
	detailsView
)

type RootScreen struct {
	dex   Pokedex
	theme *styles.Theme

	currentView screenType
	// tab to return to once the details history is empty
	tabView   screenType
	history   []string
	home      *HomeScreen
	favorites *FavoritesScreen
	details   *DetailsScreen

	size  tea.WindowSizeMsg
	sized bool
}

func NewRootScreen(dex Pokedex, theme *styles.Theme, criteria *catalog.CriteriaStore, opts HomeOptions, exportDir string) *RootScreen {
	return &RootScreen{
		dex:         dex,
		theme:       theme,
		currentView: homeView,
		tabView:     homeView,
		home:        NewHomeScreen(dex, theme, criteria, opts),
		favorites:   NewFavoritesScreen(dex, theme, exportDir),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return r.home.Init()
}

// Close stops background work owned by the screens.
func (r *RootScreen) Close() {
	r.home.Suspend()
}

// Capturing reports whether typed characters belong to a text input.
func (r *RootScreen) Capturing() bool {
	return r.currentView == homeView && r.home.Capturing()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.size = msg
		r.sized = true
		return r, tea.Batch(r.updateHome(msg), r.updateFavorites(msg), r.updateDetails(msg))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			r.Close()
			return r, tea.Quit
		case "q":
			if !r.Capturing() {
				r.Close()
				return r, tea.Quit
			}
		case "t":
			if !r.Capturing() {
				r.theme.Toggle()
				return r, nil
			}
		case "tab":
			if r.currentView == detailsView {
				// esc leaves details
				break
			}
			if r.currentView == homeView {
				return r, r.show(favoritesView)
			}
			return r, r.show(homeView)
		}

	case SwitchScreenMsg:
		return r, r.switchScreen(msg)

	// async results go to their owner even when it isn't showing
	case entriesLoadedMsg, searchCommittedMsg, revealMsg:
		return r, r.updateHome(msg)
	case favoritesLoadedMsg, unfavoritedMsg, exportDoneMsg, services.ExportProgress:
		return r, r.updateFavorites(msg)
	case detailLoadedMsg, spriteLoadedMsg, favoriteToggledMsg:
		return r, r.updateDetails(msg)
	case spinner.TickMsg:
		return r, tea.Batch(r.updateHome(msg), r.updateDetails(msg))
	}

	switch r.currentView {
	case homeView:
		return r, r.updateHome(msg)
	case favoritesView:
		return r, r.updateFavorites(msg)
	case detailsView:
		return r, r.updateDetails(msg)
	}
	return r, nil
}

func (r *RootScreen) switchScreen(msg SwitchScreenMsg) tea.Cmd {
	switch msg.Screen {
	case "home":
		r.history = nil
		return r.show(homeView)
	case "favorites":
		r.history = nil
		return r.show(favoritesView)
	case "details":
		name, ok := msg.Data.(string)
		if !ok || name == "" {
			return nil
		}
		r.history = append(r.history, name)
		return r.openDetails(name)
	case "back":
		if len(r.history) > 0 {
			r.history = r.history[:len(r.history)-1]
		}
		if len(r.history) > 0 {
			return r.openDetails(r.history[len(r.history)-1])
		}
		return r.show(r.tabView)
	}
	return nil
}

func (r *RootScreen) show(view screenType) tea.Cmd {
	if r.currentView == homeView && view != homeView {
		r.home.Suspend()
	}
	r.currentView = view
	r.details = nil

	switch view {
	case homeView:
		r.tabView = homeView
		return r.home.Init()
	case favoritesView:
		r.tabView = favoritesView
		return r.favorites.Init()
	}
	return nil
}

func (r *RootScreen) openDetails(name string) tea.Cmd {
	if r.currentView == homeView {
		r.home.Suspend()
	}
	r.currentView = detailsView
	r.details = NewDetailsScreen(r.dex, r.theme, name)
	if r.sized {
		r.details.Update(r.size)
	}
	return r.details.Init()
}

func (r *RootScreen) updateHome(msg tea.Msg) tea.Cmd {
	_, cmd := r.home.Update(msg)
	return cmd
}

func (r *RootScreen) updateFavorites(msg tea.Msg) tea.Cmd {
	_, cmd := r.favorites.Update(msg)
	return cmd
}

func (r *RootScreen) updateDetails(msg tea.Msg) tea.Cmd {
	if r.details == nil {
		return nil
	}
	_, cmd := r.details.Update(msg)
	return cmd
}

func (r *RootScreen) View() string {
	var content string
	switch r.currentView {
	case homeView:
		content = r.home.View()
	case favoritesView:
		content = r.favorites.View()
	case detailsView:
		if r.details != nil {
			content = r.details.View()
		}
	}

	tabs := r.renderTabs()
	if tabs == "" {
		return content
	}
	return fmt.Sprintf("%s\n\n%s", tabs, content)
}

func (r *RootScreen) renderTabs() string {
	if r.currentView == detailsView {
		return ""
	}

	homeTab := r.theme.InactiveTab.Render("Pokédex")
	favoritesTab := r.theme.InactiveTab.Render("Favorites")
	if r.currentView == homeView {
		homeTab = r.theme.ActiveTab.Render("Pokédex")
	} else {
		favoritesTab = r.theme.ActiveTab.Render("Favorites")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, homeTab, favoritesTab)
}

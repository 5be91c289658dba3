package app

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/pokedex/pkg/app/screens"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/config"
	"github.com/kerbaras/pokedex/pkg/services"
)

type App struct {
	controller *services.PokedexController
	cfg        *config.Config
}

func NewApp(controller *services.PokedexController, cfg *config.Config) *App {
	return &App{controller: controller, cfg: cfg}
}

// HomeOptions maps the ui settings onto the home screen variant.
func HomeOptions(cfg *config.Config) screens.HomeOptions {
	return screens.HomeOptions{
		ShowTypeFilter: cfg.UI.ShowTypeFilter,
		UseGlobalStore: cfg.UI.UseGlobalStore,
		AnimateCards:   cfg.UI.AnimateCards,
		Debounce:       cfg.Search.Debounce,
	}
}

func ExportDir() string {
	return filepath.Join(config.DataDir(), "guides")
}

func (a *App) Run() error {
	theme := styles.NewTheme(a.cfg.UI.Theme)
	model := screens.NewRootScreen(a.controller, theme, a.controller.Criteria(), HomeOptions(a.cfg), ExportDir())
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

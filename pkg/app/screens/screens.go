package screens

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/services"
)

// Pokedex is what the screens need from the controller.
type Pokedex interface {
	ListEntries(ctx context.Context) ([]data.Entry, error)
	Suggest(term string, limit int) []string
	GetDetail(ctx context.Context, name string) (*data.Detail, error)
	IsFavorited(name string) bool
	ToggleFavorite(ctx context.Context, name string) (bool, error)
	Favorites(ctx context.Context) ([]*data.Favorite, error)
	Stats(ctx context.Context) (*data.Stats, error)
	Sprite(ctx context.Context, imageURL string, width, height int) (string, error)
	ExportFavorites(ctx context.Context, outputDir string) (string, error)
	ExportProgress() <-chan services.ExportProgress
}

// SwitchScreenMsg asks the root screen to change view. Screen is one of
// "home", "favorites", "details" (Data is the entry name) or "back".
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

func switchTo(screen string, data interface{}) tea.Cmd {
	return func() tea.Msg {
		return SwitchScreenMsg{Screen: screen, Data: data}
	}
}

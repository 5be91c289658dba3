package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kerbaras/pokedex/pkg/catalog"
	"github.com/kerbaras/pokedex/pkg/sources"
	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite [name]",
	Short: "Toggle a Pokémon's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, favorited, err := controller.ToggleFavoriteByName(context.Background(), args[0])
		switch {
		case sources.IsNotFound(err):
			return fmt.Errorf("no Pokémon named %q", args[0])
		case catalog.IsPersistenceError(err):
			return fmt.Errorf("favorite not saved: %w", err)
		case err != nil:
			return err
		}

		if favorited {
			fmt.Printf("⭐ %s added to favorites\n", name)
		} else {
			fmt.Printf("%s removed from favorites\n", name)
		}
		return nil
	},
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List your favorite Pokémon",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		favorites, err := controller.Favorites(ctx)
		if err != nil {
			return err
		}

		if len(favorites) == 0 {
			fmt.Println("⭐ No favorites yet. Use 'pokedex favorite <name>' to add one.")
			return nil
		}

		stats, err := controller.Stats(ctx)
		if err != nil {
			return err
		}

		var (
			purple = lipgloss.Color("99")

			headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
			cellStyle   = lipgloss.NewStyle().Padding(0, 1)
		)

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(purple)).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				default:
					return cellStyle
				}
			}).
			Headers("#", "Name", "Since")

		for i, f := range favorites {
			t.Row(fmt.Sprintf("%d", i+1), truncateString(f.Name, 38), f.UpdatedAt.Local().Format("2006-01-02 15:04"))
		}

		fmt.Printf("\n⭐ Favorites (%d, favorited %d times)\n", len(favorites), stats.Favorites)
		fmt.Println(t)
		return nil
	},
}

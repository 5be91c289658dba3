package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kerbaras/pokedex/pkg/sources"
	"github.com/spf13/cobra"
)

var showSprite bool

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a Pokémon's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		detail, err := controller.GetDetail(ctx, args[0])
		if sources.IsNotFound(err) {
			return fmt.Errorf("no Pokémon named %q", args[0])
		}
		if err != nil {
			return err
		}

		var (
			purple = lipgloss.Color("99")

			titleStyle = lipgloss.NewStyle().Foreground(purple).Bold(true)
			labelStyle = lipgloss.NewStyle().Foreground(purple).Padding(0, 1)
			cellStyle  = lipgloss.NewStyle().Padding(0, 1)
		)

		mark := "☆"
		if controller.IsFavorited(detail.Name) {
			mark = "★"
		}
		fmt.Println(titleStyle.Render(fmt.Sprintf("#%03d %s %s", detail.Number, detail.Name, mark)))

		if showSprite && detail.Image != "" {
			if art, err := controller.Sprite(ctx, detail.Image, 32, 16); err == nil {
				fmt.Println(art)
			} else {
				log.Warn("sprite failed", "name", detail.Name, "error", err)
			}
		}

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				if col == 0 {
					return labelStyle
				}
				return cellStyle
			}).
			Row("Classification", detail.Classification).
			Row("Types", strings.Join(detail.Types, ", ")).
			Row("Height", fmt.Sprintf("%s – %s", detail.Height.Minimum, detail.Height.Maximum)).
			Row("Weight", fmt.Sprintf("%s – %s", detail.Weight.Minimum, detail.Weight.Maximum)).
			Row("Max CP", fmt.Sprintf("%d", detail.MaxCP)).
			Row("Max HP", fmt.Sprintf("%d", detail.MaxHP)).
			Row("Resistant", strings.Join(detail.Resistant, ", ")).
			Row("Weaknesses", strings.Join(detail.Weaknesses, ", "))

		if len(detail.Evolutions) > 0 {
			names := make([]string, len(detail.Evolutions))
			for i, e := range detail.Evolutions {
				names[i] = e.Name
			}
			t.Row("Evolutions", strings.Join(names, " → "))
		}

		fmt.Println(t)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showSprite, "sprite", false, "render the sprite in the terminal")
}

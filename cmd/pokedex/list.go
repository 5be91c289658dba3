package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/pokedex/pkg/catalog"
	"github.com/spf13/cobra"
)

var (
	listSearch string
	listType   string
	listFirst  int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List Pokémon",
	Long:  "Display the catalog in a table, optionally filtered by name and type",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if _, err := controller.ListEntries(ctx); err != nil {
			return fmt.Errorf("could not load the Pokédex: %w", err)
		}

		criteria := catalog.Criteria{Search: listSearch, Type: listType}
		entries, err := controller.Search(ctx, criteria)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Printf("No Pokémon found for %q\n", listSearch)
			if suggestions := controller.Suggest(listSearch, 3); len(suggestions) > 0 {
				fmt.Printf("💡 Did you mean: %s?\n", strings.Join(suggestions, ", "))
			}
			return nil
		}
		if listFirst > 0 && len(entries) > listFirst {
			entries = entries[:listFirst]
		}

		columns := []table.Column{
			{Title: "#", Width: 5},
			{Title: "Name", Width: 20},
			{Title: "Types", Width: 24},
			{Title: "Favorite", Width: 8},
		}

		rows := []table.Row{}
		for _, e := range entries {
			fav := ""
			if controller.IsFavorited(e.Name) {
				fav = "★"
			}
			rows = append(rows, table.Row{
				fmt.Sprintf("%03d", e.Number),
				truncateString(e.Name, 18),
				strings.Join(e.Types, ", "),
				fav,
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Cell
		t.SetStyles(s)

		fmt.Printf("\n📖 Pokédex (%d Pokémon)\n\n", len(entries))
		fmt.Println(t.View())
		return nil
	},
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the types present in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		types, err := controller.Types(context.Background())
		if err != nil {
			return err
		}
		for _, t := range types {
			fmt.Println(t)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "case-insensitive name filter")
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "only show this type")
	listCmd.Flags().IntVarP(&listFirst, "first", "n", 0, "show at most n results")
}

package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/kerbaras/pokedex/pkg/app"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export favorites as an EPUB field guide",
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir := exportOutput
		if outputDir == "" {
			outputDir = app.ExportDir()
		}

		var wg sync.WaitGroup
		done := make(chan struct{})
		wg.Add(1)
		go func() {
			defer wg.Done()
			progress := controller.ExportProgress()
			for {
				select {
				case p := <-progress:
					switch {
					case p.Error != nil:
						fmt.Printf("  ✗ %s: %v\n", p.Name, p.Error)
					case p.Status == "fetched":
						fmt.Printf("  ✓ %s (%d/%d)\n", p.Name, p.Current, p.Total)
					}
				case <-done:
					return
				}
			}
		}()

		fmt.Println("📖 Building field guide...")
		path, err := controller.ExportFavorites(context.Background(), outputDir)
		close(done)
		wg.Wait()
		if err != nil {
			return err
		}

		fmt.Printf("✅ Saved to %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output directory")
}

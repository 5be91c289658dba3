package cmd

import (
	"os"

	"github.com/kerbaras/pokedex/pkg/app"
	"github.com/kerbaras/pokedex/pkg/config"
	"github.com/kerbaras/pokedex/pkg/logger"
	"github.com/kerbaras/pokedex/pkg/services"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	cfg        *config.Config
	log        *logger.Logger
	controller *services.PokedexController
)

var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "A terminal Pokédex",
	Long:  "Browse, search and favorite Pokémon with a TUI and CLI",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		// the TUI owns the terminal
		cfg.Log.Stderr = verbose && cmd != cmd.Root()

		log, err = logger.New(cfg.Log)
		if err != nil {
			return err
		}

		controller, err = services.NewPokedexController(cfg, log.Logger)
		if err != nil {
			log.Close()
			log = nil
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Launch TUI by default
		return app.NewApp(controller, cfg).Run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches /etc/pokedex, ~/.config/pokedex and .)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(exportCmd)
}

func Execute() {
	if err := run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// run executes the command line and releases the controller and log file
// whether or not the command failed.
func run(args []string) error {
	rootCmd.SetArgs(args)
	defer shutdown()
	return rootCmd.Execute()
}

func shutdown() {
	if controller != nil {
		if err := controller.Close(); err != nil && log != nil {
			log.Warn("close failed", "error", err)
		}
		controller = nil
	}
	if log != nil {
		log.Close()
		log = nil
	}
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

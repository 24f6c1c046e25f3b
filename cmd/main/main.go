package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"pokedex/explorer/internal/config"
	"pokedex/explorer/internal/container"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	jsonOutput bool

	cfg *config.Config
	app *container.Container
)

var rootCmd = &cobra.Command{
	Use:           "pokedex",
	Short:         "Browse PokeAPI data and export flattened evolution chains",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			log.Warnf("⚠️ Unknown log level %q, using info", cfg.Log.Level)
			level = log.InfoLevel
		}
		if verbose {
			level = log.DebugLevel
		}
		log.SetLevel(level)
		log.Debug("Configuration loaded successfully")

		// Initialize container with all dependencies
		app, err = container.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		return app.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file (default ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")

	rootCmd.AddCommand(searchCmd, listCmd, regionsCmd, chainCmd, exportCmd, statusCmd)
}

func main() {
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Errorf("❌ %v", err)
		if app != nil {
			closeApp(app)
		}
		stop()
		os.Exit(1)
	}
}

// closeApp releases connections on the error path, where the close error
// cannot be returned anymore.
func closeApp(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warnf("⚠️ Failed to shut down cleanly: %v", err)
	}
}

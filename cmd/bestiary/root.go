package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmfielding/bestiary/internal/cli"
	"github.com/dmfielding/bestiary/internal/config"
	"github.com/dmfielding/bestiary/internal/home"
	"github.com/dmfielding/bestiary/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "bestiary",
	Short: "Reconstruct creature stat blocks from a two-column rulebook PDF",
	Long: `Bestiary reconstructs structured creature stat blocks from the positional
text of a fixed-layout, two-column rulebook PDF.

The pipeline includes:
  - Reading-order normalization of positioned text fragments
  - Entity boundary detection with cross-page stitching
  - Stat field and trait/action classification by font tier
  - Combat text parsing (attacks, damage, saves, areas)
  - Defense string normalization and legendary action splitting`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.bestiary/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "bestiary home directory (default: ~/.bestiary)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cli.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// getHome returns the home directory manager.
func getHome() (*home.Dir, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, fmt.Errorf("failed to create home directory: %w", err)
	}
	return h, nil
}

// getConfig loads the configuration manager for the --config flag.
func getConfig() (*config.Manager, error) {
	mgr, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return mgr, nil
}

// newLogger builds the run logger. Debug level when --verbose is set.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// Package cli implements the command-line interface for gocube-solver.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/config"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

const version = "0.2.0"

var (
	// Global flags
	configPath string
	dbPath     string
	tableDir   string
	verbose    bool

	// appConfig is loaded before any command runs.
	appConfig *config.Config
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "gocube-solver",
	Short: "Optimal Rubik's Cube solver",
	Long: `gocube-solver finds shortest face-turn solutions for the 3x3x3 Rubik's Cube.

It searches with IDA* guided by pattern databases: precomputed tables of
exact move counts for the corners and for two halves of the edges. Build
the tables once with 'gocube-solver pdb build', then solve scrambles with
'gocube-solver solve'. Every solve is recorded in a local history.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.gocube_solver/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: <data_dir>/solver.db)")
	rootCmd.PersistentFlags().StringVar(&tableDir, "tables-dir", "", "Pattern table directory (default: <data_dir>/tables)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// setup attaches the logger and loads the config for every command.
func setup(cmd *cobra.Command, args []string) error {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := newLogger(os.Stderr, level)
	cmd.SetContext(withLogger(cmd.Context(), logger))

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	appConfig = cfg
	logger.Debug("config loaded", "db", cfg.DBPath, "tables", cfg.TableDir)
	return nil
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if tableDir != "" {
		cfg.TableDir = tableDir
	}
	return cfg, nil
}

// openDB opens the history database named by the config.
func openDB() (*storage.DB, error) {
	db, err := storage.Open(appConfig.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

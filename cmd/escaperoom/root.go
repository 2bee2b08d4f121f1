package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/escaperoom/internal/config"
	"github.com/jask/escaperoom/internal/database"
	"github.com/jask/escaperoom/internal/logger"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "escaperoom",
		Short: "A two-screen PIN escape room for the terminal.",
		Long: `Lock the room with a secret 3-digit PIN, then try to escape by typing it
back on the keypad. The PIN is kept in a local sqlite database, so the
room stays locked across restarts until someone escapes or runs "reset".`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd.Context(), opts, false)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to config file (default $HOME/.config/escaperoom/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	cmd.AddCommand(
		newPlayCmd(opts),
		newResetCmd(opts),
		newStatusCmd(opts),
		newConfigCmd(opts),
	)

	return cmd
}

// loadConfig applies flag overrides on top of config.Load.
func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
		if err := config.Validate(cfg); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// consoleLogger logs to stderr for the non-interactive subcommands.
func consoleLogger(cfg config.Config) *zap.SugaredLogger {
	level, _ := logger.ParseLogLevel(cfg.Log.Level)
	return logger.New(zap.NewAtomicLevelAt(level), os.Stderr)
}

// openDB creates the data directory, migrates the schema and opens the database.
func openDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	logger.DebugKV(ctx, "database ready", "path", cfg.Database.Path)
	return db, nil
}

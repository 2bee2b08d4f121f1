package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jask/escaperoom/internal/config"
	"github.com/jask/escaperoom/internal/database/repository"
	"github.com/jask/escaperoom/internal/game"
	"github.com/jask/escaperoom/internal/logger"
	"github.com/jask/escaperoom/internal/service"
	"github.com/jask/escaperoom/internal/tui"
)

func newPlayCmd(opts *rootOptions) *cobra.Command {
	var ephemeral bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open the lock screen, or the escape keypad if a PIN is already set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd.Context(), opts, ephemeral)
		},
	}

	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep the PIN in memory only; nothing is written to disk")

	return cmd
}

func runPlay(ctx context.Context, opts *rootOptions, ephemeral bool) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		return fmt.Errorf("mkdir log dir: %w", err)
	}
	level, _ := logger.ParseLogLevel(cfg.Log.Level)
	log, closeLog, err := logger.NewFile(level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.SetLogger(log)
	ctx = logger.ToContext(ctx, log)
	ctx = logger.WithKV(ctx, "session", uuid.NewString())

	store, closeStore, err := newStore(ctx, cfg, ephemeral)
	if err != nil {
		logger.ErrorKV(ctx, "open pin store", "error", err)
		return err
	}
	defer closeStore()

	policy, err := game.ParseResetPolicy(cfg.Game.ResetPolicy)
	if err != nil {
		return err
	}

	machine := game.New(ctx, store, game.WithResetPolicy(policy))
	logger.InfoKV(ctx, "game started", "mode", machine.Mode(), "policy", policy, "ephemeral", ephemeral)

	p := tea.NewProgram(tui.New(ctx, machine, cfg.UI), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logger.ErrorKV(ctx, "tui exited", "error", err)
		return fmt.Errorf("run tui: %w", err)
	}

	logger.InfoKV(ctx, "game closed", "mode", machine.Mode())
	return nil
}

func newStore(ctx context.Context, cfg config.Config, ephemeral bool) (game.Store, func(), error) {
	if ephemeral {
		return game.NewMemoryStore(), func() {}, nil
	}
	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return service.NewPinStore(repository.NewPinRepo(db)), func() { _ = db.Close() }, nil
}

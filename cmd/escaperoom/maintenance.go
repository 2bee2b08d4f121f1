package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/escaperoom/internal/database/repository"
	"github.com/jask/escaperoom/internal/logger"
	"github.com/jask/escaperoom/internal/service"
)

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the stored PIN so the next game starts at the lock screen.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			ctx := logger.ToContext(cmd.Context(), consoleLogger(cfg))

			db, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := &service.MaintenanceService{Pins: repository.NewPinRepo(db)}
			if err := svc.Reset(ctx); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			logger.InfoKV(ctx, "pin forgotten", "database", cfg.Database.Path)
			fmt.Fprintln(cmd.OutOrStdout(), "The room is unlocked. Run escaperoom to set a new PIN.")
			return nil
		},
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether a PIN is set. The PIN itself is never printed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			ctx := logger.ToContext(cmd.Context(), consoleLogger(cfg))

			db, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := &service.MaintenanceService{Pins: repository.NewPinRepo(db)}
			st, err := svc.Status(ctx)
			if err != nil {
				return fmt.Errorf("status: %w", err)
			}

			out := cmd.OutOrStdout()
			if !st.Set {
				fmt.Fprintln(out, "No PIN set: the next game starts at the lock screen.")
				return nil
			}
			fmt.Fprintf(out, "PIN set at %s (game %s): the next game starts at the escape keypad.\n",
				st.CreatedAt.Local().Format(time.DateTime), st.GameID)
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/escaperoom/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration file.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration (defaults, file and env merged) to disk.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			path, err := config.Save(opts.configPath, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})

	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varviz3d/varviz3d/internal/config"
	"github.com/varviz3d/varviz3d/internal/duckdb"
)

func newCacheCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the variant record cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached variant records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			if !cfg.Cache.Enabled {
				cmd.Println("Cache is disabled; nothing to clear.")
				return nil
			}
			store, err := duckdb.Open(cfg.Cache.Path)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			if err := store.Clear(); err != nil {
				return err
			}
			cmd.Printf("Cleared cache at %s\n", cfg.Cache.Path)
			return nil
		},
	})

	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/univesp-PI-III/merenda-certa/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|version|redo|reset]",
	Short:     "Ejecuta las migraciones embebidas contra PostgreSQL.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"up", "down", "status", "version", "redo", "reset"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		command := "up"
		if len(args) == 1 {
			command = args[0]
		}
		if err := postgres.Migrate(cmd.Context(), cfg.DB.ConnectionString(), command, log); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		return nil
	},
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/univesp-PI-III/merenda-certa/pkg/config"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"

	_ "time/tzdata" // APP_TIMEZONE funciona aunque la imagen no traiga zoneinfo
)

func main() {
	// Cantidades y temperaturas viajan como números JSON.
	decimal.MarshalJSONWithoutQuotes = true

	root := &cobra.Command{
		Use:           "merenda-certa",
		Short:         "Libro de lotes perecederos y monitoreo de temperatura",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}
	root.AddCommand(serveCmd, migrateCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap carga la configuración y el logger comunes a todos los comandos.
func bootstrap() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	return cfg, log, nil
}

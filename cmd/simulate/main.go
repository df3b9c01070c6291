package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/univesp-PI-III/merenda-certa/internal/application/telemetry"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/temperature"
	inframqtt "github.com/univesp-PI-III/merenda-certa/internal/infrastructure/mqtt"
	"github.com/univesp-PI-III/merenda-certa/pkg/config"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

func main() {
	cmd := &cobra.Command{
		Use:          "simulate",
		Short:        "Publica lecturas simuladas de los medidores por defecto en el broker MQTT.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			pub, err := inframqtt.NewPublisher(ctx, cfg.MQTT)
			if err != nil {
				return err
			}
			defer pub.Close()

			log.Info().
				Str("broker", cfg.MQTT.BrokerURL).
				Dur("interval", cfg.Simulator.Interval).
				Msg("simulador conectado")

			sim := telemetry.NewSimulator(
				telemetry.NewRouter(cfg.Telemetry.Namespace),
				pub,
				temperature.DefaultMeters(),
				cfg.Simulator.Interval,
				nil,
				log,
			)
			return sim.Run(ctx)
		},
	}

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	appanalytics "github.com/univesp-PI-III/merenda-certa/internal/application/analytics"
	"github.com/univesp-PI-III/merenda-certa/internal/application/inventory"
	"github.com/univesp-PI-III/merenda-certa/internal/application/telemetry"
	"github.com/univesp-PI-III/merenda-certa/internal/application/usecase"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
	infraamqp "github.com/univesp-PI-III/merenda-certa/internal/infrastructure/amqp"
	"github.com/univesp-PI-III/merenda-certa/internal/infrastructure/memory"
	"github.com/univesp-PI-III/merenda-certa/internal/infrastructure/metrics"
	inframqtt "github.com/univesp-PI-III/merenda-certa/internal/infrastructure/mqtt"
	"github.com/univesp-PI-III/merenda-certa/internal/infrastructure/postgres"
	httpRouter "github.com/univesp-PI-III/merenda-certa/internal/interfaces/http"
	"github.com/univesp-PI-III/merenda-certa/pkg/config"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

const (
	shutdownTimeout     = 10 * time.Second
	subscriberRetryWait = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "API HTTP, suscriptor de telemetría y escritor de lecturas.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, log)
	},
}

// backend repositorios de un almacén concreto.
type backend struct {
	products  repository.ProductRepository
	lots      repository.LotRepository
	movements repository.MovementRepository
	meters    repository.MeterRepository
	readings  repository.ReadingRepository
	analytics repository.AnalyticsRepository
	tx        inventory.TxRunner
	close     func()
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	switch cfg.DB.Driver {
	case config.DriverMemory:
		st := memory.New(cfg.App.Location())
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return &backend{
			products: st.Products(), lots: st.Lots(), movements: st.Movements(),
			meters: st.Meters(), readings: st.Readings(), analytics: st.Analytics(),
			tx: st, close: func() {},
		}, nil
	default:
		dsn := cfg.DB.ConnectionString()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, dsn, "up", log); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		st := postgres.NewStore(pool, cfg.App.Timezone)
		return &backend{
			products: st.Products(), lots: st.Lots(), movements: st.Movements(),
			meters: st.Meters(), readings: st.Readings(), analytics: st.Analytics(),
			tx: st.TxRunner(), close: pool.Close,
		}, nil
	}
}

// subscriber fuente de mensajes de telemetría.
type subscriber interface {
	Run(ctx context.Context) error
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db", cfg.DB.Driver).
		Str("telemetry", cfg.Telemetry.Driver).
		Msg("iniciando aplicación")

	loc := cfg.App.Location()
	now := func() time.Time { return time.Now().In(loc) }

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer be.close()

	meterUC := usecase.NewMeterUseCase(be.meters, now)
	if cfg.DB.Driver == config.DriverMemory {
		if _, err := meterUC.EnsureDefaults(ctx); err != nil {
			return fmt.Errorf("medidores por defecto: %w", err)
		}
	}

	var (
		ingestMetrics  telemetry.Metrics
		metricsHandler nethttp.Handler
	)
	if cfg.Metrics.Enabled {
		m := metrics.New("merenda")
		ingestMetrics = m
		metricsHandler = m.Handler()
	}

	// Telemetría: suscriptor → ingestor → cola acotada → writer.
	router := telemetry.NewRouter(cfg.Telemetry.Namespace)
	queue := telemetry.NewQueue(cfg.Telemetry.BufferSize)
	ingestor := telemetry.NewIngestor(router, be.meters, queue, ingestMetrics, now, log)
	writer := telemetry.NewWriter(be.readings, queue, ingestMetrics, log)

	var sub subscriber
	switch cfg.Telemetry.Driver {
	case config.TelemetryMQTT:
		sub = inframqtt.NewSubscriber(cfg.MQTT, router.Filter(), ingestor, log)
	case config.TelemetryAMQP:
		sub = infraamqp.NewConsumer(cfg.AMQP, router.RoutingKey(), ingestor, log)
	}

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		ServiceName:      cfg.App.Name,
		ProductUC:        usecase.NewProductUseCase(be.products, now),
		ReceiveLot:       inventory.NewReceiveLotUseCase(be.products, be.lots, now),
		RegisterMovement: inventory.NewRegisterMovementUseCase(be.tx, now, log),
		LedgerUC:         usecase.NewLedgerUseCase(be.lots, be.movements),
		AnalyticsUC:      usecase.NewAnalyticsUseCase(be.analytics, be.products, now),
		DashboardUC:      appanalytics.NewDashboardUseCase(be.analytics),
		MeterUC:          meterUC,
		ReadingUC:        usecase.NewReadingUseCase(be.meters, be.readings, now),
		Metrics:          metricsHandler,
		Log:              log,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return writer.Run(gctx) })

	if sub != nil {
		g.Go(func() error {
			runSubscriber(gctx, sub, log)
			return nil
		})
	}

	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			return fmt.Errorf("servidor HTTP: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("aplicación detenida")
	return nil
}

// runSubscriber mantiene la suscripción viva: si el broker no está disponible reintenta
// hasta que ctx termina, sin afectar a la API.
func runSubscriber(ctx context.Context, sub subscriber, log *logger.Logger) {
	for {
		err := sub.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		log.Warn().Err(err).Dur("retry_in", subscriberRetryWait).Msg("suscriptor de telemetría detenido; reintentando")
		select {
		case <-ctx.Done():
			return
		case <-time.After(subscriberRetryWait):
		}
	}
}

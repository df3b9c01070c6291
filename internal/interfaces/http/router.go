package http

import (
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	appanalytics "github.com/univesp-PI-III/merenda-certa/internal/application/analytics"
	"github.com/univesp-PI-III/merenda-certa/internal/application/inventory"
	"github.com/univesp-PI-III/merenda-certa/internal/application/usecase"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName      string
	ProductUC        *usecase.ProductUseCase
	ReceiveLot       *inventory.ReceiveLotUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	LedgerUC         *usecase.LedgerUseCase
	AnalyticsUC      *usecase.AnalyticsUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	MeterUC          *usecase.MeterUseCase
	ReadingUC        *usecase.ReadingUseCase
	Metrics          nethttp.Handler // nil = sin /metrics
	Log              *logger.Logger
}

// NewApp crea la aplicación Fiber con los middlewares comunes y las rutas registradas.
func NewApp(deps RouterDeps) *fiber.App {
	errs := errorMapper{log: deps.Log.Component("http")}
	app := fiber.New(fiber.Config{
		AppName:               deps.ServiceName,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 60,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return errs.write(c, err)
		},
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(requestLogger(deps.Log.Component("http")))

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	log := deps.Log.Component("http")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	// Catálogo
	productHandler := NewProductHandler(deps.ProductUC, log)
	api.Get("/products", productHandler.List)
	api.Post("/products", productHandler.Create)

	// Libro: lotes y movimientos
	inventoryHandler := NewInventoryHandler(deps.ReceiveLot, deps.RegisterMovement, deps.LedgerUC, log)
	api.Get("/product-entries", inventoryHandler.ListLots)
	api.Post("/product-entries", inventoryHandler.CreateLot)
	api.Get("/movements", inventoryHandler.ListMovements)
	api.Post("/movements", inventoryHandler.RegisterMovement)

	// Analítica y tableros
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC, log)
	api.Get("/analytics/products", analyticsHandler.ProductTimeline)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	api.Get("/dashboard", dashboardHandler.Inventory)
	api.Get("/temperature-dashboard", dashboardHandler.Temperature)

	// Cadena de frío
	temperatureHandler := NewTemperatureHandler(deps.MeterUC, deps.ReadingUC, log)
	api.Get("/temperature-meters", temperatureHandler.ListMeters)
	api.Post("/temperature-meters", temperatureHandler.CreateMeter)
	api.Patch("/temperature-meters/:id", temperatureHandler.UpdateMeter)
	api.Get("/temperature-readings", temperatureHandler.ListReadings)
	api.Post("/temperature-readings", temperatureHandler.CreateReading)
}

// requestLogger registra cada petición con su status y latencia.
func requestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Debug()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Interface("request_id", c.Locals("requestid")).
			Msg("request")
		return err
	}
}

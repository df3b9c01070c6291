package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TimelineScope alcance de la reconstrucción; ProductID nil = todos los productos.
type TimelineScope struct {
	ProductID *int64
}

// DailyAmount cantidad agregada en un día calendario (medianoche UTC).
type DailyAmount struct {
	Day    time.Time
	Amount decimal.Decimal
}

// InventorySummary contadores del tablero de inventario.
type InventorySummary struct {
	TotalProducts     int
	LowStock          int
	TotalMovements    int
	TemperatureAlerts int
}

// TemperatureSummary contadores del tablero de temperatura.
type TemperatureSummary struct {
	TotalReadings    int
	TotalAlerts      int
	MetersWithAlerts int
}

// MeterAlertCount alertas acumuladas de un medidor.
type MeterAlertCount struct {
	MeterID   int64
	MeterName string
	MeterCode string
	Alerts    int
}

// AnalyticsRepository consultas de solo lectura sobre el libro y las lecturas.
// Los días se cortan en la zona horaria configurada del almacén.
type AnalyticsRepository interface {
	// StockBaseline = Σ quantity_total de lotes recibidos antes de before
	// + Σ IN antes de before − Σ OUT antes de before. DISCARD no participa.
	StockBaseline(ctx context.Context, scope TimelineScope, before time.Time) (decimal.Decimal, error)
	// StockDeltas delta neto por día en [from, to]: +lotes recibidos, +IN, −OUT.
	StockDeltas(ctx context.Context, scope TimelineScope, from, to time.Time) ([]DailyAmount, error)
	// ExpiredBaseline = Σ quantity_total de lotes con vencimiento anterior a before.
	ExpiredBaseline(ctx context.Context, scope TimelineScope, before time.Time) (decimal.Decimal, error)
	// ExpiredDeltas Σ quantity_total por fecha de vencimiento en [from, to].
	ExpiredDeltas(ctx context.Context, scope TimelineScope, from, to time.Time) ([]DailyAmount, error)

	InventorySummary(ctx context.Context) (InventorySummary, error)
	TemperatureSummary(ctx context.Context) (TemperatureSummary, error)
	TopAlertingMeters(ctx context.Context, limit int) ([]MeterAlertCount, error)
}

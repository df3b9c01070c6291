package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReadingStatus clasificación binaria de una lectura.
type ReadingStatus string

// Estados de lectura.
const (
	ReadingSafe  ReadingStatus = "SAFE"
	ReadingAlert ReadingStatus = "ALERT"
)

// ReadingSource origen de la lectura.
type ReadingSource string

// Orígenes de lectura.
const (
	SourceTelemetry ReadingSource = "TELEMETRY"
	SourceManual    ReadingSource = "MANUAL"
)

// Reading lectura de temperatura append-only. Status se calcula al escribir con la banda
// vigente del medidor y no se recalcula si la banda cambia después.
type Reading struct {
	ID           int64
	MeterID      int64
	TemperatureC decimal.Decimal
	Status       ReadingStatus
	Source       ReadingSource
	RecordedAt   time.Time

	// Campos de lectura (join con meters).
	MeterName string
	MeterCode string
	MinTemp   decimal.Decimal
	MaxTemp   decimal.Decimal
}

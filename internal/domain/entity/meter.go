package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Meter equipo de refrigeración o mantenimiento en caliente que reporta temperatura.
// [MinTemp, MaxTemp] es la banda segura; MinTemp < MaxTemp siempre.
type Meter struct {
	ID        int64
	Name      string
	MeterCode string // único; es el segmento del tópico de telemetría
	MinTemp   decimal.Decimal
	MaxTemp   decimal.Decimal
	CreatedAt time.Time
}

// MeterStatus vista de un medidor con su última lectura.
type MeterStatus struct {
	Meter
	LastTemperatureC *decimal.Decimal
	LastStatus       *ReadingStatus
	LastRecordedAt   *time.Time
}

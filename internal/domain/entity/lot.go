package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot es una entrada fechada de un producto ("product entry").
// QuantityTotal es inmutable; QuantityAvailable solo decrece por consumo (0 ≤ available ≤ total).
// Los lotes nunca se eliminan: son el registro histórico de lo recibido.
type Lot struct {
	ID                int64
	ProductID         int64
	QuantityTotal     decimal.Decimal
	QuantityAvailable decimal.Decimal
	ExpirationDate    time.Time // fecha calendario, medianoche UTC
	ReceivedAt        time.Time
	CreatedAt         time.Time

	// Campos de lectura (join con products).
	ProductName string
	Unit        string
}

// IsExpiredOn indica si el lote venció estrictamente antes del día dado.
func (l *Lot) IsExpiredOn(day time.Time) bool {
	return l.ExpirationDate.Before(day)
}

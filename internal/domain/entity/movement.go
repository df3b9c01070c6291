package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento del libro de inventario.
type MovementType string

// Tipos de movimiento.
const (
	MovementTypeIN      MovementType = "IN"      // recarga directa; nunca se crea por la API pública
	MovementTypeOUT     MovementType = "OUT"     // salida (consumo FEFO)
	MovementTypeDISCARD MovementType = "DISCARD" // descarte de lotes vencidos
)

// Valid indica si el tipo pertenece al conjunto conocido.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeDISCARD:
		return true
	}
	return false
}

// Movement es un asiento append-only contra el stock agregado de un producto.
type Movement struct {
	ID          int64
	ProductID   int64
	Type        MovementType
	Quantity    decimal.Decimal // siempre > 0
	Notes       *string
	CreatedAt   time.Time
	Allocations []LotAllocation // lotes debitados por este movimiento

	// Campo de lectura (join con products).
	ProductName string
}

// LotAllocation cantidad debitada de un lote por un movimiento.
type LotAllocation struct {
	LotID    int64
	Quantity decimal.Decimal
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un insumo del catálogo de la cocina.
// El stock nunca se guarda en el producto: siempre se deriva de sus lotes.
type Product struct {
	ID        int64
	Name      string
	Unit      string          // unidad de medida (kg, l, un)
	MinStock  decimal.Decimal // umbral de stock mínimo
	CreatedAt time.Time
}

// ProductStock vista de lectura de un producto con su stock derivado.
type ProductStock struct {
	Product
	CurrentStock decimal.Decimal // Σ quantity_available de sus lotes
	// NextExpiration vencimiento más próximo entre lotes con saldo; nil si no hay saldo.
	NextExpiration *time.Time
}

// IsLow indica si el stock actual está en o por debajo del mínimo.
func (p ProductStock) IsLow() bool {
	return p.CurrentStock.LessThanOrEqual(p.MinStock)
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
)

// LotFilter filtros para listar lotes.
type LotFilter struct {
	ProductID *int64
	Limit     int
}

// LotRepository define el puerto de persistencia para lotes (product entries).
type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	// ListAvailableForUpdate devuelve los lotes con saldo > 0 del producto en orden FEFO
	// (expiration_date, received_at, id ascendentes), bloqueados para update.
	ListAvailableForUpdate(ctx context.Context, productID int64) ([]*entity.Lot, error)
	// Debit resta qty de quantity_available; nunca puede dejarlo negativo.
	Debit(ctx context.Context, lotID int64, qty decimal.Decimal) error
	List(ctx context.Context, filter LotFilter) ([]*entity.Lot, error)
}

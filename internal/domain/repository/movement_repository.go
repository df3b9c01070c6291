package repository

import (
	"context"

	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos.
type MovementFilter struct {
	ProductID *int64
	Limit     int
}

// MovementRepository define el puerto de persistencia para movimientos (append-only).
type MovementRepository interface {
	// Create persiste el movimiento junto con sus asignaciones a lotes.
	Create(ctx context.Context, movement *entity.Movement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
}

package repository

import (
	"context"

	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
)

// MeterRepository define el puerto de persistencia para medidores de temperatura.
// GetByID y GetByCode devuelven (nil, nil) si no existe.
type MeterRepository interface {
	// Create devuelve domain.ErrDuplicateMeterCode si el código ya existe.
	Create(ctx context.Context, meter *entity.Meter) error
	GetByID(ctx context.Context, id int64) (*entity.Meter, error)
	GetByCode(ctx context.Context, code string) (*entity.Meter, error)
	// Update modifica nombre y banda; el código es inmutable.
	Update(ctx context.Context, meter *entity.Meter) error
	ListWithLastReading(ctx context.Context) ([]*entity.MeterStatus, error)
}

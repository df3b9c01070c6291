package repository

import (
	"context"
	"time"

	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
)

// ReadingFilter filtros para listar lecturas. From/To son días calendario inclusivos.
type ReadingFilter struct {
	From    *time.Time
	To      *time.Time
	MeterID *int64
	Limit   int
}

// ReadingRepository define el puerto de persistencia para lecturas (append-only).
type ReadingRepository interface {
	Create(ctx context.Context, reading *entity.Reading) error
	List(ctx context.Context, filter ReadingFilter) ([]*entity.Reading, error)
}

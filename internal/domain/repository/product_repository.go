package repository

import (
	"context"

	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para el catálogo.
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// ListWithStock lista productos por nombre con el stock derivado de sus lotes.
	ListWithStock(ctx context.Context) ([]*entity.ProductStock, error)
}

package inventory

import (
	"context"

	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén, pasando repositorios atados a esa tx.
// Si fn devuelve error no se confirma nada: ni débitos de lotes ni movimiento.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
	) error) error
}

package usecase

import (
	"context"

	"github.com/univesp-PI-III/merenda-certa/internal/application/dto"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
)

const (
	lotListLimit      = 300
	movementListLimit = 100
)

// LedgerUseCase consultas de solo lectura sobre lotes y movimientos.
type LedgerUseCase struct {
	lotRepo      repository.LotRepository
	movementRepo repository.MovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(lotRepo repository.LotRepository, movementRepo repository.MovementRepository) *LedgerUseCase {
	return &LedgerUseCase{lotRepo: lotRepo, movementRepo: movementRepo}
}

// ListLots devuelve los lotes más recientes primero (máximo 300), opcionalmente de un producto.
func (uc *LedgerUseCase) ListLots(ctx context.Context, productID *int64) ([]dto.LotResponse, error) {
	lots, err := uc.lotRepo.List(ctx, repository.LotFilter{ProductID: productID, Limit: lotListLimit})
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.NewLotResponse(l))
	}
	return out, nil
}

// ListMovements devuelve los movimientos más recientes primero.
// Sin filtro de producto se limita a 100; con filtro devuelve el historial completo del producto.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, productID *int64) ([]dto.MovementResponse, error) {
	filter := repository.MovementFilter{ProductID: productID}
	if productID == nil {
		filter.Limit = movementListLimit
	}
	movs, err := uc.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.NewMovementResponse(m))
	}
	return out, nil
}

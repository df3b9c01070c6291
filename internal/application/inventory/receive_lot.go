package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/univesp-PI-III/merenda-certa/internal/application/dto"
	"github.com/univesp-PI-III/merenda-certa/internal/domain"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/inventory"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
)

// ReceiveLotUseCase registra la recepción de un lote. Es la única operación que aumenta stock:
// crea el lote con available = total y no toca otros lotes ni crea movimientos.
type ReceiveLotUseCase struct {
	productRepo repository.ProductRepository
	lotRepo     repository.LotRepository
	now         func() time.Time
}

// NewReceiveLotUseCase construye el caso de uso.
func NewReceiveLotUseCase(productRepo repository.ProductRepository, lotRepo repository.LotRepository, now func() time.Time) *ReceiveLotUseCase {
	if now == nil {
		now = time.Now
	}
	return &ReceiveLotUseCase{productRepo: productRepo, lotRepo: lotRepo, now: now}
}

// Receive valida la entrada y persiste el lote.
func (uc *ReceiveLotUseCase) Receive(ctx context.Context, in dto.CreateLotRequest) (*entity.Lot, error) {
	if in.ProductID <= 0 {
		return nil, domain.NewValidationError("productId", "es requerido")
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	expiration, err := inventory.ParseDate(in.ExpirationDate)
	if err != nil {
		return nil, domain.ErrInvalidExpiration
	}
	receivedAt := uc.now()
	if in.ReceivedAt != nil && strings.TrimSpace(*in.ReceivedAt) != "" {
		receivedAt, err = inventory.ParseTimestamp(*in.ReceivedAt, receivedAt.Location())
		if err != nil {
			return nil, domain.NewValidationError("receivedAt", "formato inválido")
		}
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrUnknownProduct
	}

	lot := &entity.Lot{
		ProductID:         product.ID,
		QuantityTotal:     in.Quantity,
		QuantityAvailable: in.Quantity,
		ExpirationDate:    expiration,
		ReceivedAt:        receivedAt,
		CreatedAt:         uc.now(),
		ProductName:       product.Name,
		Unit:              product.Unit,
	}
	if err := uc.lotRepo.Create(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

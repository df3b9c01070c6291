package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/domain"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/inventory"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

// RegisterMovementUseCase registra salidas (OUT) y descartes (DISCARD) consumiendo lotes en orden FEFO.
// Débitos de lotes y el movimiento se confirman en una sola transacción.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	now      func() time.Time
	log      *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso. now define "hoy" para el descarte.
func NewRegisterMovementUseCase(txRunner TxRunner, now func() time.Time, log *logger.Logger) *RegisterMovementUseCase {
	if now == nil {
		now = time.Now
	}
	return &RegisterMovementUseCase{txRunner: txRunner, now: now, log: log.Component("fefo")}
}

// MovementInputDTO entrada para registrar un movimiento.
type MovementInputDTO struct {
	ProductID int64
	Type      string
	Quantity  decimal.Decimal
	Notes     *string
}

// RegisterMovement valida, bloquea el producto y sus lotes con saldo, planifica el consumo FEFO,
// debita los lotes y guarda el movimiento. Todo o nada.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.Movement, error) {
	movementType := entity.MovementType(strings.ToUpper(strings.TrimSpace(input.Type)))
	switch movementType {
	case entity.MovementTypeOUT, entity.MovementTypeDISCARD:
	case entity.MovementTypeIN:
		return nil, domain.ErrInboundNotAllowed
	default:
		return nil, domain.ErrInvalidMovementType
	}
	if input.ProductID <= 0 {
		return nil, domain.NewValidationError("productId", "es requerido")
	}
	if !input.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}

	now := uc.now()
	today := inventory.DateOf(now)
	notes := normalizeNotes(input.Notes)

	var created *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
	) error {
		// Bloquea el producto: serializa consumidores concurrentes del mismo producto
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrUnknownProduct
		}

		lots, err := lotRepo.ListAvailableForUpdate(ctx, product.ID)
		if err != nil {
			return err
		}
		plan, err := inventory.PlanConsumption(lots, input.Quantity, movementType, today)
		if err != nil {
			return err
		}
		for _, a := range plan {
			if err := lotRepo.Debit(ctx, a.LotID, a.Quantity); err != nil {
				return err
			}
		}

		mov := &entity.Movement{
			ProductID:   product.ID,
			Type:        movementType,
			Quantity:    input.Quantity,
			Notes:       notes,
			CreatedAt:   now,
			Allocations: plan,
			ProductName: product.Name,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("movement_id", created.ID).
		Int64("product_id", created.ProductID).
		Str("type", string(created.Type)).
		Str("quantity", created.Quantity.String()).
		Int("lots", len(created.Allocations)).
		Msg("movimiento registrado")
	return created, nil
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	s := strings.TrimSpace(*notes)
	if s == "" {
		return nil
	}
	return &s
}

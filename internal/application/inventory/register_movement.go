package inventory

import (
	"context"

	"github.com/univesp-PI-III/merenda-certa/internal/application/dto"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, in dto.RegisterMovementRequest) (*entity.Movement, error) {
	input := MovementInputDTO{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
	}
	return uc.RegisterMovement(ctx, input)
}

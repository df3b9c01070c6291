package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/application/dto"
	"github.com/univesp-PI-III/merenda-certa/internal/domain"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
)

const defaultUnit = "kg"

// ProductUseCase casos de uso del catálogo. El stock se deriva de los lotes, nunca se edita.
type ProductUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, now func() time.Time) *ProductUseCase {
	if now == nil {
		now = time.Now
	}
	return &ProductUseCase{repo: repo, now: now}
}

// Create registra un producto. Unit por defecto "kg"; MinStock por defecto 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = defaultUnit
	}
	minStock := decimal.Zero
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.NewValidationError("minStock", "no puede ser negativo")
		}
		minStock = *in.MinStock
	}

	product := &entity.Product{
		Name:      name,
		Unit:      unit,
		MinStock:  minStock,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	resp := dto.NewProductResponse(&entity.ProductStock{Product: *product, CurrentStock: decimal.Zero})
	return &resp, nil
}

// List devuelve el catálogo ordenado por nombre con el stock actual y el vencimiento más próximo.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListWithStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewProductResponse(p))
	}
	return out, nil
}

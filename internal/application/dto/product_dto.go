package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
)

// CreateProductRequest entrada para registrar un producto en el catálogo.
type CreateProductRequest struct {
	Name     string           `json:"name"`
	Unit     string           `json:"unit"`     // por defecto "kg"
	MinStock *decimal.Decimal `json:"minStock"` // por defecto 0
}

// ProductResponse salida de un producto con su stock derivado de lotes.
type ProductResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Unit           string          `json:"unit"`
	CurrentStock   decimal.Decimal `json:"currentStock"`
	MinStock       decimal.Decimal `json:"minStock"`
	ExpirationDate *string         `json:"expirationDate"` // vencimiento más próximo con saldo
	CreatedAt      time.Time       `json:"createdAt"`
}

// NewProductResponse mapea la vista de stock a la respuesta HTTP.
func NewProductResponse(p *entity.ProductStock) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Unit:           p.Unit,
		CurrentStock:   p.CurrentStock,
		MinStock:       p.MinStock,
		ExpirationDate: formatDatePtr(p.NextExpiration),
		CreatedAt:      p.CreatedAt,
	}
}

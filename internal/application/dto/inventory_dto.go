package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
)

// CreateLotRequest body para POST /api/product-entries.
type CreateLotRequest struct {
	ProductID      int64           `json:"productId"`
	Quantity       decimal.Decimal `json:"quantity"`
	ExpirationDate string          `json:"expirationDate"` // YYYY-MM-DD
	ReceivedAt     *string         `json:"receivedAt"`     // RFC3339 o YYYY-MM-DD; por defecto ahora
}

// LotResponse salida de un lote.
type LotResponse struct {
	ID                int64           `json:"id"`
	ProductID         int64           `json:"productId"`
	ProductName       string          `json:"productName"`
	Unit              string          `json:"unit"`
	QuantityTotal     decimal.Decimal `json:"quantityTotal"`
	QuantityAvailable decimal.Decimal `json:"quantityAvailable"`
	ExpirationDate    string          `json:"expirationDate"`
	ReceivedAt        time.Time       `json:"receivedAt"`
}

// NewLotResponse mapea un lote a la respuesta HTTP.
func NewLotResponse(l *entity.Lot) LotResponse {
	return LotResponse{
		ID:                l.ID,
		ProductID:         l.ProductID,
		ProductName:       l.ProductName,
		Unit:              l.Unit,
		QuantityTotal:     l.QuantityTotal,
		QuantityAvailable: l.QuantityAvailable,
		ExpirationDate:    formatDate(l.ExpirationDate),
		ReceivedAt:        l.ReceivedAt,
	}
}

// RegisterMovementRequest body para POST /api/movements. Type: OUT | DISCARD.
type RegisterMovementRequest struct {
	ProductID int64           `json:"productId"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Notes     *string         `json:"notes"`
}

// AllocationResponse cantidad tomada de un lote por un movimiento.
type AllocationResponse struct {
	LotID    int64           `json:"lotId"`
	Quantity decimal.Decimal `json:"quantity"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID          int64                `json:"id"`
	ProductID   int64                `json:"productId"`
	ProductName string               `json:"productName"`
	Type        string               `json:"type"`
	Quantity    decimal.Decimal      `json:"quantity"`
	Notes       *string              `json:"notes"`
	CreatedAt   time.Time            `json:"createdAt"`
	Allocations []AllocationResponse `json:"allocations,omitempty"`
}

// NewMovementResponse mapea un movimiento a la respuesta HTTP.
func NewMovementResponse(m *entity.Movement) MovementResponse {
	out := MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
	for _, a := range m.Allocations {
		out.Allocations = append(out.Allocations, AllocationResponse{LotID: a.LotID, Quantity: a.Quantity})
	}
	return out
}

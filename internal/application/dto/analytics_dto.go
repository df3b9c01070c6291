package dto

import "github.com/shopspring/decimal"

// ProductTimelineRequest parámetros de GET /api/analytics/products.
type ProductTimelineRequest struct {
	Days      string // entero en [7, 365]; otro valor → 60
	ProductID *int64 // nil = todos los productos
}

// ProductTimelineResponse serie diaria de stock y de vencidos acumulados.
type ProductTimelineResponse struct {
	From            string            `json:"from"`
	To              string            `json:"to"`
	Labels          []string          `json:"labels"`
	StockTimeline   []decimal.Decimal `json:"stockTimeline"`
	ExpiredTimeline []decimal.Decimal `json:"expiredTimeline"`
}

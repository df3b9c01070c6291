package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/univesp-PI-III/merenda-certa/internal/application/dto"
	"github.com/univesp-PI-III/merenda-certa/internal/application/usecase"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

// AnalyticsHandler maneja la serie histórica de stock y vencidos.
type AnalyticsHandler struct {
	uc     *usecase.AnalyticsUseCase
	errors errorMapper
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, errors: errorMapper{log: log}}
}

// ProductTimeline GET /api/analytics/products?days=N&productId=
//
// days fuera de [7, 365] se acota; un valor no entero usa 60.
func (h *AnalyticsHandler) ProductTimeline(c *fiber.Ctx) error {
	productID, err := optionalID(c, "productId")
	if err != nil {
		return h.errors.write(c, err)
	}
	out, err := h.uc.ProductTimeline(c.Context(), dto.ProductTimelineRequest{
		Days:      c.Query("days"),
		ProductID: productID,
	})
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.JSON(out)
}

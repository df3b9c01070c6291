package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/univesp-PI-III/merenda-certa/internal/application/analytics"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

// DashboardHandler maneja los tableros de inventario y temperatura.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	errors errorMapper
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, errors: errorMapper{log: log}}
}

// Inventory GET /api/dashboard
func (h *DashboardHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.Inventory(c.Context())
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.JSON(out)
}

// Temperature GET /api/temperature-dashboard
func (h *DashboardHandler) Temperature(c *fiber.Ctx) error {
	out, err := h.uc.Temperature(c.Context())
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/univesp-PI-III/merenda-certa/internal/application/dto"
	"github.com/univesp-PI-III/merenda-certa/internal/application/usecase"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP del catálogo.
type ProductHandler struct {
	uc     *usecase.ProductUseCase
	errors errorMapper
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, errors: errorMapper{log: log}}
}

// Create registra un producto.
// POST /api/products  {name, unit?, minStock?} → 201 ProductResponse
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List devuelve los productos por nombre con stock derivado y vencimiento más próximo.
// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/univesp-PI-III/merenda-certa/internal/application/dto"
	"github.com/univesp-PI-III/merenda-certa/internal/application/inventory"
	"github.com/univesp-PI-III/merenda-certa/internal/application/usecase"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

// InventoryHandler maneja lotes (product entries) y movimientos.
type InventoryHandler struct {
	receive   *inventory.ReceiveLotUseCase
	movements *inventory.RegisterMovementUseCase
	ledger    *usecase.LedgerUseCase
	errors    errorMapper
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	receive *inventory.ReceiveLotUseCase,
	movements *inventory.RegisterMovementUseCase,
	ledger *usecase.LedgerUseCase,
	log *logger.Logger,
) *InventoryHandler {
	return &InventoryHandler{receive: receive, movements: movements, ledger: ledger, errors: errorMapper{log: log}}
}

// CreateLot registra la recepción de un lote.
// POST /api/product-entries  {productId, quantity, expirationDate, receivedAt?} → 201 LotResponse
func (h *InventoryHandler) CreateLot(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	lot, err := h.receive.Receive(c.Context(), in)
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLotResponse(lot))
}

// ListLots GET /api/product-entries[?productId=]
func (h *InventoryHandler) ListLots(c *fiber.Ctx) error {
	productID, err := optionalID(c, "productId")
	if err != nil {
		return h.errors.write(c, err)
	}
	out, err := h.ledger.ListLots(c.Context(), productID)
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.JSON(out)
}

// RegisterMovement consume stock en orden FEFO.
// POST /api/movements  {productId, type: OUT|DISCARD, quantity, notes?} → 201 MovementResponse
// 400 datos inválidos o type=IN; 404 producto inexistente; 409 stock (vencido) insuficiente.
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	mov, err := h.movements.RegisterMovementFromRequest(c.Context(), in)
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(mov))
}

// ListMovements GET /api/movements[?productId=]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID, err := optionalID(c, "productId")
	if err != nil {
		return h.errors.write(c, err)
	}
	out, err := h.ledger.ListMovements(c.Context(), productID)
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.JSON(out)
}

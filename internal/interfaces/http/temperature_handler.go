package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/univesp-PI-III/merenda-certa/internal/application/dto"
	"github.com/univesp-PI-III/merenda-certa/internal/application/usecase"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

// TemperatureHandler maneja medidores y lecturas.
type TemperatureHandler struct {
	meters   *usecase.MeterUseCase
	readings *usecase.ReadingUseCase
	errors   errorMapper
}

// NewTemperatureHandler construye el handler.
func NewTemperatureHandler(meters *usecase.MeterUseCase, readings *usecase.ReadingUseCase, log *logger.Logger) *TemperatureHandler {
	return &TemperatureHandler{meters: meters, readings: readings, errors: errorMapper{log: log}}
}

// ListMeters GET /api/temperature-meters
func (h *TemperatureHandler) ListMeters(c *fiber.Ctx) error {
	out, err := h.meters.List(c.Context())
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.JSON(out)
}

// CreateMeter POST /api/temperature-meters → 201; 409 si meterCode ya existe.
func (h *TemperatureHandler) CreateMeter(c *fiber.Ctx) error {
	var in dto.CreateMeterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.meters.Create(c.Context(), in)
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateMeter PATCH /api/temperature-meters/:id
func (h *TemperatureHandler) UpdateMeter(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return h.errors.write(c, err)
	}
	var in dto.UpdateMeterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.meters.Update(c.Context(), id, in)
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.JSON(out)
}

// ListReadings GET /api/temperature-readings?from=&to=&meterId=
func (h *TemperatureHandler) ListReadings(c *fiber.Ctx) error {
	meterID, err := optionalID(c, "meterId")
	if err != nil {
		return h.errors.write(c, err)
	}
	in := dto.ListReadingsRequest{From: c.Query("from"), To: c.Query("to")}
	if meterID != nil {
		in.MeterID = *meterID
	}
	out, err := h.readings.List(c.Context(), in)
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.JSON(out)
}

// CreateReading registra una lectura manual.
// POST /api/temperature-readings  {meterId, temperatureC, recordedAt?} → 201
func (h *TemperatureHandler) CreateReading(c *fiber.Ctx) error {
	var in dto.CreateReadingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.readings.Record(c.Context(), in)
	if err != nil {
		return h.errors.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/univesp-PI-III/merenda-certa/internal/application/dto"
	"github.com/univesp-PI-III/merenda-certa/internal/domain"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

// errorMapper traduce errores de dominio a status HTTP.
type errorMapper struct {
	log *logger.Logger
}

func (m errorMapper) write(c *fiber.Ctx, err error) error {
	status, body := m.resolve(err)
	if status == fiber.StatusInternalServerError {
		m.log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Interface("request_id", c.Locals("requestid")).
			Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func (m errorMapper) resolve(err error) (int, dto.ErrorResponse) {
	var ve *domain.ValidationError
	var fe *fiber.Error
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: ve.Error()}
	case errors.Is(err, domain.ErrInboundNotAllowed):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INBOUND_NOT_ALLOWED", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrInsufficientExpiredStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_EXPIRED_STOCK", Message: err.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicateMeterCode):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE_METER_CODE", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.As(err, &fe):
		return fe.Code, dto.ErrorResponse{Code: statusCode(fe.Code), Message: fe.Message}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
}

// statusCode "Not Found" → "NOT_FOUND".
func statusCode(status int) string {
	msg := fiber.StatusMessage(status)
	if msg == "" {
		return "HTTP_" + strconv.Itoa(status)
	}
	return strings.ToUpper(strings.ReplaceAll(msg, " ", "_"))
}

// invalidBody respuesta para un cuerpo JSON que no se pudo interpretar.
func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// optionalID lee un parámetro de query entero positivo; ausente o vacío → nil.
func optionalID(c *fiber.Ctx, key string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, domain.NewValidationError(key, "debe ser un entero positivo")
	}
	return &id, nil
}

// pathID lee el parámetro :id de la ruta.
func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "debe ser un entero positivo")
	}
	return id, nil
}

package domain

import (
	"errors"
	"fmt"
)

// Clases de error de dominio. Los errores concretos envuelven una de ellas para que
// la capa HTTP decida el status con errors.Is.
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores concretos del libro de inventario y de la cadena de frío.
var (
	ErrInvalidQuantity     = fmt.Errorf("%w: la cantidad debe ser mayor que cero", ErrInvalidInput)
	ErrInvalidExpiration   = fmt.Errorf("%w: fecha de vencimiento ausente o inválida", ErrInvalidInput)
	ErrInvalidMovementType = fmt.Errorf("%w: tipo de movimiento inválido", ErrInvalidInput)
	ErrInboundNotAllowed   = fmt.Errorf("%w: las entradas se registran como lotes con vencimiento", ErrInvalidInput)
	ErrInvalidBand         = fmt.Errorf("%w: la temperatura mínima debe ser menor que la máxima", ErrInvalidInput)
	ErrInvalidTemperature  = fmt.Errorf("%w: temperatura inválida", ErrInvalidInput)

	ErrUnknownProduct = fmt.Errorf("%w: producto", ErrNotFound)
	ErrUnknownMeter   = fmt.Errorf("%w: medidor", ErrNotFound)

	ErrInsufficientStock        = fmt.Errorf("%w: stock insuficiente", ErrConflict)
	ErrInsufficientExpiredStock = fmt.Errorf("%w: stock vencido insuficiente para descarte", ErrConflict)
	ErrDuplicateMeterCode       = fmt.Errorf("%w: ya existe un medidor con ese código", ErrConflict)
)

// ValidationError describe un campo inválido; se compara como ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError para el campo indicado.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

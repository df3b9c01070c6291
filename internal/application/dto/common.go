package dto

import (
	"time"

	"github.com/univesp-PI-III/merenda-certa/internal/domain/inventory"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// formatDate serializa un día calendario como YYYY-MM-DD.
func formatDate(t time.Time) string {
	return t.Format(inventory.DateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/temperature"
)

// CreateMeterRequest body para POST /api/temperature-meters.
type CreateMeterRequest struct {
	Name      string           `json:"name"`
	MeterCode string           `json:"meterCode"`
	MinTemp   *decimal.Decimal `json:"minTemp"`
	MaxTemp   *decimal.Decimal `json:"maxTemp"`
}

// UpdateMeterRequest body para PATCH /api/temperature-meters/:id. Campos ausentes no cambian.
type UpdateMeterRequest struct {
	Name    *string          `json:"name"`
	MinTemp *decimal.Decimal `json:"minTemp"`
	MaxTemp *decimal.Decimal `json:"maxTemp"`
}

// MeterResponse salida de un medidor; los campos last* y liveState solo en el listado.
type MeterResponse struct {
	ID               int64                 `json:"id"`
	Name             string                `json:"name"`
	MeterCode        string                `json:"meterCode"`
	MinTemp          decimal.Decimal       `json:"minTemp"`
	MaxTemp          decimal.Decimal       `json:"maxTemp"`
	CreatedAt        time.Time             `json:"createdAt"`
	LastTemperatureC *decimal.Decimal      `json:"lastTemperatureC,omitempty"`
	LastStatus       *entity.ReadingStatus `json:"lastStatus,omitempty"`
	LastRecordedAt   *time.Time            `json:"lastRecordedAt,omitempty"`
	LiveState        temperature.LiveState `json:"liveState,omitempty"`
}

// NewMeterResponse mapea un medidor sin estado de lectura.
func NewMeterResponse(m *entity.Meter) MeterResponse {
	return MeterResponse{
		ID:        m.ID,
		Name:      m.Name,
		MeterCode: m.MeterCode,
		MinTemp:   m.MinTemp,
		MaxTemp:   m.MaxTemp,
		CreatedAt: m.CreatedAt,
	}
}

// NewMeterStatusResponse mapea un medidor con su última lectura y semáforo.
func NewMeterStatusResponse(m *entity.MeterStatus) MeterResponse {
	out := NewMeterResponse(&m.Meter)
	out.LastTemperatureC = m.LastTemperatureC
	out.LastStatus = m.LastStatus
	out.LastRecordedAt = m.LastRecordedAt
	out.LiveState = temperature.Live(m.LastTemperatureC, m.MinTemp, m.MaxTemp)
	return out
}

// CreateReadingRequest body para POST /api/temperature-readings (lectura manual).
type CreateReadingRequest struct {
	MeterID      int64            `json:"meterId"`
	TemperatureC *decimal.Decimal `json:"temperatureC"`
	RecordedAt   *string          `json:"recordedAt"`
}

// ListReadingsRequest filtros de GET /api/temperature-readings.
type ListReadingsRequest struct {
	From    string `query:"from"` // YYYY-MM-DD inclusivo
	To      string `query:"to"`   // YYYY-MM-DD inclusivo
	MeterID int64  `query:"meterId"`
}

// ReadingResponse salida de una lectura.
type ReadingResponse struct {
	ID           int64                `json:"id"`
	MeterID      int64                `json:"meterId"`
	MeterName    string               `json:"meterName"`
	MeterCode    string               `json:"meterCode"`
	MinTemp      decimal.Decimal      `json:"minTemp"`
	MaxTemp      decimal.Decimal      `json:"maxTemp"`
	TemperatureC decimal.Decimal      `json:"temperatureC"`
	Status       entity.ReadingStatus `json:"status"`
	Source       entity.ReadingSource `json:"source"`
	RecordedAt   time.Time            `json:"recordedAt"`
}

// NewReadingResponse mapea una lectura a la respuesta HTTP.
func NewReadingResponse(r *entity.Reading) ReadingResponse {
	return ReadingResponse{
		ID:           r.ID,
		MeterID:      r.MeterID,
		MeterName:    r.MeterName,
		MeterCode:    r.MeterCode,
		MinTemp:      r.MinTemp,
		MaxTemp:      r.MaxTemp,
		TemperatureC: r.TemperatureC,
		Status:       r.Status,
		Source:       r.Source,
		RecordedAt:   r.RecordedAt,
	}
}

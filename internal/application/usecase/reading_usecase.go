package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/univesp-PI-III/merenda-certa/internal/application/dto"
	"github.com/univesp-PI-III/merenda-certa/internal/domain"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/inventory"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/temperature"
)

const readingListLimit = 300

// ReadingUseCase lecturas manuales y consulta del historial.
type ReadingUseCase struct {
	meterRepo   repository.MeterRepository
	readingRepo repository.ReadingRepository
	now         func() time.Time
}

// NewReadingUseCase construye el caso de uso.
func NewReadingUseCase(meterRepo repository.MeterRepository, readingRepo repository.ReadingRepository, now func() time.Time) *ReadingUseCase {
	if now == nil {
		now = time.Now
	}
	return &ReadingUseCase{meterRepo: meterRepo, readingRepo: readingRepo, now: now}
}

// Record guarda una lectura manual clasificada con la banda vigente del medidor.
func (uc *ReadingUseCase) Record(ctx context.Context, in dto.CreateReadingRequest) (*dto.ReadingResponse, error) {
	if in.MeterID <= 0 {
		return nil, domain.NewValidationError("meterId", "es requerido")
	}
	if in.TemperatureC == nil {
		return nil, domain.ErrInvalidTemperature
	}
	now := uc.now()
	recordedAt := now
	if in.RecordedAt != nil && strings.TrimSpace(*in.RecordedAt) != "" {
		t, err := inventory.ParseTimestamp(*in.RecordedAt, now.Location())
		if err != nil {
			return nil, domain.NewValidationError("recordedAt", "formato inválido")
		}
		recordedAt = t
	}

	meter, err := uc.meterRepo.GetByID(ctx, in.MeterID)
	if err != nil {
		return nil, err
	}
	if meter == nil {
		return nil, domain.ErrUnknownMeter
	}

	reading := &entity.Reading{
		MeterID:      meter.ID,
		TemperatureC: *in.TemperatureC,
		Status:       temperature.Classify(*in.TemperatureC, meter.MinTemp, meter.MaxTemp),
		Source:       entity.SourceManual,
		RecordedAt:   recordedAt,
		MeterName:    meter.Name,
		MeterCode:    meter.MeterCode,
		MinTemp:      meter.MinTemp,
		MaxTemp:      meter.MaxTemp,
	}
	if err := uc.readingRepo.Create(ctx, reading); err != nil {
		return nil, err
	}
	resp := dto.NewReadingResponse(reading)
	return &resp, nil
}

// List devuelve las lecturas más recientes primero (máximo 300) filtradas por días y medidor.
func (uc *ReadingUseCase) List(ctx context.Context, in dto.ListReadingsRequest) ([]dto.ReadingResponse, error) {
	filter := repository.ReadingFilter{Limit: readingListLimit}
	if strings.TrimSpace(in.From) != "" {
		from, err := inventory.ParseDate(in.From)
		if err != nil {
			return nil, domain.NewValidationError("from", "fecha inválida")
		}
		filter.From = &from
	}
	if strings.TrimSpace(in.To) != "" {
		to, err := inventory.ParseDate(in.To)
		if err != nil {
			return nil, domain.NewValidationError("to", "fecha inválida")
		}
		filter.To = &to
	}
	if in.MeterID > 0 {
		id := in.MeterID
		filter.MeterID = &id
	}

	list, err := uc.readingRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReadingResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NewReadingResponse(r))
	}
	return out, nil
}

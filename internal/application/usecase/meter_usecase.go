package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/univesp-PI-III/merenda-certa/internal/application/dto"
	"github.com/univesp-PI-III/merenda-certa/internal/domain"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/temperature"
)

// MeterUseCase alta, edición y listado de medidores de temperatura.
type MeterUseCase struct {
	repo repository.MeterRepository
	now  func() time.Time
}

// NewMeterUseCase construye el caso de uso.
func NewMeterUseCase(repo repository.MeterRepository, now func() time.Time) *MeterUseCase {
	if now == nil {
		now = time.Now
	}
	return &MeterUseCase{repo: repo, now: now}
}

// Create registra un medidor. El código es único (409 si se repite) y la banda debe cumplir min < max.
func (uc *MeterUseCase) Create(ctx context.Context, in dto.CreateMeterRequest) (*dto.MeterResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	code := strings.TrimSpace(in.MeterCode)
	if code == "" || strings.ContainsAny(code, "/+#") {
		return nil, domain.NewValidationError("meterCode", "es requerido y no puede contener '/', '+' ni '#'")
	}
	if in.MinTemp == nil || in.MaxTemp == nil {
		return nil, domain.NewValidationError("minTemp/maxTemp", "son requeridos")
	}
	if err := temperature.ValidateBand(*in.MinTemp, *in.MaxTemp); err != nil {
		return nil, err
	}

	meter := &entity.Meter{
		Name:      name,
		MeterCode: code,
		MinTemp:   *in.MinTemp,
		MaxTemp:   *in.MaxTemp,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, meter); err != nil {
		return nil, err
	}
	resp := dto.NewMeterResponse(meter)
	return &resp, nil
}

// Update aplica los campos presentes. Un nombre en blanco conserva el actual; el código no cambia.
func (uc *MeterUseCase) Update(ctx context.Context, id int64, in dto.UpdateMeterRequest) (*dto.MeterResponse, error) {
	meter, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meter == nil {
		return nil, domain.ErrUnknownMeter
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		meter.Name = strings.TrimSpace(*in.Name)
	}
	if in.MinTemp != nil {
		meter.MinTemp = *in.MinTemp
	}
	if in.MaxTemp != nil {
		meter.MaxTemp = *in.MaxTemp
	}
	if err := temperature.ValidateBand(meter.MinTemp, meter.MaxTemp); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, meter); err != nil {
		return nil, err
	}
	resp := dto.NewMeterResponse(meter)
	return &resp, nil
}

// List devuelve los medidores por nombre con su última lectura y el semáforo en vivo.
func (uc *MeterUseCase) List(ctx context.Context) ([]dto.MeterResponse, error) {
	list, err := uc.repo.ListWithLastReading(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MeterResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewMeterStatusResponse(m))
	}
	return out, nil
}

// EnsureDefaults crea los medidores por defecto que falten. Devuelve cuántos creó.
func (uc *MeterUseCase) EnsureDefaults(ctx context.Context) (int, error) {
	created := 0
	for _, d := range temperature.DefaultMeters() {
		existing, err := uc.repo.GetByCode(ctx, d.MeterCode)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}
		meter := &entity.Meter{
			Name:      d.Name,
			MeterCode: d.MeterCode,
			MinTemp:   d.MinTemp,
			MaxTemp:   d.MaxTemp,
			CreatedAt: uc.now(),
		}
		if err := uc.repo.Create(ctx, meter); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

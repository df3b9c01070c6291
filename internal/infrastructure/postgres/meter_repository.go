package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/domain"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
)

var _ repository.MeterRepository = (*MeterRepo)(nil)

// MeterRepo persistencia de medidores (tabla temperature_meters).
type MeterRepo struct {
	q Querier
}

// NewMeterRepository construye el adaptador.
func NewMeterRepository(q Querier) *MeterRepo {
	return &MeterRepo{q: q}
}

// Create persiste el medidor; el código repetido devuelve domain.ErrDuplicateMeterCode.
func (r *MeterRepo) Create(ctx context.Context, m *entity.Meter) error {
	query := `
		INSERT INTO temperature_meters (name, meter_code, min_temp, max_temp, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, m.Name, m.MeterCode, m.MinTemp, m.MaxTemp, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateMeterCode
		}
		return fmt.Errorf("insert meter: %w", err)
	}
	return nil
}

// GetByID obtiene un medidor por ID.
func (r *MeterRepo) GetByID(ctx context.Context, id int64) (*entity.Meter, error) {
	return r.get(ctx, `SELECT id, name, meter_code, min_temp, max_temp, created_at FROM temperature_meters WHERE id = $1`, id)
}

// GetByCode obtiene un medidor por su código de telemetría.
func (r *MeterRepo) GetByCode(ctx context.Context, code string) (*entity.Meter, error) {
	return r.get(ctx, `SELECT id, name, meter_code, min_temp, max_temp, created_at FROM temperature_meters WHERE meter_code = $1`, code)
}

func (r *MeterRepo) get(ctx context.Context, query string, arg any) (*entity.Meter, error) {
	var m entity.Meter
	err := r.q.QueryRow(ctx, query, arg).Scan(&m.ID, &m.Name, &m.MeterCode, &m.MinTemp, &m.MaxTemp, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meter: %w", err)
	}
	return &m, nil
}

// Update modifica nombre y banda.
func (r *MeterRepo) Update(ctx context.Context, m *entity.Meter) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE temperature_meters SET name = $2, min_temp = $3, max_temp = $4 WHERE id = $1`,
		m.ID, m.Name, m.MinTemp, m.MaxTemp)
	if err != nil {
		return fmt.Errorf("update meter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUnknownMeter
	}
	return nil
}

// ListWithLastReading lista medidores por nombre con su lectura más reciente.
func (r *MeterRepo) ListWithLastReading(ctx context.Context) ([]*entity.MeterStatus, error) {
	query := `
		SELECT m.id, m.name, m.meter_code, m.min_temp, m.max_temp, m.created_at,
		       lr.temperature_c, lr.status, lr.recorded_at
		FROM temperature_meters m
		LEFT JOIN LATERAL (
			SELECT r.temperature_c, r.status, r.recorded_at
			FROM temperature_readings r
			WHERE r.meter_id = m.id
			ORDER BY r.recorded_at DESC, r.id DESC
			LIMIT 1
		) lr ON TRUE
		ORDER BY m.name, m.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list meters: %w", err)
	}
	defer rows.Close()

	var list []*entity.MeterStatus
	for rows.Next() {
		var (
			ms     entity.MeterStatus
			temp   decimal.NullDecimal
			status *string
			at     *time.Time
		)
		if err := rows.Scan(&ms.ID, &ms.Name, &ms.MeterCode, &ms.MinTemp, &ms.MaxTemp, &ms.CreatedAt, &temp, &status, &at); err != nil {
			return nil, fmt.Errorf("scan meter: %w", err)
		}
		if temp.Valid {
			ms.LastTemperatureC = &temp.Decimal
		}
		if status != nil {
			s := entity.ReadingStatus(*status)
			ms.LastStatus = &s
		}
		ms.LastRecordedAt = at
		list = append(list, &ms)
	}
	return list, rows.Err()
}

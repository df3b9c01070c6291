package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
)

var _ repository.ReadingRepository = (*ReadingRepo)(nil)

// ReadingRepo persistencia append-only de lecturas (tabla temperature_readings).
type ReadingRepo struct {
	q  Querier
	tz string
}

// NewReadingRepository construye el adaptador; tz es la zona que corta los días de los filtros.
func NewReadingRepository(q Querier, tz string) *ReadingRepo {
	return &ReadingRepo{q: q, tz: tz}
}

// Create inserta la lectura en una sola sentencia.
func (r *ReadingRepo) Create(ctx context.Context, rd *entity.Reading) error {
	query := `
		INSERT INTO temperature_readings (meter_id, temperature_c, status, source, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, rd.MeterID, rd.TemperatureC, string(rd.Status), string(rd.Source), rd.RecordedAt).Scan(&rd.ID)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

// List lecturas más recientes primero con los datos del medidor.
func (r *ReadingRepo) List(ctx context.Context, filter repository.ReadingFilter) ([]*entity.Reading, error) {
	ds := dialect.From(goqu.T("temperature_readings").As("r")).
		Join(goqu.T("temperature_meters").As("m"), goqu.On(goqu.I("m.id").Eq(goqu.I("r.meter_id")))).
		Select("r.id", "r.meter_id", "m.name", "m.meter_code", "m.min_temp", "m.max_temp",
			"r.temperature_c", "r.status", "r.source", "r.recorded_at").
		Order(goqu.I("r.recorded_at").Desc(), goqu.I("r.id").Desc())
	if filter.From != nil {
		ds = ds.Where(goqu.L("(r.recorded_at AT TIME ZONE ?)::date >= ?::date", r.tz, dateParam(*filter.From)))
	}
	if filter.To != nil {
		ds = ds.Where(goqu.L("(r.recorded_at AT TIME ZONE ?)::date <= ?::date", r.tz, dateParam(*filter.To)))
	}
	if filter.MeterID != nil {
		ds = ds.Where(goqu.I("r.meter_id").Eq(*filter.MeterID))
	}
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	query, args, err := toSQL(ds)
	if err != nil {
		return nil, fmt.Errorf("build reading query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	defer rows.Close()

	var list []*entity.Reading
	for rows.Next() {
		var (
			rd             entity.Reading
			status, source string
		)
		if err := rows.Scan(&rd.ID, &rd.MeterID, &rd.MeterName, &rd.MeterCode, &rd.MinTemp, &rd.MaxTemp,
			&rd.TemperatureC, &status, &source, &rd.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		rd.Status = entity.ReadingStatus(status)
		rd.Source = entity.ReadingSource(source)
		list = append(list, &rd)
	}
	return list, rows.Err()
}

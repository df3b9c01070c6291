package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el timeline y los tableros.
// Los timestamps se cortan en días con (col AT TIME ZONE tz)::date; en las consultas de stock
// $1 es la zona y $2 el producto.
type AnalyticsRepo struct {
	q  Querier
	tz string
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier, tz string) *AnalyticsRepo {
	return &AnalyticsRepo{q: q, tz: tz}
}

// scopeFilter restringe al producto del parámetro $n (NULL = todos).
func scopeFilter(n int) string {
	return fmt.Sprintf("($%[1]d::bigint IS NULL OR product_id = $%[1]d::bigint)", n)
}

// StockBaseline Σ recibido + Σ IN − Σ OUT antes de before. DISCARD no participa.
func (r *AnalyticsRepo) StockBaseline(ctx context.Context, scope repository.TimelineScope, before time.Time) (decimal.Decimal, error) {
	query := `
	SELECT
	    COALESCE((SELECT SUM(quantity_total) FROM product_entries
	              WHERE (received_at AT TIME ZONE $1)::date < $3::date AND ` + scopeFilter(2) + `), 0)
	  + COALESCE((SELECT SUM(quantity) FROM movements
	              WHERE type = 'IN' AND (created_at AT TIME ZONE $1)::date < $3::date AND ` + scopeFilter(2) + `), 0)
	  - COALESCE((SELECT SUM(quantity) FROM movements
	              WHERE type = 'OUT' AND (created_at AT TIME ZONE $1)::date < $3::date AND ` + scopeFilter(2) + `), 0)`
	var v decimal.Decimal
	if err := r.q.QueryRow(ctx, query, r.tz, scope.ProductID, dateParam(before)).Scan(&v); err != nil {
		return decimal.Zero, fmt.Errorf("analytics: stock baseline: %w", err)
	}
	return v, nil
}

// StockDeltas delta neto por día en [from, to].
func (r *AnalyticsRepo) StockDeltas(ctx context.Context, scope repository.TimelineScope, from, to time.Time) ([]repository.DailyAmount, error) {
	query := `
	SELECT day, SUM(delta) AS delta
	FROM (
	    SELECT (received_at AT TIME ZONE $1)::date AS day, SUM(quantity_total) AS delta
	    FROM product_entries
	    WHERE (received_at AT TIME ZONE $1)::date BETWEEN $3::date AND $4::date AND ` + scopeFilter(2) + `
	    GROUP BY 1

	    UNION ALL

	    SELECT (created_at AT TIME ZONE $1)::date AS day,
	           SUM(CASE WHEN type = 'IN' THEN quantity ELSE -quantity END) AS delta
	    FROM movements
	    WHERE type IN ('IN', 'OUT')
	      AND (created_at AT TIME ZONE $1)::date BETWEEN $3::date AND $4::date AND ` + scopeFilter(2) + `
	    GROUP BY 1
	) t
	GROUP BY day
	ORDER BY day`
	return r.daily(ctx, "stock deltas", query, r.tz, scope.ProductID, dateParam(from), dateParam(to))
}

// ExpiredBaseline Σ quantity_total de lotes vencidos antes de before.
func (r *AnalyticsRepo) ExpiredBaseline(ctx context.Context, scope repository.TimelineScope, before time.Time) (decimal.Decimal, error) {
	query := `
	SELECT COALESCE(SUM(quantity_total), 0)
	FROM product_entries
	WHERE expiration_date < $2::date AND ` + scopeFilter(1)
	var v decimal.Decimal
	if err := r.q.QueryRow(ctx, query, scope.ProductID, dateParam(before)).Scan(&v); err != nil {
		return decimal.Zero, fmt.Errorf("analytics: expired baseline: %w", err)
	}
	return v, nil
}

// ExpiredDeltas Σ quantity_total por fecha de vencimiento en [from, to].
func (r *AnalyticsRepo) ExpiredDeltas(ctx context.Context, scope repository.TimelineScope, from, to time.Time) ([]repository.DailyAmount, error) {
	query := `
	SELECT expiration_date AS day, SUM(quantity_total) AS qty
	FROM product_entries
	WHERE expiration_date BETWEEN $2::date AND $3::date AND ` + scopeFilter(1) + `
	GROUP BY expiration_date
	ORDER BY expiration_date`
	return r.daily(ctx, "expired deltas", query, scope.ProductID, dateParam(from), dateParam(to))
}

func (r *AnalyticsRepo) daily(ctx context.Context, what, query string, args ...any) ([]repository.DailyAmount, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics: %s: %w", what, err)
	}
	defer rows.Close()

	var out []repository.DailyAmount
	for rows.Next() {
		var d repository.DailyAmount
		if err := rows.Scan(&d.Day, &d.Amount); err != nil {
			return nil, fmt.Errorf("analytics: scan %s: %w", what, err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// InventorySummary contadores del tablero de inventario.
func (r *AnalyticsRepo) InventorySummary(ctx context.Context) (repository.InventorySummary, error) {
	query := `
	SELECT
	    (SELECT COUNT(*) FROM products),
	    (SELECT COUNT(*) FROM (
	        SELECT p.id
	        FROM products p
	        LEFT JOIN product_entries e ON e.product_id = p.id
	        GROUP BY p.id, p.min_stock
	        HAVING COALESCE(SUM(e.quantity_available), 0) <= p.min_stock
	    ) low),
	    (SELECT COUNT(*) FROM movements),
	    (SELECT COUNT(*) FROM temperature_readings WHERE status = 'ALERT')`
	var s repository.InventorySummary
	if err := r.q.QueryRow(ctx, query).Scan(&s.TotalProducts, &s.LowStock, &s.TotalMovements, &s.TemperatureAlerts); err != nil {
		return s, fmt.Errorf("analytics: inventory summary: %w", err)
	}
	return s, nil
}

// TemperatureSummary totales de lecturas y alertas.
func (r *AnalyticsRepo) TemperatureSummary(ctx context.Context) (repository.TemperatureSummary, error) {
	query := `
	SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE status = 'ALERT'),
	       COUNT(DISTINCT meter_id) FILTER (WHERE status = 'ALERT')
	FROM temperature_readings`
	var s repository.TemperatureSummary
	if err := r.q.QueryRow(ctx, query).Scan(&s.TotalReadings, &s.TotalAlerts, &s.MetersWithAlerts); err != nil {
		return s, fmt.Errorf("analytics: temperature summary: %w", err)
	}
	return s, nil
}

// TopAlertingMeters medidores con más alertas; empate por nombre.
func (r *AnalyticsRepo) TopAlertingMeters(ctx context.Context, limit int) ([]repository.MeterAlertCount, error) {
	query := `
	SELECT m.id, m.name, m.meter_code, COUNT(*) AS alerts
	FROM temperature_readings r
	JOIN temperature_meters m ON m.id = r.meter_id
	WHERE r.status = 'ALERT'
	GROUP BY m.id, m.name, m.meter_code
	ORDER BY alerts DESC, m.name
	LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: top meters: %w", err)
	}
	defer rows.Close()

	var out []repository.MeterAlertCount
	for rows.Next() {
		var m repository.MeterAlertCount
		if err := rows.Scan(&m.MeterID, &m.MeterName, &m.MeterCode, &m.Alerts); err != nil {
			return nil, fmt.Errorf("analytics: scan top meter: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

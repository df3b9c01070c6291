package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo persistencia de lotes (tabla product_entries).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create persiste el lote con quantity_available = quantity_total.
func (r *LotRepo) Create(ctx context.Context, lot *entity.Lot) error {
	query := `
		INSERT INTO product_entries (product_id, quantity_total, quantity_available, expiration_date, received_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		lot.ProductID, lot.QuantityTotal, lot.QuantityAvailable, lot.ExpirationDate, lot.ReceivedAt, lot.CreatedAt,
	).Scan(&lot.ID)
	if err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// ListAvailableForUpdate bloquea los lotes con saldo del producto en orden FEFO.
func (r *LotRepo) ListAvailableForUpdate(ctx context.Context, productID int64) ([]*entity.Lot, error) {
	query := `
		SELECT id, product_id, quantity_total, quantity_available, expiration_date, received_at, created_at
		FROM product_entries
		WHERE product_id = $1 AND quantity_available > 0
		ORDER BY expiration_date, received_at, id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list available lots: %w", err)
	}
	return collectLots(rows, false)
}

// Debit resta qty del saldo; falla si dejaría el lote en negativo.
func (r *LotRepo) Debit(ctx context.Context, lotID int64, qty decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE product_entries
		SET quantity_available = quantity_available - $2
		WHERE id = $1 AND quantity_available >= $2`, lotID, qty)
	if err != nil {
		return fmt.Errorf("debit lot: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("debit lot %d: saldo insuficiente para %s", lotID, qty)
	}
	return nil
}

// List lotes más recientes primero, con nombre y unidad del producto.
func (r *LotRepo) List(ctx context.Context, filter repository.LotFilter) ([]*entity.Lot, error) {
	ds := dialect.From(goqu.T("product_entries").As("e")).
		Join(goqu.T("products").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("e.product_id")))).
		Select("e.id", "e.product_id", "e.quantity_total", "e.quantity_available", "e.expiration_date",
			"e.received_at", "e.created_at", "p.name", "p.unit").
		Order(goqu.I("e.received_at").Desc(), goqu.I("e.id").Desc())
	if filter.ProductID != nil {
		ds = ds.Where(goqu.I("e.product_id").Eq(*filter.ProductID))
	}
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	query, args, err := toSQL(ds)
	if err != nil {
		return nil, fmt.Errorf("build lot query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	return collectLots(rows, true)
}

func collectLots(rows pgx.Rows, withProduct bool) ([]*entity.Lot, error) {
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		dest := []any{&l.ID, &l.ProductID, &l.QuantityTotal, &l.QuantityAvailable, &l.ExpirationDate, &l.ReceivedAt, &l.CreatedAt}
		if withProduct {
			dest = append(dest, &l.ProductName, &l.Unit)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

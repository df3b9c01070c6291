package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo persistencia append-only de movimientos y sus asignaciones a lotes.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento y una fila en movement_allocations por lote debitado.
// Debe llamarse dentro de la misma tx que los débitos.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (product_id, type, quantity, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, m.ProductID, string(m.Type), m.Quantity, m.Notes, m.CreatedAt).Scan(&m.ID); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	for _, a := range m.Allocations {
		if _, err := r.q.Exec(ctx,
			`INSERT INTO movement_allocations (movement_id, lot_id, quantity) VALUES ($1, $2, $3)`,
			m.ID, a.LotID, a.Quantity,
		); err != nil {
			return fmt.Errorf("insert movement allocation: %w", err)
		}
	}
	return nil
}

// List movimientos más recientes primero con el nombre del producto.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	ds := dialect.From(goqu.T("movements").As("m")).
		Join(goqu.T("products").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("m.product_id")))).
		Select("m.id", "m.product_id", "m.type", "m.quantity", "m.notes", "m.created_at", "p.name").
		Order(goqu.I("m.created_at").Desc(), goqu.I("m.id").Desc())
	if filter.ProductID != nil {
		ds = ds.Where(goqu.I("m.product_id").Eq(*filter.ProductID))
	}
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	query, args, err := toSQL(ds)
	if err != nil {
		return nil, fmt.Errorf("build movement query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var (
			m   entity.Movement
			typ string
		)
		if err := rows.Scan(&m.ID, &m.ProductID, &typ, &m.Quantity, &m.Notes, &m.CreatedAt, &m.ProductName); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		list = append(list, &m)
	}
	return list, rows.Err()
}

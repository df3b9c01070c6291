package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y asigna su ID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, unit, min_stock, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, product.Name, product.Unit, product.MinStock, product.CreatedAt).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT id, name, unit, min_stock, created_at FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto bloqueando su fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT id, name, unit, min_stock, created_at FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query string, id int64) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Unit, &p.MinStock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListWithStock lista el catálogo por nombre con stock = Σ quantity_available y el vencimiento
// más próximo entre lotes con saldo.
func (r *ProductRepo) ListWithStock(ctx context.Context) ([]*entity.ProductStock, error) {
	query := `
		SELECT p.id, p.name, p.unit, p.min_stock, p.created_at,
		       COALESCE(SUM(e.quantity_available), 0) AS current_stock,
		       MIN(e.expiration_date) FILTER (WHERE e.quantity_available > 0) AS next_expiration
		FROM products p
		LEFT JOIN product_entries e ON e.product_id = p.id
		GROUP BY p.id, p.name, p.unit, p.min_stock, p.created_at
		ORDER BY p.name, p.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductStock
	for rows.Next() {
		var (
			p    entity.ProductStock
			next *time.Time
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Unit, &p.MinStock, &p.CreatedAt, &p.CurrentStock, &next); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.NextExpiration = next
		list = append(list, &p)
	}
	return list, rows.Err()
}

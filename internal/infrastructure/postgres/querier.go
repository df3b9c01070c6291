package postgres

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx; los repositorios funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// dialect genera SQL con placeholders $n para los listados con filtros opcionales.
var dialect = goqu.Dialect("postgres")

// toSQL compila una consulta goqu en modo preparado.
func toSQL(ds *goqu.SelectDataset) (string, []any, error) {
	return ds.Prepared(true).ToSQL()
}

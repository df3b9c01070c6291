package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
)

// Store agrupa los repositorios sobre un mismo pool.
type Store struct {
	pool *pgxpool.Pool
	tz   string
	tx   *TxRunner
}

// NewStore construye el almacén; tz es la zona (IANA) que define los días calendario.
func NewStore(pool *pgxpool.Pool, tz string) *Store {
	return &Store{pool: pool, tz: tz, tx: NewTxRunner(pool)}
}

// TxRunner transacciones del consumo FEFO.
func (s *Store) TxRunner() *TxRunner { return s.tx }

func (s *Store) Products() repository.ProductRepository { return NewProductRepository(s.pool) }

func (s *Store) Lots() repository.LotRepository { return NewLotRepository(s.pool) }

func (s *Store) Movements() repository.MovementRepository { return NewMovementRepository(s.pool) }

func (s *Store) Meters() repository.MeterRepository { return NewMeterRepository(s.pool) }

func (s *Store) Readings() repository.ReadingRepository {
	return NewReadingRepository(s.pool, s.tz)
}

func (s *Store) Analytics() repository.AnalyticsRepository {
	return NewAnalyticsRepository(s.pool, s.tz)
}

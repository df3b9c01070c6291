// Package memory implementa los puertos del almacén en proceso.
//
// Las transacciones copian el estado, ejecutan la función sobre la copia y la publican solo si
// no hubo error; mientras tanto los escritores quedan serializados por el mutex del Store.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
)

type state struct {
	seq       int64
	products  map[int64]entity.Product
	lots      map[int64]entity.Lot
	movements []entity.Movement
	meters    map[int64]entity.Meter
	readings  []entity.Reading
}

func newState() *state {
	return &state{
		products: map[int64]entity.Product{},
		lots:     map[int64]entity.Lot{},
		meters:   map[int64]entity.Meter{},
	}
}

func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

// clone copia lo que tocan las transacciones del libro; medidores y lecturas se comparten.
func (s *state) clone() *state {
	c := &state{
		seq:       s.seq,
		products:  make(map[int64]entity.Product, len(s.products)),
		lots:      make(map[int64]entity.Lot, len(s.lots)),
		movements: slices.Clone(s.movements),
		meters:    s.meters,
		readings:  s.readings,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.lots {
		c.lots[k] = v
	}
	return c
}

// Store almacén en memoria. loc define el corte de días calendario para la analítica.
type Store struct {
	mu  sync.RWMutex
	st  *state
	loc *time.Location
}

// New crea un almacén vacío.
func New(loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{st: newState(), loc: loc}
}

func (s *Store) read(tx *state, fn func(st *state)) {
	if tx != nil {
		fn(tx)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

func (s *Store) write(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// Run ejecuta fn con repositorios atados a una copia del estado; la copia se publica si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	lots repository.LotRepository,
	movements repository.MovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := s.st.clone()
	if err := fn(&productRepo{s: s, tx: tx}, &lotRepo{s: s, tx: tx}, &movementRepo{s: s, tx: tx}); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Lots repositorio de lotes fuera de transacción.
func (s *Store) Lots() repository.LotRepository { return &lotRepo{s: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{s: s} }

// Meters repositorio de medidores.
func (s *Store) Meters() repository.MeterRepository { return &meterRepo{s: s} }

// Readings repositorio de lecturas.
func (s *Store) Readings() repository.ReadingRepository { return &readingRepo{s: s} }

// Analytics consultas de tableros y timeline.
func (s *Store) Analytics() repository.AnalyticsRepository { return &analyticsRepo{s: s} }

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/inventory"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
)

type productRepo struct {
	s  *Store
	tx *state
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.s.write(r.tx, func(st *state) error {
		p.ID = st.nextID()
		st.products[p.ID] = *p
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	r.s.read(r.tx, func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetForUpdate dentro de Run el Store ya está bloqueado para escritura.
func (r *productRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) ListWithStock(_ context.Context) ([]*entity.ProductStock, error) {
	var out []*entity.ProductStock
	r.s.read(r.tx, func(st *state) {
		out = productStocks(st)
	})
	return out, nil
}

func productStocks(st *state) []*entity.ProductStock {
	byProduct := make(map[int64]*entity.ProductStock, len(st.products))
	out := make([]*entity.ProductStock, 0, len(st.products))
	for _, p := range st.products {
		ps := &entity.ProductStock{Product: p, CurrentStock: decimal.Zero}
		byProduct[p.ID] = ps
		out = append(out, ps)
	}
	for _, l := range st.lots {
		ps := byProduct[l.ProductID]
		if ps == nil {
			continue
		}
		ps.CurrentStock = ps.CurrentStock.Add(l.QuantityAvailable)
		if l.QuantityAvailable.IsPositive() && (ps.NextExpiration == nil || l.ExpirationDate.Before(*ps.NextExpiration)) {
			exp := l.ExpirationDate
			ps.NextExpiration = &exp
		}
	}
	slices.SortFunc(out, func(a, b *entity.ProductStock) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

type lotRepo struct {
	s  *Store
	tx *state
}

func (r *lotRepo) Create(_ context.Context, l *entity.Lot) error {
	return r.s.write(r.tx, func(st *state) error {
		p, ok := st.products[l.ProductID]
		if !ok {
			return fmt.Errorf("lot: producto %d inexistente", l.ProductID)
		}
		l.ID = st.nextID()
		l.ProductName = p.Name
		l.Unit = p.Unit
		st.lots[l.ID] = *l
		return nil
	})
}

func (r *lotRepo) ListAvailableForUpdate(_ context.Context, productID int64) ([]*entity.Lot, error) {
	var out []*entity.Lot
	r.s.read(r.tx, func(st *state) {
		for _, l := range st.lots {
			if l.ProductID == productID && l.QuantityAvailable.IsPositive() {
				out = append(out, &l)
			}
		}
	})
	inventory.SortFEFO(out)
	return out, nil
}

func (r *lotRepo) Debit(_ context.Context, lotID int64, qty decimal.Decimal) error {
	return r.s.write(r.tx, func(st *state) error {
		l, ok := st.lots[lotID]
		if !ok {
			return fmt.Errorf("lot: %d inexistente", lotID)
		}
		if !qty.IsPositive() || qty.GreaterThan(l.QuantityAvailable) {
			return fmt.Errorf("lot: débito %s inválido para el lote %d (disponible %s)", qty, lotID, l.QuantityAvailable)
		}
		l.QuantityAvailable = l.QuantityAvailable.Sub(qty)
		st.lots[lotID] = l
		return nil
	})
}

func (r *lotRepo) List(_ context.Context, filter repository.LotFilter) ([]*entity.Lot, error) {
	var out []*entity.Lot
	r.s.read(r.tx, func(st *state) {
		for _, l := range st.lots {
			if filter.ProductID != nil && l.ProductID != *filter.ProductID {
				continue
			}
			out = append(out, &l)
		}
	})
	slices.SortFunc(out, func(a, b *entity.Lot) int {
		if c := b.ReceivedAt.Compare(a.ReceivedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return limit(out, filter.Limit), nil
}

type movementRepo struct {
	s  *Store
	tx *state
}

func (r *movementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.s.write(r.tx, func(st *state) error {
		p, ok := st.products[m.ProductID]
		if !ok {
			return fmt.Errorf("movement: producto %d inexistente", m.ProductID)
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}
		m.ID = st.nextID()
		m.ProductName = p.Name
		stored := *m
		stored.Allocations = slices.Clone(m.Allocations)
		st.movements = append(st.movements, stored)
		return nil
	})
}

func (r *movementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	r.s.read(r.tx, func(st *state) {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if filter.ProductID != nil && m.ProductID != *filter.ProductID {
				continue
			}
			out = append(out, &m)
		}
	})
	slices.SortStableFunc(out, func(a, b *entity.Movement) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return limit(out, filter.Limit), nil
}

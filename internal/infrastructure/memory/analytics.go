package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/inventory"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
)

type analyticsRepo struct {
	s *Store
}

func (r *analyticsRepo) day(t time.Time) time.Time {
	return inventory.DateOf(t.In(r.s.loc))
}

func inScope(scope repository.TimelineScope, productID int64) bool {
	return scope.ProductID == nil || *scope.ProductID == productID
}

func (r *analyticsRepo) StockBaseline(_ context.Context, scope repository.TimelineScope, before time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	r.s.read(nil, func(st *state) {
		for _, l := range st.lots {
			if inScope(scope, l.ProductID) && r.day(l.ReceivedAt).Before(before) {
				total = total.Add(l.QuantityTotal)
			}
		}
		for _, m := range st.movements {
			if !inScope(scope, m.ProductID) || !r.day(m.CreatedAt).Before(before) {
				continue
			}
			total = total.Add(stockDelta(m))
		}
	})
	return total, nil
}

// stockDelta efecto de un movimiento sobre la serie de stock; DISCARD no participa.
func stockDelta(m entity.Movement) decimal.Decimal {
	switch m.Type {
	case entity.MovementTypeIN:
		return m.Quantity
	case entity.MovementTypeOUT:
		return m.Quantity.Neg()
	}
	return decimal.Zero
}

func (r *analyticsRepo) StockDeltas(_ context.Context, scope repository.TimelineScope, from, to time.Time) ([]repository.DailyAmount, error) {
	acc := map[time.Time]decimal.Decimal{}
	r.s.read(nil, func(st *state) {
		for _, l := range st.lots {
			d := r.day(l.ReceivedAt)
			if inScope(scope, l.ProductID) && between(d, from, to) {
				acc[d] = acc[d].Add(l.QuantityTotal)
			}
		}
		for _, m := range st.movements {
			d := r.day(m.CreatedAt)
			if inScope(scope, m.ProductID) && between(d, from, to) && m.Type != entity.MovementTypeDISCARD {
				acc[d] = acc[d].Add(stockDelta(m))
			}
		}
	})
	return dailyAmounts(acc), nil
}

func (r *analyticsRepo) ExpiredBaseline(_ context.Context, scope repository.TimelineScope, before time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	r.s.read(nil, func(st *state) {
		for _, l := range st.lots {
			if inScope(scope, l.ProductID) && l.ExpirationDate.Before(before) {
				total = total.Add(l.QuantityTotal)
			}
		}
	})
	return total, nil
}

func (r *analyticsRepo) ExpiredDeltas(_ context.Context, scope repository.TimelineScope, from, to time.Time) ([]repository.DailyAmount, error) {
	acc := map[time.Time]decimal.Decimal{}
	r.s.read(nil, func(st *state) {
		for _, l := range st.lots {
			if inScope(scope, l.ProductID) && between(l.ExpirationDate, from, to) {
				acc[l.ExpirationDate] = acc[l.ExpirationDate].Add(l.QuantityTotal)
			}
		}
	})
	return dailyAmounts(acc), nil
}

func between(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

func dailyAmounts(acc map[time.Time]decimal.Decimal) []repository.DailyAmount {
	out := make([]repository.DailyAmount, 0, len(acc))
	for d, v := range acc {
		out = append(out, repository.DailyAmount{Day: d, Amount: v})
	}
	slices.SortFunc(out, func(a, b repository.DailyAmount) int { return a.Day.Compare(b.Day) })
	return out
}

func (r *analyticsRepo) InventorySummary(_ context.Context) (repository.InventorySummary, error) {
	var s repository.InventorySummary
	r.s.read(nil, func(st *state) {
		stocks := productStocks(st)
		s.TotalProducts = len(stocks)
		for _, p := range stocks {
			if p.IsLow() {
				s.LowStock++
			}
		}
		s.TotalMovements = len(st.movements)
		for _, rd := range st.readings {
			if rd.Status == entity.ReadingAlert {
				s.TemperatureAlerts++
			}
		}
	})
	return s, nil
}

func (r *analyticsRepo) TemperatureSummary(_ context.Context) (repository.TemperatureSummary, error) {
	var s repository.TemperatureSummary
	r.s.read(nil, func(st *state) {
		alerting := map[int64]struct{}{}
		s.TotalReadings = len(st.readings)
		for _, rd := range st.readings {
			if rd.Status == entity.ReadingAlert {
				s.TotalAlerts++
				alerting[rd.MeterID] = struct{}{}
			}
		}
		s.MetersWithAlerts = len(alerting)
	})
	return s, nil
}

func (r *analyticsRepo) TopAlertingMeters(_ context.Context, n int) ([]repository.MeterAlertCount, error) {
	var out []repository.MeterAlertCount
	r.s.read(nil, func(st *state) {
		counts := map[int64]int{}
		for _, rd := range st.readings {
			if rd.Status == entity.ReadingAlert {
				counts[rd.MeterID]++
			}
		}
		for id, c := range counts {
			m := st.meters[id]
			out = append(out, repository.MeterAlertCount{MeterID: id, MeterName: m.Name, MeterCode: m.MeterCode, Alerts: c})
		}
	})
	slices.SortFunc(out, func(a, b repository.MeterAlertCount) int {
		if c := cmp.Compare(b.Alerts, a.Alerts); c != 0 {
			return c
		}
		return cmp.Compare(a.MeterName, b.MeterName)
	})
	return limit(out, n), nil
}

package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Timeline serie diaria de stock y de vencidos acumulados.
type Timeline struct {
	Days    []time.Time
	Stock   []decimal.Decimal
	Expired []decimal.Decimal
}

// BuildTimeline acumula los deltas diarios sobre las bases.
//
// stock[d] = stockBase + Σ stockDeltas hasta d.
// expired[d] = expiredBase + Σ expiredDeltas hasta d; no decrece (los descartes no lo afectan).
//
// Los mapas se indexan por día en DateLayout. Las sumas son exactas; solo la salida se redondea
// a dos decimales.
func BuildTimeline(
	days []time.Time,
	stockBase decimal.Decimal,
	stockDeltas map[string]decimal.Decimal,
	expiredBase decimal.Decimal,
	expiredDeltas map[string]decimal.Decimal,
) Timeline {
	tl := Timeline{
		Days:    days,
		Stock:   make([]decimal.Decimal, len(days)),
		Expired: make([]decimal.Decimal, len(days)),
	}
	runningStock := stockBase
	runningExpired := expiredBase
	for i, day := range days {
		key := day.Format(DateLayout)
		runningStock = runningStock.Add(stockDeltas[key])
		runningExpired = runningExpired.Add(expiredDeltas[key])
		tl.Stock[i] = runningStock.Round(2)
		tl.Expired[i] = runningExpired.Round(2)
	}
	return tl
}

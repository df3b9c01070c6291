package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/application/dto"
	"github.com/univesp-PI-III/merenda-certa/internal/domain"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/inventory"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWindowDays = 60
	minWindowDays     = 7
	maxWindowDays     = 365
)

// AnalyticsUseCase reconstruye la serie diaria de stock y de vencidos a partir del libro.
// Solo lee: refleja lo confirmado al momento de la consulta.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	now           func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso. now debe devolver la hora en la zona del almacén.
func NewAnalyticsUseCase(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	now func() time.Time,
) *AnalyticsUseCase {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo, productRepo: productRepo, now: now}
}

// WindowDays interpreta el parámetro days: no entero → 60; enteros acotados a [7, 365].
func WindowDays(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultWindowDays
	}
	return max(minWindowDays, min(n, maxWindowDays))
}

// ProductTimeline devuelve un punto por día calendario terminando hoy.
//
// Las cuatro consultas (bases y deltas de stock y de vencidos) son independientes y se
// lanzan en paralelo.
func (uc *AnalyticsUseCase) ProductTimeline(ctx context.Context, req dto.ProductTimelineRequest) (*dto.ProductTimelineResponse, error) {
	scope := repository.TimelineScope{ProductID: req.ProductID}
	if req.ProductID != nil {
		p, err := uc.productRepo.GetByID(ctx, *req.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrUnknownProduct
		}
	}

	days := inventory.DateRange(uc.now(), WindowDays(req.Days))
	from, to := days[0], days[len(days)-1]

	var (
		stockBase, expiredBase     decimal.Decimal
		stockDeltas, expiredDeltas []repository.DailyAmount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := uc.analyticsRepo.StockBaseline(gctx, scope, from)
		if err != nil {
			return fmt.Errorf("analytics: base de stock: %w", err)
		}
		stockBase = v
		return nil
	})
	g.Go(func() error {
		v, err := uc.analyticsRepo.StockDeltas(gctx, scope, from, to)
		if err != nil {
			return fmt.Errorf("analytics: deltas de stock: %w", err)
		}
		stockDeltas = v
		return nil
	})
	g.Go(func() error {
		v, err := uc.analyticsRepo.ExpiredBaseline(gctx, scope, from)
		if err != nil {
			return fmt.Errorf("analytics: base de vencidos: %w", err)
		}
		expiredBase = v
		return nil
	})
	g.Go(func() error {
		v, err := uc.analyticsRepo.ExpiredDeltas(gctx, scope, from, to)
		if err != nil {
			return fmt.Errorf("analytics: deltas de vencidos: %w", err)
		}
		expiredDeltas = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tl := inventory.BuildTimeline(days, stockBase, byDay(stockDeltas), expiredBase, byDay(expiredDeltas))

	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = d.Format(inventory.DateLayout)
	}
	return &dto.ProductTimelineResponse{
		From:            labels[0],
		To:              labels[len(labels)-1],
		Labels:          labels,
		StockTimeline:   tl.Stock,
		ExpiredTimeline: tl.Expired,
	}, nil
}

// byDay indexa los montos diarios por día; si un día aparece repetido se suman.
func byDay(rows []repository.DailyAmount) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		key := inventory.DateOf(r.Day).Format(inventory.DateLayout)
		out[key] = out[key].Add(r.Amount)
	}
	return out
}

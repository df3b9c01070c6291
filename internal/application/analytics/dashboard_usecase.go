// Package analytics contiene los casos de uso de los tableros de inventario y de temperatura.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/application/dto"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

const dashboardTopMeters = 6 // medidores en el widget de más alertas

var hundred = decimal.NewFromInt(100)

// DashboardUseCase arma los contadores de los tableros.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// Inventory devuelve productos, productos con stock bajo, movimientos y alertas de temperatura.
func (uc *DashboardUseCase) Inventory(ctx context.Context) (*dto.InventoryDashboardDTO, error) {
	s, err := uc.analyticsRepo.InventorySummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", err)
	}
	return &dto.InventoryDashboardDTO{
		TotalProducts:  s.TotalProducts,
		LowStock:       s.LowStock,
		TotalMovements: s.TotalMovements,
		TempAlerts:     s.TemperatureAlerts,
	}, nil
}

// Temperature devuelve totales de lecturas, tasa de alertas y los medidores con más alertas.
//
// Dos llamadas en paralelo:
//  1. TemperatureSummary        → totales y tasa
//  2. TopAlertingMeters(top 6)  → TopMeters
func (uc *DashboardUseCase) Temperature(ctx context.Context) (*dto.TemperatureDashboardDTO, error) {
	var (
		summary repository.TemperatureSummary
		top     []repository.MeterAlertCount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := uc.analyticsRepo.TemperatureSummary(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: temperatura: %w", err)
		}
		summary = s
		return nil
	})
	g.Go(func() error {
		rows, err := uc.analyticsRepo.TopAlertingMeters(gctx, dashboardTopMeters)
		if err != nil {
			return fmt.Errorf("dashboard: medidores: %w", err)
		}
		top = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.TemperatureDashboardDTO{
		TotalReadings:    summary.TotalReadings,
		TotalAlerts:      summary.TotalAlerts,
		MetersWithAlerts: summary.MetersWithAlerts,
		AlertRate:        AlertRate(summary.TotalAlerts, summary.TotalReadings),
		TopMeters:        make([]dto.MeterAlertDTO, 0, len(top)),
	}
	for _, m := range top {
		out.TopMeters = append(out.TopMeters, dto.MeterAlertDTO{
			MeterID:   m.MeterID,
			MeterName: m.MeterName,
			MeterCode: m.MeterCode,
			Alerts:    m.Alerts,
		})
	}
	return out, nil
}

// AlertRate porcentaje de alertas con un decimal; 0 si no hay lecturas.
func AlertRate(alerts, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(alerts)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(1)
}

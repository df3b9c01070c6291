package analytics_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univesp-PI-III/merenda-certa/internal/application/analytics"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/infrastructure/memory"
)

func TestAlertRate(t *testing.T) {
	assert.Equal(t, "0", analytics.AlertRate(0, 0).String())
	assert.Equal(t, "33.3", analytics.AlertRate(1, 3).String())
	assert.Equal(t, "66.7", analytics.AlertRate(2, 3).String())
	assert.Equal(t, "100", analytics.AlertRate(4, 4).String())
}

func TestDashboardUseCase_Inventory(t *testing.T) {
	store := memory.New(time.UTC)
	ctx := context.Background()

	low := &entity.Product{Name: "Arroz", Unit: "kg", MinStock: decimal.NewFromInt(5)}
	ok := &entity.Product{Name: "Feijão", Unit: "kg", MinStock: decimal.NewFromInt(1)}
	require.NoError(t, store.Products().Create(ctx, low))
	require.NoError(t, store.Products().Create(ctx, ok))
	require.NoError(t, store.Lots().Create(ctx, &entity.Lot{
		ProductID: ok.ID, QuantityTotal: decimal.NewFromInt(3), QuantityAvailable: decimal.NewFromInt(3),
		ExpirationDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), ReceivedAt: time.Now(),
	}))
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{
		ProductID: ok.ID, Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(1),
	}))

	d, err := analytics.NewDashboardUseCase(store.Analytics()).Inventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, d.TotalProducts)
	assert.Equal(t, 1, d.LowStock, "stock 0 ≤ mínimo 5")
	assert.Equal(t, 1, d.TotalMovements)
	assert.Equal(t, 0, d.TempAlerts)
}

func TestDashboardUseCase_Temperature(t *testing.T) {
	store := memory.New(time.UTC)
	ctx := context.Background()

	var meters []*entity.Meter
	for i := range 8 {
		m := &entity.Meter{
			Name:      fmt.Sprintf("Medidor %d", i+1),
			MeterCode: fmt.Sprintf("medidor-%d", i+1),
			MinTemp:   decimal.NewFromInt(60),
			MaxTemp:   decimal.NewFromInt(75),
		}
		require.NoError(t, store.Meters().Create(ctx, m))
		meters = append(meters, m)
	}
	add := func(m *entity.Meter, status entity.ReadingStatus, n int) {
		for range n {
			require.NoError(t, store.Readings().Create(ctx, &entity.Reading{
				MeterID: m.ID, TemperatureC: decimal.NewFromInt(70), Status: status,
				Source: entity.SourceTelemetry, RecordedAt: time.Now(),
			}))
		}
	}
	// medidores 1..7 con i+1 alertas; el 8 solo lecturas seguras
	for i, m := range meters[:7] {
		add(m, entity.ReadingAlert, i+1)
	}
	add(meters[7], entity.ReadingSafe, 12)

	d, err := analytics.NewDashboardUseCase(store.Analytics()).Temperature(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40, d.TotalReadings)
	assert.Equal(t, 28, d.TotalAlerts)
	assert.Equal(t, 7, d.MetersWithAlerts)
	assert.Equal(t, "70", d.AlertRate.String())
	require.Len(t, d.TopMeters, 6)
	assert.Equal(t, "medidor-7", d.TopMeters[0].MeterCode)
	assert.Equal(t, 7, d.TopMeters[0].Alerts)
	assert.Equal(t, "medidor-2", d.TopMeters[5].MeterCode)
}

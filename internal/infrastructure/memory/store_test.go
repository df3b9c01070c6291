package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
	"github.com/univesp-PI-III/merenda-certa/internal/infrastructure/memory"
)

func TestStore_TransaccionConservaLecturas(t *testing.T) {
	ctx := context.Background()
	store := memory.New(time.UTC)
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	meter := &entity.Meter{Name: "Balcão", MeterCode: "m1", MinTemp: decimal.NewFromInt(60), MaxTemp: decimal.NewFromInt(75)}
	require.NoError(t, store.Meters().Create(ctx, meter))
	addReading := func() {
		require.NoError(t, store.Readings().Create(ctx, &entity.Reading{
			MeterID: meter.ID, TemperatureC: decimal.NewFromInt(70), Status: entity.ReadingSafe,
			Source: entity.SourceManual, RecordedAt: at,
		}))
	}
	addReading()

	errRollback := errors.New("rollback")
	err := store.Run(ctx, func(products repository.ProductRepository, _ repository.LotRepository, _ repository.MovementRepository) error {
		require.NoError(t, products.Create(ctx, &entity.Product{Name: "Arroz", Unit: "kg"}))
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)

	require.NoError(t, store.Run(ctx, func(products repository.ProductRepository, _ repository.LotRepository, _ repository.MovementRepository) error {
		return products.Create(ctx, &entity.Product{Name: "Feijão", Unit: "kg"})
	}))
	addReading()

	list, err := store.Readings().List(ctx, repository.ReadingFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.NotEqual(t, list[0].ID, list[1].ID)

	products, err := store.Products().ListWithStock(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Feijão", products[0].Name)

	got, err := store.Meters().GetByCode(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, got)
}

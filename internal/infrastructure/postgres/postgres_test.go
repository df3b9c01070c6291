package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univesp-PI-III/merenda-certa/internal/application/inventory"
	"github.com/univesp-PI-III/merenda-certa/internal/domain"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
	"github.com/univesp-PI-III/merenda-certa/internal/infrastructure/postgres"
	"github.com/univesp-PI-III/merenda-certa/pkg/config"
	"github.com/univesp-PI-III/merenda-certa/pkg/logger"
)

// openStore conecta a TEST_DATABASE_URL, recrea el esquema y devuelve el almacén.
// Sin la variable, el test se salta.
func openStore(t *testing.T) *postgres.Store {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	log := logger.Nop()
	require.NoError(t, postgres.Migrate(ctx, dsn, "reset", log))
	require.NoError(t, postgres.Migrate(ctx, dsn, "up", log))

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn}, "merenda-certa-test")
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return postgres.NewStore(pool, "UTC")
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPostgres_ConsumoFEFOYTimeline(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	p := &entity.Product{Name: "Arroz", Unit: "kg", MinStock: d("1"), CreatedAt: now}
	require.NoError(t, store.Products().Create(ctx, p))

	lotA := &entity.Lot{ProductID: p.ID, QuantityTotal: d("10"), QuantityAvailable: d("10"),
		ExpirationDate: date("2026-03-05"), ReceivedAt: date("2026-03-01"), CreatedAt: now}
	lotB := &entity.Lot{ProductID: p.ID, QuantityTotal: d("15"), QuantityAvailable: d("15"),
		ExpirationDate: date("2026-03-20"), ReceivedAt: date("2026-03-02"), CreatedAt: now}
	require.NoError(t, store.Lots().Create(ctx, lotA))
	require.NoError(t, store.Lots().Create(ctx, lotB))

	uc := inventory.NewRegisterMovementUseCase(store.TxRunner(), func() time.Time { return now }, logger.Nop())

	_, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: p.ID, Type: "DISCARD", Quantity: d("10.01")})
	assert.ErrorIs(t, err, domain.ErrInsufficientExpiredStock)

	mov, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: p.ID, Type: "OUT", Quantity: d("12")})
	require.NoError(t, err)
	require.Len(t, mov.Allocations, 2)
	assert.Equal(t, lotA.ID, mov.Allocations[0].LotID)

	_, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: p.ID, Type: "OUT", Quantity: d("14")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stocks, err := store.Products().ListWithStock(ctx)
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, "13", stocks[0].CurrentStock.String())
	require.NotNil(t, stocks[0].NextExpiration)
	assert.Equal(t, date("2026-03-20"), stocks[0].NextExpiration.UTC())

	lots, err := store.Lots().List(ctx, repository.LotFilter{ProductID: &p.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.Equal(t, lotB.ID, lots[0].ID, "más reciente primero")
	assert.Equal(t, "Arroz", lots[0].ProductName)

	scope := repository.TimelineScope{ProductID: &p.ID}
	base, err := store.Analytics().StockBaseline(ctx, scope, date("2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, "10", base.String())

	deltas, err := store.Analytics().StockDeltas(ctx, scope, date("2026-03-02"), date("2026-03-10"))
	require.NoError(t, err)
	require.Len(t, deltas, 2)
	assert.Equal(t, "15", deltas[0].Amount.String())
	assert.Equal(t, "-12", deltas[1].Amount.String())

	expired, err := store.Analytics().ExpiredBaseline(ctx, scope, date("2026-03-10"))
	require.NoError(t, err)
	assert.Equal(t, "10", expired.String())
}

func TestPostgres_MedidoresYLecturas(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	m, err := store.Meters().GetByCode(ctx, "medidor-1")
	require.NoError(t, err)
	require.NotNil(t, m, "la migración crea los medidores por defecto")

	dup := &entity.Meter{Name: "Otro", MeterCode: "medidor-1", MinTemp: d("1"), MaxTemp: d("2"), CreatedAt: time.Now()}
	assert.ErrorIs(t, store.Meters().Create(ctx, dup), domain.ErrDuplicateMeterCode)

	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	for i, temp := range []string{"63", "80"} {
		status := entity.ReadingSafe
		if temp == "80" {
			status = entity.ReadingAlert
		}
		require.NoError(t, store.Readings().Create(ctx, &entity.Reading{
			MeterID: m.ID, TemperatureC: d(temp), Status: status, Source: entity.SourceTelemetry,
			RecordedAt: at.Add(time.Duration(i) * time.Minute),
		}))
	}

	from, to := date("2026-03-10"), date("2026-03-10")
	list, err := store.Readings().List(ctx, repository.ReadingFilter{From: &from, To: &to, MeterID: &m.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.ReadingAlert, list[0].Status)
	assert.Equal(t, "medidor-1", list[0].MeterCode)

	statuses, err := store.Meters().ListWithLastReading(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 4)
	require.NotNil(t, statuses[0].LastTemperatureC)
	assert.Equal(t, "80", statuses[0].LastTemperatureC.String())
	assert.Nil(t, statuses[1].LastStatus)

	summary, err := store.Analytics().TemperatureSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, repository.TemperatureSummary{TotalReadings: 2, TotalAlerts: 1, MetersWithAlerts: 1}, summary)

	top, err := store.Analytics().TopAlertingMeters(ctx, 6)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, m.ID, top[0].MeterID)
}

func TestPostgres_EstadoDeLecturaNoSeRecalcula(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	m, err := store.Meters().GetByCode(ctx, "medidor-1")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.NoError(t, store.Readings().Create(ctx, &entity.Reading{
		MeterID: m.ID, TemperatureC: d("65"), Status: entity.ReadingSafe, Source: entity.SourceManual,
		RecordedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}))

	m.MinTemp, m.MaxTemp = d("70"), d("80")
	require.NoError(t, store.Meters().Update(ctx, m))

	list, err := store.Readings().List(ctx, repository.ReadingFilter{MeterID: &m.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.ReadingSafe, list[0].Status)
	assert.Equal(t, "70", list[0].MinTemp.String(), "la lectura muestra la banda actual del medidor")
}

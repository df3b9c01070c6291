package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univesp-PI-III/merenda-certa/internal/application/dto"
	"github.com/univesp-PI-III/merenda-certa/internal/application/usecase"
	"github.com/univesp-PI-III/merenda-certa/internal/domain"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/infrastructure/memory"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func asStrings(ds []decimal.Decimal) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo y libro
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUseCase_CreateConValoresPorDefecto(t *testing.T) {
	store := memory.New(time.UTC)
	uc := usecase.NewProductUseCase(store.Products(), clock)

	p, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "  Arroz  "})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "Arroz", p.Name)
	assert.Equal(t, "kg", p.Unit)
	assert.True(t, p.MinStock.IsZero())
	assert.True(t, p.CurrentStock.IsZero())
	assert.Nil(t, p.ExpirationDate)
}

func TestProductUseCase_CreateValidaciones(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.New(time.UTC).Products(), clock)

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{Name: "Sal", MinStock: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_ListConStockDerivado(t *testing.T) {
	store := memory.New(time.UTC)
	ctx := context.Background()
	uc := usecase.NewProductUseCase(store.Products(), clock)

	feijao, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Feijão", Unit: "kg", MinStock: dec("5")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Arroz"})
	require.NoError(t, err)

	for _, l := range []entity.Lot{
		{ProductID: feijao.ID, QuantityTotal: *dec("3"), QuantityAvailable: *dec("3"), ExpirationDate: day("2026-05-01"), ReceivedAt: testNow},
		{ProductID: feijao.ID, QuantityTotal: *dec("4"), QuantityAvailable: *dec("0"), ExpirationDate: day("2026-04-01"), ReceivedAt: testNow},
		{ProductID: feijao.ID, QuantityTotal: *dec("1.5"), QuantityAvailable: *dec("1.5"), ExpirationDate: day("2026-04-15"), ReceivedAt: testNow},
	} {
		require.NoError(t, store.Lots().Create(ctx, &l))
	}

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Arroz", list[0].Name)
	assert.Equal(t, "Feijão", list[1].Name)
	assert.Equal(t, "4.5", list[1].CurrentStock.String())
	require.NotNil(t, list[1].ExpirationDate)
	assert.Equal(t, "2026-04-15", *list[1].ExpirationDate, "ignora lotes agotados")
}

func TestLedgerUseCase_ListasMasRecientesPrimero(t *testing.T) {
	store := memory.New(time.UTC)
	ctx := context.Background()
	p := &entity.Product{Name: "Leite", Unit: "l"}
	require.NoError(t, store.Products().Create(ctx, p))
	other := &entity.Product{Name: "Ovo", Unit: "un"}
	require.NoError(t, store.Products().Create(ctx, other))

	for i, pid := range []int64{p.ID, p.ID, other.ID} {
		l := &entity.Lot{ProductID: pid, QuantityTotal: *dec("1"), QuantityAvailable: *dec("1"),
			ExpirationDate: day("2026-04-01"), ReceivedAt: testNow.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, store.Lots().Create(ctx, l))
		m := &entity.Movement{ProductID: pid, Type: entity.MovementTypeOUT, Quantity: *dec("1"), CreatedAt: testNow.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, store.Movements().Create(ctx, m))
	}

	uc := usecase.NewLedgerUseCase(store.Lots(), store.Movements())
	lots, err := uc.ListLots(ctx, nil)
	require.NoError(t, err)
	require.Len(t, lots, 3)
	assert.Equal(t, "Ovo", lots[0].ProductName)
	assert.Equal(t, "un", lots[0].Unit)

	lots, err = uc.ListLots(ctx, &p.ID)
	require.NoError(t, err)
	assert.Len(t, lots, 2)

	movs, err := uc.ListMovements(ctx, &p.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.True(t, movs[0].CreatedAt.After(movs[1].CreatedAt))
	assert.Equal(t, "Leite", movs[0].ProductName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Timeline
// ──────────────────────────────────────────────────────────────────────────────

func TestWindowDays(t *testing.T) {
	cases := map[string]int{
		"":     60,
		"abc":  60,
		"7.5":  60,
		"3":    7,
		"-10":  7,
		"30":   30,
		" 90 ": 90,
		"1000": 365,
	}
	for in, want := range cases {
		assert.Equal(t, want, usecase.WindowDays(in), "days=%q", in)
	}
}

func TestAnalyticsUseCase_ProductTimeline(t *testing.T) {
	store := memory.New(time.UTC)
	ctx := context.Background()
	p := &entity.Product{Name: "Frango", Unit: "kg"}
	require.NoError(t, store.Products().Create(ctx, p))
	other := &entity.Product{Name: "Batata", Unit: "kg"}
	require.NoError(t, store.Products().Create(ctx, other))

	lots := []entity.Lot{
		{ProductID: p.ID, QuantityTotal: *dec("10"), QuantityAvailable: *dec("7"), ReceivedAt: day("2026-02-20"), ExpirationDate: day("2026-03-06")},
		{ProductID: p.ID, QuantityTotal: *dec("5"), QuantityAvailable: *dec("5"), ReceivedAt: day("2026-03-05").Add(9 * time.Hour), ExpirationDate: day("2026-04-01")},
		{ProductID: p.ID, QuantityTotal: *dec("2"), QuantityAvailable: *dec("0"), ReceivedAt: day("2026-03-01"), ExpirationDate: day("2026-03-02")},
		{ProductID: other.ID, QuantityTotal: *dec("100"), QuantityAvailable: *dec("100"), ReceivedAt: day("2026-03-07"), ExpirationDate: day("2026-03-08")},
	}
	for i := range lots {
		require.NoError(t, store.Lots().Create(ctx, &lots[i]))
	}
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{
		ProductID: p.ID, Type: entity.MovementTypeOUT, Quantity: *dec("3"), CreatedAt: day("2026-03-08").Add(10 * time.Hour),
	}))
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{
		ProductID: p.ID, Type: entity.MovementTypeDISCARD, Quantity: *dec("2"), CreatedAt: day("2026-03-09").Add(10 * time.Hour),
	}))

	uc := usecase.NewAnalyticsUseCase(store.Analytics(), store.Products(), clock)
	tl, err := uc.ProductTimeline(ctx, dto.ProductTimelineRequest{Days: "7", ProductID: &p.ID})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-04", tl.From)
	assert.Equal(t, "2026-03-10", tl.To)
	assert.Equal(t, []string{"2026-03-04", "2026-03-05", "2026-03-06", "2026-03-07", "2026-03-08", "2026-03-09", "2026-03-10"}, tl.Labels)
	// base 12 (10 + 2 recibidos antes), +5 el día 5, −3 el día 8; el descarte no cuenta
	assert.Equal(t, []string{"12", "17", "17", "17", "14", "14", "14"}, asStrings(tl.StockTimeline))
	// base 2 (vencido el día 2), +10 el día 6; acumulado
	assert.Equal(t, []string{"2", "2", "12", "12", "12", "12", "12"}, asStrings(tl.ExpiredTimeline))

	all, err := uc.ProductTimeline(ctx, dto.ProductTimelineRequest{Days: "7"})
	require.NoError(t, err)
	assert.Equal(t, []string{"12", "17", "17", "117", "114", "114", "114"}, asStrings(all.StockTimeline))
	assert.Equal(t, []string{"2", "2", "12", "12", "112", "112", "112"}, asStrings(all.ExpiredTimeline))
}

func TestAnalyticsUseCase_VentanaPorDefectoYProductoInexistente(t *testing.T) {
	store := memory.New(time.UTC)
	uc := usecase.NewAnalyticsUseCase(store.Analytics(), store.Products(), clock)

	tl, err := uc.ProductTimeline(context.Background(), dto.ProductTimelineRequest{Days: "x"})
	require.NoError(t, err)
	assert.Len(t, tl.Labels, 60)
	assert.Len(t, tl.StockTimeline, 60)
	assert.Equal(t, "2026-03-10", tl.To)

	missing := int64(42)
	_, err = uc.ProductTimeline(context.Background(), dto.ProductTimelineRequest{ProductID: &missing})
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
}

// ──────────────────────────────────────────────────────────────────────────────
// Medidores y lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestMeterUseCase_CreateYDuplicado(t *testing.T) {
	store := memory.New(time.UTC)
	uc := usecase.NewMeterUseCase(store.Meters(), clock)
	ctx := context.Background()

	m, err := uc.Create(ctx, dto.CreateMeterRequest{Name: "Câmara fria", MeterCode: "camara-1", MinTemp: dec("0"), MaxTemp: dec("5")})
	require.NoError(t, err)
	assert.Equal(t, "camara-1", m.MeterCode)

	_, err = uc.Create(ctx, dto.CreateMeterRequest{Name: "Outra", MeterCode: "camara-1", MinTemp: dec("0"), MaxTemp: dec("5")})
	assert.ErrorIs(t, err, domain.ErrDuplicateMeterCode)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMeterUseCase_CreateValidaciones(t *testing.T) {
	uc := usecase.NewMeterUseCase(memory.New(time.UTC).Meters(), clock)
	ctx := context.Background()

	cases := map[string]dto.CreateMeterRequest{
		"banda igual":     {Name: "A", MeterCode: "a", MinTemp: dec("5"), MaxTemp: dec("5")},
		"banda invertida": {Name: "A", MeterCode: "a", MinTemp: dec("6"), MaxTemp: dec("5")},
		"sin banda":       {Name: "A", MeterCode: "a", MinTemp: dec("1")},
		"sin nombre":      {MeterCode: "a", MinTemp: dec("1"), MaxTemp: dec("5")},
		"código con '/'":  {Name: "A", MeterCode: "a/b", MinTemp: dec("1"), MaxTemp: dec("5")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(ctx, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestMeterUseCase_UpdateParcial(t *testing.T) {
	store := memory.New(time.UTC)
	uc := usecase.NewMeterUseCase(store.Meters(), clock)
	ctx := context.Background()
	m, err := uc.Create(ctx, dto.CreateMeterRequest{Name: "Balcão", MeterCode: "balcao", MinTemp: dec("60"), MaxTemp: dec("75")})
	require.NoError(t, err)

	blank := " "
	updated, err := uc.Update(ctx, m.ID, dto.UpdateMeterRequest{Name: &blank, MaxTemp: dec("80")})
	require.NoError(t, err)
	assert.Equal(t, "Balcão", updated.Name)
	assert.Equal(t, "60", updated.MinTemp.String())
	assert.Equal(t, "80", updated.MaxTemp.String())
	assert.Equal(t, "balcao", updated.MeterCode)

	_, err = uc.Update(ctx, m.ID, dto.UpdateMeterRequest{MinTemp: dec("80")})
	assert.ErrorIs(t, err, domain.ErrInvalidBand)

	stored, err := store.Meters().GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "60", stored.MinTemp.String(), "una banda inválida no se guarda")

	_, err = uc.Update(ctx, 999, dto.UpdateMeterRequest{})
	assert.ErrorIs(t, err, domain.ErrUnknownMeter)
}

func TestMeterUseCase_EnsureDefaultsEsIdempotente(t *testing.T) {
	store := memory.New(time.UTC)
	uc := usecase.NewMeterUseCase(store.Meters(), clock)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateMeterRequest{Name: "Propio", MeterCode: "medidor-2", MinTemp: dec("1"), MaxTemp: dec("5")})
	require.NoError(t, err)

	n, err := uc.EnsureDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "medidor-2 ya existía")

	n, err = uc.EnsureDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	m, err := store.Meters().GetByCode(ctx, "medidor-4")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "60", m.MinTemp.String())
	assert.Equal(t, "76", m.MaxTemp.String())

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

func TestReadingUseCase_RecordClasificaYListaConSemaforo(t *testing.T) {
	store := memory.New(time.UTC)
	ctx := context.Background()
	meters := usecase.NewMeterUseCase(store.Meters(), clock)
	readings := usecase.NewReadingUseCase(store.Meters(), store.Readings(), clock)

	m, err := meters.Create(ctx, dto.CreateMeterRequest{Name: "Balcão", MeterCode: "balcao", MinTemp: dec("60"), MaxTemp: dec("75")})
	require.NoError(t, err)
	_, err = meters.Create(ctx, dto.CreateMeterRequest{Name: "Antigo", MeterCode: "antigo", MinTemp: dec("0"), MaxTemp: dec("4")})
	require.NoError(t, err)

	first := "2026-03-09T10:00:00Z"
	r, err := readings.Record(ctx, dto.CreateReadingRequest{MeterID: m.ID, TemperatureC: dec("75.01"), RecordedAt: &first})
	require.NoError(t, err)
	assert.Equal(t, entity.ReadingAlert, r.Status)
	assert.Equal(t, entity.SourceManual, r.Source)

	r, err = readings.Record(ctx, dto.CreateReadingRequest{MeterID: m.ID, TemperatureC: dec("63")})
	require.NoError(t, err)
	assert.Equal(t, entity.ReadingSafe, r.Status)
	assert.Equal(t, testNow, r.RecordedAt)

	list, err := meters.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Antigo", list[0].Name)
	assert.Equal(t, "red", string(list[0].LiveState), "sin lecturas es rojo")
	assert.Nil(t, list[0].LastTemperatureC)
	assert.Equal(t, "yellow", string(list[1].LiveState))
	require.NotNil(t, list[1].LastStatus)
	assert.Equal(t, entity.ReadingSafe, *list[1].LastStatus)

	history, err := readings.List(ctx, dto.ListReadingsRequest{From: "2026-03-09", To: "2026-03-09"})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "75.01", history[0].TemperatureC.String())
	assert.Equal(t, "balcao", history[0].MeterCode)

	history, err = readings.List(ctx, dto.ListReadingsRequest{MeterID: m.ID})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].RecordedAt.After(history[1].RecordedAt))
}

func TestReadingUseCase_Errores(t *testing.T) {
	store := memory.New(time.UTC)
	ctx := context.Background()
	uc := usecase.NewReadingUseCase(store.Meters(), store.Readings(), clock)

	_, err := uc.Record(ctx, dto.CreateReadingRequest{MeterID: 7, TemperatureC: dec("1")})
	assert.ErrorIs(t, err, domain.ErrUnknownMeter)

	_, err = uc.Record(ctx, dto.CreateReadingRequest{MeterID: 7})
	assert.ErrorIs(t, err, domain.ErrInvalidTemperature)

	_, err = uc.List(ctx, dto.ListReadingsRequest{From: "ontem"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/univesp-PI-III/merenda-certa/internal/domain"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/inventory"
)

var today = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func lot(id int64, available string, expiresInDays, receivedDaysAgo int) *entity.Lot {
	q := dec(available)
	return &entity.Lot{
		ID:                id,
		ProductID:         1,
		QuantityTotal:     q,
		QuantityAvailable: q,
		ExpirationDate:    today.AddDate(0, 0, expiresInDays),
		ReceivedAt:        today.AddDate(0, 0, -receivedDaysAgo),
	}
}

// applyPlan simula el débito que haría el motor dentro de la transacción.
func applyPlan(lots []*entity.Lot, plan []entity.LotAllocation) {
	byID := map[int64]*entity.Lot{}
	for _, l := range lots {
		byID[l.ID] = l
	}
	for _, a := range plan {
		byID[a.LotID].QuantityAvailable = byID[a.LotID].QuantityAvailable.Sub(a.Quantity)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden FEFO
// ──────────────────────────────────────────────────────────────────────────────

func TestPlanConsumption_DrainsEarliestExpiryFirst(t *testing.T) {
	a := lot(1, "10", 5, 3)
	b := lot(2, "15", 10, 3)
	lots := []*entity.Lot{b, a}

	plan, err := inventory.PlanConsumption(lots, dec("12"), entity.MovementTypeOUT, today)
	require.NoError(t, err)
	applyPlan(lots, plan)

	assert.True(t, a.QuantityAvailable.IsZero(), "A debe quedar en 0")
	assert.True(t, b.QuantityAvailable.Equal(dec("13")), "B debe quedar en 13")

	plan, err = inventory.PlanConsumption(lots, dec("1"), entity.MovementTypeOUT, today)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, int64(2), plan[0].LotID, "el siguiente consumo debita B, no A")
}

func TestPlanConsumption_TieBreaksByReceiptThenID(t *testing.T) {
	older := lot(7, "1", 4, 10)
	newer := lot(3, "1", 4, 1)
	sameReceiptLowID := lot(2, "1", 4, 1)

	plan, err := inventory.PlanConsumption(
		[]*entity.Lot{newer, older, sameReceiptLowID}, dec("3"), entity.MovementTypeOUT, today)
	require.NoError(t, err)
	require.Len(t, plan, 3)
	assert.Equal(t, []int64{7, 2, 3}, []int64{plan[0].LotID, plan[1].LotID, plan[2].LotID})
}

func TestPlanConsumption_OutMayUseExpiredLots(t *testing.T) {
	expired := lot(1, "2", -3, 20)
	fresh := lot(2, "5", 3, 1)

	plan, err := inventory.PlanConsumption([]*entity.Lot{fresh, expired}, dec("3"), entity.MovementTypeOUT, today)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, int64(1), plan[0].LotID)
	assert.True(t, plan[1].Quantity.Equal(dec("1")))
}

func TestPlanConsumption_AllOrNothing(t *testing.T) {
	a := lot(1, "4", 2, 1)
	b := lot(2, "3", 6, 1)

	plan, err := inventory.PlanConsumption([]*entity.Lot{a, b}, dec("7.01"), entity.MovementTypeOUT, today)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, plan)
	assert.True(t, a.QuantityAvailable.Equal(dec("4")))
	assert.True(t, b.QuantityAvailable.Equal(dec("3")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Descarte
// ──────────────────────────────────────────────────────────────────────────────

func TestPlanConsumption_DiscardOnlyExpiredLots(t *testing.T) {
	expiredA := lot(1, "1.5", -10, 30)
	expiredB := lot(2, "2.5", -1, 15)
	expiresToday := lot(3, "8", 0, 2)
	fresh := lot(4, "9", 5, 1)
	lots := []*entity.Lot{fresh, expiresToday, expiredB, expiredA}

	plan, err := inventory.PlanConsumption(lots, dec("4.0"), entity.MovementTypeDISCARD, today)
	require.NoError(t, err)
	applyPlan(lots, plan)
	assert.True(t, inventory.Available(inventory.EligibleLots(lots, entity.MovementTypeDISCARD, today)).IsZero())
	assert.True(t, expiresToday.QuantityAvailable.Equal(dec("8")), "un lote que vence hoy no está vencido")
	assert.True(t, fresh.QuantityAvailable.Equal(dec("9")))
}

func TestPlanConsumption_DiscardGuard(t *testing.T) {
	lots := []*entity.Lot{lot(1, "4.0", -2, 10), lot(2, "50", 5, 1)}

	plan, err := inventory.PlanConsumption(lots, dec("4.01"), entity.MovementTypeDISCARD, today)
	assert.ErrorIs(t, err, domain.ErrInsufficientExpiredStock)
	assert.Nil(t, plan)
	assert.True(t, lots[0].QuantityAvailable.Equal(dec("4.0")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestPlanConsumption_Validation(t *testing.T) {
	lots := []*entity.Lot{lot(1, "10", 5, 1)}

	_, err := inventory.PlanConsumption(lots, decimal.Zero, entity.MovementTypeOUT, today)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = inventory.PlanConsumption(lots, dec("-1"), entity.MovementTypeOUT, today)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = inventory.PlanConsumption(lots, dec("1"), entity.MovementTypeIN, today)
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

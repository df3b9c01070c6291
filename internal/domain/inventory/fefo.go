package inventory

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/univesp-PI-III/merenda-certa/internal/domain"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
)

// SortFEFO ordena lotes por vencimiento, luego recepción, luego id (todos ascendentes).
func SortFEFO(lots []*entity.Lot) {
	slices.SortStableFunc(lots, func(a, b *entity.Lot) int {
		if c := a.ExpirationDate.Compare(b.ExpirationDate); c != 0 {
			return c
		}
		if c := a.ReceivedAt.Compare(b.ReceivedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// EligibleLots filtra los lotes que un movimiento puede debitar, en orden FEFO.
// OUT usa cualquier lote con saldo; DISCARD solo los vencidos antes de today.
func EligibleLots(lots []*entity.Lot, movementType entity.MovementType, today time.Time) []*entity.Lot {
	day := DateOf(today)
	out := make([]*entity.Lot, 0, len(lots))
	for _, l := range lots {
		if !l.QuantityAvailable.IsPositive() {
			continue
		}
		if movementType == entity.MovementTypeDISCARD && !l.IsExpiredOn(day) {
			continue
		}
		out = append(out, l)
	}
	SortFEFO(out)
	return out
}

// Available suma quantity_available de los lotes.
func Available(lots []*entity.Lot) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lots {
		total = total.Add(l.QuantityAvailable)
	}
	return total
}

// PlanConsumption calcula qué lotes debitar para consumir quantity (FEFO).
// Es todo o nada: si los lotes elegibles no alcanzan devuelve error y ninguna asignación.
// No modifica los lotes recibidos.
func PlanConsumption(
	lots []*entity.Lot,
	quantity decimal.Decimal,
	movementType entity.MovementType,
	today time.Time,
) ([]entity.LotAllocation, error) {
	if movementType != entity.MovementTypeOUT && movementType != entity.MovementTypeDISCARD {
		return nil, domain.ErrInvalidMovementType
	}
	if !quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}

	eligible := EligibleLots(lots, movementType, today)
	if Available(eligible).LessThan(quantity) {
		if movementType == entity.MovementTypeDISCARD {
			return nil, domain.ErrInsufficientExpiredStock
		}
		return nil, domain.ErrInsufficientStock
	}

	remaining := quantity
	allocations := make([]entity.LotAllocation, 0, len(eligible))
	for _, l := range eligible {
		if !remaining.IsPositive() {
			break
		}
		take := decimal.Min(remaining, l.QuantityAvailable)
		allocations = append(allocations, entity.LotAllocation{LotID: l.ID, Quantity: take})
		remaining = remaining.Sub(take)
	}
	return allocations, nil
}

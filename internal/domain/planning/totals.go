package planning

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizplan-api/internal/domain/entity"
)

// Totals are the plan-wide sums the second pass allocates against. They are
// ephemeral: recomputed on every recalculation, never persisted.
type Totals struct {
	GrossProfit decimal.Decimal
	QuantityKg  decimal.Decimal
}

// SumTotals reduces the pre-calculated items to plan totals. Items without a
// Calculated contribute zero gross profit.
func SumTotals(items []entity.PlanItem) Totals {
	var t Totals
	for _, item := range items {
		if item.Calculated != nil {
			t.GrossProfit = t.GrossProfit.Add(item.Calculated.GrossProfit)
		}
		t.QuantityKg = t.QuantityKg.Add(item.Input.QuantityKg)
	}
	return t
}

package planning

import "github.com/jhoicas/bizplan-api/internal/domain/entity"

// Recalculate runs the full two-pass pipeline over a plan: pre-calculate
// every item, reduce to plan totals, then post-calculate every item against
// the single aggregate. It returns a new slice and never mutates the
// caller's items; any previous Calculated values are ignored and replaced.
//
// The whole pipeline is O(n) in the item count and runs on every edit, so
// there is no incremental mode.
func Recalculate(items []entity.PlanItem, settings entity.PlanSettings) []entity.PlanItem {
	if len(items) == 0 {
		return []entity.PlanItem{}
	}

	pre := make([]entity.PlanItem, len(items))
	for i, item := range items {
		pre[i] = preCalculate(item, settings)
	}

	totals := SumTotals(pre)

	out := make([]entity.PlanItem, len(pre))
	for i, item := range pre {
		out[i] = postCalculate(item, totals, settings)
	}
	return out
}

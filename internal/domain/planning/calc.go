// Package planning implements the plan recalculation engine: a deterministic
// two-pass pipeline that turns a list of line items plus shared settings into
// fully computed P&L figures. Pass one (preCalculate) derives everything that
// depends on a single item; the results are reduced to plan totals; pass two
// (postCalculate) derives everything that depends on those totals. The
// engine is pure: it never mutates its arguments, performs no I/O and never
// rejects input — validation belongs to the boundary layers.
package planning

import "github.com/shopspring/decimal"

// Corporate income tax (thuế TNDN) flat rate and the fixed profit
// distribution split. The three distribution rates sum to 100%.
var (
	corporateIncomeTaxRate = decimal.NewFromFloat(0.20)
	provisionRate          = decimal.NewFromFloat(0.10)
	businessCapitalRate    = decimal.NewFromFloat(0.60)
	dividendRate           = decimal.NewFromFloat(0.30)
)

var (
	one         = decimal.NewFromInt(1)
	hundred     = decimal.NewFromInt(100)
	kgPerTon    = decimal.NewFromInt(1000)
	oneMillion  = decimal.NewFromInt(1_000_000)
	daysPerYear = decimal.NewFromInt(365)
)

// safeDiv divides num by den, returning zero when the denominator is zero.
// decimal.Div panics on a zero divisor, so every division in the engine goes
// through here.
func safeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

// exclVAT converts a VAT-inclusive amount to its exclusive base:
// incl / (1 + rate).
func exclVAT(incl, rate decimal.Decimal) decimal.Decimal {
	return safeDiv(incl, one.Add(rate))
}

// pct converts a percentage figure (5 = 5%) to a fraction.
func pct(p decimal.Decimal) decimal.Decimal {
	return p.Div(hundred)
}

// maxZero clamps negative amounts to zero.
func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

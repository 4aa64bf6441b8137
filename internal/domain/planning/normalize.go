package planning

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizplan-api/internal/domain/entity"
)

// normalizedInput is the item input with every optional field resolved, so
// the calculation passes carry no nil checks. VAT rates are fractions here
// (the entity stores percentages).
type normalizedInput struct {
	Type entity.AcquisitionType

	QuantityKg            decimal.Decimal
	PriceUSDPerTon        decimal.Decimal
	DomesticPriceVNDPerKg decimal.Decimal
	SellingPriceVNDPerKg  decimal.Decimal

	InputVATRate  decimal.Decimal // fraction
	OutputVATRate decimal.Decimal // fraction; falls back to the input rate when unset

	Costs entity.ItemCosts

	Mfg           entity.ManufacturingCosts // BatchNorm already guarded to >= 1 batch
	Outputs       []entity.ManufacturingOutput
	ByProducts    entity.ByProductRecovery
	HasByProducts bool
}

// normalizeInput resolves defaults at the boundary:
//   - missing acquisition type → import,
//   - missing output VAT rate → input VAT rate (legacy single-rate items),
//   - missing manufacturing costs → all zero with batch norm 1,
//   - batch norm ≤ 0 → 1 (guards the finished-goods division),
//   - missing by-product table → all zero.
//
// The returned struct shares no mutable state with the argument: slices and
// nested structs are copied.
func normalizeInput(in entity.ItemInput) normalizedInput {
	n := normalizedInput{
		Type:                  in.Type.Normalize(),
		QuantityKg:            in.QuantityKg,
		PriceUSDPerTon:        in.PriceUSDPerTon,
		DomesticPriceVNDPerKg: in.DomesticPriceVNDPerKg,
		SellingPriceVNDPerKg:  in.SellingPriceVNDPerKg,
		InputVATRate:          pct(in.Costs.InputVATRate),
		Costs:                 in.Costs,
	}

	if in.OutputVATRate != nil {
		n.OutputVATRate = pct(*in.OutputVATRate)
	} else {
		n.OutputVATRate = n.InputVATRate
	}

	if in.MfgCosts != nil {
		n.Mfg = *in.MfgCosts
	}
	if n.Mfg.BatchNorm.LessThanOrEqual(decimal.Zero) {
		n.Mfg.BatchNorm = one
	}

	if len(in.Outputs) > 0 {
		n.Outputs = make([]entity.ManufacturingOutput, len(in.Outputs))
		copy(n.Outputs, in.Outputs)
	}

	if in.ByProducts != nil {
		n.ByProducts = *in.ByProducts
		n.HasByProducts = true
	}

	return n
}

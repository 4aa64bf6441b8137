package planning_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizplan-api/internal/domain/entity"
)

// mfgItem: 1,000 kg raw fish bought at 30,000 VND/kg VAT inclusive, batch
// norm 2.0 (two kg in per kg of finished goods), twelve cost components
// summing to 10,000 VND/kg, one declared output of 500 kg at 90,000 VND/kg.
func mfgItem() entity.PlanItem {
	return entity.PlanItem{
		ID: "mfg",
		Input: entity.ItemInput{
			Type:                  entity.AcquisitionManufacturing,
			QuantityKg:            d("1000"),
			DomesticPriceVNDPerKg: d("30000"),
			OutputVATRate:         dp("5"),
			MfgCosts: &entity.ManufacturingCosts{
				BatchNorm:        d("2"),
				Labor:            d("4000"),
				Meals:            d("500"),
				ElectricityWater: d("1500"),
				Additives:        d("1000"),
				Packaging:        d("1500"),
				SafetyGear:       d("200"),
				Depreciation:     d("300"),
				Stationery:       d("100"),
				ToolsSupplies:    d("300"),
				Insurance:        d("200"),
				Documents:        d("100"),
				Storage:          d("300"),
			},
			Outputs: []entity.ManufacturingOutput{
				{ID: "o1", ProductCode: "FIL", Quantity: d("500"), SellingPriceVND: d("90000")},
			},
			Costs: entity.ItemCosts{InputVATRate: d("5")},
		},
	}
}

func TestRecalculate_ManufacturingVector(t *testing.T) {
	calc := recalcOne(t, mfgItem(), zeroSettings()).Calculated
	require.NotNil(t, calc.Manufacturing)
	mfg := calc.Manufacturing

	// 1,000 kg in / norm 2.0 = 500 kg finished goods.
	requireClose(t, "500", mfg.FinishedGoodsQty)
	// 10,000 VND/kg × 500 kg.
	requireClose(t, "5000000", mfg.TotalProductionCost)
	// Raw material excl VAT: 30,000/1.05 × 1,000 ≈ 28,571,428.57.
	requireClose(t, "28571428.57", calc.ImportValueVND)
	requireClose(t, "33571428.57", mfg.TotalInvestment)

	// Revenue from the declared output: 500 × 90,000 = 45M incl VAT.
	requireClose(t, "45000000", calc.TotalRevenueInclVAT)
	requireClose(t, "42857142.86", calc.TotalRevenue) // no by-products: aggregate = main

	// Logistics bucket carries the full production cost; COGS stays gross.
	requireClose(t, "5000000", calc.TotalLogisticsCost)
	requireClose(t, "33571428.57", calc.TotalCOGS)
	requireClose(t, "9285714.29", calc.GrossProfit)
}

// A batch norm of zero (or negative) must not divide by zero: it defaults
// to 1, so finished goods equal the raw input.
func TestRecalculate_BatchNormGuard(t *testing.T) {
	item := mfgItem()
	item.Input.MfgCosts.BatchNorm = decimal.Zero
	calc := recalcOne(t, item, zeroSettings()).Calculated
	requireClose(t, "1000", calc.Manufacturing.FinishedGoodsQty)
}

// By-products: revenue is recognized as revenue (main + by-product), and
// COGS keeps the full production cost — deducting the by-product revenue
// from COGS as well would discount it twice.
func TestRecalculate_ByProductsNoDoubleCounting(t *testing.T) {
	plain := recalcOne(t, mfgItem(), zeroSettings()).Calculated

	withBP := mfgItem()
	withBP.Input.ByProducts = &entity.ByProductRecovery{
		HeadsBones: entity.ByProductLine{Rate: d("10"), Price: d("5000")}, // 100 kg × 5,000 = 500,000 incl
		Fat:        entity.ByProductLine{Rate: d("4"), Price: d("7000")},  // 40 kg × 7,000 = 280,000 incl
	}
	calc := recalcOne(t, withBP, zeroSettings()).Calculated
	mfg := calc.Manufacturing

	requireClose(t, "780000", mfg.ByProductRevenue)
	requireClose(t, "742857.14", mfg.ByProductRevenueExclVAT) // 780,000 / 1.05
	requireClose(t, "37142.86", mfg.ByProductOutputVAT)
	requireClose(t, "4220000", mfg.NetProductionCost) // 5M − 780k, reported only

	// Revenue grows by the by-product leg…
	wantRevenue := plain.TotalRevenue.Add(mfg.ByProductRevenueExclVAT)
	assert.True(t, calc.TotalRevenue.Equal(wantRevenue),
		"aggregate revenue must be main + by-product: %s vs %s", calc.TotalRevenue, wantRevenue)
	// …while COGS does not move at all.
	assert.True(t, calc.TotalCOGS.Equal(plain.TotalCOGS),
		"COGS must not absorb the by-product revenue: %s vs %s", calc.TotalCOGS, plain.TotalCOGS)

	// Output VAT aggregate covers both legs.
	wantVAT := calc.TotalRevenueInclVAT.Sub(plain.TotalRevenue).Add(mfg.ByProductOutputVAT)
	requireClose(t, wantVAT.String(), mfg.TotalOutputVATAll)
}

// Manufacturing interest accrues on the total investment (production cost +
// raw material excl VAT) over the storage period.
func TestRecalculate_ManufacturingInterest(t *testing.T) {
	item := mfgItem()
	item.Input.Costs.LoanInterestRatePerYear = d("36.5") // daily 0.001
	item.Input.Costs.StorageDays = d("10")

	calc := recalcOne(t, item, zeroSettings()).Calculated
	// 33,571,428.57 × 0.001 × 10
	requireClose(t, "335714.29", calc.ImportInterestCost)
}

// A manufacturing line with no declared outputs falls back to the standard
// selling-price revenue path.
func TestRecalculate_ManufacturingWithoutOutputs(t *testing.T) {
	item := mfgItem()
	item.Input.Outputs = nil
	item.Input.SellingPriceVNDPerKg = d("42000")

	calc := recalcOne(t, item, zeroSettings()).Calculated
	requireClose(t, "42000000", calc.TotalRevenueInclVAT)
	requireClose(t, "40000000", calc.TotalRevenue)
}

// The virtual selling price per raw kg is derived for display when outputs
// are declared.
func TestRecalculate_ManufacturingVirtualSellingPrice(t *testing.T) {
	got := recalcOne(t, mfgItem(), zeroSettings())
	// 45M incl VAT over 1,000 raw kg.
	requireClose(t, "45000", got.Input.SellingPriceVNDPerKg)
	requireClose(t, "42857.14", got.Calculated.SellingPriceExclVAT)
}

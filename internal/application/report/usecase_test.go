package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizplan-api/internal/application/report"
	"github.com/jhoicas/bizplan-api/internal/domain/entity"
	"github.com/jhoicas/bizplan-api/internal/domain/planning"
)

func calculatedItems(t *testing.T) []entity.PlanItem {
	t.Helper()

	vat := decimal.NewFromInt(5)
	items := []entity.PlanItem{
		{
			ID: "imp-1",
			Input: entity.ItemInput{
				Type:                 entity.AcquisitionImport,
				QuantityKg:           decimal.NewFromInt(1000),
				PriceUSDPerTon:       decimal.NewFromInt(2000),
				SellingPriceVNDPerKg: decimal.NewFromInt(60000),
				OutputVATRate:        &vat,
				Costs: entity.ItemCosts{
					CustomsFee:   decimal.NewFromInt(1_000_000),
					InputVATRate: decimal.NewFromInt(5),
					StorageDays:  decimal.NewFromInt(20),
				},
			},
		},
		{
			ID: "dom-1",
			Input: entity.ItemInput{
				Type:                  entity.AcquisitionDomestic,
				QuantityKg:            decimal.NewFromInt(500),
				DomesticPriceVNDPerKg: decimal.NewFromInt(42000),
				SellingPriceVNDPerKg:  decimal.NewFromInt(55000),
				OutputVATRate:         &vat,
				Costs: entity.ItemCosts{
					InputVATRate: decimal.NewFromInt(5),
					StorageDays:  decimal.NewFromInt(10),
				},
			},
		},
	}

	settings := entity.DefaultPlanSettings()
	return planning.Recalculate(items, settings)
}

func TestSumItems_MatchesItemSums(t *testing.T) {
	items := calculatedItems(t)
	totals := report.SumItems(items)

	wantRevenue := decimal.Zero
	wantNet := decimal.Zero
	for _, it := range items {
		require.NotNil(t, it.Calculated)
		wantRevenue = wantRevenue.Add(it.Calculated.TotalRevenue)
		wantNet = wantNet.Add(it.Calculated.NetProfit)
	}

	assert.True(t, totals.TotalRevenue.Equal(wantRevenue))
	assert.True(t, totals.NetProfit.Equal(wantNet))
	assert.Equal(t, 2, totals.ItemCount)
}

// The statement recomputes the waterfall from the sums; since every item
// went through the same waterfall, the two must agree.
func TestBuildStatement_AgreesWithEngine(t *testing.T) {
	totals := report.SumItems(calculatedItems(t))
	s := report.BuildStatement(totals)

	tol := decimal.NewFromFloat(0.01)
	assert.True(t, s.ProfitBeforeTax.Sub(totals.ProfitBeforeTax).Abs().LessThanOrEqual(tol),
		"statement PBT %s vs engine %s", s.ProfitBeforeTax, totals.ProfitBeforeTax)
	assert.True(t, s.NetProfit.Sub(totals.NetProfit).Abs().LessThanOrEqual(tol))
	assert.True(t, s.GrossProfit.Sub(totals.GrossProfit).Abs().LessThanOrEqual(tol))
	assert.True(t, s.TotalTaxToPay.Equal(totals.CorporateIncomeTax.Add(totals.VATPayable)))

	// COGS breakdown rows add back up to row 11.
	assert.True(t, s.PurchaseCost.Add(s.LogisticsCost).Equal(s.COGS))
}

func TestSumDetailedCosts_WeightedStorageDays(t *testing.T) {
	items := calculatedItems(t)
	d := report.SumDetailedCosts(items)

	// (1000*20 + 500*10) / 1500 = 16.67 -> 17
	assert.Equal(t, int64(17), d.AvgStorageDays)
	assert.True(t, d.CustomsFee.Equal(decimal.NewFromInt(1_000_000)))
	assert.True(t, d.Rent.IsPositive())
}

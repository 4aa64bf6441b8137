package planning_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizplan-api/internal/domain/entity"
	"github.com/jhoicas/bizplan-api/internal/domain/planning"
)

// Two items, 300 kg and 700 kg, shared rent of 1,000,000: allocation is
// purely quantity-weighted, so 300,000 / 700,000.
func TestRecalculate_QuantityWeightedAllocation(t *testing.T) {
	settings := zeroSettings()
	settings.MonthlyRent = d("1000000")

	out := planning.Recalculate([]entity.PlanItem{
		importItem("a", "300", "2000", "60000"),
		importItem("b", "700", "2000", "60000"),
	}, settings)
	require.Len(t, out, 2)

	requireClose(t, "300000", out[0].Calculated.Rent)
	requireClose(t, "700000", out[1].Calculated.Rent)
}

// Every shared monthly figure must be conserved: the allocated shares sum
// back to the plan-wide total.
func TestRecalculate_AllocationConservation(t *testing.T) {
	settings := zeroSettings()
	settings.SalesSalaryRate = d("20")
	settings.MonthlyIndirectSalary = d("75000000")
	settings.MonthlyRent = d("6000000")
	settings.MonthlyElectricity = d("2000000")
	settings.MonthlyWater = d("500000")
	settings.MonthlyStationery = d("500000")
	settings.MonthlyDepreciation = d("1200000")
	settings.MonthlyExternalServices = d("1000000")
	settings.MonthlyOtherCashExpenses = d("1000000")
	settings.MonthlyFinancialCost = d("3000000")
	settings.MonthlyOtherIncome = d("800000")
	settings.MonthlyOtherExpenses = d("400000")

	out := planning.Recalculate([]entity.PlanItem{
		importItem("a", "123.45", "1950", "58000"),
		importItem("b", "877", "2410", "66000"),
		importItem("c", "42", "3100", "90000"),
	}, settings)
	require.Len(t, out, 3)

	sum := func(pick func(*entity.ItemCalculated) decimal.Decimal) decimal.Decimal {
		total := decimal.Zero
		for _, item := range out {
			total = total.Add(pick(item.Calculated))
		}
		return total
	}

	requireClose(t, "75000000", sum(func(c *entity.ItemCalculated) decimal.Decimal { return c.IndirectStaffSalary }))
	requireClose(t, "6000000", sum(func(c *entity.ItemCalculated) decimal.Decimal { return c.Rent }))
	requireClose(t, "2000000", sum(func(c *entity.ItemCalculated) decimal.Decimal { return c.Electricity }))
	requireClose(t, "500000", sum(func(c *entity.ItemCalculated) decimal.Decimal { return c.Water }))
	requireClose(t, "500000", sum(func(c *entity.ItemCalculated) decimal.Decimal { return c.Stationery }))
	requireClose(t, "1200000", sum(func(c *entity.ItemCalculated) decimal.Decimal { return c.Depreciation }))
	requireClose(t, "1000000", sum(func(c *entity.ItemCalculated) decimal.Decimal { return c.ExternalServices }))
	requireClose(t, "1000000", sum(func(c *entity.ItemCalculated) decimal.Decimal { return c.OtherCashExpenses }))
	requireClose(t, "3000000", sum(func(c *entity.ItemCalculated) decimal.Decimal { return c.FinancialCost }))
	requireClose(t, "800000", sum(func(c *entity.ItemCalculated) decimal.Decimal { return c.OtherIncome }))
	requireClose(t, "400000", sum(func(c *entity.ItemCalculated) decimal.Decimal { return c.OtherExpenses }))

	// The commission pool is 20% of total gross profit and is spread the
	// same way.
	totals := planning.SumTotals(out)
	wantPool := totals.GrossProfit.Mul(d("0.20"))
	requireClose(t, wantPool.String(), sum(func(c *entity.ItemCalculated) decimal.Decimal { return c.SalesStaffSalary }))
}

// With a zero total quantity nothing can be allocated; every share is zero
// rather than a division panic.
func TestRecalculate_ZeroTotalQuantityAllocatesNothing(t *testing.T) {
	settings := zeroSettings()
	settings.MonthlyRent = d("1000000")

	item := importItem("zero", "0", "2000", "60000")
	calc := recalcOne(t, item, settings).Calculated

	assert.True(t, calc.Rent.IsZero())
	assert.True(t, calc.SalesStaffSalary.IsZero())
	assert.True(t, calc.COGSPerKg.IsZero())
}

// Profit waterfall on a healthy import line, checked step by step.
func TestRecalculate_ProfitWaterfall(t *testing.T) {
	settings := zeroSettings()
	item := importItem("wf", "1000", "2000", "60000")
	item.Input.Costs.OtherSellingCosts = d("500000")

	calc := recalcOne(t, item, settings).Calculated

	requireClose(t, "500000", calc.TotalSellingCost) // no commission pool at 0% rate
	requireClose(t, "0", calc.TotalGACost)
	requireClose(t, "500000", calc.TotalOperatingCost)
	requireClose(t, "52500000", calc.TotalPreTaxCost) // COGS 52M + operating 0.5M
	requireClose(t, "4642857.14", calc.ProfitBeforeTax)
	requireClose(t, "928571.43", calc.CorporateIncomeTax)
	requireClose(t, "3714285.71", calc.NetProfit)

	// Output VAT 2,857,142.86 minus input VAT 2,600,000.
	requireClose(t, "257142.86", calc.VATPayable)
	requireClose(t, "1185714.29", calc.TotalTaxPayable)

	requireClose(t, "52000", calc.COGSPerKg)
}

// Profit distribution happens only on positive net profit and always
// reassembles to the full amount (10% provision + 60% capital + 30%
// dividends).
func TestRecalculate_ProfitDistributionConservation(t *testing.T) {
	calc := recalcOne(t, importItem("ok", "1000", "2000", "60000"), zeroSettings()).Calculated
	require.True(t, calc.NetProfit.IsPositive())

	sum := calc.RetainedForProvision.Add(calc.RetainedForBusiness).Add(calc.Dividends)
	assert.True(t, sum.Equal(calc.NetProfit),
		"distribution must sum to net profit: %s vs %s", sum, calc.NetProfit)
	requireClose(t, calc.NetProfit.Mul(d("0.10")).String(), calc.RetainedForProvision)
	requireClose(t, calc.NetProfit.Mul(d("0.60")).String(), calc.RetainedForBusiness)
	requireClose(t, calc.NetProfit.Mul(d("0.30")).String(), calc.Dividends)
}

// A loss-making line still accrues the 20% corporate income tax — as a
// credit. Pre-tax loss of 1,000,000 ends at net −800,000 with zero
// distribution. Only meaningful once aggregated across a whole plan; pinned
// here so nobody "fixes" it.
func TestRecalculate_LossStillAccruesTaxCredit(t *testing.T) {
	// 500 kg bought domestically at 2,000 VND/kg (no VAT), never sold:
	// revenue 0, COGS 1,000,000.
	item := entity.PlanItem{
		ID: "loss",
		Input: entity.ItemInput{
			Type:                  entity.AcquisitionDomestic,
			QuantityKg:            d("500"),
			DomesticPriceVNDPerKg: d("2000"),
			OutputVATRate:         dp("0"),
		},
	}
	calc := recalcOne(t, item, zeroSettings()).Calculated

	requireClose(t, "-1000000", calc.ProfitBeforeTax)
	requireClose(t, "-200000", calc.CorporateIncomeTax)
	requireClose(t, "-800000", calc.NetProfit)

	assert.True(t, calc.RetainedForProvision.IsZero())
	assert.True(t, calc.RetainedForBusiness.IsZero())
	assert.True(t, calc.Dividends.IsZero())
}

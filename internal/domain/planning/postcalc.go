package planning

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizplan-api/internal/domain/entity"
)

// postCalculate is the second pass: everything that depends on the plan
// totals. Shared monthly costs and the sales commission pool are spread
// across items in proportion to quantity; the remainder is the P&L
// waterfall down to net profit and its distribution.
//
// The 20% corporate income tax is applied even when profit before tax is
// negative: a loss-making line then carries a tax credit (negative tax),
// which only nets out once items are aggregated at plan level. Callers
// reading a single item in isolation must expect net profit above pre-tax
// profit on losses.
func postCalculate(item entity.PlanItem, totals Totals, settings entity.PlanSettings) entity.PlanItem {
	calc := *item.Calculated // fresh copy; first-pass values are kept
	quantityKg := item.Input.QuantityKg

	// Quantity-weighted share of any plan-wide monthly amount. Zero total
	// quantity allocates nothing anywhere.
	allocate := func(total decimal.Decimal) decimal.Decimal {
		if !totals.QuantityKg.IsPositive() {
			return decimal.Zero
		}
		return total.Mul(quantityKg).Div(totals.QuantityKg)
	}

	// Commission pool is profit sharing: a cut of total gross profit, not of
	// revenue, spread like every other shared cost.
	salesSalaryPool := totals.GrossProfit.Mul(pct(settings.SalesSalaryRate))

	calc.SalesStaffSalary = allocate(salesSalaryPool)
	calc.IndirectStaffSalary = allocate(settings.MonthlyIndirectSalary)
	calc.Rent = allocate(settings.MonthlyRent)
	calc.Electricity = allocate(settings.MonthlyElectricity)
	calc.Water = allocate(settings.MonthlyWater)
	calc.Stationery = allocate(settings.MonthlyStationery)
	calc.Depreciation = allocate(settings.MonthlyDepreciation)
	calc.ExternalServices = allocate(settings.MonthlyExternalServices)
	calc.OtherCashExpenses = allocate(settings.MonthlyOtherCashExpenses)
	calc.FinancialCost = allocate(settings.MonthlyFinancialCost)
	calc.OtherIncome = allocate(settings.MonthlyOtherIncome)
	calc.OtherExpenses = allocate(settings.MonthlyOtherExpenses)

	calc.TotalSellingCost = calc.SalesStaffSalary.Add(item.Input.Costs.OtherSellingCosts)
	calc.TotalGACost = calc.IndirectStaffSalary.
		Add(calc.Rent).
		Add(calc.Electricity).
		Add(calc.Water).
		Add(calc.Stationery).
		Add(calc.Depreciation).
		Add(calc.ExternalServices).
		Add(calc.OtherCashExpenses)
	calc.TotalFinancialCost = calc.FinancialCost

	// Output VAT: the manufacturing aggregate carries the by-product leg;
	// other items derive it from the incl/excl revenue difference.
	if calc.Manufacturing != nil {
		calc.OutputVAT = calc.Manufacturing.TotalOutputVATAll
	} else {
		calc.OutputVAT = calc.TotalRevenueInclVAT.Sub(calc.TotalRevenue)
	}
	// Negative VAT payable is a credit this item carries in isolation.
	calc.VATPayable = calc.OutputVAT.Sub(calc.ImportVAT)

	calc.COGSPerKg = safeDiv(calc.TotalCOGS, quantityKg)

	calc.TotalOperatingCost = calc.TotalSellingCost.Add(calc.TotalGACost)
	calc.TotalPreTaxCost = calc.TotalCOGS.
		Add(calc.TotalOperatingCost).
		Add(calc.TotalFinancialCost).
		Add(calc.OtherExpenses)
	calc.ProfitBeforeTax = calc.TotalRevenue.Sub(calc.TotalPreTaxCost).Add(calc.OtherIncome)
	calc.CorporateIncomeTax = calc.ProfitBeforeTax.Mul(corporateIncomeTaxRate)
	calc.NetProfit = calc.ProfitBeforeTax.Sub(calc.CorporateIncomeTax)
	calc.TotalTaxPayable = calc.CorporateIncomeTax.Add(calc.VATPayable)

	// Distribution only happens on positive net profit; the 10/60/30 split
	// always reassembles to the full net profit.
	if calc.NetProfit.IsPositive() {
		calc.RetainedForProvision = calc.NetProfit.Mul(provisionRate)
		calc.RetainedForBusiness = calc.NetProfit.Mul(businessCapitalRate)
		calc.Dividends = calc.NetProfit.Mul(dividendRate)
	} else {
		calc.RetainedForProvision = decimal.Zero
		calc.RetainedForBusiness = decimal.Zero
		calc.Dividends = decimal.Zero
	}

	item.Calculated = &calc
	return item
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanSettings are the shared rates of a plan: the two FX rates, the sales
// salary rate and the monthly overhead totals that get allocated across
// items by quantity. ExchangeRateImport prices the commercial invoice;
// ExchangeRateTax is the customs valuation rate — the two are deliberately
// distinct because they may be fixed on different dates.
type PlanSettings struct {
	ExchangeRateImport decimal.Decimal `json:"exchangeRateImport"`
	ExchangeRateTax    decimal.Decimal `json:"exchangeRateTax"`
	SalesSalaryRate    decimal.Decimal `json:"salesSalaryRate"` // % of total gross profit

	MonthlyIndirectSalary    decimal.Decimal `json:"totalMonthlyIndirectSalary"`
	MonthlyRent              decimal.Decimal `json:"totalMonthlyRent"`
	MonthlyElectricity       decimal.Decimal `json:"totalMonthlyElectricity"`
	MonthlyWater             decimal.Decimal `json:"totalMonthlyWater"`
	MonthlyStationery        decimal.Decimal `json:"totalMonthlyStationery"`
	MonthlyDepreciation      decimal.Decimal `json:"totalMonthlyDepreciation"`
	MonthlyExternalServices  decimal.Decimal `json:"totalMonthlyExternalServices"`
	MonthlyOtherCashExpenses decimal.Decimal `json:"totalMonthlyOtherCashExpenses"`
	MonthlyFinancialCost     decimal.Decimal `json:"totalMonthlyFinancialCost"`
	MonthlyOtherIncome       decimal.Decimal `json:"totalMonthlyOtherIncome"`
	MonthlyOtherExpenses     decimal.Decimal `json:"totalMonthlyOtherExpenses"`

	// Not read by any formula; kept because exported snapshots carry it.
	WorkingDaysPerMonth decimal.Decimal `json:"workingDaysPerMonth"`
}

// DefaultPlanSettings returns the settings a new plan starts with.
func DefaultPlanSettings() PlanSettings {
	return PlanSettings{
		ExchangeRateImport:       decimal.NewFromInt(26356),
		ExchangeRateTax:          decimal.NewFromInt(26154),
		SalesSalaryRate:          decimal.NewFromInt(20),
		MonthlyIndirectSalary:    decimal.NewFromInt(75_000_000),
		MonthlyRent:              decimal.NewFromInt(6_000_000),
		MonthlyElectricity:       decimal.NewFromInt(2_000_000),
		MonthlyWater:             decimal.NewFromInt(500_000),
		MonthlyStationery:        decimal.NewFromInt(500_000),
		MonthlyDepreciation:      decimal.Zero,
		MonthlyExternalServices:  decimal.NewFromInt(1_000_000),
		MonthlyOtherCashExpenses: decimal.NewFromInt(1_000_000),
		MonthlyFinancialCost:     decimal.Zero,
		MonthlyOtherIncome:       decimal.Zero,
		MonthlyOtherExpenses:     decimal.Zero,
		WorkingDaysPerMonth:      decimal.NewFromInt(24),
	}
}

// Plan is a named business plan owned by a user: a list of line items plus
// shared settings. Items are stored fully computed; any mutation goes
// through the planning engine before it is persisted.
type Plan struct {
	ID        string       `json:"id"`
	OwnerID   string       `json:"-"`
	Name      string       `json:"name"`
	Settings  PlanSettings `json:"settings"`
	Items     []PlanItem   `json:"items"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"-"`
}

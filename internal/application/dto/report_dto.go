package dto

import "github.com/shopspring/decimal"

// ReportTotals are the plan-wide sums of the computed item figures. Every
// field is a straight sum over the items (margins are derived separately).
type ReportTotals struct {
	ImportValueVND     decimal.Decimal `json:"importValueVND"`
	TotalLogisticsCost decimal.Decimal `json:"totalClearanceAndLogisticsCost"`
	TotalSellingCost   decimal.Decimal `json:"totalSellingCost"`
	TotalGACost        decimal.Decimal `json:"totalGaCost"`
	TotalFinancialCost decimal.Decimal `json:"totalFinancialCost"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	GrossProfit        decimal.Decimal `json:"grossProfit"`
	ProfitBeforeTax    decimal.Decimal `json:"profitBeforeTax"`
	CorporateIncomeTax decimal.Decimal `json:"corporateIncomeTax"`
	ImportVAT          decimal.Decimal `json:"importVAT"`
	OutputVAT          decimal.Decimal `json:"outputVAT"`
	VATPayable         decimal.Decimal `json:"vatPayable"`
	NetProfit          decimal.Decimal `json:"netProfit"`
	ImportInterestCost decimal.Decimal `json:"importInterestCost"`
	TotalCOGS          decimal.Decimal `json:"totalCOGS"`
	TotalTaxPayable    decimal.Decimal `json:"totalTaxPayable"`
	OtherExpenses      decimal.Decimal `json:"totalOtherExpenses"`
	OtherIncome        decimal.Decimal `json:"totalOtherIncome"`
	ItemCount          int             `json:"itemCount"`
}

// DetailedCosts is the cost summary table: user-entered fees summed as-is,
// derived costs summed from the calculated state, grouped the way the P&L
// groups them (1 clearance/production, 2 selling, 3 G&A, 4 financial).
type DetailedCosts struct {
	CustomsFee               decimal.Decimal `json:"customsFee"`
	QuarantineFee            decimal.Decimal `json:"quarantineFee"`
	ContainerRentalFee       decimal.Decimal `json:"containerRentalFee"`
	PortStorageFee           decimal.Decimal `json:"portStorageFee"`
	GeneralWarehouseCost     decimal.Decimal `json:"generalWarehouseCost"`
	ImportInterestCost       decimal.Decimal `json:"importInterestCost"`
	PostClearanceStorageCost decimal.Decimal `json:"postClearanceStorageCost"`
	PurchasingServiceFee     decimal.Decimal `json:"purchasingServiceFee"`
	BuyerDeliveryFee         decimal.Decimal `json:"buyerDeliveryFee"`
	OtherPurchaseCost        decimal.Decimal `json:"otherInternationalPurchaseCost"`

	SalesStaffSalary  decimal.Decimal `json:"salesStaffSalary"`
	OtherSellingCosts decimal.Decimal `json:"otherSellingCosts"`

	IndirectStaffSalary decimal.Decimal `json:"indirectStaffSalary"`
	Rent                decimal.Decimal `json:"rent"`
	Electricity         decimal.Decimal `json:"electricity"`
	Water               decimal.Decimal `json:"water"`
	Stationery          decimal.Decimal `json:"stationery"`
	Depreciation        decimal.Decimal `json:"depreciation"`
	ExternalServices    decimal.Decimal `json:"externalServices"`
	OtherCashExpenses   decimal.Decimal `json:"otherCashExpenses"`

	FinancialCost decimal.Decimal `json:"financialValuationCost"`
	OtherExpenses decimal.Decimal `json:"otherExpenses"`

	// Quantity-weighted average of post-clearance storage days, rounded
	// to whole days.
	AvgStorageDays int64 `json:"avgStorageDays"`
}

// IncomeStatement is the standard Vietnamese B02 result layout built from
// the plan totals: row codes 01..80 with the waterfall already applied.
type IncomeStatement struct {
	GrossRevenue       decimal.Decimal `json:"grossRevenue"`       // 01
	RevenueDeductions  decimal.Decimal `json:"revenueDeductions"`  // 02
	NetRevenue         decimal.Decimal `json:"netRevenue"`         // 10
	COGS               decimal.Decimal `json:"cogs"`               // 11
	PurchaseCost       decimal.Decimal `json:"purchaseCost"`       // 11a
	LogisticsCost      decimal.Decimal `json:"logisticsCost"`      // 11b
	GrossProfit        decimal.Decimal `json:"grossProfit"`        // 20
	FinancialIncome    decimal.Decimal `json:"financialIncome"`    // 21
	FinancialCost      decimal.Decimal `json:"financialCost"`      // 22
	SellingCost        decimal.Decimal `json:"sellingCost"`        // 25
	GACost             decimal.Decimal `json:"gaCost"`             // 26
	NetOperatingProfit decimal.Decimal `json:"netOperatingProfit"` // 30
	OtherIncome        decimal.Decimal `json:"otherIncome"`        // 31
	OtherCost          decimal.Decimal `json:"otherCost"`          // 32
	OtherProfit        decimal.Decimal `json:"otherProfit"`        // 40
	ProfitBeforeTax    decimal.Decimal `json:"profitBeforeTax"`    // 50
	CorporateIncomeTax decimal.Decimal `json:"corporateIncomeTax"` // 51
	DeferredCIT        decimal.Decimal `json:"deferredCit"`        // 52
	NetProfit          decimal.Decimal `json:"netProfit"`          // 60
	VATPayable         decimal.Decimal `json:"vatPayable"`         // 70
	TotalTaxToPay      decimal.Decimal `json:"totalTaxToPay"`      // 80
}

// SegmentComparison splits the plan totals by acquisition type so the
// report can compare import vs domestic vs manufacturing performance.
type SegmentComparison struct {
	Company       ReportTotals `json:"company"`
	Import        ReportTotals `json:"import"`
	Domestic      ReportTotals `json:"domestic"`
	Manufacturing ReportTotals `json:"manufacturing"`
}

// PlanReport is the full report payload: the income statement, the cost
// summary table, the segment comparison and the per-item rows.
type PlanReport struct {
	PlanID      string            `json:"planId"`
	PlanName    string            `json:"planName"`
	GeneratedAt string            `json:"generatedAt"`
	Statement   IncomeStatement   `json:"statement"`
	Totals      ReportTotals      `json:"totals"`
	Costs       DetailedCosts     `json:"costs"`
	Segments    SegmentComparison `json:"segments"`
}

package entity

import "github.com/shopspring/decimal"

// AcquisitionType selects the cost model of a plan line item. The three
// variants branch the whole pre-calculation pass; anything unknown is
// treated as an import (legacy items predate the field).
type AcquisitionType string

const (
	AcquisitionImport        AcquisitionType = "import"
	AcquisitionDomestic      AcquisitionType = "domestic"
	AcquisitionManufacturing AcquisitionType = "manufacturing"
)

// Normalize maps the zero value and unknown tags to AcquisitionImport.
func (t AcquisitionType) Normalize() AcquisitionType {
	switch t {
	case AcquisitionDomestic, AcquisitionManufacturing:
		return t
	default:
		return AcquisitionImport
	}
}

// PlanItem is one product line inside a plan. Product is a snapshot of the
// catalog entry at the time the line was added; Input is everything the user
// edits; Calculated is fully derived and overwritten on every recalculation.
type PlanItem struct {
	ID         string          `json:"id"`
	Product    Product         `json:"product"`
	Input      ItemInput       `json:"userInput"`
	Calculated *ItemCalculated `json:"calculated,omitempty"`
}

// ItemInput holds all editable fields of a line item. Rates are percentages
// (5 means 5%); OutputVATRate nil means "fall back to the input VAT rate"
// (legacy items carried only one rate). PriceUSDPerTon prices import lines;
// the domestic purchase price and the selling price are VAT inclusive.
type ItemInput struct {
	Type AcquisitionType `json:"type,omitempty"`

	QuantityKg            decimal.Decimal `json:"quantityInKg"`
	PriceUSDPerTon        decimal.Decimal `json:"priceUSDPerTon"`
	DomesticPriceVNDPerKg decimal.Decimal `json:"domesticPurchasePriceVNDPerKg"`
	SellingPriceVNDPerKg  decimal.Decimal `json:"sellingPriceVNDPerKg"`

	OutputVATRate *decimal.Decimal `json:"outputVatRate,omitempty"`

	Outputs    []ManufacturingOutput `json:"manufacturingOutputs,omitempty"`
	MfgCosts   *ManufacturingCosts   `json:"manufacturingCosts,omitempty"`
	ByProducts *ByProductRecovery    `json:"manufacturingByProducts,omitempty"`

	Costs ItemCosts `json:"costs"`
}

// ItemCosts are the per-line cost inputs (category 1 clearance & logistics,
// category 2 selling). The loan interest rate is % per annum and the VAT
// rates plain percentages. Monthly G&A/financial/other totals live on the
// plan settings and reach the item through allocation in the second pass.
type ItemCosts struct {
	CustomsFee                decimal.Decimal `json:"customsFee"`
	QuarantineFee             decimal.Decimal `json:"quarantineFee"`
	ContainerRentalFee        decimal.Decimal `json:"containerRentalFee"`
	PortStorageFee            decimal.Decimal `json:"portStorageFee"`
	GeneralWarehouseRatePerKg decimal.Decimal `json:"generalWarehouseCostRatePerKg"`

	LoanInterestRatePerYear decimal.Decimal `json:"loanInterestRatePerYear"`
	LoanFirstTransferUSD    decimal.Decimal `json:"loanFirstTransferUSD"`
	LoanFirstTransferDays   decimal.Decimal `json:"loanFirstTransferInterestDays"`
	StorageDays             decimal.Decimal `json:"postClearanceStorageDays"`
	StorageRatePerKgDay     decimal.Decimal `json:"postClearanceStorageRatePerKgDay"`

	InputVATRate decimal.Decimal `json:"importVatRate"`

	PurchasingFeeMillionsPerCont decimal.Decimal `json:"purchasingServiceFeeInMillionsPerCont"`
	BuyerDeliveryFee             decimal.Decimal `json:"buyerDeliveryFee"`
	OtherPurchaseCosts           decimal.Decimal `json:"otherInternationalCosts"`

	OtherSellingCosts decimal.Decimal `json:"otherSellingCosts"`
}

// ManufacturingOutput is one finished product declared for a manufacturing
// line: quantity produced and its VAT-inclusive selling price.
type ManufacturingOutput struct {
	ID              string          `json:"id"`
	ProductCode     string          `json:"productCode"`
	Quantity        decimal.Decimal `json:"quantity"`
	SellingPriceVND decimal.Decimal `json:"sellingPriceVND"`
}

// ManufacturingCosts: batch yield norm plus the twelve per-kg direct
// production cost components (chiết tính chi phí, VND per kg of finished
// goods).
type ManufacturingCosts struct {
	BatchNorm decimal.Decimal `json:"batchNorm"`

	Labor            decimal.Decimal `json:"laborCost"`
	Meals            decimal.Decimal `json:"mealCost"`
	ElectricityWater decimal.Decimal `json:"electricityWaterCost"`
	Additives        decimal.Decimal `json:"additivesCost"`
	Packaging        decimal.Decimal `json:"packagingCost"`
	SafetyGear       decimal.Decimal `json:"safetyGearCost"`
	Depreciation     decimal.Decimal `json:"depreciationCost"`
	Stationery       decimal.Decimal `json:"stationeryCost"`
	ToolsSupplies    decimal.Decimal `json:"toolsSuppliesCost"`
	Insurance        decimal.Decimal `json:"insuranceCost"`
	Documents        decimal.Decimal `json:"documentCost"`
	Storage          decimal.Decimal `json:"storageCost"`
}

// UnitCostSum is the per-kg direct production cost (sum of the twelve
// components).
func (c ManufacturingCosts) UnitCostSum() decimal.Decimal {
	return c.Labor.
		Add(c.Meals).
		Add(c.ElectricityWater).
		Add(c.Additives).
		Add(c.Packaging).
		Add(c.SafetyGear).
		Add(c.Depreciation).
		Add(c.Stationery).
		Add(c.ToolsSupplies).
		Add(c.Insurance).
		Add(c.Documents).
		Add(c.Storage)
}

// ByProductLine is one recovery category: Rate is the recovered share of the
// raw input in percent, Price the VAT-inclusive sale price per kg.
type ByProductLine struct {
	Rate  decimal.Decimal `json:"rate"`
	Price decimal.Decimal `json:"price"`
}

// ByProductRecovery is the six-category by-product table of a fish/meat
// processing batch (heads & bones, skin, trimmings, red meat, bulk
// trimmings, fat).
type ByProductRecovery struct {
	HeadsBones    ByProductLine `json:"headsBones"`
	Skin          ByProductLine `json:"skin"`
	Trimmings     ByProductLine `json:"trimmings"`
	RedMeat       ByProductLine `json:"redMeat"`
	BulkTrimmings ByProductLine `json:"bulkTrimmings"`
	Fat           ByProductLine `json:"fat"`
}

// Lines returns the six categories in report order.
func (b ByProductRecovery) Lines() []ByProductLine {
	return []ByProductLine{b.HeadsBones, b.Skin, b.Trimmings, b.RedMeat, b.BulkTrimmings, b.Fat}
}

// ManufacturingCalculated groups the derived figures that only exist for
// manufacturing lines. Revenue totals here are the aggregate of main outputs
// and by-products; the post pass prefers TotalOutputVATAll over the plain
// incl/excl revenue difference.
type ManufacturingCalculated struct {
	FinishedGoodsQty    decimal.Decimal `json:"finishedGoodsQty"`
	TotalProductionCost decimal.Decimal `json:"totalProductionCost"`
	TotalInvestment     decimal.Decimal `json:"totalManufacturingInvestment"`

	ByProductRevenue        decimal.Decimal `json:"totalByProductRevenue"` // VAT inclusive
	ByProductRevenueExclVAT decimal.Decimal `json:"byProductRevenueExclVAT"`
	ByProductOutputVAT      decimal.Decimal `json:"byProductOutputVAT"`
	NetProductionCost       decimal.Decimal `json:"netProductionCost"`

	TotalRevenueExclVATAll decimal.Decimal `json:"totalRevenueExclVAT_All"`
	TotalOutputVATAll      decimal.Decimal `json:"totalOutputVAT_All"`
	TotalRevenueInclVATAll decimal.Decimal `json:"totalRevenueInclVAT_All"`
}

// ItemCalculated is the full derived state of a line item. It is a pure
// function of ItemInput plus the plan settings and plan totals; the engine
// rebuilds it from scratch on every recalculation.
type ItemCalculated struct {
	// Base values (first pass)
	Containers     decimal.Decimal `json:"containers"`
	PriceUSDPerKg  decimal.Decimal `json:"priceUSDPerKg"`
	ImportValueUSD decimal.Decimal `json:"importValueUSD"`
	ImportValueVND decimal.Decimal `json:"importValueVND"` // base purchase cost excl VAT
	ImportVAT      decimal.Decimal `json:"importVAT"`      // input VAT amount
	PriceVNDPerTon decimal.Decimal `json:"priceVNDPerTon"`

	Manufacturing *ManufacturingCalculated `json:"manufacturingCalculations,omitempty"`

	// Clearance & logistics (first pass)
	GeneralWarehouseCost       decimal.Decimal `json:"generalWarehouseCost"`
	ImportInterestCost         decimal.Decimal `json:"importInterestCost"`
	LoanFirstTransferAmountVND decimal.Decimal `json:"loanFirstTransferAmountVND"`
	LoanInterestFirstTransfer  decimal.Decimal `json:"loanInterestCostFirstTransfer"`
	LoanSecondTransferAmount   decimal.Decimal `json:"loanSecondTransferAmountVND"`
	LoanInterestSecondTransfer decimal.Decimal `json:"loanInterestCostSecondTransfer"`
	VATLoanInterestCost        decimal.Decimal `json:"vatLoanInterestCost"`
	PostClearanceStorageCost   decimal.Decimal `json:"postClearanceStorageCost"`
	PurchasingServiceFee       decimal.Decimal `json:"purchasingServiceFee"`
	OtherPurchaseCost          decimal.Decimal `json:"otherInternationalPurchaseCost"`
	TotalLogisticsCost         decimal.Decimal `json:"totalClearanceAndLogisticsCost"`

	// Revenue and margin (first pass)
	SellingPriceExclVAT decimal.Decimal `json:"sellingPriceExclVAT"`
	TotalRevenueInclVAT decimal.Decimal `json:"totalRevenueInclVAT"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"` // excl VAT
	TotalCOGS           decimal.Decimal `json:"totalCOGS"`
	GrossProfit         decimal.Decimal `json:"grossProfit"`

	// Allocated shares (second pass)
	SalesStaffSalary    decimal.Decimal `json:"salesStaffSalary"`
	IndirectStaffSalary decimal.Decimal `json:"indirectStaffSalary"`
	Rent                decimal.Decimal `json:"rent"`
	Electricity         decimal.Decimal `json:"electricity"`
	Water               decimal.Decimal `json:"water"`
	Stationery          decimal.Decimal `json:"stationery"`
	Depreciation        decimal.Decimal `json:"depreciation"`
	ExternalServices    decimal.Decimal `json:"externalServices"`
	OtherCashExpenses   decimal.Decimal `json:"otherCashExpenses"`
	FinancialCost       decimal.Decimal `json:"financialValuationCost"`
	OtherIncome         decimal.Decimal `json:"otherIncome"`
	OtherExpenses       decimal.Decimal `json:"otherExpenses"`

	// Roll-ups and waterfall (second pass)
	TotalSellingCost   decimal.Decimal `json:"totalSellingCost"`
	TotalGACost        decimal.Decimal `json:"totalGaCost"`
	TotalFinancialCost decimal.Decimal `json:"totalFinancialCost"`
	OutputVAT          decimal.Decimal `json:"outputVAT"`
	VATPayable         decimal.Decimal `json:"vatPayable"`
	COGSPerKg          decimal.Decimal `json:"cogsPerKg"`
	TotalOperatingCost decimal.Decimal `json:"totalOperatingCost"`
	TotalPreTaxCost    decimal.Decimal `json:"totalPreTaxCost"`
	ProfitBeforeTax    decimal.Decimal `json:"profitBeforeTax"`
	CorporateIncomeTax decimal.Decimal `json:"corporateIncomeTax"`
	NetProfit          decimal.Decimal `json:"netProfit"`
	TotalTaxPayable    decimal.Decimal `json:"totalTaxPayable"`

	// Profit distribution (second pass, only when net profit > 0)
	RetainedForProvision decimal.Decimal `json:"retainedForProvision"`
	RetainedForBusiness  decimal.Decimal `json:"retainedForBusiness"`
	Dividends            decimal.Decimal `json:"dividends"`
}

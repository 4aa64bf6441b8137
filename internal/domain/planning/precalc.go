package planning

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizplan-api/internal/domain/entity"
)

// preCalculate is the first pass: every figure that depends on this item
// alone. The item is received by value and returned with a freshly built
// Calculated; the caller's copy is never touched (the pass reads, but does
// not write, the slice/pointer fields inside Input).
func preCalculate(item entity.PlanItem, settings entity.PlanSettings) entity.PlanItem {
	in := normalizeInput(item.Input)
	calc := &entity.ItemCalculated{}

	isManufacturing := in.Type == entity.AcquisitionManufacturing

	if in.QuantityKg.IsPositive() && item.Product.ContainerWeightKg.IsPositive() {
		calc.Containers = in.QuantityKg.Div(item.Product.ContainerWeightKg)
	}

	// Base purchase value and input VAT. For domestic/manufacturing the unit
	// price is VND/kg VAT inclusive; for import it is USD/ton converted at
	// the import FX rate, while the input VAT is valued at the customs (tax)
	// FX rate — two distinct rates on purpose.
	switch in.Type {
	case entity.AcquisitionDomestic, entity.AcquisitionManufacturing:
		priceExclVAT := exclVAT(in.DomesticPriceVNDPerKg, in.InputVATRate)
		calc.ImportValueVND = priceExclVAT.Mul(in.QuantityKg)
		calc.ImportVAT = calc.ImportValueVND.Mul(in.InputVATRate)
		calc.PriceVNDPerTon = priceExclVAT.Mul(kgPerTon)
	case entity.AcquisitionImport:
		calc.PriceUSDPerKg = in.PriceUSDPerTon.Div(kgPerTon)
		calc.ImportValueUSD = in.QuantityKg.Mul(calc.PriceUSDPerKg)
		calc.ImportValueVND = calc.ImportValueUSD.Mul(settings.ExchangeRateImport)
		calc.ImportVAT = in.QuantityKg.Mul(calc.PriceUSDPerKg).Mul(settings.ExchangeRateTax).Mul(in.InputVATRate)
		calc.PriceVNDPerTon = in.PriceUSDPerTon.Mul(settings.ExchangeRateImport)
	}

	var mfg *entity.ManufacturingCalculated
	if isManufacturing {
		mfg = manufacturingPass(in, calc.ImportValueVND)
	}

	// Revenue. A manufacturing line with declared outputs sells those
	// outputs; everything else sells the raw quantity at the line's selling
	// price. Both legs are VAT inclusive on input.
	if isManufacturing && len(in.Outputs) > 0 {
		for _, out := range in.Outputs {
			calc.TotalRevenueInclVAT = calc.TotalRevenueInclVAT.Add(out.Quantity.Mul(out.SellingPriceVND))
		}
		calc.TotalRevenue = exclVAT(calc.TotalRevenueInclVAT, in.OutputVATRate)
		if in.QuantityKg.IsPositive() {
			// Virtual selling price per kg of raw material, for display.
			item.Input.SellingPriceVNDPerKg = calc.TotalRevenueInclVAT.Div(in.QuantityKg)
			calc.SellingPriceExclVAT = calc.TotalRevenue.Div(in.QuantityKg)
		}
	} else {
		calc.TotalRevenueInclVAT = in.SellingPriceVNDPerKg.Mul(in.QuantityKg)
		calc.SellingPriceExclVAT = exclVAT(in.SellingPriceVNDPerKg, in.OutputVATRate)
		calc.TotalRevenue = calc.SellingPriceExclVAT.Mul(in.QuantityKg)
	}

	// Aggregate revenue and output VAT. For manufacturing the plan-level
	// revenue is main outputs plus by-products (gross basis); COGS below
	// stays gross as well, so by-product revenue is never double-counted as
	// a cost offset.
	mainOutputVAT := calc.TotalRevenueInclVAT.Sub(calc.TotalRevenue)
	if isManufacturing {
		mfg.TotalRevenueExclVATAll = calc.TotalRevenue.Add(mfg.ByProductRevenueExclVAT)
		mfg.TotalOutputVATAll = mainOutputVAT.Add(mfg.ByProductOutputVAT)
		mfg.TotalRevenueInclVATAll = calc.TotalRevenueInclVAT.Add(mfg.ByProductRevenue)
		calc.TotalRevenue = mfg.TotalRevenueExclVATAll
	}

	calculateInterest(in, settings, calc, mfg)

	calc.GeneralWarehouseCost = in.QuantityKg.Mul(in.Costs.GeneralWarehouseRatePerKg)
	calc.PostClearanceStorageCost = in.QuantityKg.Mul(in.Costs.StorageDays).Mul(in.Costs.StorageRatePerKgDay)
	calc.PurchasingServiceFee = calc.Containers.Mul(in.Costs.PurchasingFeeMillionsPerCont).Mul(oneMillion)
	calc.OtherPurchaseCost = in.Costs.OtherPurchaseCosts

	// Cost to get sellable goods. Customs/quarantine/container/port/general
	// warehouse fees only exist for imports; a manufacturing line folds its
	// direct production cost into this bucket instead.
	shared := calc.ImportInterestCost.
		Add(calc.PostClearanceStorageCost).
		Add(calc.PurchasingServiceFee).
		Add(in.Costs.BuyerDeliveryFee).
		Add(calc.OtherPurchaseCost)
	switch in.Type {
	case entity.AcquisitionManufacturing:
		calc.TotalLogisticsCost = mfg.TotalProductionCost.Add(shared)
	case entity.AcquisitionDomestic:
		calc.TotalLogisticsCost = shared
	case entity.AcquisitionImport:
		calc.TotalLogisticsCost = shared.
			Add(in.Costs.CustomsFee).
			Add(in.Costs.QuarantineFee).
			Add(in.Costs.ContainerRentalFee).
			Add(in.Costs.PortStorageFee).
			Add(calc.GeneralWarehouseCost)
	}

	// COGS = purchase cost excl VAT + logistics bucket. For manufacturing
	// the bucket already carries the full production cost, keeping COGS on
	// the same gross basis as revenue.
	calc.TotalCOGS = calc.ImportValueVND.Add(calc.TotalLogisticsCost)
	calc.GrossProfit = calc.TotalRevenue.Sub(calc.TotalCOGS)

	calc.Manufacturing = mfg
	item.Calculated = calc
	return item
}

// manufacturingPass derives the production figures: finished goods from the
// batch yield norm, direct production cost from the twelve per-kg
// components, the interest-bearing investment, and the six-category
// by-product revenue split into excl-VAT and VAT legs.
func manufacturingPass(in normalizedInput, rawMaterialCostExclVAT decimal.Decimal) *entity.ManufacturingCalculated {
	mfg := &entity.ManufacturingCalculated{}

	// Thành phẩm nhập kho = raw input / batch yield norm.
	mfg.FinishedGoodsQty = safeDiv(in.QuantityKg, in.Mfg.BatchNorm)
	mfg.TotalProductionCost = in.Mfg.UnitCostSum().Mul(mfg.FinishedGoodsQty)
	mfg.TotalInvestment = mfg.TotalProductionCost.Add(rawMaterialCostExclVAT)

	if in.HasByProducts {
		for _, line := range in.ByProducts.Lines() {
			recovered := in.QuantityKg.Mul(pct(line.Rate))
			mfg.ByProductRevenue = mfg.ByProductRevenue.Add(recovered.Mul(line.Price))
		}
		mfg.ByProductRevenueExclVAT = exclVAT(mfg.ByProductRevenue, in.OutputVATRate)
		mfg.ByProductOutputVAT = mfg.ByProductRevenue.Sub(mfg.ByProductRevenueExclVAT)
	}

	// Net-of-byproduct production cost. Reported only; COGS uses the gross
	// figure because by-product revenue is recognized as revenue.
	mfg.NetProductionCost = mfg.TotalProductionCost.Sub(mfg.ByProductRevenue)
	return mfg
}

// calculateInterest fills the financing cost of carrying the goods, branching
// by acquisition type:
//
//   - manufacturing: simple interest on the total investment over the
//     storage period;
//   - domestic: simple interest on the VAT-inclusive purchase value;
//   - import: a three-part schedule — deposit tranche, remaining balance at
//     clearance, and the fronted import VAT until it can be reclaimed.
func calculateInterest(in normalizedInput, settings entity.PlanSettings, calc *entity.ItemCalculated, mfg *entity.ManufacturingCalculated) {
	dailyRate := pct(in.Costs.LoanInterestRatePerYear).Div(daysPerYear)

	switch in.Type {
	case entity.AcquisitionManufacturing:
		calc.ImportInterestCost = mfg.TotalInvestment.Mul(dailyRate).Mul(in.Costs.StorageDays)
	case entity.AcquisitionDomestic:
		purchaseValueInclVAT := in.DomesticPriceVNDPerKg.Mul(in.QuantityKg)
		calc.ImportInterestCost = purchaseValueInclVAT.Mul(dailyRate).Mul(in.Costs.StorageDays)
	case entity.AcquisitionImport:
		calc.LoanFirstTransferAmountVND = in.Costs.LoanFirstTransferUSD.Mul(settings.ExchangeRateImport)
		calc.LoanInterestFirstTransfer = calc.LoanFirstTransferAmountVND.Mul(dailyRate).Mul(in.Costs.LoanFirstTransferDays)
		calc.LoanSecondTransferAmount = maxZero(calc.ImportValueVND.Sub(calc.LoanFirstTransferAmountVND))
		calc.LoanInterestSecondTransfer = calc.LoanSecondTransferAmount.Mul(dailyRate).Mul(in.Costs.StorageDays)
		calc.VATLoanInterestCost = calc.ImportVAT.Mul(dailyRate).Mul(in.Costs.StorageDays)
		calc.ImportInterestCost = calc.LoanInterestFirstTransfer.
			Add(calc.LoanInterestSecondTransfer).
			Add(calc.VATLoanInterestCost)
	}
}

package plan

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizplan-api/internal/application/dto"
	"github.com/jhoicas/bizplan-api/internal/domain"
	"github.com/jhoicas/bizplan-api/internal/domain/entity"
)

// The engine accepts any structurally valid input and never rejects, so
// negative quantities, prices and rates have to be stopped here before
// they reach it and get persisted.

type namedField struct {
	name  string
	value *decimal.Decimal
}

func invalidField(name string) error {
	return fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, name)
}

func checkNonNegative(fields []namedField) error {
	for _, f := range fields {
		if f.value != nil && f.value.IsNegative() {
			return invalidField(f.name)
		}
	}
	return nil
}

func validateAddItem(in dto.AddItemRequest) error {
	return checkNonNegative([]namedField{
		{"quantityInKg", in.QuantityKg},
	})
}

func validateItemUpdate(in dto.UpdateItemRequest) error {
	if err := checkNonNegative([]namedField{
		{"quantityInKg", in.QuantityKg},
		{"priceUSDPerTon", in.PriceUSDPerTon},
		{"domesticPurchasePriceVNDPerKg", in.DomesticPriceVNDPerKg},
		{"sellingPriceVNDPerKg", in.SellingPriceVNDPerKg},
		{"outputVatRate", in.OutputVATRate},
	}); err != nil {
		return err
	}
	for _, out := range in.Outputs {
		if out.Quantity.IsNegative() || out.SellingPriceVND.IsNegative() {
			return invalidField("manufacturingOutputs")
		}
	}
	if in.MfgCosts != nil {
		if in.MfgCosts.BatchNorm.IsNegative() || in.MfgCosts.UnitCostSum().IsNegative() {
			return invalidField("manufacturingCosts")
		}
	}
	if in.ByProducts != nil {
		for _, line := range in.ByProducts.Lines() {
			if line.Rate.IsNegative() || line.Price.IsNegative() {
				return invalidField("manufacturingByProducts")
			}
		}
	}
	if in.Costs != nil {
		return validateCostUpdate(*in.Costs)
	}
	return nil
}

func validateCostUpdate(in dto.UpdateItemCosts) error {
	return checkNonNegative([]namedField{
		{"customsFee", in.CustomsFee},
		{"quarantineFee", in.QuarantineFee},
		{"containerRentalFee", in.ContainerRentalFee},
		{"portStorageFee", in.PortStorageFee},
		{"generalWarehouseCostRatePerKg", in.GeneralWarehouseRatePerKg},
		{"loanInterestRatePerYear", in.LoanInterestRatePerYear},
		{"loanFirstTransferUSD", in.LoanFirstTransferUSD},
		{"loanFirstTransferInterestDays", in.LoanFirstTransferDays},
		{"postClearanceStorageDays", in.StorageDays},
		{"postClearanceStorageRatePerKgDay", in.StorageRatePerKgDay},
		{"importVatRate", in.InputVATRate},
		{"purchasingServiceFeeInMillionsPerCont", in.PurchasingFeeMillionsPerCont},
		{"buyerDeliveryFee", in.BuyerDeliveryFee},
		{"otherInternationalCosts", in.OtherPurchaseCosts},
		{"otherSellingCosts", in.OtherSellingCosts},
	})
}

// validateSettings rejects negative rates and monthly totals. Other income
// and other expenses are entered as positive amounts too; the statement
// nets them itself.
func validateSettings(s entity.PlanSettings) error {
	return checkNonNegative([]namedField{
		{"exchangeRateImport", &s.ExchangeRateImport},
		{"exchangeRateTax", &s.ExchangeRateTax},
		{"salesSalaryRate", &s.SalesSalaryRate},
		{"totalMonthlyIndirectSalary", &s.MonthlyIndirectSalary},
		{"totalMonthlyRent", &s.MonthlyRent},
		{"totalMonthlyElectricity", &s.MonthlyElectricity},
		{"totalMonthlyWater", &s.MonthlyWater},
		{"totalMonthlyStationery", &s.MonthlyStationery},
		{"totalMonthlyDepreciation", &s.MonthlyDepreciation},
		{"totalMonthlyExternalServices", &s.MonthlyExternalServices},
		{"totalMonthlyOtherCashExpenses", &s.MonthlyOtherCashExpenses},
		{"totalMonthlyFinancialCost", &s.MonthlyFinancialCost},
		{"totalMonthlyOtherIncome", &s.MonthlyOtherIncome},
		{"totalMonthlyOtherExpenses", &s.MonthlyOtherExpenses},
		{"workingDaysPerMonth", &s.WorkingDaysPerMonth},
	})
}

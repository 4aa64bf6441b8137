package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizplan-api/internal/application/dto"
	"github.com/jhoicas/bizplan-api/internal/domain"
	"github.com/jhoicas/bizplan-api/internal/domain/entity"
	"github.com/jhoicas/bizplan-api/internal/domain/repository"
)

// UseCase builds the plan report: the B02-style income statement, the cost
// summary table, the per-segment comparison and the document renderings.
// Everything is read from the stored calculated state; the report never
// recomputes the engine.
type UseCase struct {
	planRepo repository.PlanRepository
	pdf      PDFGenerator
	excel    ExcelGenerator
}

// NewUseCase builds the report use case.
func NewUseCase(planRepo repository.PlanRepository, pdf PDFGenerator, excel ExcelGenerator) *UseCase {
	return &UseCase{planRepo: planRepo, pdf: pdf, excel: excel}
}

// Build assembles the report payload for a plan.
func (uc *UseCase) Build(ownerID, planID string) (*dto.PlanReport, error) {
	p, err := uc.loadOwned(ownerID, planID)
	if err != nil {
		return nil, err
	}
	return buildReport(p), nil
}

// RenderPDF builds the report and renders it as a PDF.
func (uc *UseCase) RenderPDF(ownerID, planID string) ([]byte, error) {
	p, err := uc.loadOwned(ownerID, planID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.Render(buildReport(p), p)
}

// RenderExcel builds the report and renders it as an XLSX workbook.
func (uc *UseCase) RenderExcel(ownerID, planID string) ([]byte, error) {
	p, err := uc.loadOwned(ownerID, planID)
	if err != nil {
		return nil, err
	}
	return uc.excel.Render(buildReport(p), p)
}

func (uc *UseCase) loadOwned(ownerID, planID string) (*entity.Plan, error) {
	p, err := uc.planRepo.GetByID(planID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func buildReport(p *entity.Plan) *dto.PlanReport {
	totals := SumItems(p.Items)
	costs := SumDetailedCosts(p.Items)

	var imp, dom, mfg []entity.PlanItem
	for _, it := range p.Items {
		switch it.Input.Type.Normalize() {
		case entity.AcquisitionDomestic:
			dom = append(dom, it)
		case entity.AcquisitionManufacturing:
			mfg = append(mfg, it)
		default:
			imp = append(imp, it)
		}
	}

	return &dto.PlanReport{
		PlanID:      p.ID,
		PlanName:    p.Name,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Statement:   BuildStatement(totals),
		Totals:      totals,
		Costs:       costs,
		Segments: dto.SegmentComparison{
			Company:       totals,
			Import:        SumItems(imp),
			Domestic:      SumItems(dom),
			Manufacturing: SumItems(mfg),
		},
	}
}

// SumItems reduces the calculated state of a set of items into plan
// totals. Items that were never calculated contribute nothing.
func SumItems(items []entity.PlanItem) dto.ReportTotals {
	var t dto.ReportTotals
	t.ItemCount = len(items)
	for _, it := range items {
		c := it.Calculated
		if c == nil {
			continue
		}
		t.ImportValueVND = t.ImportValueVND.Add(c.ImportValueVND)
		t.TotalLogisticsCost = t.TotalLogisticsCost.Add(c.TotalLogisticsCost)
		t.TotalSellingCost = t.TotalSellingCost.Add(c.TotalSellingCost)
		t.TotalGACost = t.TotalGACost.Add(c.TotalGACost)
		t.TotalFinancialCost = t.TotalFinancialCost.Add(c.TotalFinancialCost)
		t.TotalRevenue = t.TotalRevenue.Add(c.TotalRevenue)
		t.GrossProfit = t.GrossProfit.Add(c.GrossProfit)
		t.ProfitBeforeTax = t.ProfitBeforeTax.Add(c.ProfitBeforeTax)
		t.CorporateIncomeTax = t.CorporateIncomeTax.Add(c.CorporateIncomeTax)
		t.ImportVAT = t.ImportVAT.Add(c.ImportVAT)
		t.OutputVAT = t.OutputVAT.Add(c.OutputVAT)
		t.VATPayable = t.VATPayable.Add(c.VATPayable)
		t.NetProfit = t.NetProfit.Add(c.NetProfit)
		t.ImportInterestCost = t.ImportInterestCost.Add(c.ImportInterestCost)
		t.TotalCOGS = t.TotalCOGS.Add(c.TotalCOGS)
		t.TotalTaxPayable = t.TotalTaxPayable.Add(c.TotalTaxPayable)
		t.OtherExpenses = t.OtherExpenses.Add(c.OtherExpenses)
		t.OtherIncome = t.OtherIncome.Add(c.OtherIncome)
	}
	return t
}

// SumDetailedCosts builds the cost summary table: user-entered fees are
// summed as entered, derived costs come from the calculated state.
func SumDetailedCosts(items []entity.PlanItem) dto.DetailedCosts {
	var d dto.DetailedCosts
	totalQty := decimal.Zero
	weightedDays := decimal.Zero
	for _, it := range items {
		in := it.Input
		d.CustomsFee = d.CustomsFee.Add(in.Costs.CustomsFee)
		d.QuarantineFee = d.QuarantineFee.Add(in.Costs.QuarantineFee)
		d.ContainerRentalFee = d.ContainerRentalFee.Add(in.Costs.ContainerRentalFee)
		d.PortStorageFee = d.PortStorageFee.Add(in.Costs.PortStorageFee)
		d.BuyerDeliveryFee = d.BuyerDeliveryFee.Add(in.Costs.BuyerDeliveryFee)
		d.OtherSellingCosts = d.OtherSellingCosts.Add(in.Costs.OtherSellingCosts)

		totalQty = totalQty.Add(in.QuantityKg)
		weightedDays = weightedDays.Add(in.QuantityKg.Mul(in.Costs.StorageDays))

		c := it.Calculated
		if c == nil {
			continue
		}
		d.GeneralWarehouseCost = d.GeneralWarehouseCost.Add(c.GeneralWarehouseCost)
		d.ImportInterestCost = d.ImportInterestCost.Add(c.ImportInterestCost)
		d.PostClearanceStorageCost = d.PostClearanceStorageCost.Add(c.PostClearanceStorageCost)
		d.PurchasingServiceFee = d.PurchasingServiceFee.Add(c.PurchasingServiceFee)
		d.OtherPurchaseCost = d.OtherPurchaseCost.Add(c.OtherPurchaseCost)

		d.SalesStaffSalary = d.SalesStaffSalary.Add(c.SalesStaffSalary)

		d.IndirectStaffSalary = d.IndirectStaffSalary.Add(c.IndirectStaffSalary)
		d.Rent = d.Rent.Add(c.Rent)
		d.Electricity = d.Electricity.Add(c.Electricity)
		d.Water = d.Water.Add(c.Water)
		d.Stationery = d.Stationery.Add(c.Stationery)
		d.Depreciation = d.Depreciation.Add(c.Depreciation)
		d.ExternalServices = d.ExternalServices.Add(c.ExternalServices)
		d.OtherCashExpenses = d.OtherCashExpenses.Add(c.OtherCashExpenses)

		d.FinancialCost = d.FinancialCost.Add(c.FinancialCost)
		d.OtherExpenses = d.OtherExpenses.Add(c.OtherExpenses)
	}
	if totalQty.IsPositive() {
		d.AvgStorageDays = weightedDays.Div(totalQty).Round(0).IntPart()
	}
	return d
}

// BuildStatement lays the totals out as the standard result statement
// (rows 01..80). Revenue deductions, financial income and deferred tax
// have no source in the model and stay zero.
func BuildStatement(t dto.ReportTotals) dto.IncomeStatement {
	s := dto.IncomeStatement{
		GrossRevenue:       t.TotalRevenue,
		RevenueDeductions:  decimal.Zero,
		COGS:               t.TotalCOGS,
		PurchaseCost:       t.ImportValueVND,
		LogisticsCost:      t.TotalLogisticsCost,
		FinancialIncome:    decimal.Zero,
		FinancialCost:      t.TotalFinancialCost,
		SellingCost:        t.TotalSellingCost,
		GACost:             t.TotalGACost,
		OtherIncome:        t.OtherIncome,
		OtherCost:          t.OtherExpenses,
		CorporateIncomeTax: t.CorporateIncomeTax,
		DeferredCIT:        decimal.Zero,
		VATPayable:         t.VATPayable,
	}
	s.NetRevenue = s.GrossRevenue.Sub(s.RevenueDeductions)
	s.GrossProfit = s.NetRevenue.Sub(s.COGS)
	s.NetOperatingProfit = s.GrossProfit.
		Add(s.FinancialIncome.Sub(s.FinancialCost)).
		Sub(s.SellingCost).
		Sub(s.GACost)
	s.OtherProfit = s.OtherIncome.Sub(s.OtherCost)
	s.ProfitBeforeTax = s.NetOperatingProfit.Add(s.OtherProfit)
	s.NetProfit = s.ProfitBeforeTax.Sub(s.CorporateIncomeTax).Sub(s.DeferredCIT)
	s.TotalTaxToPay = s.CorporateIncomeTax.Add(s.VATPayable)
	return s
}

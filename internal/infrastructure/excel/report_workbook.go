// Package excel renders the business plan report as an XLSX workbook with
// three sheets: the result statement, the cost summary and the per-product
// detail. Amounts are written as floats with a VND number format so the
// sheet stays usable for further modeling.
package excel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/bizplan-api/internal/application/dto"
	"github.com/jhoicas/bizplan-api/internal/application/report"
	"github.com/jhoicas/bizplan-api/internal/domain/entity"
)

var _ report.ExcelGenerator = (*ReportWorkbookGenerator)(nil)

// ReportWorkbookGenerator implements report.ExcelGenerator using excelize.
type ReportWorkbookGenerator struct{}

// NewReportWorkbookGenerator builds the generator.
func NewReportWorkbookGenerator() *ReportWorkbookGenerator { return &ReportWorkbookGenerator{} }

const (
	sheetStatement = "Ket qua kinh doanh"
	sheetCosts     = "Tong hop chi phi"
	sheetItems     = "Chi tiet san pham"
)

// Render produces the XLSX bytes for a plan report.
func (g *ReportWorkbookGenerator) Render(rep *dto.PlanReport, plan *entity.Plan) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetStatement)
	if _, err := f.NewSheet(sheetCosts); err != nil {
		return nil, fmt.Errorf("excel: create sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetItems); err != nil {
		return nil, fmt.Errorf("excel: create sheet: %w", err)
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("#,##0")})
	if err != nil {
		return nil, fmt.Errorf("excel: number style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: bold style: %w", err)
	}

	w := &sheetWriter{f: f, money: moneyStyle, bold: boldStyle}

	if err := w.writeStatement(rep, plan); err != nil {
		return nil, err
	}
	if err := w.writeCosts(rep); err != nil {
		return nil, err
	}
	if err := w.writeItems(plan); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetWriter struct {
	f     *excelize.File
	money int
	bold  int
}

func (w *sheetWriter) writeStatement(rep *dto.PlanReport, plan *entity.Plan) error {
	s := rep.Statement
	rows := []struct {
		label  string
		code   string
		amount decimal.Decimal
		bold   bool
	}{
		{"1. Doanh thu bán hàng và cung cấp dịch vụ", "01", s.GrossRevenue, false},
		{"2. Các khoản giảm trừ doanh thu", "02", s.RevenueDeductions, false},
		{"3. Doanh thu thuần", "10", s.NetRevenue, false},
		{"4. Giá vốn hàng bán", "11", s.COGS, false},
		{"  - Giá mua hàng NCC (nguyên liệu)", "11a", s.PurchaseCost, false},
		{"  - Chi phí thông quan, sản xuất, lãi vay, lưu kho", "11b", s.LogisticsCost, false},
		{"5. Lợi nhuận gộp", "20", s.GrossProfit, true},
		{"6. Doanh thu hoạt động tài chính", "21", s.FinancialIncome, false},
		{"7. Chi phí tài chính", "22", s.FinancialCost, false},
		{"8. Chi phí bán hàng", "25", s.SellingCost, false},
		{"9. Chi phí quản lý doanh nghiệp", "26", s.GACost, false},
		{"10. Lợi nhuận thuần từ HĐKD", "30", s.NetOperatingProfit, true},
		{"11. Thu nhập khác", "31", s.OtherIncome, false},
		{"12. Chi phí khác", "32", s.OtherCost, false},
		{"13. Lợi nhuận khác", "40", s.OtherProfit, false},
		{"14. Tổng lợi nhuận kế toán trước thuế", "50", s.ProfitBeforeTax, true},
		{"15. Chi phí thuế TNDN hiện hành (20%)", "51", s.CorporateIncomeTax, false},
		{"16. Chi phí thuế TNDN hoãn lại", "52", s.DeferredCIT, false},
		{"17. Lợi nhuận sau thuế TNDN", "60", s.NetProfit, true},
		{"18. Thuế GTGT phải nộp", "70", s.VATPayable, false},
		{"19. Tổng thuế phải nộp", "80", s.TotalTaxToPay, true},
	}

	sheet := sheetStatement
	if err := w.f.SetCellValue(sheet, "A1", "PHƯƠNG ÁN KINH DOANH - "+plan.Name); err != nil {
		return err
	}
	_ = w.f.SetCellStyle(sheet, "A1", "A1", w.bold)
	_ = w.f.SetCellValue(sheet, "A2", "Đơn vị tính: VND")

	header := 4
	_ = w.f.SetCellValue(sheet, cell("A", header), "Chỉ tiêu")
	_ = w.f.SetCellValue(sheet, cell("B", header), "Mã số")
	_ = w.f.SetCellValue(sheet, cell("C", header), "Số tiền")
	_ = w.f.SetCellStyle(sheet, cell("A", header), cell("C", header), w.bold)

	for i, r := range rows {
		n := header + 1 + i
		_ = w.f.SetCellValue(sheet, cell("A", n), r.label)
		_ = w.f.SetCellValue(sheet, cell("B", n), r.code)
		_ = w.f.SetCellValue(sheet, cell("C", n), toFloat(r.amount))
		_ = w.f.SetCellStyle(sheet, cell("C", n), cell("C", n), w.money)
		if r.bold {
			_ = w.f.SetCellStyle(sheet, cell("A", n), cell("A", n), w.bold)
		}
	}
	_ = w.f.SetColWidth(sheet, "A", "A", 52)
	_ = w.f.SetColWidth(sheet, "C", "C", 18)
	return nil
}

func (w *sheetWriter) writeCosts(rep *dto.PlanReport) error {
	d := rep.Costs
	t := rep.Totals
	rows := []struct {
		num    string
		label  string
		amount decimal.Decimal
		bold   bool
	}{
		{"1", "Chi phí thông quan, sản xuất & vận hành", t.TotalLogisticsCost, true},
		{"1.1", "Phí hải quan", d.CustomsFee, false},
		{"1.2", "Phí kiểm dịch", d.QuarantineFee, false},
		{"1.3", "Phí thuê cont", d.ContainerRentalFee, false},
		{"1.4", "Phí lưu kho bãi cảng", d.PortStorageFee, false},
		{"1.5", "Chi phí chung nhập kho", d.GeneralWarehouseCost, false},
		{"1.6", "Lãi vay nhập hàng & sản xuất", d.ImportInterestCost, false},
		{"1.7", fmt.Sprintf("Phí lưu kho sau thông quan (~%d ngày)", d.AvgStorageDays), d.PostClearanceStorageCost, false},
		{"1.8", "Dịch vụ mua hàng", d.PurchasingServiceFee, false},
		{"1.9", "Phí vận chuyển đến bên mua", d.BuyerDeliveryFee, false},
		{"1.10", "Chi phí khác (gồm CP sản xuất trực tiếp)", d.OtherPurchaseCost, false},
		{"2", "Chi phí bán hàng", t.TotalSellingCost, true},
		{"2.1", "Lương nhân viên bán hàng", d.SalesStaffSalary, false},
		{"2.2", "Chi phí khác", d.OtherSellingCosts, false},
		{"3", "Chi phí quản lý doanh nghiệp", t.TotalGACost, true},
		{"3.1", "Lương nhân viên gián tiếp", d.IndirectStaffSalary, false},
		{"3.2", "Thuê nhà", d.Rent, false},
		{"3.3", "Điện", d.Electricity, false},
		{"3.4", "Nước", d.Water, false},
		{"3.5", "Văn phòng phẩm", d.Stationery, false},
		{"3.6", "Khấu hao TSCĐ", d.Depreciation, false},
		{"3.7", "Dịch vụ mua ngoài", d.ExternalServices, false},
		{"3.8", "Chi phí tiền khác", d.OtherCashExpenses, false},
		{"4", "Chi phí tài chính", t.TotalFinancialCost, true},
		{"5", "Chi phí khác (811)", d.OtherExpenses, true},
	}

	sheet := sheetCosts
	_ = w.f.SetCellValue(sheet, "A1", "BẢNG TỔNG HỢP CHI PHÍ")
	_ = w.f.SetCellStyle(sheet, "A1", "A1", w.bold)

	for i, r := range rows {
		n := 3 + i
		_ = w.f.SetCellValue(sheet, cell("A", n), r.num)
		_ = w.f.SetCellValue(sheet, cell("B", n), r.label)
		_ = w.f.SetCellValue(sheet, cell("C", n), toFloat(r.amount))
		_ = w.f.SetCellStyle(sheet, cell("C", n), cell("C", n), w.money)
		if r.bold {
			_ = w.f.SetCellStyle(sheet, cell("B", n), cell("B", n), w.bold)
		}
	}

	total := t.TotalLogisticsCost.Add(t.TotalSellingCost).Add(t.TotalGACost).
		Add(t.TotalFinancialCost).Add(d.OtherExpenses)
	n := 3 + len(rows)
	_ = w.f.SetCellValue(sheet, cell("B", n), "TỔNG CỘNG CHI PHÍ")
	_ = w.f.SetCellValue(sheet, cell("C", n), toFloat(total))
	_ = w.f.SetCellStyle(sheet, cell("B", n), cell("C", n), w.bold)
	_ = w.f.SetCellStyle(sheet, cell("C", n), cell("C", n), w.money)

	_ = w.f.SetColWidth(sheet, "B", "B", 48)
	_ = w.f.SetColWidth(sheet, "C", "C", 18)
	return nil
}

func (w *sheetWriter) writeItems(plan *entity.Plan) error {
	sheet := sheetItems
	headers := []string{
		"Mã SP", "Tên sản phẩm", "Loại", "Số lượng (kg)", "Doanh thu", "Giá vốn",
		"Lợi nhuận gộp", "CP bán hàng", "CP quản lý", "CP tài chính",
		"LN trước thuế", "Thuế TNDN", "Lãi ròng", "Thuế GTGT phải nộp", "Tổng thuế",
	}
	for i, h := range headers {
		c, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		_ = w.f.SetCellValue(sheet, c, h)
		_ = w.f.SetCellStyle(sheet, c, c, w.bold)
	}

	for rowIdx, item := range plan.Items {
		c := item.Calculated
		if c == nil {
			c = &entity.ItemCalculated{}
		}
		values := []any{
			item.Product.Code,
			item.Product.NameVI,
			string(item.Input.Type.Normalize()),
			toFloat(item.Input.QuantityKg),
			toFloat(c.TotalRevenue),
			toFloat(c.TotalCOGS),
			toFloat(c.GrossProfit),
			toFloat(c.TotalSellingCost),
			toFloat(c.TotalGACost),
			toFloat(c.TotalFinancialCost),
			toFloat(c.ProfitBeforeTax),
			toFloat(c.CorporateIncomeTax),
			toFloat(c.NetProfit),
			toFloat(c.VATPayable),
			toFloat(c.TotalTaxPayable),
		}
		for colIdx, v := range values {
			cn, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			_ = w.f.SetCellValue(sheet, cn, v)
			if colIdx >= 3 {
				_ = w.f.SetCellStyle(sheet, cn, cn, w.money)
			}
		}
	}
	_ = w.f.SetColWidth(sheet, "B", "B", 32)
	return nil
}

func cell(column string, row int) string {
	return fmt.Sprintf("%s%d", column, row)
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func strPtr(s string) *string { return &s }

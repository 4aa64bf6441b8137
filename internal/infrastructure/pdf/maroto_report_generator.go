// Package pdf renders the business plan report as an A4 document:
// the result statement (layout of form B02-DN), the cost summary table
// and the segment comparison, followed by one row per product line.
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizplan-api/internal/application/dto"
	"github.com/jhoicas/bizplan-api/internal/application/report"
	"github.com/jhoicas/bizplan-api/internal/domain/entity"
	"github.com/jhoicas/bizplan-api/pkg/vnfmt"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 58, Blue: 138}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implements report.PDFGenerator using Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator builds the generator.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Render produces the PDF bytes for a plan report.
func (g *MarotoReportGenerator) Render(rep *dto.PlanReport, plan *entity.Plan) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Phương án kinh doanh - "+plan.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(plan)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("KẾT QUẢ KINH DOANH"))
	m.AddRows(statementRows(rep.Statement)...)

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitle("TỔNG HỢP CHI PHÍ"))
	m.AddRows(costRows(rep)...)

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitle("SO SÁNH THEO MẢNG"))
	m.AddRows(segmentRows(rep.Segments)...)

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitle("CHI TIẾT THEO SẢN PHẨM"))
	m.AddRows(itemHeaderRow())
	for _, item := range plan.Items {
		m.AddRows(itemRow(item))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRows(plan *entity.Plan) []core.Row {
	return []core.Row{
		row.New(16).Add(
			col.New(8).Add(
				text.New("PHƯƠNG ÁN KINH DOANH", props.Text{
					Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
				}),
				text.New(plan.Name, props.Text{Size: 10, Top: 9}),
			),
			col.New(4).Add(
				text.New("Đơn vị tính: VND", props.Text{
					Size: 8, Align: align.Right, Color: colorGray, Top: 1,
				}),
				text.New("Ngày lập: "+time.Now().Format("02/01/2006"), props.Text{
					Size: 8, Align: align.Right, Color: colorGray, Top: 6,
				}),
				text.New(fmt.Sprintf("Tỷ giá NK: %s / Tính thuế: %s",
					vnfmt.VND(plan.Settings.ExchangeRateImport),
					vnfmt.VND(plan.Settings.ExchangeRateTax),
				), props.Text{Size: 8, Align: align.Right, Color: colorGray, Top: 11}),
			),
		),
	}
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
		})),
	)
}

// statementRow: one numbered line of the result statement.
func statementRow(label, code string, amount decimal.Decimal, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	return row.New(6).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 8, Style: style, Top: 1})),
		col.New(1).Add(text.New(code, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1})),
		col.New(3).Add(text.New(vnfmt.VND(amount), props.Text{Size: 8, Style: style, Align: align.Right, Top: 1})),
	)
}

func statementRows(s dto.IncomeStatement) []core.Row {
	return []core.Row{
		statementRow("1. Doanh thu bán hàng và cung cấp dịch vụ", "01", s.GrossRevenue, false),
		statementRow("2. Các khoản giảm trừ doanh thu", "02", s.RevenueDeductions, false),
		statementRow("3. Doanh thu thuần (10 = 01 - 02)", "10", s.NetRevenue, false),
		statementRow("4. Giá vốn hàng bán", "11", s.COGS, false),
		statementRow("   - Giá mua hàng NCC (nguyên liệu)", "11a", s.PurchaseCost, false),
		statementRow("   - Chi phí thông quan, sản xuất, lãi vay, lưu kho", "11b", s.LogisticsCost, false),
		statementRow("5. Lợi nhuận gộp (20 = 10 - 11)", "20", s.GrossProfit, true),
		statementRow("6. Doanh thu hoạt động tài chính", "21", s.FinancialIncome, false),
		statementRow("7. Chi phí tài chính", "22", s.FinancialCost, false),
		statementRow("8. Chi phí bán hàng", "25", s.SellingCost, false),
		statementRow("9. Chi phí quản lý doanh nghiệp", "26", s.GACost, false),
		statementRow("10. Lợi nhuận thuần từ HĐKD (30)", "30", s.NetOperatingProfit, true),
		statementRow("11. Thu nhập khác", "31", s.OtherIncome, false),
		statementRow("12. Chi phí khác", "32", s.OtherCost, false),
		statementRow("13. Lợi nhuận khác (40 = 31 - 32)", "40", s.OtherProfit, false),
		statementRow("14. Tổng lợi nhuận kế toán trước thuế (50)", "50", s.ProfitBeforeTax, true),
		statementRow("15. Chi phí thuế TNDN hiện hành (20%)", "51", s.CorporateIncomeTax, false),
		statementRow("16. Chi phí thuế TNDN hoãn lại", "52", s.DeferredCIT, false),
		statementRow("17. Lợi nhuận sau thuế TNDN (60)", "60", s.NetProfit, true),
		statementRow("18. Thuế GTGT phải nộp", "70", s.VATPayable, false),
		statementRow("19. Tổng thuế phải nộp (80 = 51 + 70)", "80", s.TotalTaxToPay, true),
	}
}

func costRows(rep *dto.PlanReport) []core.Row {
	d := rep.Costs
	t := rep.Totals
	rows := []core.Row{
		costRow("1", "Chi phí thông quan, sản xuất & vận hành", t.TotalLogisticsCost, true),
		costRow("1.1", "Phí hải quan", d.CustomsFee, false),
		costRow("1.2", "Phí kiểm dịch", d.QuarantineFee, false),
		costRow("1.3", "Phí thuê cont", d.ContainerRentalFee, false),
		costRow("1.4", "Phí lưu kho bãi cảng", d.PortStorageFee, false),
		costRow("1.5", "Chi phí chung nhập kho", d.GeneralWarehouseCost, false),
		costRow("1.6", "Lãi vay nhập hàng & sản xuất", d.ImportInterestCost, false),
		costRow("1.7", fmt.Sprintf("Phí lưu kho sau thông quan (~%d ngày)", d.AvgStorageDays), d.PostClearanceStorageCost, false),
		costRow("1.8", "Dịch vụ mua hàng", d.PurchasingServiceFee, false),
		costRow("1.9", "Phí vận chuyển đến bên mua", d.BuyerDeliveryFee, false),
		costRow("1.10", "Chi phí khác (gồm CP sản xuất trực tiếp)", d.OtherPurchaseCost, false),
		costRow("2", "Chi phí bán hàng", t.TotalSellingCost, true),
		costRow("2.1", "Lương nhân viên bán hàng", d.SalesStaffSalary, false),
		costRow("2.2", "Chi phí khác", d.OtherSellingCosts, false),
		costRow("3", "Chi phí quản lý doanh nghiệp", t.TotalGACost, true),
		costRow("3.1", "Lương nhân viên gián tiếp", d.IndirectStaffSalary, false),
		costRow("3.2", "Thuê nhà", d.Rent, false),
		costRow("3.3", "Điện", d.Electricity, false),
		costRow("3.4", "Nước", d.Water, false),
		costRow("3.5", "Văn phòng phẩm", d.Stationery, false),
		costRow("3.6", "Khấu hao TSCĐ", d.Depreciation, false),
		costRow("3.7", "Dịch vụ mua ngoài", d.ExternalServices, false),
		costRow("3.8", "Chi phí tiền khác", d.OtherCashExpenses, false),
		costRow("4", "Chi phí tài chính", t.TotalFinancialCost, true),
		costRow("5", "Chi phí khác (811)", d.OtherExpenses, true),
	}
	total := t.TotalLogisticsCost.Add(t.TotalSellingCost).Add(t.TotalGACost).
		Add(t.TotalFinancialCost).Add(d.OtherExpenses)
	rows = append(rows, costRow("", "TỔNG CỘNG CHI PHÍ", total, true))
	return rows
}

func costRow(num, label string, amount decimal.Decimal, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	return row.New(5).Add(
		col.New(1).Add(text.New(num, props.Text{Size: 8, Align: align.Center, Color: colorGray})),
		col.New(8).Add(text.New(label, props.Text{Size: 8, Style: style})),
		col.New(3).Add(text.New(vnfmt.VND(amount), props.Text{Size: 8, Style: style, Align: align.Right})),
	)
}

func segmentRows(s dto.SegmentComparison) []core.Row {
	header := row.New(6).Add(
		col.New(4).Add(text.New("Chỉ tiêu", props.Text{Size: 8, Style: fontstyle.Bold})),
		segCell("Toàn công ty", true),
		segCell(fmt.Sprintf("Nhập khẩu (%d SP)", s.Import.ItemCount), true),
		segCell(fmt.Sprintf("Nội địa (%d SP)", s.Domestic.ItemCount), true),
		segCell(fmt.Sprintf("Sản xuất (%d SP)", s.Manufacturing.ItemCount), true),
	)
	metric := func(label string, pick func(dto.ReportTotals) decimal.Decimal) core.Row {
		return row.New(5).Add(
			col.New(4).Add(text.New(label, props.Text{Size: 8})),
			segCell(vnfmt.VND(pick(s.Company)), false),
			segCell(vnfmt.VND(pick(s.Import)), false),
			segCell(vnfmt.VND(pick(s.Domestic)), false),
			segCell(vnfmt.VND(pick(s.Manufacturing)), false),
		)
	}
	return []core.Row{
		header,
		metric("Doanh thu thuần", func(t dto.ReportTotals) decimal.Decimal { return t.TotalRevenue }),
		metric("Giá vốn hàng bán", func(t dto.ReportTotals) decimal.Decimal { return t.TotalCOGS }),
		metric("Lợi nhuận gộp", func(t dto.ReportTotals) decimal.Decimal { return t.GrossProfit }),
		metric("Chi phí bán hàng", func(t dto.ReportTotals) decimal.Decimal { return t.TotalSellingCost }),
		metric("Chi phí quản lý", func(t dto.ReportTotals) decimal.Decimal { return t.TotalGACost }),
		metric("Lợi nhuận ròng", func(t dto.ReportTotals) decimal.Decimal { return t.NetProfit }),
	}
}

func segCell(s string, bold bool) core.Col {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	return col.New(2).Add(text.New(s, props.Text{Size: 7, Style: style, Align: align.Right}))
}

func itemHeaderRow() core.Row {
	return row.New(6).Add(
		col.New(4).Add(text.New("Sản phẩm", props.Text{Size: 8, Style: fontstyle.Bold})),
		col.New(2).Add(text.New("Doanh thu", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New("Giá vốn", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New("LN trước thuế", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New("Lãi ròng", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right})),
	)
}

func itemRow(item entity.PlanItem) core.Row {
	c := item.Calculated
	if c == nil {
		c = &entity.ItemCalculated{}
	}
	name := item.Product.Code
	if item.Product.NameVI != "" {
		name = fmt.Sprintf("%s - %s", item.Product.Code, item.Product.NameVI)
	}
	return row.New(5).Add(
		col.New(4).Add(text.New(name, props.Text{Size: 7})),
		col.New(2).Add(text.New(vnfmt.VND(c.TotalRevenue), props.Text{Size: 7, Align: align.Right})),
		col.New(2).Add(text.New(vnfmt.VND(c.TotalCOGS), props.Text{Size: 7, Align: align.Right})),
		col.New(2).Add(text.New(vnfmt.VND(c.ProfitBeforeTax), props.Text{Size: 7, Align: align.Right})),
		col.New(2).Add(text.New(vnfmt.VND(c.NetProfit), props.Text{Size: 7, Align: align.Right})),
	)
}

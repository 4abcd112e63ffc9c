package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/madik/projectdesk/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the pending-payments projection as a workbook with
// a summary block followed by one row per pending payment.
func (g *Generator) Generate(rows []model.PendingPayment) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Pending Payments"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	totalBalance := 0.0
	for _, row := range rows {
		totalBalance += row.BalanceAmount
	}

	set("A1", "Generated")
	set("B1", time.Now().Format("2006-01-02 15:04:05"))
	set("A2", "Pending payments")
	set("B2", len(rows))
	set("A3", "Outstanding balance")
	set("B3", formatAmount(totalBalance))

	tableRow := 5
	headers := []string{
		"Project ID",
		"Project Title",
		"Name",
		"Phone",
		"Total Fee",
		"Paid Amount",
		"Balance Amount",
		"Payment Date",
		"Payment Method",
		"Status",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, row := range rows {
		line := tableRow + 1 + i
		set(fmt.Sprintf("A%d", line), row.ProjectID)
		set(fmt.Sprintf("B%d", line), row.ProjectTitle)
		set(fmt.Sprintf("C%d", line), row.ContactName)
		set(fmt.Sprintf("D%d", line), row.ContactPhone)
		set(fmt.Sprintf("E%d", line), formatAmount(row.TotalFee))
		set(fmt.Sprintf("F%d", line), formatAmount(row.PaidAmount))
		set(fmt.Sprintf("G%d", line), formatAmount(row.BalanceAmount))
		set(fmt.Sprintf("H%d", line), formatDate(row.PaymentDate))
		set(fmt.Sprintf("I%d", line), row.PaymentMethod)
		set(fmt.Sprintf("J%d", line), string(row.PaymentStatus))
	}

	_ = file.SetColWidth(sheet, "A", "A", 12)
	_ = file.SetColWidth(sheet, "B", "B", 36)
	_ = file.SetColWidth(sheet, "C", "D", 28)
	_ = file.SetColWidth(sheet, "E", "G", 16)
	_ = file.SetColWidth(sheet, "H", "J", 16)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatDate(d *model.Date) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/madik/projectdesk/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() (*Generator, error) {
	return &Generator{fontName: "Helvetica"}, nil
}

// Generate renders a payment statement for a single project: header,
// counterparty block, guide block and a payments table with totals.
func (g *Generator) Generate(project model.Project) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Project Payment Statement", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Project #%d - %s", project.ID, project.Title), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("%s / %s / %s", project.ProjectType, project.Technology, project.Status), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	addPartyBlock(pdf, g.fontName, project)
	pdf.Ln(2)
	addGuideBlock(pdf, g.fontName, project.Guides)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Payments", "", 1, "L", false, 0, "")

	headers := []string{"Paid", "Balance", "Status", "Date", "Method"}
	colWidths := []float64{35, 35, 30, 35, 45}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	totalPaid := 0.0
	for _, payment := range project.Payments {
		totalPaid += payment.PaidAmount
		row := []string{
			formatAmount(payment.PaidAmount),
			formatAmount(payment.BalanceAmount),
			string(payment.PaymentStatus),
			formatDate(payment.PaymentDate),
			payment.PaymentMethod,
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total fee: %s", formatAmount(project.TotalFee)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total paid: %s", formatAmount(totalPaid)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Outstanding: %s", formatAmount(project.TotalFee-totalPaid)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addPartyBlock(pdf *gofpdf.Fpdf, fontName string, project model.Project) {
	pdf.SetFont(fontName, "B", 11)
	if project.ProjectType == model.ProjectTypeClient {
		pdf.CellFormat(0, 6, "Client", "", 1, "L", false, 0, "")
		pdf.SetFont(fontName, "", 10)
		client := project.Client
		if client == nil {
			pdf.MultiCell(0, 5, "-", "", "L", false)
			return
		}
		lines := []string{
			client.Name,
			fmt.Sprintf("Company: %s", safeValue(client.Company)),
			fmt.Sprintf("Phone: %s", safeValue(client.Phone)),
			fmt.Sprintf("Email: %s", safeValue(client.Email)),
		}
		for _, line := range lines {
			pdf.MultiCell(0, 5, line, "", "L", false)
		}
		return
	}

	pdf.CellFormat(0, 6, "Students", "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	for _, student := range project.Students {
		line := fmt.Sprintf("%s - %s, %s (%s)",
			safeValue(student.Name),
			safeValue(student.College),
			safeValue(student.Batch),
			safeValue(student.Phone),
		)
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func addGuideBlock(pdf *gofpdf.Fpdf, fontName string, guides []model.Guide) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, "Guide", "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	if len(guides) == 0 {
		pdf.MultiCell(0, 5, "-", "", "L", false)
		return
	}
	for _, guide := range guides {
		line := fmt.Sprintf("%s (%s)", safeValue(guide.Name), safeValue(guide.Phone))
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i < 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatDate(d *model.Date) string {
	if d == nil || d.IsZero() {
		return "-"
	}
	return d.Format("2006-01-02")
}

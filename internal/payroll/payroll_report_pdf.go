package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

func money(v int64) string {
	return moneyPrinter.Sprintf("%d", v)
}

func newReportPage(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
	return pdf
}

func reportHeaderRow(pdf *gofpdf.Fpdf, headers []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
}

// renderSummaryPDF lays out the live figures with the attendance columns
// a draft review needs.
func renderSummaryPDF(month string, figures monthlyFigures) ([]byte, error) {
	pdf := newReportPage(fmt.Sprintf("Payroll %s (draft)", month))

	headers := []string{"Employee", "Base", "Bonus", "Extra", "Fine", "Net", "Worked", "Required", "Delta"}
	widths := []float64{60, 28, 24, 24, 24, 30, 22, 24, 22}
	reportHeaderRow(pdf, headers, widths)

	for _, fr := range figures.rows {
		row := fr.row
		pdf.CellFormat(widths[0], 7, row.EmployeeName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, money(row.BaseSalary), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, money(row.Bonus), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, money(row.Extra), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, money(row.Fine), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, money(row.NetSalary), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 7, fmt.Sprintf("%.1f", row.WorkedHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[7], 7, fmt.Sprintf("%.1f", row.RequiredHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[8], 7, fmt.Sprintf("%+.1f", row.DeltaHours), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	totals := figures.totals
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(widths[0], 7, "Totals", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[1], 7, money(totals.BaseSalary), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[2], 7, money(totals.Bonus), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 7, money(totals.Extra), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 7, money(totals.Fine), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[5], 7, money(totals.NetSalary), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[6], 7, fmt.Sprintf("%.1f", totals.WorkedHours), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[7], 7, fmt.Sprintf("%.1f", totals.RequiredHours), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[8], 7, fmt.Sprintf("%+.1f", totals.DeltaHours), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderLedgerPDF lays out the frozen snapshots, note column included.
func renderLedgerPDF(month string, entries []PayrollLedger) ([]byte, error) {
	pdf := newReportPage(fmt.Sprintf("Payroll %s (final)", month))

	headers := []string{"Employee", "Base", "Bonus", "Extra", "Fine", "Net", "Note"}
	widths := []float64{60, 28, 24, 24, 24, 30, 85}
	reportHeaderRow(pdf, headers, widths)

	var totalBase, totalBonus, totalExtra, totalFine, totalNet int64
	for _, entry := range entries {
		pdf.CellFormat(widths[0], 7, entry.EmployeeName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, money(entry.BaseSalary), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, money(entry.Bonus), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, money(entry.Extra), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, money(entry.Fine), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, money(entry.NetSalary), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 7, entry.Note, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)

		totalBase += entry.BaseSalary
		totalBonus += entry.Bonus
		totalExtra += entry.Extra
		totalFine += entry.Fine
		totalNet += entry.NetSalary
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(widths[0], 7, "Totals", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[1], 7, money(totalBase), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[2], 7, money(totalBonus), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 7, money(totalExtra), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 7, money(totalFine), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[5], 7, money(totalNet), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[6], 7, "", "1", 0, "L", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

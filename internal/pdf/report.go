package pdf

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
)

// Generator renders buyer sets as printable reports.
type Generator interface {
	WriteLeadReport(w io.Writer, buyers []models.Buyer, generatedAt time.Time) error
}

type ReportGenerator struct{}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

func budgetCell(b models.Buyer) string {
	switch {
	case b.BudgetMin != nil && b.BudgetMax != nil:
		return fmt.Sprintf("%d - %d", *b.BudgetMin, *b.BudgetMax)
	case b.BudgetMin != nil:
		return fmt.Sprintf("from %d", *b.BudgetMin)
	case b.BudgetMax != nil:
		return fmt.Sprintf("up to %d", *b.BudgetMax)
	default:
		return "-"
	}
}

// WriteLeadReport renders the filtered buyer set as a landscape A4 table.
func (g *ReportGenerator) WriteLeadReport(w io.Writer, buyers []models.Buyer, generatedAt time.Time) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Buyer Leads Report", false)
	pdf.SetAuthor("Buyer Lead Intake", false)
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, "Buyer Leads Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s, %d lead(s)",
		generatedAt.Format("02 Jan 2006 15:04"), len(buyers)), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	headers := []string{"Name", "Phone", "City", "Type", "BHK", "Purpose", "Budget", "Timeline", "Source", "Status"}
	widths := []float64{48, 30, 26, 24, 14, 20, 38, 24, 26, 27}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, b := range buyers {
		bhk := "-"
		if b.BHK != nil {
			bhk = *b.BHK
		}
		cells := []string{
			b.FullName, b.Phone, b.City, b.PropertyType, bhk, b.Purpose,
			budgetCell(b), b.Timeline, b.Source, b.Status,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6.5, truncate(pdf, cell, widths[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(buyers) == 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 8, "No leads match the current filters.", "", 1, "C", false, 0, "")
	}

	return pdf.Output(w)
}

// truncate shortens a cell value to fit its column so long names do not
// bleed into the next cell.
func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	const pad = 2.0
	runes := []rune(s)
	for pdf.GetStringWidth(string(runes)) > width-pad && len(runes) > 1 {
		runes = runes[:len(runes)-1]
	}
	return strings.TrimSpace(string(runes))
}

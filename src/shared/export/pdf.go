// Package export renders engagement deliverables from stored reports.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/redcell-sec/reportbot/src/shared/store"
	"github.com/redcell-sec/reportbot/src/shared/types"
)

// Summary renders a PDF engagement summary: total volume, the per-category
// breakdown and the most recent reports.
func Summary(total int64, stats []store.CategoryStat, recent []types.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Report Engagement Summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Total reports: %d", total))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Breakdown by category")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(50, 7, "Category", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Count", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Avg severity", "1", 0, "R", false, 0, "")
	pdf.CellFormat(45, 7, "Last report", "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, s := range stats {
		pdf.CellFormat(50, 7, tr(s.Category), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", s.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.1f", s.AvgSeverity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 7, s.LastReportAt.Format("2006-01-02 15:04"), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Most recent reports")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range recent {
		line := fmt.Sprintf("#%d  %s  %s @%s  sev %d  %s",
			r.ID, r.Category, r.TargetType, r.TargetUsername, r.Severity,
			r.CreatedAt.Format("2006-01-02 15:04"))
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

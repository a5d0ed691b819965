package services

import (
	"bytes"
	"fmt"
	"time"

	"pnovbridge/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// RenderReportPDF lays the report out on A4 pages, one table per section.
func RenderReportPDF(r Report, generated time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("PNOV Report", false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	// core fonts are cp1252; names may carry accents
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PNOV REPORT")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated: "+generated.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	sectionTitle(pdf, tr, "Total PNOV by DSP")
	for _, c := range r.Carriers {
		row(pdf, tr, []float64{120, 40}, c.DSPName, fmt.Sprintf("%d", c.Count))
	}
	pdf.SetFont("Helvetica", "B", 11)
	row(pdf, tr, []float64{120, 40}, labelGrandTotal, fmt.Sprintf("%d", r.GrandTotal))
	pdf.Ln(6)

	sectionTitle(pdf, tr, headerRepeatMisses)
	if len(r.RepeatMisses) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 6, "None")
		pdf.Ln(6)
	}
	for _, d := range r.RepeatMisses {
		row(pdf, tr, []float64{40, 100, 20}, d.Route, d.DAName, fmt.Sprintf("%d", d.Count))
	}
	pdf.Ln(6)

	if r.HasHighValue {
		sectionTitle(pdf, tr, headerHighValue)
		for _, h := range r.HighValue {
			row(pdf, tr, []float64{25, 50, 40, 45, 25}, h.Route, h.DAName, h.DSPName, h.TrackingID, utils.FormatMoney(h.Cost))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("PNOV_REPORT_%s.pdf", utils.SafeFilenamePart(generated.Format("20060102")))
	return buf.Bytes(), filename, nil
}

func sectionTitle(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr(title))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
}

func row(pdf *gofpdf.Fpdf, tr func(string) string, widths []float64, cells ...string) {
	for i, v := range cells {
		pdf.CellFormat(widths[i], 6, tr(v), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(6)
}

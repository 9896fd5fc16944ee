package exporter

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"loadpv/internal/chart"
	"loadpv/pkg/contracts/domain"
)

// BuildPDF renders the series as a one-table A4 report. The core fonts
// cover Latin-1 only, so a village name outside it is left out.
func BuildPDF(meta domain.DatasetMeta, series domain.DaySeries) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	if title, ok := pdfText(tr, meta.Title); ok {
		pdf.Cell(0, 8, title)
	}
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	if village, ok := pdfText(tr, meta.Village); ok && village != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Village: %s", village))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Points: %d", len(series)))
	pdf.Ln(8)

	if series.Empty() {
		pdf.Cell(0, 6, "No data for this day.")
	} else {
		valueHeader := "Value"
		if unit, ok := pdfText(tr, meta.Unit); ok && unit != "" {
			valueHeader = fmt.Sprintf("Value (%s)", unit)
		}

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 6, "Time", "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 6, valueHeader, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, p := range series {
			pdf.CellFormat(40, 6, p.Time, "1", 0, "C", false, 0, "")
			pdf.CellFormat(60, 6, FormatValue(p.Value), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfText converts s to the core fonts' encoding. ok is false when s has
// runes the fonts cannot draw.
func pdfText(tr func(string) string, s string) (string, bool) {
	if !chart.Latin1(s) {
		return "", false
	}
	return tr(s), true
}

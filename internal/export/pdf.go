package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/goprospect/internal/scan"
)

// WritePDF renders the contact list as a simple landscape table, one row per
// contact in the shared column order. URLs are clickable. The layout is
// intentionally basic; the PDF is a handout, not the canonical export.
func WritePDF(w io.Writer, contacts []scan.Contact) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.AddPage()

	// Landscape A4 is 297mm wide; keep margins and divide the rest.
	widths := []float64{40, 45, 35, 35, 35, 25, 30, 32}

	pdf.SetFont("Helvetica", "B", 8)
	for i, h := range Header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, c := range contacts {
		row := Row(c)
		for i, cell := range row {
			link := ""
			// Column 0 is the display name; everything else but email is a URL.
			if i > 0 && i < len(row)-1 && cell != "" {
				link = cell
			}
			pdf.CellFormat(widths[i], 6, truncateCell(cell, 40), "1", 0, "L", false, 0, link)
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func truncateCell(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "..."
}

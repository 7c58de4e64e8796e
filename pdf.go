package main

import (
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth   = 210 // A4 width in mm
	pdfMargin      = 10  // Margin in mm
	pdfLineHeight  = 5   // Line height in mm
	pdfFontSize    = 9
	pdfCountColumn = 25 // Width of the right-aligned count column in mm
)

// generatePDF writes the sorted counts as a two-column table followed by the
// run summary.
func generatePDF(counts []LineCount, summary Summary, title, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", pdfFontSize+3)
	pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight+2, fmt.Sprintf("Line counts: %s", title), "", "L", false)
	pdf.Ln(pdfLineHeight / 2)

	pdf.SetFont("Helvetica", "B", pdfFontSize)
	pdf.CellFormat(pdfCountColumn, pdfLineHeight, "Lines", "B", 0, "R", false, 0, "")
	pdf.CellFormat(0, pdfLineHeight, "  File", "B", 1, "L", false, 0, "")

	pdf.SetFont("Courier", "", pdfFontSize)
	for _, c := range counts {
		if c.Err != nil {
			continue
		}
		pdf.CellFormat(pdfCountColumn, pdfLineHeight, strconv.Itoa(c.Lines), "", 0, "R", false, 0, "")
		pdf.CellFormat(0, pdfLineHeight, "  "+c.Name, "", 1, "L", false, 0, "")
	}

	for _, c := range counts {
		if c.Err == nil {
			continue
		}
		pdf.SetTextColor(255, 0, 0)
		pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, fmt.Sprintf("error: %s: %v", c.Name, c.Err), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.Ln(pdfLineHeight)
	pdf.SetFont("Helvetica", "B", pdfFontSize+1)
	pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, "--- Summary ---", "", "L", false)
	pdf.SetFont("Helvetica", "", pdfFontSize)
	summaryString := fmt.Sprintf("Total files: %d\nTotal lines: %d", summary.TotalFiles, summary.TotalLines)
	if summary.Failed > 0 {
		summaryString += fmt.Sprintf("\nFiles failed: %d", summary.Failed)
	}
	pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, summaryString, "", "L", false)

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	return nil
}

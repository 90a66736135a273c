package scraper

import (
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFWriter renders normalized page text into a PDF file on disk.
type PDFWriter struct{}

func NewPDFWriter() *PDFWriter {
	return &PDFWriter{}
}

// Write renders content into a PDF at path, silently overwriting any existing
// file. The caller is responsible for the target directory existing; a missing
// directory surfaces as an error here and aborts the scraper run.
func (w *PDFWriter) Write(content, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)

	// Normalized text is mostly ASCII already; the translator maps the rest
	// into the core font's codepage instead of producing garbage glyphs.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, paragraph := range strings.Split(content, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		pdf.MultiCell(0, 5, tr(paragraph), "", "L", false)
		pdf.Ln(3)
	}

	return pdf.OutputFileAndClose(path)
}

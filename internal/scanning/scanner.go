package scanning

import (
	"fmt"
	"strings"

	"github.com/ilbui/Agente-fatture-Ai/internal/extraction"
)

// Scanner defines the interface for turning an uploaded document into
// extracted invoice fields.
type Scanner interface {
	// Scan reads the document's text layer and runs field extraction.
	// "Field not found" is never an error: an invoice whose labels are
	// missing yields an all-absent result. Scan fails only when the
	// document itself cannot be read as text.
	Scan(data []byte, contentType string) (extraction.Result, error)
	// Close releases any resources held by the scanner.
	Close() error
}

// PDFScanner implements Scanner over the embedded PDF text layer. It
// performs no OCR: a scanned image without a text layer yields empty
// text and therefore an all-absent result.
type PDFScanner struct{}

// NewPDFScanner creates a new PDFScanner.
func NewPDFScanner() *PDFScanner {
	return &PDFScanner{}
}

// Scan extracts the text of every page and runs the heuristics on it.
func (p *PDFScanner) Scan(data []byte, contentType string) (extraction.Result, error) {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if mimeType != "" && mimeType != "application/pdf" {
		return extraction.Result{}, fmt.Errorf("unsupported content type %q: only PDF documents are supported", contentType)
	}

	text, err := ExtractText(data)
	if err != nil {
		return extraction.Result{}, err
	}
	return extraction.Extract(text), nil
}

// Close releases resources (none for the PDF scanner).
func (p *PDFScanner) Close() error {
	return nil
}

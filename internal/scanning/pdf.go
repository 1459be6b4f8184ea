package scanning

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ExtractText reads the embedded text layer of every page of a PDF and
// concatenates the pages in order. Page boundaries become line breaks
// so downstream matchers never see two pages merged into one line.
func ExtractText(pdfData []byte) (string, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	var text strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		pageText, err := doc.Text(page)
		if err != nil {
			return "", fmt.Errorf("reading text of page %d: %w", page+1, err)
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	return text.String(), nil
}

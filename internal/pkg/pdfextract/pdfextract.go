package pdfextract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Pages extracts plain text from the PDF, one entry per page in page order.
// Pages without extractable text (e.g. scanned images) yield empty strings;
// callers decide whether to skip them. Returns an error only when the bytes
// are not a readable PDF structure.
func Pages(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single undecodable page is treated like a page with no text.
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

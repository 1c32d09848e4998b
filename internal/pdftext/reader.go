// Package pdftext reads the text layer of invoice PDFs, one string per page.
package pdftext

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Reader extracts per-page text layers from PDF files on disk.
type Reader struct{}

// NewReader returns a Reader for local PDF files.
func NewReader() *Reader {
	return &Reader{}
}

// ReadPages returns the plain-text layer of every page of the document, in
// page order. Pages whose text cannot be decoded yield an empty string so
// the extraction rules can still scan the remaining pages.
func (r *Reader) ReadPages(path string) ([]string, error) {
	const op = "ReadPages"

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open %s: %w", op, path, err)
	}
	defer f.Close()

	pages := make([]string, 0, reader.NumPage())
	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	return pages, nil
}

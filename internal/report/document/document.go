// Package document turns raw PDF bytes into the two views the extraction
// pipelines consume: an ordered sequence of text lines and a sequence of
// geometric tables. A Document is scoped to a single analysis request and is
// immutable once built.
package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/unicode/norm"
)

// Document is the parsed view of one PDF report.
type Document struct {
	lines  []string
	tables []Table
	raw    string
	pages  int
}

// Parse validates and parses PDF bytes into both document views. It fails
// when the bytes are not a readable PDF or the document has zero pages;
// underlying library errors are wrapped.
func Parse(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	// Structural validation first, with relaxed mode so slightly malformed
	// vendor reports still pass.
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to determine page count: %w", err)
	}
	if ctx.PageCount == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	doc := &Document{pages: reader.NumPage()}
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		frags := collectFragments(page)
		if len(frags) == 0 {
			continue
		}
		rows := groupRows(frags)
		doc.lines = append(doc.lines, renderLines(rows)...)
		doc.tables = append(doc.tables, locateTables(rows, pageNum)...)
	}
	if len(doc.lines) == 0 {
		return nil, fmt.Errorf("no text content could be extracted")
	}
	doc.raw = strings.Join(doc.lines, "\n")
	return doc, nil
}

// Lines returns the linearized text lines in reading order. Original line
// breaks are preserved; no reflowing.
func (d *Document) Lines() []string {
	return d.lines
}

// Tables returns the geometric tables located in page order.
func (d *Document) Tables() []Table {
	return d.tables
}

// RawText returns the full linearized text, for audit on the result record.
func (d *Document) RawText() string {
	return d.raw
}

// PageCount returns the number of pages in the source document.
func (d *Document) PageCount() int {
	return d.pages
}

// collectFragments reads the positioned text runs of one page, cleaning each
// run (NFKC normalization, NBSP and ideographic-space replacement).
func collectFragments(page pdf.Page) []fragment {
	defer func() {
		// ledongthuc's content parser can panic on malformed content streams;
		// a page we cannot read contributes nothing.
		_ = recover()
	}()

	content := page.Content()
	frags := make([]fragment, 0, len(content.Text))
	for _, t := range content.Text {
		text := cleanText(t.S)
		if text == "" {
			continue
		}
		size := t.FontSize
		if size <= 0 {
			size = 12.0
		}
		frags = append(frags, fragment{
			text: text,
			x:    t.X,
			y:    t.Y,
			w:    t.W,
			size: size,
		})
	}
	return frags
}

func cleanText(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ReplaceAll(s, "\u3000", " ")
	return s
}

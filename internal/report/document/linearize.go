package document

import (
	"sort"
	"strings"
)

// fragment is one positioned text run from the PDF content stream.
type fragment struct {
	text string
	x    float64
	y    float64
	w    float64
	size float64
}

// row is a horizontal band of fragments sharing a baseline, sorted by X.
type row struct {
	y     float64
	frags []fragment
}

// Vertical tolerance for treating two fragments as sharing a baseline.
// Vendor reports use 8–12pt body text, so 3pt separates adjacent rows safely.
const rowTolerance = 3.0

// groupRows buckets fragments into baseline rows and orders them top-down,
// left-to-right. PDF Y grows upward, so reading order is descending Y.
func groupRows(frags []fragment) []row {
	sorted := make([]fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].y != sorted[j].y {
			return sorted[i].y > sorted[j].y
		}
		return sorted[i].x < sorted[j].x
	})

	var rows []row
	for _, f := range sorted {
		if n := len(rows); n > 0 && rows[n-1].y-f.y <= rowTolerance {
			rows[n-1].frags = append(rows[n-1].frags, f)
			continue
		}
		rows = append(rows, row{y: f.y, frags: []fragment{f}})
	}
	for i := range rows {
		sort.SliceStable(rows[i].frags, func(a, b int) bool {
			return rows[i].frags[a].x < rows[i].frags[b].x
		})
	}
	return rows
}

// renderLines flattens rows into text lines. Fragments within a row are
// concatenated directly when they abut and separated by a single space when a
// visible horizontal gap exists, so "label value unit" rows survive as one
// line without per-glyph spacing artifacts.
func renderLines(rows []row) []string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		var b strings.Builder
		var prevEnd float64
		for i, f := range r.frags {
			if i > 0 && f.x-prevEnd > wordGap(f.size) {
				b.WriteByte(' ')
			}
			b.WriteString(f.text)
			prevEnd = f.x + f.w
		}
		lines = append(lines, strings.TrimSpace(b.String()))
	}
	return lines
}

// wordGap is the horizontal distance treated as an intentional space between
// runs; scaled by font size with a floor for tiny fonts.
func wordGap(fontSize float64) float64 {
	gap := 0.25 * fontSize
	if gap < 1.0 {
		gap = 1.0
	}
	return gap
}

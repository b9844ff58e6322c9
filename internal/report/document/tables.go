package document

import (
	"sort"
	"strings"
)

// Cell is one table cell with its bounding geometry in page coordinates.
type Cell struct {
	Text string  `json:"text"`
	Col  int     `json:"col"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
}

// Table is a located geometric table: rows of column-aligned cells. Rows keep
// their top-down order; Col indexes are consistent across the whole table.
type Table struct {
	Page int      `json:"page"`
	Rows [][]Cell `json:"rows"`
}

// CellAt returns the cell at (row, col) and whether it exists. Sparse rows may
// skip columns.
func (t Table) CellAt(rowIdx, col int) (Cell, bool) {
	if rowIdx < 0 || rowIdx >= len(t.Rows) {
		return Cell{}, false
	}
	for _, c := range t.Rows[rowIdx] {
		if c.Col == col {
			return c, true
		}
	}
	return Cell{}, false
}

// Horizontal gap treated as a cell boundary within a row, relative to font
// size. Large enough that CJK label spacing does not split a cell.
func cellGap(fontSize float64) float64 {
	gap := 2.0 * fontSize
	if gap < 6.0 {
		gap = 6.0
	}
	return gap
}

// Column cluster tolerance: cells whose left edges are within this distance
// belong to the same column.
const columnTolerance = 5.0

// locateTables finds table blocks on one page: maximal runs of consecutive
// rows that each split into at least two cells, at least two rows long.
func locateTables(rows []row, page int) []Table {
	cellRows := make([][]Cell, len(rows))
	for i, r := range rows {
		cellRows[i] = splitCells(r)
	}

	var tables []Table
	start := -1
	flush := func(end int) {
		if start >= 0 && end-start >= 2 {
			tables = append(tables, buildTable(cellRows[start:end], page))
		}
		start = -1
	}
	for i, cells := range cellRows {
		if len(cells) >= 2 {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(cellRows))
	return tables
}

// splitCells cuts a row into cells at visible horizontal gaps.
func splitCells(r row) []Cell {
	var cells []Cell
	var b strings.Builder
	var cellX, prevEnd, maxSize float64
	emit := func() {
		text := strings.TrimSpace(b.String())
		if text != "" {
			cells = append(cells, Cell{
				Text: text,
				X:    cellX,
				Y:    r.y,
				W:    prevEnd - cellX,
				H:    maxSize,
			})
		}
		b.Reset()
		maxSize = 0
	}
	for i, f := range r.frags {
		if i > 0 && f.x-prevEnd > cellGap(f.size) {
			emit()
		}
		if b.Len() == 0 {
			cellX = f.x
		} else if f.x-prevEnd > wordGap(f.size) {
			b.WriteByte(' ')
		}
		b.WriteString(f.text)
		prevEnd = f.x + f.w
		if f.size > maxSize {
			maxSize = f.size
		}
	}
	emit()
	return cells
}

// buildTable assigns column indexes by clustering cell left edges across the
// block's rows.
func buildTable(cellRows [][]Cell, page int) Table {
	var edges []float64
	for _, cells := range cellRows {
		for _, c := range cells {
			edges = append(edges, c.X)
		}
	}
	sort.Float64s(edges)
	var cols []float64
	for _, x := range edges {
		if len(cols) == 0 || x-cols[len(cols)-1] > columnTolerance {
			cols = append(cols, x)
		}
	}

	t := Table{Page: page, Rows: make([][]Cell, len(cellRows))}
	for i, cells := range cellRows {
		out := make([]Cell, len(cells))
		for j, c := range cells {
			c.Col = nearestColumn(cols, c.X)
			out[j] = c
		}
		t.Rows[i] = out
	}
	return t
}

func nearestColumn(cols []float64, x float64) int {
	best := 0
	for i := range cols {
		if abs(x-cols[i]) < abs(x-cols[best]) {
			best = i
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

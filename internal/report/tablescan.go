package report

import (
	"regexp"
	"strings"

	"github.com/porelab/poresight/internal/report/document"
)

// Cell label variants for the table pipeline, matched on normalized cell text
// (lowercased, whitespace stripped) so multi-line and spaced headers compare
// equal. Order is priority order, mirroring the regex pipeline.
var tableFieldLabels = []struct {
	field  string
	labels []string
}{
	{FieldSpBET, []string{"单点bet比表面积", "singlepointsurfacearea"}},
	{FieldMpBET, []string{"多点bet比表面积", "betsurfacearea"}},
	{FieldTotalPoreVol, []string{"最高单点吸附总孔体积", "singlepointadsorptiontotalporevolume", "总孔体积"}},
	{FieldAvgPoreD, []string{"单点总孔吸附平均孔直径", "adsorptionaverageporewidth", "adsorptionaverageporediameter"}},
}

var tableMostProbableLabels = []string{"最可几孔径", "modalporewidth", "modalporediameter", "mostprobableporediameter"}

var tableMetadataLabels = []struct {
	set    func(*SampleInfo, string)
	labels []string
	date   bool
}{
	{set: func(s *SampleInfo, v string) { s.SampleName = v }, labels: []string{"样品名称", "样品编号", "samplename", "sampleid"}},
	{set: func(s *SampleInfo, v string) { s.InstrumentModel = v }, labels: []string{"仪器型号", "instrumentmodel", "instrument"}},
	{set: func(s *SampleInfo, v string) { s.Tester = v }, labels: []string{"测试人员", "测试员", "tester", "analyst"}},
	{set: func(s *SampleInfo, v string) { s.SubmissionDate = v }, labels: []string{"送样日期", "测试日期", "submissiondate", "testdate"}, date: true},
}

// NLDFT table column headers.
var (
	nldftAvgHeaders      = []string{"平均孔直径", "平均孔径", "averageporediameter", "averageporewidth"}
	nldftIntegralHeaders = []string{"孔积分体积", "poreintegralvolume", "integralporevolume"}
)

func normalizeCell(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

func cellHasLabel(cell string, labels []string) bool {
	norm := normalizeCell(cell)
	if norm == "" {
		return false
	}
	for _, label := range labels {
		if strings.Contains(norm, label) {
			return true
		}
	}
	return false
}

// scanTableFields resolves the scalar fields from located tables. For each
// field, labels are tried in priority order across all tables; the first
// header cell carrying the label yields the value from the canonical adjacent
// position. Position on the candidate is the global row index so the table
// pipeline shares the text pipeline's candidate shape.
func scanTableFields(tables []document.Table) map[string]FieldCandidate {
	resolved := make(map[string]FieldCandidate)
	for _, tf := range tableFieldLabels {
		for _, label := range tf.labels {
			cand, ok := findTableValue(tables, tf.field, []string{label})
			if ok {
				resolved[tf.field] = cand
				break
			}
		}
	}
	return resolved
}

// findTableValue locates the first header cell matching any label and reads
// the adjacent numeric value: same row, next column first, then same column,
// next row. The first orientation that yields a parseable number wins for
// that table.
func findTableValue(tables []document.Table, field string, labels []string) (FieldCandidate, bool) {
	rowBase := 0
	for _, t := range tables {
		for ri, cells := range t.Rows {
			for _, c := range cells {
				if !cellHasLabel(c.Text, labels) {
					continue
				}
				if v, ok := adjacentNumber(t, ri, c.Col); ok {
					return FieldCandidate{
						Field:    field,
						Value:    v,
						Position: rowBase + ri,
						Strategy: StrategyTable,
					}, true
				}
			}
		}
		rowBase += len(t.Rows)
	}
	return FieldCandidate{}, false
}

// adjacentNumber reads the value cell next to a header cell, trying the
// right-hand cells on the same row, then the cell below.
func adjacentNumber(t document.Table, rowIdx, col int) (string, bool) {
	for _, c := range t.Rows[rowIdx] {
		if c.Col <= col {
			continue
		}
		if v, ok := extractCellNumber(c.Text); ok {
			return v, true
		}
	}
	if below, ok := t.CellAt(rowIdx+1, col); ok {
		if v, ok := extractCellNumber(below.Text); ok {
			return v, true
		}
	}
	return "", false
}

// extractCellNumber pulls the first numeric token out of a value cell, which
// may carry a trailing unit.
func extractCellNumber(text string) (string, bool) {
	m := cellNumberRe.FindString(strings.ReplaceAll(text, ",", ""))
	if m == "" {
		return "", false
	}
	return parseNumber(m)
}

var cellNumberRe = regexp.MustCompile(`[+-]?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`)

// scanTableMetadata resolves sample metadata from the test-info table cells,
// reading the raw adjacent cell text rather than a number.
func scanTableMetadata(tables []document.Table) SampleInfo {
	var info SampleInfo
	for _, mf := range tableMetadataLabels {
		for _, label := range mf.labels {
			v, ok := findAdjacentText(tables, []string{label})
			if !ok {
				continue
			}
			if mf.date {
				v = normalizeDate(v)
			}
			mf.set(&info, v)
			break
		}
	}
	return info
}

func findAdjacentText(tables []document.Table, labels []string) (string, bool) {
	for _, t := range tables {
		for ri, cells := range t.Rows {
			for _, c := range cells {
				if !cellHasLabel(c.Text, labels) {
					continue
				}
				for _, right := range t.Rows[ri] {
					if right.Col > c.Col && strings.TrimSpace(right.Text) != "" {
						return strings.TrimSpace(right.Text), true
					}
				}
				if below, ok := t.CellAt(ri+1, c.Col); ok && strings.TrimSpace(below.Text) != "" {
					return strings.TrimSpace(below.Text), true
				}
			}
		}
	}
	return "", false
}

// scanTableSeries extracts the NLDFT series from the table whose header rows
// name both an average-diameter and an integral-volume column. Data rows that
// fail to parse as two floats are skipped. Returns the unnormalized series
// and the anchor: the global row index of the series table's first row, or -1.
func scanTableSeries(tables []document.Table) ([]NldftPoint, int) {
	rowBase := 0
	for _, t := range tables {
		avgCol, intCol, headerRows := nldftColumns(t)
		if avgCol >= 0 && intCol >= 0 {
			var series []NldftPoint
			for _, cells := range t.Rows[headerRows:] {
				avgCell, okA := cellInRow(cells, avgCol)
				intCell, okI := cellInRow(cells, intCol)
				if !okA || !okI {
					continue
				}
				avg, okA := parseFloat(avgCell.Text)
				integral, okI := parseFloat(intCell.Text)
				if !okA || !okI {
					continue
				}
				series = append(series, NldftPoint{AveragePoreDiameter: avg, PoreIntegralVolume: integral})
			}
			return series, rowBase
		}
		rowBase += len(t.Rows)
	}
	return nil, -1
}

// nldftColumns inspects the leading non-numeric rows of a table for the two
// NLDFT column headers. Header text for a column is the concatenation of that
// column's cells across the header rows (vendor software wraps headers).
func nldftColumns(t document.Table) (avgCol, intCol, headerRows int) {
	headerRows = 0
	for _, cells := range t.Rows {
		if rowIsNumeric(cells) {
			break
		}
		headerRows++
	}
	if headerRows == 0 {
		return -1, -1, 0
	}

	headers := make(map[int]string)
	for _, cells := range t.Rows[:headerRows] {
		for _, c := range cells {
			headers[c.Col] += normalizeCell(c.Text)
		}
	}

	avgCol, intCol = -1, -1
	for col, text := range headers {
		if avgCol < 0 && containsAny(text, nldftAvgHeaders) {
			avgCol = col
		}
		if intCol < 0 && containsAny(text, nldftIntegralHeaders) {
			intCol = col
		}
	}
	return avgCol, intCol, headerRows
}

func containsAny(text string, labels []string) bool {
	for _, label := range labels {
		if strings.Contains(text, label) {
			return true
		}
	}
	return false
}

// rowIsNumeric reports whether at least two cells parse as floats, marking the
// start of the table body. The first column is often a diameter range like
// "1.0-2.0" and is not itself numeric.
func rowIsNumeric(cells []document.Cell) bool {
	hits := 0
	for _, c := range cells {
		if _, ok := parseFloat(c.Text); ok {
			hits++
		}
	}
	return hits >= 2
}

func cellInRow(cells []document.Cell, col int) (document.Cell, bool) {
	for _, c := range cells {
		if c.Col == col {
			return c, true
		}
	}
	return document.Cell{}, false
}

// resolveTableMostProbable applies the nearest-to-anchor policy in row-count
// terms: every cell occurrence of the most-probable label is collected with
// its global row index and the one closest to the series table's first row
// wins, ties broken by earliest row. Without an anchor the first occurrence
// wins.
func resolveTableMostProbable(tables []document.Table, anchor int) (FieldCandidate, bool) {
	var occurrences []mpOccurrence
	rowBase := 0
	for _, t := range tables {
		for ri, cells := range t.Rows {
			for _, c := range cells {
				if !cellHasLabel(c.Text, tableMostProbableLabels) {
					continue
				}
				v, ok := adjacentNumber(t, ri, c.Col)
				if !ok {
					continue
				}
				occurrences = append(occurrences, mpOccurrence{position: rowBase + ri, value: v})
			}
		}
		rowBase += len(t.Rows)
	}
	if len(occurrences) == 0 {
		return FieldCandidate{}, false
	}

	best := occurrences[0]
	for _, occ := range occurrences[1:] {
		if anchor >= 0 {
			if distance(occ.position, anchor) < distance(best.position, anchor) {
				best = occ
			}
			continue
		}
		if occ.position < best.position {
			best = occ
		}
	}
	return FieldCandidate{
		Field:    FieldMostProbable,
		Value:    best.value,
		Position: best.position,
		Strategy: StrategyTable,
	}, true
}

package report

import (
	"regexp"
	"strings"
)

// Anchor labels marking the start of the NLDFT data block.
var seriesAnchorLabels = []string{
	"NLDFT详细数据",
	"详细数据NLDFT",
	"孔直径范围",
}

var (
	seriesFloatRe = regexp.MustCompile(`^[+-]?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?$`)
	seriesRangeRe = regexp.MustCompile(`^\d+(?:\.\d+)?\s*-\s*\d+(?:\.\d+)?$`)
)

// findSeriesAnchor returns the index of the line opening the NLDFT section,
// or -1 when the document has none. The anchor doubles as the reference point
// for most-probable-diameter disambiguation.
func findSeriesAnchor(lines []string) int {
	for i, line := range lines {
		for _, label := range seriesAnchorLabels {
			if strings.Contains(line, label) {
				return i
			}
		}
		if strings.Contains(line, "NLDFT") &&
			(strings.Contains(line, "详细数据") || strings.Contains(strings.ToLower(line), "detail")) {
			return i
		}
	}
	return -1
}

// scanSeries collects (average diameter, integral volume) pairs from the text
// following the anchor. Report cells arrive either one-per-line or joined on a
// row, so the walker runs over the flattened token stream: each record is a
// diameter-range token followed by three floats (average diameter, differential
// volume, integral volume), with an optional adsorption column that the next
// range token skips past naturally. Tokens that fail the expected shape are
// dropped, never fatal. The returned series is unnormalized.
func scanSeries(lines []string, anchor int) []NldftPoint {
	if anchor < 0 || anchor >= len(lines) {
		return nil
	}
	var tokens []string
	for _, line := range lines[anchor+1:] {
		tokens = append(tokens, strings.Fields(line)...)
	}

	var series []NldftPoint
	for i := 0; i < len(tokens); i++ {
		if !seriesRangeRe.MatchString(tokens[i]) {
			continue
		}
		if i+3 >= len(tokens) {
			break
		}
		avgTok, diffTok, intTok := tokens[i+1], tokens[i+2], tokens[i+3]
		if !seriesFloatRe.MatchString(avgTok) || !seriesFloatRe.MatchString(diffTok) || !seriesFloatRe.MatchString(intTok) {
			continue
		}
		avg, okA := parseFloat(avgTok)
		integral, okI := parseFloat(intTok)
		if !okA || !okI {
			continue
		}
		series = append(series, NldftPoint{AveragePoreDiameter: avg, PoreIntegralVolume: integral})
		i += 3
	}
	return series
}

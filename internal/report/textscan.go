package report

import (
	"regexp"
	"strconv"
	"strings"
)

// Numeric capture tolerant of thousands separators and scientific notation.
const numberPattern = `([+-]?\d[\d,]*\.?\d*(?:[eE][+-]?\d+)?)`

// Unit patterns accept the writing variants seen across instrument software
// versions: caret, superscript, and spaced forms.
const (
	unitM2G  = `m\s*(?:\^?\s*2|²)\s*/\s*g`
	unitCM3G = `(?:cm\s*(?:\^?\s*3|³)|ml)\s*/\s*g`
	unitNM   = `nm`
)

// labelValue builds a pattern matching "label: 12,345.6 (unit)" with optional
// colon, parentheses, and spacing.
func labelValue(label, unit string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + label + `[:：]?\s*` + numberPattern + `\s*\(?\s*` + unit + `\s*\)?`)
}

// fieldPatterns lists each scalar field's candidate patterns, most specific
// first. The first pattern in priority order that matches anywhere in the
// document wins; later, lower-priority matches never override.
var fieldPatterns = []struct {
	field    string
	patterns []*regexp.Regexp
}{
	{FieldSpBET, []*regexp.Regexp{
		labelValue(`单点BET比表面积`, unitM2G),
		labelValue(`单点\s*比表面积BET`, unitM2G),
		labelValue(`BET\s*surface\s*area\s*\(single\s*point\)`, unitM2G),
		labelValue(`single\s*point\s*surface\s*area`, unitM2G),
	}},
	{FieldMpBET, []*regexp.Regexp{
		labelValue(`多点BET比表面积`, unitM2G),
		labelValue(`多点\s*比表面积BET`, unitM2G),
		labelValue(`BET测试结果`, unitM2G),
		labelValue(`BET\s*surface\s*area`, unitM2G),
	}},
	{FieldTotalPoreVol, []*regexp.Regexp{
		labelValue(`最高单点吸附总孔体积`, unitCM3G),
		labelValue(`吸附累积孔体积`, unitCM3G),
		labelValue(`总孔体积`, unitCM3G),
		labelValue(`single\s*point\s*adsorption\s*total\s*pore\s*volume`, unitCM3G),
	}},
	{FieldAvgPoreD, []*regexp.Regexp{
		labelValue(`单点总孔吸附平均孔直径`, unitNM),
		labelValue(`adsorption\s*average\s*pore\s*(?:width|diameter)`, unitNM),
	}},
}

// scanFields resolves the scalar fields from linearized text. The surface-area
// report section maps its m²/g values positionally to the known label order
// and takes precedence for the BET fields; everything else resolves through
// the per-field pattern lists.
func scanFields(lines []string) map[string]FieldCandidate {
	resolved := make(map[string]FieldCandidate)

	for field, cand := range scanSurfaceAreaSection(lines) {
		resolved[field] = cand
	}

	for _, fp := range fieldPatterns {
		if _, ok := resolved[fp.field]; ok {
			continue
		}
		if cand, ok := matchFirst(lines, fp.field, fp.patterns); ok {
			resolved[fp.field] = cand
		}
	}
	return resolved
}

// matchFirst returns the highest-priority match for one field: patterns are
// tried in order, and for each pattern lines are scanned in document order.
// A matched label whose number fails to parse records nothing.
func matchFirst(lines []string, field string, patterns []*regexp.Regexp) (FieldCandidate, bool) {
	for _, re := range patterns {
		for i, line := range lines {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if value, ok := parseNumber(m[1]); ok {
				return FieldCandidate{Field: field, Value: value, Position: i, Strategy: StrategyText}, true
			}
		}
	}
	return FieldCandidate{}, false
}

// Surface-area section: values appear in a fixed label order, single-point
// BET first, multi-point BET second.
var (
	surfaceSectionStart = "比表面积分析报告"
	surfaceSectionEnds  = []string{"孔体积分析报告", "孔径分析报告", "比表面及孔径分析报告"}
	surfaceValueRe      = regexp.MustCompile(numberPattern + `\s*\(\s*` + unitM2G + `\s*\)`)
	surfaceOrder        = []string{FieldSpBET, FieldMpBET}
)

func scanSurfaceAreaSection(lines []string) map[string]FieldCandidate {
	start := -1
	for i, line := range lines {
		if strings.Contains(line, surfaceSectionStart) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	end := len(lines)
scan:
	for i := start + 1; i < len(lines); i++ {
		for _, label := range surfaceSectionEnds {
			if strings.Contains(lines[i], label) {
				end = i
				break scan
			}
		}
	}

	out := make(map[string]FieldCandidate)
	idx := 0
	for i := start; i < end && idx < len(surfaceOrder); i++ {
		for _, m := range surfaceValueRe.FindAllStringSubmatch(lines[i], -1) {
			value, ok := parseNumber(m[1])
			if !ok {
				continue
			}
			out[surfaceOrder[idx]] = FieldCandidate{
				Field:    surfaceOrder[idx],
				Value:    value,
				Position: i,
				Strategy: StrategyText,
			}
			idx++
			if idx == len(surfaceOrder) {
				break
			}
		}
	}
	return out
}

// parseNumber strips thousands separators and validates the numeric text,
// returning the normalized string form kept on the result record.
func parseNumber(s string) (string, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return "", false
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return "", false
	}
	return s, true
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	return v, err == nil
}

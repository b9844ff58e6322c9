package report

import "regexp"

// Most-probable pore diameter label variants, most specific first. The field
// is deliberately excluded from the one-shot scan in textscan.go: reports
// often print it once in a generic summary and again, authoritatively, next
// to the NLDFT table, so every occurrence is collected and disambiguated by
// proximity to the series anchor.
var mostProbablePatterns = []*regexp.Regexp{
	labelValue(`BJH最可几孔径`, unitNM),
	labelValue(`SF最可几孔径`, unitNM),
	labelValue(`最可几孔径`, unitNM),
	labelValue(`modal\s*pore\s*(?:width|diameter)`, unitNM),
	labelValue(`most\s*probable\s*pore\s*(?:diameter|width)`, unitNM),
}

// mpOccurrence is one textual occurrence of the most-probable label with a
// parseable value. priority is the matching pattern's index.
type mpOccurrence struct {
	position int
	priority int
	value    string
}

// resolveMostProbable selects the occurrence closest to the NLDFT anchor in
// line-count terms, ties broken by earliest document position. With no anchor
// the first occurrence in document order wins. Occurrences on the same line
// keep the most specific pattern's value.
func resolveMostProbable(lines []string, anchor int) (FieldCandidate, bool) {
	occurrences := collectMostProbable(lines)
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
		Strategy: StrategyText,
	}, true
}

// collectMostProbable gathers every occurrence, one per line, ordered by
// document position.
func collectMostProbable(lines []string) []mpOccurrence {
	var out []mpOccurrence
	for i, line := range lines {
		for prio, re := range mostProbablePatterns {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			value, ok := parseNumber(m[1])
			if !ok {
				continue
			}
			out = append(out, mpOccurrence{position: i, priority: prio, value: value})
			break
		}
	}
	return out
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

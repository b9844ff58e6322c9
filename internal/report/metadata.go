package report

import (
	"regexp"
	"strings"
	"time"
)

// Metadata label variants. Each field resolves independently; a label absent
// from the document leaves its field empty, never inferred.
var metadataPatterns = []struct {
	set  func(*SampleInfo, string)
	res  []*regexp.Regexp
	date bool
}{
	{
		set: func(s *SampleInfo, v string) { s.SampleName = v },
		res: []*regexp.Regexp{
			labelText(`样品名称`),
			labelText(`样品编号`),
			labelText(`sample\s*name`),
			labelText(`sample\s*id`),
		},
	},
	{
		set: func(s *SampleInfo, v string) { s.InstrumentModel = v },
		res: []*regexp.Regexp{
			labelText(`仪器型号`),
			labelText(`instrument\s*model`),
			labelText(`instrument`),
		},
	},
	{
		set: func(s *SampleInfo, v string) { s.Tester = v },
		res: []*regexp.Regexp{
			labelText(`测试人员`),
			labelText(`测试员`),
			labelText(`tester`),
			labelText(`analyst`),
		},
	},
	{
		set:  func(s *SampleInfo, v string) { s.SubmissionDate = v },
		date: true,
		res: []*regexp.Regexp{
			labelText(`送样日期`),
			labelText(`测试日期`),
			labelText(`submission\s*date`),
			labelText(`test\s*date`),
		},
	},
}

// labelText captures the remainder of the line after a label and optional
// colon.
func labelText(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + label + `\s*[:：]?\s*(\S.*)$`)
}

// scanMetadata resolves sample metadata from linearized text. Pattern priority
// and first-match-wins follow the scalar field extractor.
func scanMetadata(lines []string) SampleInfo {
	var info SampleInfo
	for _, mp := range metadataPatterns {
		for _, re := range mp.res {
			value, ok := firstCapture(lines, re)
			if !ok {
				continue
			}
			if mp.date {
				value = normalizeDate(value)
			}
			mp.set(&info, value)
			break
		}
	}
	return info
}

func firstCapture(lines []string, re *regexp.Regexp) (string, bool) {
	for _, line := range lines {
		if m := re.FindStringSubmatch(line); m != nil {
			v := strings.TrimSpace(m[1])
			if v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// Accepted date layouts, normalized to ISO form. Single-digit month and day
// are accepted by each layout.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"2006年1月2日",
}

var datePrefixRe = regexp.MustCompile(`\d{4}[-/.年]\d{1,2}[-/.月]\d{1,2}日?`)

// normalizeDate converts a recognizable date to "2006-01-02"; unparseable
// text is preserved verbatim rather than dropped.
func normalizeDate(value string) string {
	candidate := datePrefixRe.FindString(value)
	if candidate == "" {
		return value
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}

package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFields(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		field    string
		expected string
	}{
		{
			name:     "single point BET with superscript unit",
			lines:    []string{"单点BET比表面积: 313.27 (m²/g)"},
			field:    FieldSpBET,
			expected: "313.27",
		},
		{
			name:     "multi point BET with caret unit",
			lines:    []string{"多点BET比表面积 306.73 m^2/g"},
			field:    FieldMpBET,
			expected: "306.73",
		},
		{
			name:     "total pore volume with thousands separator",
			lines:    []string{"最高单点吸附总孔体积: 1,234.5 (cm³/g)"},
			field:    FieldTotalPoreVol,
			expected: "1234.5",
		},
		{
			name:     "total pore volume with ml unit variant",
			lines:    []string{"总孔体积: 0.2847 ml/g"},
			field:    FieldTotalPoreVol,
			expected: "0.2847",
		},
		{
			name:     "average pore diameter",
			lines:    []string{"单点总孔吸附平均孔直径: 3.07 (nm)"},
			field:    FieldAvgPoreD,
			expected: "3.07",
		},
		{
			name:     "english label",
			lines:    []string{"BET Surface Area: 289.4 m²/g"},
			field:    FieldMpBET,
			expected: "289.4",
		},
		{
			name:     "scientific notation value",
			lines:    []string{"总孔体积: 2.85e-1 cm^3/g"},
			field:    FieldTotalPoreVol,
			expected: "2.85e-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanFields(tt.lines)
			cand, ok := got[tt.field]
			require.True(t, ok, "field %s not resolved", tt.field)
			assert.Equal(t, tt.expected, cand.Value)
			assert.Equal(t, StrategyText, cand.Strategy)
		})
	}
}

func TestScanFieldsPatternPriorityBeatsDocumentOrder(t *testing.T) {
	// The generic English label appears first, but the specific Chinese label
	// is higher priority and must win even though it appears later.
	lines := []string{
		"BET surface area: 100.0 m²/g",
		"",
		"多点BET比表面积: 200.0 (m²/g)",
	}

	got := scanFields(lines)
	cand, ok := got[FieldMpBET]
	require.True(t, ok)
	assert.Equal(t, "200.0", cand.Value)
	assert.Equal(t, 2, cand.Position)
}

func TestScanFieldsFirstOccurrenceWinsWithinPattern(t *testing.T) {
	lines := []string{
		"多点BET比表面积: 200.0 (m²/g)",
		"多点BET比表面积: 300.0 (m²/g)",
	}

	got := scanFields(lines)
	cand, ok := got[FieldMpBET]
	require.True(t, ok)
	assert.Equal(t, "200.0", cand.Value)
	assert.Equal(t, 0, cand.Position)
}

func TestScanFieldsMissingLabelsStayAbsent(t *testing.T) {
	got := scanFields([]string{"some unrelated report text", "氮气吸附等温线"})
	assert.Empty(t, got)
}

func TestScanSurfaceAreaSection(t *testing.T) {
	lines := []string{
		"比表面积分析报告",
		"313.27 (m²/g) 306.73 (m²/g)",
		"孔体积分析报告",
		"另一处 550.0 (m²/g)",
	}

	got := scanFields(lines)

	sp, ok := got[FieldSpBET]
	require.True(t, ok)
	assert.Equal(t, "313.27", sp.Value)

	mp, ok := got[FieldMpBET]
	require.True(t, ok)
	assert.Equal(t, "306.73", mp.Value)
}

func TestScanSurfaceAreaSectionValuesOnSeparateLines(t *testing.T) {
	lines := []string{
		"比表面积分析报告",
		"单点比表面积BET 313.27 (m²/g)",
		"多点比表面积BET 306.73 (m²/g)",
		"孔径分析报告",
	}

	got := scanFields(lines)
	assert.Equal(t, "313.27", got[FieldSpBET].Value)
	assert.Equal(t, "306.73", got[FieldMpBET].Value)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"313.27", "313.27", true},
		{"1,234.5", "1234.5", true},
		{"  42 ", "42", true},
		{"2.85e-1", "2.85e-1", true},
		{"-0.5", "-0.5", true},
		{"", "", false},
		{"abc", "", false},
		{",", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseNumber(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

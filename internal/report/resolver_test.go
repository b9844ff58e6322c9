package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linesWith(entries map[int]string, length int) []string {
	lines := make([]string, length)
	for i := range lines {
		lines[i] = "报告正文"
	}
	for i, s := range entries {
		lines[i] = s
	}
	return lines
}

func TestResolveMostProbableNearestToAnchor(t *testing.T) {
	// A summary page prints the value far from the data block; the occurrence
	// printed next to the NLDFT table is authoritative.
	lines := linesWith(map[int]string{
		2:  "最可几孔径: 5.0 nm",
		50: "NLDFT详细数据",
		53: "BJH最可几孔径: 7.2 nm",
	}, 60)

	cand, ok := resolveMostProbable(lines, 50)
	require.True(t, ok)
	assert.Equal(t, "7.2", cand.Value)
	assert.Equal(t, 53, cand.Position)
	assert.Equal(t, StrategyText, cand.Strategy)
}

func TestResolveMostProbableTieBreaksEarliest(t *testing.T) {
	lines := linesWith(map[int]string{
		8:  "最可几孔径: 5.0 nm",
		12: "最可几孔径: 7.0 nm",
	}, 20)

	cand, ok := resolveMostProbable(lines, 10)
	require.True(t, ok)
	assert.Equal(t, "5.0", cand.Value)
	assert.Equal(t, 8, cand.Position)
}

func TestResolveMostProbableNoAnchorFirstWins(t *testing.T) {
	lines := linesWith(map[int]string{
		3:  "最可几孔径: 5.0 nm",
		15: "最可几孔径: 7.0 nm",
	}, 20)

	cand, ok := resolveMostProbable(lines, -1)
	require.True(t, ok)
	assert.Equal(t, "5.0", cand.Value)
}

func TestResolveMostProbableEnglishLabel(t *testing.T) {
	lines := []string{"Modal pore width: 3.41 nm"}

	cand, ok := resolveMostProbable(lines, -1)
	require.True(t, ok)
	assert.Equal(t, "3.41", cand.Value)
}

func TestResolveMostProbableNoOccurrence(t *testing.T) {
	_, ok := resolveMostProbable([]string{"比表面积分析报告"}, 0)
	assert.False(t, ok)
}

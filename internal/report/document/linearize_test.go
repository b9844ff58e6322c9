package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRows(t *testing.T) {
	frags := []fragment{
		{text: "value", x: 120, y: 700, w: 30, size: 10},
		{text: "label", x: 20, y: 701.5, w: 30, size: 10},
		{text: "second", x: 20, y: 680, w: 40, size: 10},
	}

	rows := groupRows(frags)
	require.Len(t, rows, 2)
	// Same baseline within tolerance, ordered left to right.
	require.Len(t, rows[0].frags, 2)
	assert.Equal(t, "label", rows[0].frags[0].text)
	assert.Equal(t, "value", rows[0].frags[1].text)
	// Lower on the page comes later.
	assert.Equal(t, "second", rows[1].frags[0].text)
}

func TestGroupRowsEmpty(t *testing.T) {
	assert.Empty(t, groupRows(nil))
}

func TestRenderLines(t *testing.T) {
	rows := groupRows([]fragment{
		{text: "多点BET比表面积", x: 20, y: 700, w: 80, size: 10},
		{text: "306.73", x: 140, y: 700, w: 30, size: 10},
		{text: "(m²/g)", x: 172, y: 700, w: 28, size: 10},
	})

	lines := renderLines(rows)
	require.Len(t, lines, 1)
	// Wide gap becomes a space, abutting runs concatenate directly.
	assert.Equal(t, "多点BET比表面积 306.73(m²/g)", lines[0])
}

func TestRenderLinesPerGlyphRuns(t *testing.T) {
	// Some generators emit one run per glyph; no spaces should be injected.
	rows := groupRows([]fragment{
		{text: "3", x: 20, y: 700, w: 5, size: 10},
		{text: "0", x: 25, y: 700, w: 5, size: 10},
		{text: "6", x: 30, y: 700, w: 5, size: 10},
	})

	lines := renderLines(rows)
	require.Len(t, lines, 1)
	assert.Equal(t, "306", lines[0])
}

func TestWordGapFloor(t *testing.T) {
	assert.Equal(t, 1.0, wordGap(2))
	assert.Equal(t, 3.0, wordGap(12))
}

package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pts(pairs ...[2]float64) []NldftPoint {
	out := make([]NldftPoint, len(pairs))
	for i, p := range pairs {
		out[i] = NldftPoint{AveragePoreDiameter: p[0], PoreIntegralVolume: p[1]}
	}
	return out
}

func TestNormalizeSeries(t *testing.T) {
	tests := []struct {
		name     string
		input    []NldftPoint
		expected []NldftPoint
	}{
		{
			name:     "empty series",
			input:    nil,
			expected: nil,
		},
		{
			name:     "already sorted",
			input:    pts([2]float64{1, 0}, [2]float64{2, 1}),
			expected: pts([2]float64{1, 0}, [2]float64{2, 1}),
		},
		{
			name:     "unsorted input is sorted by diameter",
			input:    pts([2]float64{4, 3}, [2]float64{1, 0}, [2]float64{2, 1}),
			expected: pts([2]float64{1, 0}, [2]float64{2, 1}, [2]float64{4, 3}),
		},
		{
			name:     "duplicate diameter keeps later volume",
			input:    pts([2]float64{1, 0}, [2]float64{2, 1}, [2]float64{2, 1.5}, [2]float64{4, 3}),
			expected: pts([2]float64{1, 0}, [2]float64{2, 1.5}, [2]float64{4, 3}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSeries(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeSeriesDoesNotMutateInput(t *testing.T) {
	input := pts([2]float64{4, 3}, [2]float64{1, 0})
	_ = NormalizeSeries(input)
	assert.Equal(t, pts([2]float64{4, 3}, [2]float64{1, 0}), input)
}

func TestDiameterAtFraction(t *testing.T) {
	series := pts([2]float64{1, 0}, [2]float64{2, 1}, [2]float64{4, 3})

	tests := []struct {
		name     string
		fraction float64
		expected float64
	}{
		{"fraction zero is the first diameter", 0.0, 1.0},
		{"fraction one is the last diameter", 1.0, 4.0},
		{"d10 interpolates on the first segment", 0.10, 1.3},
		{"d90 interpolates on the second segment", 0.90, 3.7},
		{"exact knot fraction", 1.0 / 3.0, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiameterAtFraction(series, tt.fraction)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestVolumeAtDiameter(t *testing.T) {
	series := pts([2]float64{1, 0}, [2]float64{2, 1}, [2]float64{4, 3})

	tests := []struct {
		name     string
		diameter float64
		expected float64
	}{
		{"below the series clamps to first volume", 0.5, 0.0},
		{"above the series clamps to last volume", 500.0, 3.0},
		{"exact diameter", 2.0, 1.0},
		{"midpoint of second segment", 3.0, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VolumeAtDiameter(series, tt.diameter)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestComputeDerived(t *testing.T) {
	series := pts([2]float64{1, 0}, [2]float64{2, 1}, [2]float64{4, 3})
	ref := 2.0

	d, err := ComputeDerived(series, &ref)
	require.NoError(t, err)

	require.NotNil(t, d.D10)
	require.NotNil(t, d.D90)
	require.NotNil(t, d.D90D10Ratio)
	require.NotNil(t, d.PoreVolumeA)
	require.NotNil(t, d.LessThan05D)
	require.NotNil(t, d.GreaterThan15D)

	assert.InDelta(t, 1.3, *d.D10, 1e-9)
	assert.InDelta(t, 3.7, *d.D90, 1e-9)
	assert.InDelta(t, 3.7/1.3, *d.D90D10Ratio, 1e-9)
	assert.InDelta(t, 3.0, *d.PoreVolumeA, 1e-9)
	// 0.5×2.0=1.0nm sits at the first knot, so nothing lies below it.
	assert.InDelta(t, 0.0, *d.LessThan05D, 1e-9)
	// 1.5×2.0=3.0nm holds 2 of 3 cm³/g, leaving one third above.
	assert.InDelta(t, 100.0/3.0, *d.GreaterThan15D, 1e-9)
}

func TestComputeDerivedOrderInvariant(t *testing.T) {
	sorted := NormalizeSeries(pts([2]float64{1, 0}, [2]float64{2, 1}, [2]float64{4, 3}))
	shuffled := NormalizeSeries(pts([2]float64{4, 3}, [2]float64{1, 0}, [2]float64{2, 1}))

	a, err := ComputeDerived(sorted, nil)
	require.NoError(t, err)
	b, err := ComputeDerived(shuffled, nil)
	require.NoError(t, err)

	assert.Equal(t, *a.D10, *b.D10)
	assert.Equal(t, *a.D90, *b.D90)
}

func TestComputeDerivedWithoutReference(t *testing.T) {
	series := pts([2]float64{1, 0}, [2]float64{2, 1}, [2]float64{4, 3})

	d, err := ComputeDerived(series, nil)
	require.NoError(t, err)

	assert.NotNil(t, d.D10)
	assert.NotNil(t, d.D90)
	assert.Nil(t, d.LessThan05D)
	assert.Nil(t, d.GreaterThan15D)
}

func TestComputeDerivedMonotonicity(t *testing.T) {
	series := pts(
		[2]float64{1.2, 0.001},
		[2]float64{1.8, 0.015},
		[2]float64{2.6, 0.094},
		[2]float64{3.9, 0.21},
		[2]float64{7.4, 0.33},
		[2]float64{15.8, 0.41},
	)

	d, err := ComputeDerived(series, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, *d.D10, *d.D90)
	assert.GreaterOrEqual(t, *d.D10, series[0].AveragePoreDiameter)
	assert.LessOrEqual(t, *d.D90, series[len(series)-1].AveragePoreDiameter)
}

func TestComputeDerivedInsufficientSeries(t *testing.T) {
	tests := []struct {
		name   string
		series []NldftPoint
	}{
		{"empty series", nil},
		{"single point", pts([2]float64{1, 0.5})},
		{"zero total volume", pts([2]float64{1, 0}, [2]float64{2, 0})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ComputeDerived(tt.series, nil)
			require.Error(t, err)
			assert.True(t, IsKind(err, KindInsufficientSeries))
			assert.Nil(t, d.D10)
			assert.Nil(t, d.D90)
			assert.Nil(t, d.D90D10Ratio)
			assert.Nil(t, d.PoreVolumeA)
		})
	}
}

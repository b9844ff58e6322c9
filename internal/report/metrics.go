package report

import (
	"math"
	"sort"
)

const (
	d10Fraction = 0.10
	d90Fraction = 0.90

	// Reference-diameter multiples for the threshold volume fractions.
	lowerThresholdRatio = 0.5
	upperThresholdRatio = 1.5

	// Analytical window for pore volume A. The reference reports never exceed
	// 500 nm, so with endpoint clamping the integral equals the last-minus-
	// first cumulative volume.
	poreVolumeWindowMin = 0.0
	poreVolumeWindowMax = 500.0
)

// Derived holds the computed metrics. Nil pointers mean the metric could not
// be computed (insufficient series or missing reference input); they are
// carried into the result as explicitly absent, never zero-defaulted.
type Derived struct {
	D10            *float64
	D90            *float64
	D90D10Ratio    *float64
	PoreVolumeA    *float64
	LessThan05D    *float64
	GreaterThan15D *float64
}

// NormalizeSeries sorts the series ascending by diameter and collapses exact
// duplicate diameters, keeping the later-encountered row's volume. Reports
// occasionally repeat a boundary row across a page break.
func NormalizeSeries(series []NldftPoint) []NldftPoint {
	if len(series) == 0 {
		return nil
	}
	out := make([]NldftPoint, len(series))
	copy(out, series)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AveragePoreDiameter < out[j].AveragePoreDiameter
	})
	dedup := out[:1]
	for _, p := range out[1:] {
		last := &dedup[len(dedup)-1]
		if p.AveragePoreDiameter == last.AveragePoreDiameter {
			last.PoreIntegralVolume = p.PoreIntegralVolume
			continue
		}
		dedup = append(dedup, p)
	}
	return dedup
}

// ComputeDerived derives all metrics from a normalized series. refDiameter is
// the single-point average pore diameter used for the 0.5×/1.5× thresholds;
// pass nil when the field was not extracted. A series with fewer than two
// points yields an all-absent Derived and an insufficient-series error so
// callers can distinguish the downgrade from a computed zero.
func ComputeDerived(series []NldftPoint, refDiameter *float64) (Derived, error) {
	if len(series) < 2 {
		return Derived{}, NewError(KindInsufficientSeries,
			"NLDFT series has fewer than 2 points", nil)
	}

	total := series[len(series)-1].PoreIntegralVolume
	if total <= 0 {
		return Derived{}, NewError(KindInsufficientSeries,
			"NLDFT series has no cumulative volume", nil)
	}

	var d Derived

	d10 := DiameterAtFraction(series, d10Fraction)
	d90 := DiameterAtFraction(series, d90Fraction)
	d.D10 = &d10
	d.D90 = &d90
	if d10 != 0 {
		ratio := d90 / d10
		d.D90D10Ratio = &ratio
	}

	volA := VolumeAtDiameter(series, poreVolumeWindowMax) - VolumeAtDiameter(series, poreVolumeWindowMin)
	d.PoreVolumeA = &volA

	if refDiameter != nil {
		lower := VolumeAtDiameter(series, *refDiameter*lowerThresholdRatio)
		upper := VolumeAtDiameter(series, *refDiameter*upperThresholdRatio)
		less := lower / total * 100.0
		greater := (total - upper) / total * 100.0
		d.LessThan05D = &less
		d.GreaterThan15D = &greater
	}

	return d, nil
}

// DiameterAtFraction interpolates the diameter at the given cumulative volume
// fraction. Fractions are the series volumes normalized by the final (maximum)
// cumulative volume; values outside the curve clamp to the endpoint diameters.
// The series must be normalized and hold at least two points.
func DiameterAtFraction(series []NldftPoint, fraction float64) float64 {
	total := series[len(series)-1].PoreIntegralVolume
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, p := range series {
		xs[i] = p.PoreIntegralVolume / total
		ys[i] = p.AveragePoreDiameter
	}
	return lerpAt(xs, ys, fraction)
}

// VolumeAtDiameter interpolates the cumulative integral volume at the given
// diameter, clamped at the series boundaries.
func VolumeAtDiameter(series []NldftPoint, diameter float64) float64 {
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, p := range series {
		xs[i] = p.AveragePoreDiameter
		ys[i] = p.PoreIntegralVolume
	}
	return lerpAt(xs, ys, diameter)
}

// lerpAt is the shared interpolation primitive: the value of Y at X via linear
// interpolation between the two points bracketing X, clamped at the ends. xs
// must be non-decreasing.
func lerpAt(xs, ys []float64, x float64) float64 {
	lower := -1
	for i := range xs {
		if nearlyEqual(xs[i], x) {
			return ys[i]
		}
		if xs[i] < x {
			lower = i
			continue
		}
		// xs[i] > x: interpolate against the last point below, or clamp when
		// x precedes the whole series.
		if lower < 0 {
			return ys[i]
		}
		dx := xs[i] - xs[lower]
		if dx == 0 {
			return ys[lower]
		}
		t := (x - xs[lower]) / dx
		return ys[lower] + t*(ys[i]-ys[lower])
	}
	return ys[len(ys)-1]
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(math.Abs(a), math.Abs(b))+1e-15
}

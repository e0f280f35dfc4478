package track

import (
	"github.com/varviz3d/varviz3d/internal/significance"
)

// AnyKey is the map key for the aggregate all-classes track.
const AnyKey = "any"

// Variant is the minimal input the aggregator needs: a 1-based residue
// position and a significance class.
type Variant struct {
	Position int
	Class    significance.Class
}

// Bin is a contiguous residue window with raw per-class count totals.
type Bin struct {
	Start  int                `json:"start"`
	End    int                `json:"end"`
	Totals map[string]float64 `json:"totals"`
}

// Tracks bundles the derived views over one protein sequence.
// Raw and Smooth map each class name (plus "any") to an L+1 array,
// max-normalized to [0,1]; Smooth is additionally moving-averaged before
// normalization. Bins hold raw, unsmoothed per-class totals.
type Tracks struct {
	Length        int                  `json:"length"`
	Window        int                  `json:"window"`
	Classes       []significance.Class `json:"classes"`
	Raw           map[string][]float64 `json:"raw"`
	Smooth        map[string][]float64 `json:"smooth"`
	Bins          []Bin                `json:"bins"`
	TotalVariants int                  `json:"total_variants"`
}

// Build accumulates classified variants into per-class count arrays and
// derives the smoothed, normalized, and binned views. Variants with an
// unknown class are counted as predicted; out-of-range positions add
// nothing but still count toward TotalVariants (they stacked upstream).
// A zero length produces empty tracks, not an error. window is clamped
// to a minimum of 1; odd values give visually symmetric bins but any
// positive value is valid.
func Build(variants []Variant, length, window int) *Tracks {
	if window < 1 {
		window = 1
	}

	classes := significance.Classes()
	perClass := make(map[significance.Class]*ResidueArray, len(classes))
	for _, c := range classes {
		perClass[c] = NewResidueArray(length)
	}
	anyCount := NewResidueArray(length)

	for _, v := range variants {
		c := significance.Coerce(v.Class)
		perClass[c].Add(v.Position, 1)
		anyCount.Add(v.Position, 1)
	}

	raw := make(map[string][]float64, len(classes)+1)
	smooth := make(map[string][]float64, len(classes)+1)
	raw[AnyKey] = maxNormalize(anyCount.Values())
	smooth[AnyKey] = maxNormalize(movingAverage(anyCount.Values(), window))
	for _, c := range classes {
		raw[string(c)] = maxNormalize(perClass[c].Values())
		smooth[string(c)] = maxNormalize(movingAverage(perClass[c].Values(), window))
	}

	return &Tracks{
		Length:        length,
		Window:        window,
		Classes:       classes,
		Raw:           raw,
		Smooth:        smooth,
		Bins:          stackBins(perClass, classes, length, window),
		TotalVariants: len(variants),
	}
}

// movingAverage computes a trailing moving average of the given window.
// The window shrinks at the left boundary (the divisor is the number of
// elements seen so far), so early positions are not attenuated toward
// zero. window <= 1 returns a copy unchanged.
func movingAverage(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	if window <= 1 {
		copy(out, vals)
		return out
	}
	sum := 0.0
	start := 0
	for i, x := range vals {
		sum += x
		if i-start+1 > window {
			sum -= vals[start]
			start++
		}
		out[i] = sum / float64(i-start+1)
	}
	return out
}

// maxNormalize scales values to [0,1] by the maximum over positions
// [1, L]; index 0 is excluded from the max and stays zero. An all-zero
// array (no variants of that class) stays all-zero.
func maxNormalize(vals []float64) []float64 {
	out := make([]float64, len(vals))
	if len(vals) <= 1 {
		copy(out, vals)
		return out
	}
	max := 0.0
	for _, x := range vals[1:] {
		if x > max {
			max = x
		}
	}
	if max <= 0 {
		return out
	}
	for i, x := range vals[1:] {
		out[i+1] = x / max
	}
	return out
}

// stackBins partitions [1, length] into contiguous windows of the given
// size (last window truncated) and sums the raw per-class counts in each.
func stackBins(perClass map[significance.Class]*ResidueArray, classes []significance.Class, length, window int) []Bin {
	var bins []Bin
	for start := 1; start <= length; start += window {
		end := start + window - 1
		if end > length {
			end = length
		}
		totals := make(map[string]float64, len(classes))
		for _, c := range classes {
			totals[string(c)] = 0
		}
		for pos := start; pos <= end; pos++ {
			for _, c := range classes {
				totals[string(c)] += perClass[c].At(pos)
			}
		}
		bins = append(bins, Bin{Start: start, End: end, Totals: totals})
	}
	return bins
}

package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varviz3d/varviz3d/internal/significance"
)

func TestResidueArray_Bounds(t *testing.T) {
	r := NewResidueArray(5)
	assert.Equal(t, 5, r.Length())

	r.Add(0, 1) // index 0 is not a residue
	r.Add(6, 1) // past the end
	r.Add(-3, 1)
	r.Add(3, 2)

	assert.Equal(t, 0.0, r.At(0))
	assert.Equal(t, 2.0, r.At(3))
	assert.Equal(t, 0.0, r.At(6))
	assert.Equal(t, []float64{0, 0, 0, 2, 0, 0}, r.Values())
}

func TestResidueArray_ZeroLength(t *testing.T) {
	r := NewResidueArray(0)
	assert.Equal(t, 0, r.Length())
	assert.Len(t, r.Values(), 1)
	r.Add(1, 1) // no residues exist
	assert.Equal(t, 0.0, r.At(1))
}

func TestBuild_ConcreteScenario(t *testing.T) {
	// length=10, window=5, two pathogenic at 2, one benign at 7.
	variants := []Variant{
		{Position: 2, Class: significance.Pathogenic},
		{Position: 2, Class: significance.Pathogenic},
		{Position: 7, Class: significance.Benign},
	}
	tr := Build(variants, 10, 5)

	assert.Equal(t, 3, tr.TotalVariants)
	assert.Equal(t, 10, tr.Length)

	// Raw "any" is normalized by its max (2): [0,2,...] -> [0,1,...].
	wantAny := []float64{0, 0, 1, 0, 0, 0, 0, 0.5, 0, 0, 0}
	assert.Equal(t, wantAny, tr.Raw[AnyKey])

	require.Len(t, tr.Bins, 2)
	assert.Equal(t, Bin{Start: 1, End: 5, Totals: map[string]float64{
		"pathogenic": 2, "benign": 0, "uncertain": 0, "predicted": 0,
	}}, tr.Bins[0])
	assert.Equal(t, Bin{Start: 6, End: 10, Totals: map[string]float64{
		"pathogenic": 0, "benign": 1, "uncertain": 0, "predicted": 0,
	}}, tr.Bins[1])
}

func TestBuild_SumInvariant(t *testing.T) {
	variants := []Variant{
		{Position: 1, Class: significance.Pathogenic},
		{Position: 1, Class: significance.Benign},
		{Position: 4, Class: significance.Uncertain},
		{Position: 4, Class: significance.Uncertain},
		{Position: 9, Class: significance.Predicted},
		{Position: 9, Class: significance.Class("novel-thing")}, // coerced
	}
	length := 9

	perClass := make(map[significance.Class]*ResidueArray)
	for _, c := range significance.Classes() {
		perClass[c] = NewResidueArray(length)
	}
	anyCount := NewResidueArray(length)
	for _, v := range variants {
		perClass[significance.Coerce(v.Class)].Add(v.Position, 1)
		anyCount.Add(v.Position, 1)
	}

	for pos := 0; pos <= length; pos++ {
		sum := 0.0
		for _, c := range significance.Classes() {
			sum += perClass[c].At(pos)
		}
		assert.Equal(t, anyCount.At(pos), sum, "position %d", pos)
	}
}

func TestBuild_UnknownClassCoerced(t *testing.T) {
	tr := Build([]Variant{{Position: 3, Class: significance.Class("oncogenic")}}, 5, 1)
	assert.Equal(t, 1.0, tr.Raw["predicted"][3])
	assert.Equal(t, 1.0, tr.Bins[0].Totals["predicted"])
}

func TestBuild_ZeroLength(t *testing.T) {
	tr := Build(nil, 0, 15)
	assert.Equal(t, 0, tr.Length)
	assert.Empty(t, tr.Bins)
	assert.Len(t, tr.Raw[AnyKey], 1)
	assert.Len(t, tr.Smooth[AnyKey], 1)
	assert.Equal(t, 0, tr.TotalVariants)
}

func TestBuild_NoVariantsOfAClass(t *testing.T) {
	tr := Build([]Variant{{Position: 2, Class: significance.Pathogenic}}, 4, 2)
	// Classes with no hits normalize to all zeros, never NaN.
	for _, v := range tr.Raw["benign"] {
		assert.Equal(t, 0.0, v)
	}
	for _, v := range tr.Smooth["benign"] {
		assert.Equal(t, 0.0, v)
	}
}

func TestMovingAverage_ShrinkingBoundary(t *testing.T) {
	in := []float64{0, 3, 0, 0, 6, 0}
	out := movingAverage(in, 3)
	// Trailing window of 3 with shrinking left edge:
	// i=0: 0/1, i=1: 3/2, i=2: 3/3, i=3: 3/3, i=4: 6/3, i=5: 6/3
	want := []float64{0, 1.5, 1, 1, 2, 2}
	assert.InDeltaSlice(t, want, out, 1e-12)
}

func TestMovingAverage_IdentityForSmallWindow(t *testing.T) {
	in := []float64{0, 1, 2, 3}
	assert.Equal(t, in, movingAverage(in, 1))
	assert.Equal(t, in, movingAverage(in, 0))
}

func TestMaxNormalize(t *testing.T) {
	out := maxNormalize([]float64{0, 2, 4, 1})
	assert.Equal(t, []float64{0, 0.5, 1, 0.25}, out)

	// At least one value hits exactly 1.0 and all are within [0,1].
	hasOne := false
	for _, v := range out[1:] {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
		if v == 1.0 {
			hasOne = true
		}
	}
	assert.True(t, hasOne)
}

func TestMaxNormalize_Degenerate(t *testing.T) {
	assert.Equal(t, []float64{0, 0, 0}, maxNormalize([]float64{0, 0, 0}))
	assert.Equal(t, []float64{0}, maxNormalize([]float64{0}))
	assert.Equal(t, []float64{}, maxNormalize([]float64{}))
	// Index 0 is excluded from the max: a stray nonzero slot 0 alone
	// still counts as degenerate.
	assert.Equal(t, []float64{0, 0}, maxNormalize([]float64{7, 0}))
}

func TestBins_CoverageAndTotals(t *testing.T) {
	cases := []struct {
		length, window int
	}{
		{10, 5}, {10, 3}, {1, 15}, {7, 7}, {23, 4},
	}
	for _, tc := range cases {
		variants := []Variant{
			{Position: 1, Class: significance.Pathogenic},
			{Position: tc.length, Class: significance.Benign},
			{Position: (tc.length + 1) / 2, Class: significance.Uncertain},
		}
		tr := Build(variants, tc.length, tc.window)

		// Bins are contiguous, non-overlapping, and cover exactly [1, length].
		next := 1
		for _, b := range tr.Bins {
			assert.Equal(t, next, b.Start, "length=%d window=%d", tc.length, tc.window)
			assert.GreaterOrEqual(t, b.End, b.Start)
			next = b.End + 1
		}
		assert.Equal(t, tc.length+1, next)

		// Bin totals sum to the raw per-class counts.
		got := make(map[string]float64)
		for _, b := range tr.Bins {
			for c, v := range b.Totals {
				got[c] += v
			}
		}
		assert.Equal(t, map[string]float64{
			"pathogenic": 1, "benign": 1, "uncertain": 1, "predicted": 0,
		}, got, "length=%d window=%d", tc.length, tc.window)
	}
}

func TestBuild_SmoothingBeforeNormalization(t *testing.T) {
	// One isolated hit: smoothing spreads it right, then the whole array
	// is renormalized so the plateau becomes 1.0.
	tr := Build([]Variant{{Position: 3, Class: significance.Pathogenic}}, 6, 3)
	smooth := tr.Smooth["pathogenic"]
	assert.Equal(t, 1.0, smooth[3])
	assert.Equal(t, 1.0, smooth[4])
	assert.Equal(t, 1.0, smooth[5])
	assert.Equal(t, 0.0, smooth[6])
}

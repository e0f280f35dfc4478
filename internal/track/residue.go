// Package track builds per-residue variant signal tracks: raw counts,
// smoothed and normalized views, and binned stacked totals.
package track

// ResidueArray is a per-residue value array addressed by 1-based sequence
// position. The backing slice has length L+1 with index 0 kept and always
// zero, so serialized output lines up with 1-based residue numbering
// without an offset. All access goes through bounds-checked methods;
// out-of-range positions are ignored rather than panicking.
type ResidueArray struct {
	vals []float64
}

// NewResidueArray allocates a zeroed array for a sequence of the given
// length. A non-positive length yields an array with only the unused
// index 0 slot.
func NewResidueArray(length int) *ResidueArray {
	if length < 0 {
		length = 0
	}
	return &ResidueArray{vals: make([]float64, length+1)}
}

// Length returns the sequence length L.
func (r *ResidueArray) Length() int {
	return len(r.vals) - 1
}

// Add adds delta to the value at pos. Positions outside [1, L] are ignored.
func (r *ResidueArray) Add(pos int, delta float64) {
	if pos >= 1 && pos < len(r.vals) {
		r.vals[pos] += delta
	}
}

// At returns the value at pos, or 0 for positions outside [1, L].
func (r *ResidueArray) At(pos int) float64 {
	if pos >= 1 && pos < len(r.vals) {
		return r.vals[pos]
	}
	return 0
}

// Values exposes the backing slice, index 0 included, for serialization.
// Callers must not index it directly with residue positions.
func (r *ResidueArray) Values() []float64 {
	return r.vals
}

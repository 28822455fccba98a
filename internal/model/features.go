package model

import "gonum.org/v1/gonum/floats"

const (
	// HistWidth is the number of gray levels, and so the length of every feature vector.
	HistWidth = 256
	// HistHeight is the mass every histogram sums up to.
	HistHeight = 100.0

	lumaRed   = 0.299
	lumaGreen = 0.587
	lumaBlue  = 0.114
)

// Gray returns the gray level of the pixel.
// The weighted sum is truncated, not rounded.
func Gray(p RGB) int {
	// explicit conversions keep the compiler from fusing multiply and add
	r := float64(lumaRed * float64(p.R))
	g := float64(lumaGreen * float64(p.G))
	b := float64(lumaBlue * float64(p.B))
	return int(r + g + b)
}

// Features is an immutable feature vector.
type Features struct {
	values []float64
}

// NewFeatures creates a feature vector out of a copy of the given values.
func NewFeatures(values []float64) Features {
	vv := make([]float64, len(values))
	copy(vv, values)
	return Features{values: vv}
}

// Len returns the number of slots.
func (f Features) Len() int {
	return len(f.values)
}

// At returns the value of slot i.
func (f Features) At(i int) float64 {
	return f.values[i]
}

// Values returns a copy of the vector.
func (f Features) Values() []float64 {
	vv := make([]float64, len(f.values))
	copy(vv, f.values)
	return vv
}

// Sum returns the total mass of the vector.
func (f Features) Sum() float64 {
	return floats.Sum(f.values)
}

// Equal checks if both vectors hold exactly the same values.
func (f Features) Equal(o Features) bool {
	return floats.Equal(f.values, o.values)
}

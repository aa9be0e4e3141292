package similarity

import (
	"errors"
	"math"
)

var (
	// ErrDimensionMismatch indicates the two vectors have different lengths
	ErrDimensionMismatch = errors.New("vectors have mismatched dimensions")

	// ErrDegenerateVector indicates a zero-magnitude vector that cannot be scored
	ErrDegenerateVector = errors.New("vector has zero magnitude")
)

// Cosine returns the cosine similarity between two equal-length vectors,
// in the range [-1, 1]. It fails with ErrDimensionMismatch when the lengths
// differ and with ErrDegenerateVector when either vector has zero magnitude.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0, ErrDegenerateVector
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

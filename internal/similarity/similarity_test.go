package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
		wantErr  error
	}{
		{
			name:     "identical unit vectors",
			a:        []float32{1, 0},
			b:        []float32{1, 0},
			expected: 1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float32{1, 0},
			b:        []float32{0, 1},
			expected: 0.0,
		},
		{
			name:     "opposite vectors",
			a:        []float32{1, 2, 3},
			b:        []float32{-1, -2, -3},
			expected: -1.0,
		},
		{
			name:     "scaled vectors keep similarity",
			a:        []float32{1, 2, 3},
			b:        []float32{2, 4, 6},
			expected: 1.0,
		},
		{
			name:     "partial overlap",
			a:        []float32{1, 1},
			b:        []float32{1, 0},
			expected: 0.7071067811865475,
		},
		{
			name:    "mismatched dimensions",
			a:       []float32{1, 2, 3},
			b:       []float32{1, 2},
			wantErr: ErrDimensionMismatch,
		},
		{
			name:    "empty against non-empty",
			a:       []float32{},
			b:       []float32{1},
			wantErr: ErrDimensionMismatch,
		},
		{
			name:    "zero vector on the left",
			a:       []float32{0, 0, 0},
			b:       []float32{1, 2, 3},
			wantErr: ErrDegenerateVector,
		},
		{
			name:    "zero vector on the right",
			a:       []float32{1, 2, 3},
			b:       []float32{0, 0, 0},
			wantErr: ErrDegenerateVector,
		},
		{
			name:    "both empty",
			a:       []float32{},
			b:       []float32{},
			wantErr: ErrDegenerateVector,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := Cosine(tt.a, tt.b)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.expected, score, 1e-9)
		})
	}
}

func TestCosine_SelfSimilarityIsOne(t *testing.T) {
	vectors := [][]float32{
		{1, 0},
		{0.5, 0.5, 0.5},
		{-3, 7, 2, 9},
		{0.001, 0.002, 0.003},
	}

	for _, v := range vectors {
		score, err := Cosine(v, v)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-9)
	}
}

func TestCosine_Symmetry(t *testing.T) {
	pairs := [][2][]float32{
		{{1, 2, 3}, {4, 5, 6}},
		{{-1, 0.5}, {0.25, -8}},
		{{0.1, 0.9, 0.3}, {0.7, 0.2, 0.5}},
	}

	for _, p := range pairs {
		ab, err := Cosine(p[0], p[1])
		require.NoError(t, err)

		ba, err := Cosine(p[1], p[0])
		require.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-12)
	}
}

func TestCosine_RangeBounds(t *testing.T) {
	pairs := [][2][]float32{
		{{1, 2, 3, 4}, {4, 3, 2, 1}},
		{{-5, 10}, {3, -7}},
		{{0.9, 0.1}, {0.1, 0.9}},
	}

	for _, p := range pairs {
		score, err := Cosine(p[0], p[1])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score, -1.0-1e-9)
		assert.LessOrEqual(t, score, 1.0+1e-9)
	}
}

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 3, []float64{
		1, 10, 5,
		2, 20, 5,
		3, 30, 5,
		4, 80, 5,
	})

	s := NewStandardScaler()
	out, err := s.FitTransform(X)
	require.NoError(t, err)

	r, c := out.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 3, c)
	col := make([]float64, r)
	for j := range 2 {
		mat.Col(col, j, out)
		assert.InDelta(t, 0, Mean(col), 1e-12)
		assert.InDelta(t, 1, Std(col), 1e-12)
	}

	mat.Col(col, 2, out)
	assert.Equal(t, []float64{0, 0, 0, 0}, col, "constant column becomes zeros")
	assert.Equal(t, 1.0, s.Std[2])
	assert.Equal(t, 2.5, s.Mean[0])
}

func TestStandardScalerErrors(t *testing.T) {
	s := NewStandardScaler()
	_, err := s.Transform(mat.NewDense(1, 1, []float64{1}))
	require.ErrorIs(t, err, ErrNotFitted)

	require.NoError(t, s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = s.Transform(mat.NewDense(1, 3, nil))
	require.ErrorIs(t, err, ErrDimension)

	var empty mat.Dense
	require.ErrorIs(t, s.Fit(&empty), ErrNoSamples)
}

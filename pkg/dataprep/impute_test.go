package dataprep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamprep/pkg/data"
)

func TestReplaceInf(t *testing.T) {
	tbl, err := data.NewTable(
		data.NewNumericColumn("a", []float64{math.Inf(1), 1, math.Inf(-1)}),
		data.NewStringColumn("s", []string{"inf", "x", "y"}, nil),
	)
	require.NoError(t, err)

	assert.Equal(t, 2, ReplaceInf(tbl))
	a, _ := tbl.Col("a")
	assert.True(t, math.IsNaN(a.Nums[0]))
	assert.Equal(t, 1.0, a.Nums[1])
	assert.True(t, math.IsNaN(a.Nums[2]))
}

func TestImputeMean(t *testing.T) {
	c := data.NewNumericColumn("x", []float64{1, math.NaN(), 5, math.NaN()})

	mean, err := ImputeMean(c)
	require.NoError(t, err)

	assert.Equal(t, 3.0, mean)
	assert.Equal(t, []float64{1, 3, 5, 3}, c.Nums)
	assert.Equal(t, 0, c.Missing())
}

func TestImputeMeanErrors(t *testing.T) {
	_, err := ImputeMean(data.NewNumericColumn("x", []float64{math.NaN(), math.NaN()}))
	require.ErrorIs(t, err, ErrEmptyColumn)

	_, err = ImputeMean(data.NewStringColumn("s", []string{"a"}, nil))
	require.ErrorIs(t, err, data.ErrKind)
}

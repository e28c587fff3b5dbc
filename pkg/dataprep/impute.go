package dataprep

import (
	"errors"
	"math"

	"streamprep/pkg/data"
	"streamprep/pkg/stats"
)

// ErrEmptyColumn is returned when a column has no values to impute from.
var ErrEmptyColumn = errors.New("column has no present values")

// ReplaceInf turns +Inf and -Inf into NaN in every Numeric column of t and
// returns how many cells changed.
func ReplaceInf(t *data.Table) int {
	n := 0
	for _, c := range t.NumericColumns() {
		for i, v := range c.Nums {
			if math.IsInf(v, 0) {
				c.Nums[i] = math.NaN()
				n++
			}
		}
	}
	return n
}

// ImputeMean replaces missing values in c with the mean of its present values
// and returns that mean.
func ImputeMean(c *data.Column) (float64, error) {
	if c.Kind != data.Numeric {
		return 0, &data.ColumnError{Column: c.Name, Err: data.ErrKind}
	}
	present := stats.Present(c.Nums)
	if len(present) == 0 {
		return 0, &data.ColumnError{Column: c.Name, Err: ErrEmptyColumn}
	}
	mean := stats.Mean(present)
	ImputeConstant(c, mean)
	return mean, nil
}

// ImputeConstant replaces missing values in a Numeric column with v.
func ImputeConstant(c *data.Column, v float64) {
	for i, x := range c.Nums {
		if math.IsNaN(x) {
			c.Nums[i] = v
		}
	}
}

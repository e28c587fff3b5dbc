package dataprep

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/araddon/dateparse"
	"gonum.org/v1/gonum/mat"

	"streamprep/pkg/data"
	"streamprep/pkg/stats"
)

var (
	// ErrDateParse is returned for date cells that match no known layout.
	ErrDateParse = errors.New("unparseable date")
	// ErrNoFeatures is returned when no feature columns are requested.
	ErrNoFeatures = errors.New("no feature columns")
)

// DateError reports the row label and raw value of an unparseable date.
type DateError struct {
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("column %q row %d: %v: %q", e.Column, e.Row, ErrDateParse, e.Value)
}

func (e *DateError) Unwrap() []error { return []error{ErrDateParse, e.Err} }

// ParseDates converts a String column into a Date column. Missing cells stay
// missing; any other cell that cannot be parsed fails the whole column.
func ParseDates(c *data.Column, index []int) (*data.Column, error) {
	switch c.Kind {
	case data.Date:
		return c, nil
	case data.String:
	default:
		return nil, &data.ColumnError{Column: c.Name, Err: fmt.Errorf("%w: cannot parse %s as dates", data.ErrKind, c.Kind)}
	}
	dates := make([]time.Time, c.Len())
	for i, v := range c.Text {
		if c.IsMissing(i) {
			continue
		}
		d, err := dateparse.ParseIn(v, time.UTC)
		if err != nil {
			return nil, &DateError{Column: c.Name, Row: index[i], Value: v, Err: err}
		}
		dates[i] = d
	}
	return data.NewDateColumn(c.Name, dates), nil
}

// DeriveYear parses the dates in src and stores their calendar year in the
// Numeric column dst, replacing it if present. Missing dates give NaN.
func DeriveYear(t *data.Table, src, dst string) error {
	c, err := t.Col(src)
	if err != nil {
		return err
	}
	dates, err := ParseDates(c, t.Index)
	if err != nil {
		return err
	}
	years := make([]float64, dates.Len())
	for i, d := range dates.Dates {
		if dates.IsMissing(i) {
			years[i] = math.NaN()
			continue
		}
		years[i] = float64(d.Year())
	}
	return t.Set(data.NewNumericColumn(dst, years))
}

// Scaler fits on a feature block and returns it rescaled.
type Scaler interface {
	FitTransform(X mat.Matrix) (*mat.Dense, error)
}

// FeatureSet is the model-ready output of BuildFeatures. Row i of X and Y[i]
// both come from the table row labelled Index[i].
type FeatureSet struct {
	X        *mat.Dense
	Y        []float64
	Features []string
	Index    []int
	Means    []float64 // imputation value per feature
}

// BuildFeatures turns infinities into missing values, mean-imputes the
// feature columns, keeps the rows with a target value and scales the block.
// A nil scaler means stats.StandardScaler.
func BuildFeatures(t *data.Table, features []string, target string, scaler Scaler) (*FeatureSet, error) {
	if len(features) == 0 {
		return nil, ErrNoFeatures
	}
	if scaler == nil {
		scaler = stats.NewStandardScaler()
	}
	ReplaceInf(t)

	block := make([][]float64, len(features))
	means := make([]float64, len(features))
	for j, name := range features {
		c, err := t.Col(name)
		if err != nil {
			return nil, err
		}
		if c.Kind != data.Numeric {
			return nil, &data.ColumnError{Column: name, Err: fmt.Errorf("%w: feature is %s", data.ErrKind, c.Kind)}
		}
		imputed := data.NewNumericColumn(name, append([]float64(nil), c.Nums...))
		if means[j], err = ImputeMean(imputed); err != nil {
			return nil, err
		}
		block[j] = imputed.Nums
	}

	y, yIndex, err := TargetVector(t, target)
	if err != nil {
		return nil, err
	}

	common := Intersect(t.Index, yIndex)
	if len(common) == 0 {
		return nil, stats.ErrNoSamples
	}
	rowOf := positions(t.Index)
	yOf := positions(yIndex)

	raw := mat.NewDense(len(common), len(features), nil)
	ys := make([]float64, len(common))
	for i, label := range common {
		for j := range features {
			raw.Set(i, j, block[j][rowOf[label]])
		}
		ys[i] = y[yOf[label]]
	}

	X, err := scaler.FitTransform(raw)
	if err != nil {
		return nil, err
	}
	return &FeatureSet{
		X:        X,
		Y:        ys,
		Features: append([]string(nil), features...),
		Index:    common,
		Means:    means,
	}, nil
}

// TargetVector returns the present values of the named column as floats
// along with their row labels. Text values are parsed like CleanNumericColumns.
func TargetVector(t *data.Table, name string) ([]float64, []int, error) {
	c, err := t.Col(name)
	if err != nil {
		return nil, nil, err
	}
	n, err := ToNumeric(c)
	if err != nil {
		return nil, nil, err
	}
	var (
		values []float64
		index  []int
	)
	for i, v := range n.Nums {
		if math.IsNaN(v) {
			continue
		}
		values = append(values, v)
		index = append(index, t.Index[i])
	}
	return values, index, nil
}

// Intersect returns the labels present in both a and b, in the order of a.
func Intersect(a, b []int) []int {
	in := make(map[int]bool, len(b))
	for _, v := range b {
		in[v] = true
	}
	var out []int
	for _, v := range a {
		if in[v] {
			out = append(out, v)
		}
	}
	return out
}

func positions(index []int) map[int]int {
	m := make(map[int]int, len(index))
	for i, label := range index {
		m[label] = i
	}
	return m
}

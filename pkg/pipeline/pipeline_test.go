package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"streamprep/pkg/config"
	"streamprep/pkg/stats"
)

type scaleBy struct {
	factor float64
	fitted int
	err    error
}

func (s *scaleBy) Fit(X mat.Matrix) error {
	s.fitted++
	return s.err
}

func (s *scaleBy) Transform(X mat.Matrix) (*mat.Dense, error) {
	var out mat.Dense
	out.Scale(s.factor, X)
	return &out, nil
}

func TestPipelineFitTransformChainsSteps(t *testing.T) {
	double := &scaleBy{factor: 2}
	p := NewPipeline(double, stats.NewStandardScaler())

	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	out, err := p.FitTransform(X)
	require.NoError(t, err)

	assert.Equal(t, 1, double.fitted)
	assert.InDeltaSlice(t, []float64{-1.3416, -0.4472, 0.4472, 1.3416}, mat.Col(nil, 0, out), 1e-4)
	assert.Equal(t, 1.0, X.At(0, 0), "input is not modified")
}

func TestPipelineTransformAfterFit(t *testing.T) {
	scaler := stats.NewStandardScaler()
	p := NewPipeline(&scaleBy{factor: 10}, scaler)
	require.NoError(t, p.Fit(mat.NewDense(2, 1, []float64{0, 1})))
	assert.Equal(t, []float64{5}, scaler.Mean)

	out, err := p.Transform(mat.NewDense(1, 1, []float64{1}))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.At(0, 0), 1e-12)
}

func TestPipelineStopsOnFitError(t *testing.T) {
	boom := errors.New("boom")
	last := &scaleBy{factor: 1}
	p := NewPipeline(&scaleBy{factor: 1, err: boom}, last)

	_, err := p.FitTransform(mat.NewDense(1, 1, []float64{1}))
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, last.fitted)
}

func TestPipelineTransformBeforeFit(t *testing.T) {
	p := NewPipeline(stats.NewStandardScaler())
	_, err := p.Transform(mat.NewDense(1, 1, []float64{1}))
	assert.ErrorIs(t, err, stats.ErrNotFitted)
}

func TestEmptyPipelineCopiesInput(t *testing.T) {
	X := mat.NewDense(1, 2, []float64{3, 4})
	out, err := NewPipeline().FitTransform(X)
	require.NoError(t, err)
	out.Set(0, 0, 0)
	assert.Equal(t, 3.0, X.At(0, 0))
}

func TestSchemaCoversPipelineColumns(t *testing.T) {
	s := Schema()
	assert.Contains(t, s.Names, ReleaseDate)
	assert.Contains(t, s.Names, Target)
	for _, f := range Features {
		assert.Contains(t, s.Names, f)
	}
	assert.Len(t, NumericColumns, 15)
	assert.Len(t, Features, 9)
	assert.Len(t, s.Names, 17, "15 metrics, Spotify_Popularity and Release_Date")
}

func TestFromConfigKeepsThresholds(t *testing.T) {
	opts := FromConfig(&config.Config{MissingThreshold: 0, CorrelationThreshold: 0.5}, nil)
	require.NotNil(t, opts.MissingThreshold)
	require.NotNil(t, opts.CorrelationThreshold)
	assert.Equal(t, 0.0, *opts.MissingThreshold)
	assert.Equal(t, 0.5, *opts.CorrelationThreshold)
}

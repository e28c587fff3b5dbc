package pipeline

import (
	"gonum.org/v1/gonum/mat"
)

// Transformer interface for fit/transform pattern.
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (*mat.Dense, error)
}

// Pipeline chains multiple transformers. A Pipeline is itself a Transformer.
type Pipeline struct {
	steps []Transformer
}

func NewPipeline(steps ...Transformer) *Pipeline {
	return &Pipeline{steps: steps}
}

// Fit fits every step on the output of the previous one.
func (p *Pipeline) Fit(X mat.Matrix) error {
	_, err := p.FitTransform(X)
	return err
}

func (p *Pipeline) Transform(X mat.Matrix) (*mat.Dense, error) {
	out := mat.DenseCopyOf(X)
	for _, step := range p.steps {
		var err error
		if out, err = step.Transform(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FitTransform fits each step and feeds its transformed output forward.
func (p *Pipeline) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	out := mat.DenseCopyOf(X)
	for _, step := range p.steps {
		if err := step.Fit(out); err != nil {
			return nil, err
		}
		var err error
		if out, err = step.Transform(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

package pipeline

import "fmt"

// Stage names a step of the preprocessing run.
type Stage string

const (
	StageLoad        Stage = "load"
	StageValidate    Stage = "validate"
	StageNormalize   Stage = "normalize"
	StageMissing     Stage = "reduce_missing"
	StageReleaseYear Stage = "release_year"
	StageCorrelation Stage = "correlation"
	StageFeatures    Stage = "features"
)

// StageError records which stage stopped the run.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

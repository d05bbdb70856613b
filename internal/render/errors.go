package render

import (
	"errors"
	"fmt"
)

// Stage names one step of the rendering pipeline.
type Stage string

const (
	StageAcquire    Stage = "acquire"
	StageNormalize  Stage = "normalize"
	StageExponents  Stage = "exponents"
	StageFractions  Stage = "fractions"
	StageDerivative Stage = "derivative"
	StageEquation   Stage = "equation"
	StageCleanup    Stage = "cleanup"
)

// ErrEmptyExpression is returned when there is nothing to render.
var ErrEmptyExpression = errors.New("empty expression")

// RenderError reports which stage failed and on which fragment.
type RenderError struct {
	Stage    Stage
	Fragment string
	Err      error
}

func (e *RenderError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("render: %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("render: %s %q: %v", e.Stage, e.Fragment, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

func stageError(stage Stage, fragment string, err error) error {
	if err == nil {
		return nil
	}
	var re *RenderError
	if errors.As(err, &re) {
		return err
	}
	return &RenderError{Stage: stage, Fragment: fragment, Err: err}
}

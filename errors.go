package unimath

import (
	"github.com/riverfjs/unimath/internal/brace"
	"github.com/riverfjs/unimath/internal/cas"
	"github.com/riverfjs/unimath/internal/latex"
	"github.com/riverfjs/unimath/internal/render"
	"github.com/riverfjs/unimath/internal/theme"
)

// Error types. Use errors.As to inspect them.
type (
	RenderError               = render.RenderError
	Stage                     = render.Stage
	UnbalancedDelimiterError  = brace.UnbalancedDelimiterError
	UnsupportedConstructError = latex.UnsupportedConstructError
	ThemeParseError           = theme.ParseError
)

// Sentinel errors.
var (
	ErrEmptyExpression = render.ErrEmptyExpression
	ErrNotEquation     = cas.ErrNotEquation
)

// Pipeline stages reported in RenderError.Stage.
const (
	StageAcquire    = render.StageAcquire
	StageNormalize  = render.StageNormalize
	StageExponents  = render.StageExponents
	StageFractions  = render.StageFractions
	StageDerivative = render.StageDerivative
	StageEquation   = render.StageEquation
	StageCleanup    = render.StageCleanup
)

// Package render turns an expression tree into single-line Unicode text.
//
// The pipeline runs in fixed stages: acquire the LaTeX, normalize it, raise
// exponents, split fractions, unwrap a derivative argument, join equation
// sides, and clean up. Each stage returns its output to the next; a failure
// is reported as *RenderError naming the stage.
package render

import (
	"strings"

	"github.com/riverfjs/unimath/internal/cas"
)

// Renderer renders expression trees.
type Renderer struct {
	nfc bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithNFC controls Unicode NFC normalisation of the final text.
func WithNFC(enable bool) Option {
	return func(r *Renderer) {
		r.nfc = enable
	}
}

// New creates a Renderer. NFC normalisation is on by default.
func New(opts ...Option) *Renderer {
	r := &Renderer{nfc: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders tree into an Expression.
func (r *Renderer) Render(tree cas.Tree) (*Expression, error) {
	if tree == nil {
		return nil, &RenderError{Stage: StageAcquire, Err: ErrEmptyExpression}
	}
	raw := tree.LaTeX()
	if strings.TrimSpace(raw) == "" {
		return nil, &RenderError{Stage: StageAcquire, Err: ErrEmptyExpression}
	}

	var text string
	if tree.IsEquation() {
		lhs, rhs, err := cas.Sides(tree)
		if err != nil {
			return nil, &RenderError{Stage: StageEquation, Fragment: raw, Err: err}
		}
		left, err := r.side(lhs)
		if err != nil {
			return nil, err
		}
		right, err := r.side(rhs)
		if err != nil {
			return nil, err
		}
		text = left + " = " + stripParens(right)
	} else {
		var err error
		if text, err = r.side(tree); err != nil {
			return nil, err
		}
	}

	return &Expression{
		rawLatex:     raw,
		isEquation:   tree.IsEquation(),
		isDerivative: tree.IsDerivative(),
		variables:    cas.Unique(tree.FreeVariables()),
		text:         Cleanup(text, r.nfc),
	}, nil
}

// side runs one expression through normalization, exponents, fractions and,
// for derivatives, the argument fix-up.
func (r *Renderer) side(tree cas.Tree) (string, error) {
	raw := tree.LaTeX()
	s := Normalize(raw)
	if s == "" {
		return "", &RenderError{Stage: StageNormalize, Fragment: raw, Err: ErrEmptyExpression}
	}

	s, err := ExtractExponents(s)
	if err != nil {
		return "", stageError(StageExponents, raw, err)
	}
	s, err = ResolveFractions(s)
	if err != nil {
		return "", stageError(StageFractions, raw, err)
	}
	if tree.IsDerivative() {
		if s, err = FixDerivative(Tidy(s)); err != nil {
			return "", stageError(StageDerivative, raw, err)
		}
	}
	return s, nil
}

// Latex renders a bare LaTeX string. A single top-level "=" makes it an
// equation.
func (r *Renderer) Latex(src string) (string, error) {
	expr, err := r.Render(cas.Parse(src))
	if err != nil {
		return "", err
	}
	return expr.Text(), nil
}

// ──────────────────────────────────────────────
// Expression
// ──────────────────────────────────────────────

// Expression is an immutable rendered expression.
type Expression struct {
	rawLatex     string
	isEquation   bool
	isDerivative bool
	variables    []string
	text         string
	result       string
}

// RawLatex returns the LaTeX the expression was rendered from.
func (e *Expression) RawLatex() string { return e.rawLatex }

// UnicodeText returns the rendered text without any attached result.
func (e *Expression) UnicodeText() string { return e.text }

// Text returns the rendered text followed by " = result" when a result is
// attached.
func (e *Expression) Text() string {
	if e.result == "" {
		return e.text
	}
	return e.text + " = " + e.result
}

func (e *Expression) String() string { return e.Text() }

func (e *Expression) IsEquation() bool   { return e.isEquation }
func (e *Expression) IsDerivative() bool { return e.isDerivative }

// Variables returns the variable names in first-seen order.
func (e *Expression) Variables() []string {
	return append([]string(nil), e.variables...)
}

// Result returns the attached result, if any.
func (e *Expression) Result() string { return e.result }

// WithResult returns a copy with result attached.
func (e *Expression) WithResult(result string) *Expression {
	c := *e
	c.variables = e.Variables()
	c.result = strings.TrimSpace(result)
	return &c
}

// WithoutResult returns a copy with no result attached.
func (e *Expression) WithoutResult() *Expression {
	return e.WithResult("")
}

// NewExpression builds an Expression directly from rendered text, for
// callers that already hold Unicode.
func NewExpression(rawLatex, text string, variables []string) *Expression {
	return &Expression{
		rawLatex:  rawLatex,
		variables: cas.Unique(variables),
		text:      text,
	}
}

// Package cas holds the small expression-tree surface the renderer consumes.
//
// Any symbolic engine can feed the renderer by implementing Tree; the types in
// this package cover raw LaTeX snippets, equations and derivatives.
package cas

import (
	"errors"
	"strconv"
	"strings"

	"github.com/riverfjs/unimath/internal/brace"
)

// ErrNotEquation is returned when equation sides are requested from a tree
// that is not an equation.
var ErrNotEquation = errors.New("expression is not an equation")

// Tree is the capability set the renderer needs from an expression tree.
type Tree interface {
	// LaTeX returns the canonical LaTeX serialization of the tree.
	LaTeX() string
	IsEquation() bool
	IsDerivative() bool
	// FreeVariables lists the variable names appearing in the tree, in
	// first-seen order without duplicates.
	FreeVariables() []string
	// EquationSides returns both sides of an equation, or nil, nil.
	EquationSides() (lhs, rhs Tree)
}

// Sides returns the two sides of t or ErrNotEquation.
func Sides(t Tree) (lhs, rhs Tree, err error) {
	if t == nil || !t.IsEquation() {
		return nil, nil, ErrNotEquation
	}
	lhs, rhs = t.EquationSides()
	if lhs == nil || rhs == nil {
		return nil, nil, ErrNotEquation
	}
	return lhs, rhs, nil
}

// ──────────────────────────────────────────────
// Snippet
// ──────────────────────────────────────────────

// Snippet is a plain LaTeX expression.
type Snippet struct {
	latex string
	vars  []string
}

// NewSnippet wraps latex. When no variables are given they are inferred from
// the source.
func NewSnippet(latex string, vars ...string) *Snippet {
	if len(vars) == 0 {
		vars = InferVariables(latex)
	}
	return &Snippet{latex: latex, vars: Unique(vars)}
}

func (s *Snippet) LaTeX() string                  { return s.latex }
func (s *Snippet) IsEquation() bool               { return false }
func (s *Snippet) IsDerivative() bool             { return false }
func (s *Snippet) FreeVariables() []string        { return clone(s.vars) }
func (s *Snippet) EquationSides() (lhs, rhs Tree) { return nil, nil }

// ──────────────────────────────────────────────
// Equation
// ──────────────────────────────────────────────

// Equation is lhs = rhs.
type Equation struct {
	lhs, rhs Tree
}

// Eq builds an equation.
func Eq(lhs, rhs Tree) *Equation {
	return &Equation{lhs: lhs, rhs: rhs}
}

func (e *Equation) LaTeX() string      { return e.lhs.LaTeX() + " = " + e.rhs.LaTeX() }
func (e *Equation) IsEquation() bool   { return true }
func (e *Equation) IsDerivative() bool { return false }

func (e *Equation) FreeVariables() []string {
	return Unique(append(e.lhs.FreeVariables(), e.rhs.FreeVariables()...))
}

func (e *Equation) EquationSides() (lhs, rhs Tree) { return e.lhs, e.rhs }

// ──────────────────────────────────────────────
// Derivative
// ──────────────────────────────────────────────

// Derivative is the derivative of an expression with respect to one or more
// variables. Repeating a variable raises the order.
type Derivative struct {
	expr Tree
	wrt  []string
}

// Derive builds the derivative of expr with respect to wrt, in order.
func Derive(expr Tree, wrt ...string) *Derivative {
	return &Derivative{expr: expr, wrt: clone(wrt)}
}

// Partial reports whether the derivative is written with ∂ rather than d,
// which is the case when more than one variable is involved.
func (d *Derivative) Partial() bool {
	return len(d.FreeVariables()) > 1
}

func (d *Derivative) LaTeX() string {
	op := "d"
	if d.Partial() {
		op = `\partial`
	}

	type term struct {
		name  string
		count int
	}
	var terms []term
	for _, v := range d.wrt {
		if n := len(terms); n > 0 && terms[n-1].name == v {
			terms[n-1].count++
			continue
		}
		terms = append(terms, term{name: v, count: 1})
	}

	var den strings.Builder
	for i, t := range terms {
		if i > 0 {
			den.WriteByte(' ')
		}
		den.WriteString(op + " " + t.name)
		if t.count > 1 {
			den.WriteString("^{" + strconv.Itoa(t.count) + "}")
		}
	}

	num := op
	if order := len(d.wrt); order > 1 {
		num += "^{" + strconv.Itoa(order) + "}"
	}
	return `\frac{` + num + `}{` + den.String() + `} \left(` + d.expr.LaTeX() + `\right)`
}

func (d *Derivative) IsEquation() bool   { return false }
func (d *Derivative) IsDerivative() bool { return true }

func (d *Derivative) FreeVariables() []string {
	return Unique(append(d.expr.FreeVariables(), d.wrt...))
}

func (d *Derivative) EquationSides() (lhs, rhs Tree) { return nil, nil }

// ──────────────────────────────────────────────
// Parsing
// ──────────────────────────────────────────────

// Parse wraps raw LaTeX as a Tree. A single "=" outside every braced group
// makes it an equation; anything else, including unbalanced input, is a
// Snippet. Groups are skipped with the brace scanner, so escapes count as
// braces here exactly as they do when rendering.
func Parse(latex string, vars ...string) Tree {
	at := -1
	for i := 0; i < len(latex); i++ {
		switch latex[i] {
		case '{':
			close, err := brace.Braces.FindMatchingClose(latex, i)
			if err != nil {
				return NewSnippet(latex, vars...)
			}
			i = close
		case '}':
			return NewSnippet(latex, vars...)
		case '=':
			if at >= 0 {
				return NewSnippet(latex, vars...)
			}
			at = i
		}
	}
	if at < 0 {
		return NewSnippet(latex, vars...)
	}
	lhs := strings.TrimSpace(latex[:at])
	rhs := strings.TrimSpace(latex[at+1:])
	if lhs == "" || rhs == "" {
		return NewSnippet(latex, vars...)
	}
	if len(vars) == 0 {
		return Eq(NewSnippet(lhs), NewSnippet(rhs))
	}
	return Eq(NewSnippet(lhs, vars...), NewSnippet(rhs, vars...))
}

// Unique removes duplicates from names, keeping first-seen order.
func Unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}

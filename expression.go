package unimath

import (
	"github.com/riverfjs/unimath/internal/cas"
	"github.com/riverfjs/unimath/internal/render"
)

// Tree is an expression tree the renderer can consume. Any CAS can provide
// one; Latex, Eq and Derivative build simple trees from LaTeX.
type Tree = cas.Tree

// RenderedExpression is the immutable result of rendering a Tree.
type RenderedExpression = render.Expression

// Latex wraps a LaTeX expression. A single top-level "=" makes it an
// equation. Variables are inferred when none are given.
func Latex(src string, variables ...string) Tree {
	return cas.Parse(src, variables...)
}

// Eq builds the equation lhs = rhs.
func Eq(lhs, rhs Tree) Tree {
	return cas.Eq(lhs, rhs)
}

// Derivative builds the derivative of expr with respect to wrt, in order.
func Derivative(expr Tree, wrt ...string) Tree {
	return cas.Derive(expr, wrt...)
}

// InferVariables lists the variables of a LaTeX expression in first-seen
// order.
func InferVariables(src string) []string {
	return cas.InferVariables(src)
}

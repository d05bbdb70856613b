package cas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferVariables(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"polynomial", `3 x + \frac{1}{2}`, []string{"x"}},
		{"order kept", `y^{2} + x y`, []string{"y", "x"}},
		{"constants skipped", `e^{i \pi x}`, []string{"x"}},
		{"greek", `\theta + \alpha \theta`, []string{"θ", "α"}},
		{"function names", `\sin{\left(x \right)}`, []string{"x"}},
		{"subscripts skipped", `a_{n} + a_{m}`, []string{"a"}},
		{"text skipped", `x \text{ for all } y`, []string{"x", "y"}},
		{"none", `1 + 2`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferVariables(tt.src))
		})
	}
}

func TestParse(t *testing.T) {
	tree := Parse(`3 x = \frac{1}{2}`)
	require.True(t, tree.IsEquation())

	lhs, rhs, err := Sides(tree)
	require.NoError(t, err)
	assert.Equal(t, "3 x", lhs.LaTeX())
	assert.Equal(t, `\frac{1}{2}`, rhs.LaTeX())
	assert.Equal(t, []string{"x"}, tree.FreeVariables())
}

func TestParse_NotEquation(t *testing.T) {
	for _, src := range []string{
		`x + 1`, `a = b = c`, `= x`, `\frac{a=b}{c}`,
		`\frac{a}{b = c`, `x} = {y`, `x = \frac{1}{2}}`,
	} {
		tree := Parse(src)
		assert.False(t, tree.IsEquation(), "Parse(%q)", src)
		assert.Equal(t, src, tree.LaTeX())

		_, _, err := Sides(tree)
		assert.True(t, errors.Is(err, ErrNotEquation), "Sides(%q) error = %v", src, err)
	}
}

func TestParse_NestedGroups(t *testing.T) {
	tree := Parse(`\frac{\frac{a=b}{c}}{d} = e^{x=1}`)
	require.True(t, tree.IsEquation())

	lhs, rhs, err := Sides(tree)
	require.NoError(t, err)
	assert.Equal(t, `\frac{\frac{a=b}{c}}{d}`, lhs.LaTeX())
	assert.Equal(t, `e^{x=1}`, rhs.LaTeX())
}

func TestSnippet_ExplicitVariables(t *testing.T) {
	s := NewSnippet(`a b c`, "b", "a", "b")
	assert.Equal(t, []string{"b", "a"}, s.FreeVariables())
	assert.False(t, s.IsDerivative())
}

func TestEq(t *testing.T) {
	eq := Eq(NewSnippet(`x^{2}`), NewSnippet(`y + x`))
	assert.Equal(t, `x^{2} = y + x`, eq.LaTeX())
	assert.Equal(t, []string{"x", "y"}, eq.FreeVariables())
	assert.False(t, eq.IsDerivative())
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		d    *Derivative
		want string
	}{
		{
			"ordinary",
			Derive(NewSnippet(`x^{2}`), "x"),
			`\frac{d}{d x} \left(x^{2}\right)`,
		},
		{
			"partial",
			Derive(NewSnippet(`f`), "x"),
			`\frac{\partial}{\partial x} \left(f\right)`,
		},
		{
			"second order",
			Derive(NewSnippet(`x^{3}`), "x", "x"),
			`\frac{d^{2}}{d x^{2}} \left(x^{3}\right)`,
		},
		{
			"mixed",
			Derive(NewSnippet(`x y`), "x", "y"),
			`\frac{\partial^{2}}{\partial x \partial y} \left(x y\right)`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.LaTeX())
			assert.True(t, tt.d.IsDerivative())
			assert.False(t, tt.d.IsEquation())
		})
	}
}

func TestSides_Nil(t *testing.T) {
	_, _, err := Sides(nil)
	assert.ErrorIs(t, err, ErrNotEquation)
}

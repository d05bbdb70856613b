package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/unimath/internal/brace"
	"github.com/riverfjs/unimath/internal/cas"
	"github.com/riverfjs/unimath/internal/latex"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`3 x + \frac{1}{2}`, `3x+\frac{1}{2}`},
		{`\left(x + 1\right)`, `(x+1)`},
		{`\frac{\partial}{\partial x}`, `\frac{\partial}{\partial x}`},
		{`$x^{2}$`, `x^{2}`},
		{`a \leftarrow b`, `a\leftarrow b`},
		{`\sin{\left(x \right)}`, `sin{(x)}`},
		{`\log{\left(x \right)} + \tan{\left(y \right)}`, `log{(x)}+tan{(y)}`},
		{`\dfrac{1}{2}`, `\frac{1}{2}`},
		{`x \text{ for all } y`, `x\text{ for all }y`},
		{`a\,b\;c`, `abc`},
		{`\lnot p`, `\lnot p`},
		{`\ln x + \exp y`, `lnx+expy`},
		{`a \lneq b`, `a\lneq b`},
		{`a \lnapprox b`, `a\lnapprox b`},
		{`\sinh x`, `\sinh x`},
		{"x\n+\ty", `x+y`},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractExponents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`x^{2}`, "x²"},
		{`x^{y^{z}}`, "xʸᶻ"},
		{`x^{2}+y^{3}`, "x²+y³"},
		{`\pi^{2}`, "π²"},
		{`(x+1)^{2}`, "(x+1)²"},
		{`{a+b}^{2}`, "(a+b)²"},
		{`e^{-x}`, "e⁻ˣ"},
		{`e^{\pi x}`, "e⁽πˣ⁾"},
		{`sin^{2}{(x)}`, "sin²{(x)}"},
		{`\frac{x^{2}}{2}`, `\frac{x²}{2}`},
		{`x_{1}^{2}`, "x_1²"},
		{`no carets`, `no carets`},
	}
	for _, tt := range tests {
		got, err := ExtractExponents(tt.in)
		if err != nil {
			t.Errorf("ExtractExponents(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ExtractExponents(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractExponents_Errors(t *testing.T) {
	_, err := ExtractExponents(`x^2`)
	var unsupported *latex.UnsupportedConstructError
	if !errors.As(err, &unsupported) {
		t.Errorf("ExtractExponents(x^2) error = %v, want UnsupportedConstructError", err)
	}

	_, err = ExtractExponents(`x^{2`)
	var unbalanced *brace.UnbalancedDelimiterError
	if !errors.As(err, &unbalanced) {
		t.Errorf("ExtractExponents(x^{2) error = %v, want UnbalancedDelimiterError", err)
	}

	_, err = ExtractExponents(`x}^{2}`)
	if !errors.As(err, &unbalanced) {
		t.Errorf("ExtractExponents(x}^{2}) error = %v, want UnbalancedDelimiterError", err)
	}
}

func TestResolveFractions(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`\frac{1}{2}`, "1/2"},
		{`\frac{a+b}{c}`, "(a+b)/c"},
		{`\frac{\frac{a}{b}}{c}`, "(a/b)/c"},
		{`\frac{1}{\frac{1}{x}}`, "1/(1/x)"},
		{`2\frac{1}{2}`, "2 1/2"},
		{`\frac{1}{2}+\frac{1}{3}`, "1/2 + 1/3"},
		{`\frac{\partial}{\partial x}(f)`, "∂/∂x (f)"},
		{`\frac{x²}{\pi}`, "x²/π"},
		{`\frac{{a}}{b}`, "a/b"},
		{`\sqrt{\frac{1}{2}}`, "√( 1/2 )"},
		{`x`, "x"},
	}
	for _, tt := range tests {
		got, err := ResolveFractions(tt.in)
		if err != nil {
			t.Errorf("ResolveFractions(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveFractions(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveFractions_Nested(t *testing.T) {
	s, want := "x", "x"
	for depth := 1; depth <= 8; depth++ {
		s = `\frac{` + s + `}{y}`
		if depth == 1 {
			want = "x/y"
		} else {
			want = "(" + want + ")/y"
		}

		got, err := ResolveFractions(s)
		require.NoError(t, err, "depth %d", depth)
		assert.Equal(t, want, got, "depth %d", depth)
		assert.Equal(t, depth, strings.Count(got, "/"), "depth %d", depth)
	}
}

func TestResolveFractions_Errors(t *testing.T) {
	var unbalanced *brace.UnbalancedDelimiterError
	_, err := ResolveFractions(`\frac{1}{2`)
	assert.True(t, errors.As(err, &unbalanced), "error = %v", err)

	var unsupported *latex.UnsupportedConstructError
	_, err = ResolveFractions(`\frac{1}`)
	assert.True(t, errors.As(err, &unsupported), "error = %v", err)

	_, err = ResolveFractions(`\frac12`)
	assert.True(t, errors.As(err, &unsupported), "error = %v", err)
}

func TestLocateFraction(t *testing.T) {
	f, err := LocateFraction(`{a{b}}{c}{d}+x`)
	require.NoError(t, err)
	assert.Equal(t, Fraction{Numerator: "a{b}", Denominator: "c", Post: "{d}+x"}, f)
}

func TestSplitFraction(t *testing.T) {
	got, err := SplitFraction(`{1}{2}+x`)
	require.NoError(t, err)
	assert.Equal(t, "1/2 +x", Tidy(got))
}

func TestSingleUnit(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"x", true},
		{"x̂", true},
		{"∂x", true},
		{"x²", true},
		{"12", true},
		{"(a +b)", true},
		{"a+b", false},
		{"a b", false},
		{"a/b", false},
		{"(a)(b)", false},
	}
	for _, tt := range tests {
		if got := SingleUnit(tt.in); got != tt.want {
			t.Errorf("SingleUnit(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTidy(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3x+ 1/2", "3x +1/2"},
		{"( a + b )", "(a +b)"},
		{"(a+b)/c", "(a +b)/c"},
		{"-x", "-x"},
		{"a  =  - 1", "a = -1"},
		{"x²+1", "x² +1"},
		{"(x)-(y)", "(x) -(y)"},
		{"  spaced   out  ", "spaced out"},
	}
	for _, tt := range tests {
		if got := Tidy(tt.in); got != tt.want {
			t.Errorf("Tidy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFixDerivative(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"∂/∂x (f)", "∂/∂x f"},
		{"d/dx (x²)", "d/dx x²"},
		{"d/dx (x² +1)", "d/dx (x² +1)"},
		{"d/dx sin(x)", "d/dx sin(x)"},
		{"d/dx f ", "d/dx f"},
	}
	for _, tt := range tests {
		got, err := FixDerivative(tt.in)
		if err != nil {
			t.Errorf("FixDerivative(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FixDerivative(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanup(t *testing.T) {
	assert.Equal(t, "a +b", Cleanup(`a\+ b`, true))
	// e + combining acute composes under NFC.
	assert.Equal(t, "\u00e9", Cleanup("e\u0301", true))
	assert.Equal(t, "e\u0301", Cleanup("e\u0301", false))
}

// ──────────────────────────────────────────────
// Renderer
// ──────────────────────────────────────────────

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		tree cas.Tree
		want string
	}{
		{"sum with fraction", cas.NewSnippet(`3 x + \frac{1}{2}`), "3x +1/2"},
		{"power", cas.NewSnippet(`x^{2}`), "x²"},
		{"nested power", cas.NewSnippet(`x^{y^{z}}`), "xʸᶻ"},
		{"grouped numerator", cas.NewSnippet(`\frac{a + b}{c}`), "(a +b)/c"},
		{"simple fraction", cas.NewSnippet(`\frac{a}{b}`), "a/b"},
		{"function", cas.NewSnippet(`\sin{\left(x \right)} + 1`), "sin(x) +1"},
		{"partial derivative", cas.Derive(cas.NewSnippet(`f`), "x"), "∂/∂x f"},
		{"ordinary derivative", cas.Derive(cas.NewSnippet(`x^{2}`), "x"), "d/dx x²"},
		{"second derivative", cas.Derive(cas.NewSnippet(`x^{3}`), "x", "x"), "d²/dx² x³"},
		{"derivative of sum", cas.Derive(cas.NewSnippet(`x + 1`), "x"), "d/dx (x +1)"},
		{"equation", cas.Eq(cas.NewSnippet(`3 x`), cas.NewSnippet(`\frac{1}{2}`)), "3x = 1/2"},
		{"equation rhs parens", cas.Eq(cas.NewSnippet(`y`), cas.NewSnippet(`\left(x + 1\right)`)), "y = x +1"},
		{"parsed equation", cas.Parse(`x^{2} = 4`), "x² = 4"},
	}
	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := r.Render(tt.tree)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.Text())
			assert.Equal(t, tt.tree.LaTeX(), expr.RawLatex())
			assert.Equal(t, tt.tree.IsEquation(), expr.IsEquation())
			assert.Equal(t, tt.tree.IsDerivative(), expr.IsDerivative())
			assert.NotContains(t, expr.Text(), `\`)
			assert.NotContains(t, expr.Text(), "^")
		})
	}
}

func TestRender_Variables(t *testing.T) {
	expr, err := New().Render(cas.NewSnippet(`3 x + \frac{1}{2}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, expr.Variables())

	expr, err = New().Render(cas.Eq(cas.NewSnippet(`y`), cas.NewSnippet(`x + y`)))
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x"}, expr.Variables())
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name   string
		tree   cas.Tree
		stage  Stage
		target error
	}{
		{"nil tree", nil, StageAcquire, ErrEmptyExpression},
		{"empty latex", cas.NewSnippet("  "), StageAcquire, ErrEmptyExpression},
		{"only markup", cas.NewSnippet(`$ $`), StageNormalize, ErrEmptyExpression},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Render(tt.tree)
			var re *RenderError
			require.True(t, errors.As(err, &re), "error = %v", err)
			assert.Equal(t, tt.stage, re.Stage)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestRender_StageErrors(t *testing.T) {
	var re *RenderError

	_, err := New().Render(cas.NewSnippet(`x^2`))
	require.True(t, errors.As(err, &re))
	assert.Equal(t, StageExponents, re.Stage)
	var unsupported *latex.UnsupportedConstructError
	assert.True(t, errors.As(err, &unsupported))

	_, err = New().Render(cas.NewSnippet(`\frac{1}{2`))
	require.True(t, errors.As(err, &re))
	assert.Equal(t, StageFractions, re.Stage)
	var unbalanced *brace.UnbalancedDelimiterError
	assert.True(t, errors.As(err, &unbalanced))

	_, err = New().Render(cas.NewSnippet(`\notacommand{x}`))
	require.True(t, errors.As(err, &re))
	assert.Equal(t, StageFractions, re.Stage)
	assert.True(t, errors.As(err, &unsupported))

	// \lneq has no mapping; it must not be split into \ln and "eq".
	expr, err := New().Render(cas.NewSnippet(`a \lneq b`))
	require.Error(t, err, "rendered %v", expr)
	assert.True(t, errors.As(err, &unsupported))
	assert.Equal(t, `\lneq`, unsupported.Construct)
}

func TestLatex(t *testing.T) {
	got, err := New().Latex(`3 x = \frac{1}{2}`)
	require.NoError(t, err)
	assert.Equal(t, "3x = 1/2", got)
}

func TestExpression_Result(t *testing.T) {
	expr, err := New().Render(cas.NewSnippet(`x^{2}`))
	require.NoError(t, err)

	with := expr.WithResult(" 4 ")
	assert.Equal(t, "x² = 4", with.Text())
	assert.Equal(t, "4", with.Result())
	assert.Equal(t, "x²", with.UnicodeText())
	assert.Equal(t, "x²", expr.Text(), "original is unchanged")

	assert.Equal(t, "x²", with.WithoutResult().Text())
	assert.Equal(t, "x²", with.WithoutResult().String())
}

func TestNewExpression(t *testing.T) {
	expr := NewExpression(`x`, "x", []string{"x", "x"})
	assert.Equal(t, []string{"x"}, expr.Variables())
	assert.False(t, expr.IsEquation())
}

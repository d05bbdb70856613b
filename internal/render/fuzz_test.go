package render

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/riverfjs/unimath/internal/brace"
	"github.com/riverfjs/unimath/internal/cas"
	"github.com/riverfjs/unimath/internal/latex"
)

var nestingSeeds = []string{
	`3 x + \frac{1}{2}`,
	`x^{2}`,
	`\frac{\partial}{\partial x}(f)`,
	`\frac{1}{x^{\frac{1}{2}}}`,
	`\frac{a^{2}}{b}^{3}`,
	`x^{\frac{a}{b^{c}}}`,
	`\frac{\frac{1}{x^{2}}}{y}`,
	`x^{y^{z}}`,
	`(a+b)^{2}`,
	`x^2`,
	`x^{`,
	`}^{2}`,
	"",
}

func typedError(err error) bool {
	var unsupported *latex.UnsupportedConstructError
	var unbalanced *brace.UnbalancedDelimiterError
	return errors.As(err, &unsupported) || errors.As(err, &unbalanced)
}

func FuzzExtractExponents(f *testing.F) {
	for _, s := range nestingSeeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}

		got, err := ExtractExponents(s)
		if err != nil {
			if !typedError(err) {
				t.Fatalf("ExtractExponents(%q) error %v has no typed cause", s, err)
			}
			return
		}
		if !strings.Contains(s, "^") && got != s {
			t.Fatalf("ExtractExponents(%q) = %q, want input unchanged", s, got)
		}
		// Escapes may legitimately render to a caret.
		if !strings.Contains(s, `\`) && strings.Contains(got, "^") {
			t.Fatalf("ExtractExponents(%q) = %q, caret left behind", s, got)
		}
	})
}

func FuzzRender(f *testing.F) {
	for _, s := range nestingSeeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}

		expr, err := New().Render(cas.NewSnippet(s))
		if err != nil {
			var re *RenderError
			if !errors.As(err, &re) {
				t.Fatalf("Render(%q) error %v is not a *RenderError", s, err)
			}
			if re.Stage == "" {
				t.Fatalf("Render(%q) error %v has no stage", s, err)
			}
			if !errors.Is(err, ErrEmptyExpression) && !typedError(err) {
				t.Fatalf("Render(%q) error %v has no typed cause", s, err)
			}
			return
		}

		text := expr.Text()
		if strings.Contains(text, `\frac`) {
			t.Fatalf("Render(%q) = %q, fraction left behind", s, text)
		}
		if !strings.Contains(strings.ReplaceAll(s, `\frac`, ""), `\`) && strings.Contains(text, "^") {
			t.Fatalf("Render(%q) = %q, caret left behind", s, text)
		}
		if !utf8.ValidString(text) {
			t.Fatalf("Render(%q) = %q, invalid UTF-8", s, text)
		}
	})
}

package latex

import (
	"errors"
	"strings"
	"testing"

	"github.com/riverfjs/unimath/internal/brace"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"greek", `\alpha+\beta`, "α+β"},
		{"superscript", `x^{2}`, "x²"},
		{"subscript", `x_{1}`, "x₁"},
		{"bare superscript token", `x^2`, "x²"},
		{"sqrt", `\sqrt{x}`, "√x"},
		{"sqrt compound", `\sqrt{x+1}`, "√(x+1)"},
		{"cube root", `\sqrt[3]{x}`, "∛x"},
		{"blackboard", `\mathbb{R}`, "ℝ"},
		{"calligraphic", `\mathcal{L}`, "ℒ"},
		{"negation", `\not\in`, "∉"},
		{"negation of plain rune", `\not=`, "≠"},
		{"fraction", `\frac{1}{2}`, "1/2"},
		{"mixed number", `2\frac{1}{2}`, "2 1/2"},
		{"fraction compound numerator", `\frac{a+b}{c}`, "(a+b)/c"},
		{"left right", `\left(x\right)`, "(x)"},
		{"control word swallows space", `\partial x`, "∂x"},
		{"operatorname", `\operatorname{atan}{x}`, "atanx"},
		{"non superscriptable exponent", `e^{\pi x}`, "e⁽πˣ⁾"},
		{"matrix", `\begin{pmatrix}1 & 2\\3 & 4\end{pmatrix}`, "(1, 2; 3, 4)"},
		{"binom", `\binom{n}{k}`, "C(n,k)"},
		{"spacing", `a\,b`, "a b"},
		{"plain text untouched", "3x +1/2", "3x +1/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Substitute(tt.input)
			if err != nil {
				t.Fatalf("Substitute(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Substitute(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSubstitute_Idempotent(t *testing.T) {
	inputs := []string{"3x +1/2", "x²", "∂/∂x f", "sin(x) = 1/2", "αβγ", ""}
	for _, in := range inputs {
		got, err := Substitute(in)
		if err != nil {
			t.Fatalf("Substitute(%q) error = %v", in, err)
		}
		if got != in {
			t.Errorf("Substitute(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestSubstitute_Unsupported(t *testing.T) {
	_, err := Substitute(`\foo{x}`)
	var uce *UnsupportedConstructError
	if !errors.As(err, &uce) {
		t.Fatalf("Substitute(`\\foo{x}`) error = %v, want UnsupportedConstructError", err)
	}
	if uce.Construct != `\foo` {
		t.Errorf("Construct = %q, want %q", uce.Construct, `\foo`)
	}
}

func TestSubstitute_Unbalanced(t *testing.T) {
	for _, in := range []string{`{x`, `x}`, `\frac{1}{2`} {
		_, err := Substitute(in)
		var ude *brace.UnbalancedDelimiterError
		if !errors.As(err, &ude) {
			t.Errorf("Substitute(%q) error = %v, want UnbalancedDelimiterError", in, err)
		}
	}
}

func TestSubstitute_MissingArgument(t *testing.T) {
	_, err := Substitute(`x^`)
	var uce *UnsupportedConstructError
	if !errors.As(err, &uce) {
		t.Fatalf("Substitute(`x^`) error = %v, want UnsupportedConstructError", err)
	}
}

func TestConvert_Lenient(t *testing.T) {
	got := Convert(`\foo + \alpha`)
	if !strings.Contains(got, `\foo`) || !strings.Contains(got, "α") {
		t.Errorf("Convert() = %q, want unknown command kept and \\alpha translated", got)
	}
	if got := Convert(`{x`); got != "x" {
		t.Errorf("Convert(`{x`) = %q, want %q", got, "x")
	}
}

func TestMakeSuperscript(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2", "²"},
		{"n+1", "ⁿ⁺¹"},
		{"-1", "⁻¹"},
		{"yᶻ", "ʸᶻ"},
		{"q", "⁽q⁾"},
		{"πx", "⁽πˣ⁾"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MakeSuperscript(tt.in); got != tt.want {
			t.Errorf("MakeSuperscript(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if strings.Contains(MakeSuperscript(tt.in), "^") {
			t.Errorf("MakeSuperscript(%q) emitted a caret", tt.in)
		}
	}
}

func TestMakeSubscript(t *testing.T) {
	if got := MakeSubscript("12"); got != "₁₂" {
		t.Errorf("MakeSubscript(\"12\") = %q, want %q", got, "₁₂")
	}
	if got := MakeSubscript("b"); got != "₍b₎" {
		t.Errorf("MakeSubscript(\"b\") = %q, want %q", got, "₍b₎")
	}
}

func TestIsAtomic(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"x", true},
		{"12", true},
		{"∂x", true},
		{"x²", true},
		{"√x", true},
		{"(a+b)", true},
		{"a+b", false},
		{"1/2", false},
		{"a b", false},
		{"(a)+(b)", false},
	}
	for _, tt := range tests {
		if got := IsAtomic(tt.in); got != tt.want {
			t.Errorf("IsAtomic(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTranslateCombining(t *testing.T) {
	if got := TranslateCombining("\\hat", "x"); got != "x̂" {
		t.Errorf("TranslateCombining(hat, x) = %q", got)
	}
	if got := TranslateCombining("\\overline", "ab"); got != "a̅b̅" {
		t.Errorf("TranslateCombining(overline, ab) = %q", got)
	}
	if got := TranslateCombining("\\unknown", "x"); got != "x" {
		t.Errorf("TranslateCombining(unknown, x) = %q, want %q", got, "x")
	}
}

func TestIsCalligraphic(t *testing.T) {
	for _, r := range "ℒℱ𝒪" {
		if !IsCalligraphic(r) {
			t.Errorf("IsCalligraphic(%q) = false", r)
		}
	}
	if IsCalligraphic('L') {
		t.Error("IsCalligraphic('L') = true")
	}
}

func TestContainsLatexSymbols(t *testing.T) {
	if !ContainsLatexSymbols(`\frac{1}{2}`) {
		t.Error("ContainsLatexSymbols(frac) = false")
	}
	if ContainsLatexSymbols("3x + 1") {
		t.Error("ContainsLatexSymbols(plain) = true")
	}
}

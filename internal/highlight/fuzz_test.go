package highlight

import (
	"strings"
	"testing"
)

func FuzzHighlight(f *testing.F) {
	f.Add("2xsin(x)", "x")
	f.Add("ysinhxlog", "x y")
	f.Add("3x + 1/2 = y²", "x y")
	f.Add("∂f/∂x", "f x")
	f.Add("xy", "x y xy")
	f.Add("", "")
	f.Add("\xff\xfe", "x")

	f.Fuzz(func(t *testing.T, text, vars string) {
		spans := Highlight(text, strings.Fields(vars))
		if got := join(spans); got != text {
			t.Fatalf("Highlight(%q, %q) joined = %q", text, vars, got)
		}
		for _, s := range spans {
			if s.Text == "" {
				t.Fatalf("Highlight(%q, %q) produced an empty %v span", text, vars, s.Class)
			}
		}
		for i := 1; i < len(spans); i++ {
			if spans[i-1].Class == ClassNone && spans[i].Class == ClassNone {
				t.Fatalf("Highlight(%q, %q) left adjacent plain spans at %d", text, vars, i)
			}
		}
	})
}

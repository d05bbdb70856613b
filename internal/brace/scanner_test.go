package brace

import (
	"errors"
	"strings"
	"testing"
)

func TestFindMatchingClose(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		start int
		want  int
	}{
		{"single group", "{x}", 0, 2},
		{"nested", "{a{b}c}", 0, 6},
		{"inner group", "{a{b}c}", 2, 4},
		{"followed by text", "{1}{2}", 0, 2},
		{"second group", "{1}{2}", 3, 5},
		{"deep", "{{{}}}", 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindMatchingClose(tt.s, tt.start)
			if err != nil {
				t.Fatalf("FindMatchingClose(%q, %d) error = %v", tt.s, tt.start, err)
			}
			if got != tt.want {
				t.Errorf("FindMatchingClose(%q, %d) = %d, want %d", tt.s, tt.start, got, tt.want)
			}
		})
	}
}

func TestFindMatchingClose_Unbalanced(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		start int
	}{
		{"never closes", "{a{b}", 0},
		{"not an opening brace", "a{b}", 0},
		{"out of range", "{}", 5},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindMatchingClose(tt.s, tt.start)
			var ude *UnbalancedDelimiterError
			if !errors.As(err, &ude) {
				t.Fatalf("FindMatchingClose(%q) error = %v, want UnbalancedDelimiterError", tt.s, err)
			}
		})
	}
}

func TestFindMatchingOpen(t *testing.T) {
	tests := []struct {
		s    string
		end  int
		want int
	}{
		{"{x}", 2, 0},
		{"{a{b}c}", 6, 0},
		{"{a{b}c}", 4, 2},
		{"x^{y}", 4, 2},
	}
	for _, tt := range tests {
		got, err := FindMatchingOpen(tt.s, tt.end)
		if err != nil {
			t.Fatalf("FindMatchingOpen(%q, %d) error = %v", tt.s, tt.end, err)
		}
		if got != tt.want {
			t.Errorf("FindMatchingOpen(%q, %d) = %d, want %d", tt.s, tt.end, got, tt.want)
		}
	}
}

func TestFindMatchingOpen_Unbalanced(t *testing.T) {
	if _, err := FindMatchingOpen("a}", 1); err == nil {
		t.Error("FindMatchingOpen(\"a}\") should fail")
	}
	if _, err := FindMatchingOpen("{a", 1); err == nil {
		t.Error("FindMatchingOpen on a non-brace should fail")
	}
}

// Concatenated well-formed groups: close(open(x)) returns the boundary we started from.
func TestRoundTrip(t *testing.T) {
	groups := []string{"{}", "{a}", "{a{b}}", "{{x}{y}}", "{\\frac{1}{2}}", "{{{z}}}"}
	for n := 1; n <= len(groups); n++ {
		s := strings.Join(groups[:n], "")
		for i := 0; i < len(s); i++ {
			if s[i] != '}' {
				continue
			}
			open, err := FindMatchingOpen(s, i)
			if err != nil {
				t.Fatalf("FindMatchingOpen(%q, %d) error = %v", s, i, err)
			}
			end, err := FindMatchingClose(s, open)
			if err != nil {
				t.Fatalf("FindMatchingClose(%q, %d) error = %v", s, open, err)
			}
			if end != i {
				t.Errorf("round trip on %q from %d = %d", s, i, end)
			}
		}
	}
}

func TestParensEnclosed(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"(a+b)", true},
		{"((a))", true},
		{"(a)+(b)", false},
		{"a", false},
		{"(a", false},
		{"()", true},
	}
	for _, tt := range tests {
		if got := Parens.Enclosed(tt.s); got != tt.want {
			t.Errorf("Parens.Enclosed(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestBalanced(t *testing.T) {
	if !Braces.Balanced("{a}{b{c}}") {
		t.Error("Balanced should accept well-formed groups")
	}
	if Braces.Balanced("}{") {
		t.Error("Balanced should reject a close before its open")
	}
	if Braces.Balanced("{{}") {
		t.Error("Balanced should reject a dangling open")
	}
}

func TestSpan(t *testing.T) {
	s := "x^{ab}"
	sp, err := Find(s, 2)
	if err != nil {
		t.Fatal(err)
	}
	if sp.Inner(s) != "ab" {
		t.Errorf("Inner() = %q, want %q", sp.Inner(s), "ab")
	}
	if sp.Outer(s) != "{ab}" {
		t.Errorf("Outer() = %q, want %q", sp.Outer(s), "{ab}")
	}
}

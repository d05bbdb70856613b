// Package brace finds balanced delimiter regions in LaTeX fragments.
//
// Every component that needs to reason about nesting depth goes through
// FindMatchingClose / FindMatchingOpen, so malformed input fails the same
// way no matter which stage trips over it.
package brace

import "fmt"

// Pair is an opening/closing delimiter pair.
type Pair struct {
	Open  byte
	Close byte
}

var (
	// Braces is the LaTeX group delimiter {...}.
	Braces = Pair{Open: '{', Close: '}'}
	// Parens is the plain parenthesis pair (...).
	Parens = Pair{Open: '(', Close: ')'}
)

// Span is a balanced region: s[Open] is the opening delimiter and s[Close]
// its depth-matching closing delimiter.
type Span struct {
	Open  int
	Close int
}

// Inner returns the text between the delimiters.
func (sp Span) Inner(s string) string {
	return s[sp.Open+1 : sp.Close]
}

// Outer returns the region including both delimiters.
func (sp Span) Outer(s string) string {
	return s[sp.Open : sp.Close+1]
}

// UnbalancedDelimiterError reports a delimiter that has no partner.
type UnbalancedDelimiterError struct {
	Fragment string
	Offset   int
	Delim    byte
}

func (e *UnbalancedDelimiterError) Error() string {
	return fmt.Sprintf("unbalanced %q at offset %d in %q", e.Delim, e.Offset, e.Fragment)
}

// FindMatchingClose returns the offset of the '}' matching the '{' at start.
func FindMatchingClose(s string, start int) (int, error) {
	return Braces.FindMatchingClose(s, start)
}

// FindMatchingOpen returns the offset of the '{' matching the '}' at end.
func FindMatchingOpen(s string, end int) (int, error) {
	return Braces.FindMatchingOpen(s, end)
}

// Find returns the balanced brace span opening at start.
func Find(s string, start int) (Span, error) {
	end, err := FindMatchingClose(s, start)
	if err != nil {
		return Span{}, err
	}
	return Span{Open: start, Close: end}, nil
}

// FindMatchingClose scans forward from s[start] (which must be p.Open) and
// returns the offset of the delimiter that brings the depth back to zero.
func (p Pair) FindMatchingClose(s string, start int) (int, error) {
	if start < 0 || start >= len(s) || s[start] != p.Open {
		return 0, &UnbalancedDelimiterError{Fragment: s, Offset: start, Delim: p.Open}
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case p.Open:
			depth++
		case p.Close:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, &UnbalancedDelimiterError{Fragment: s, Offset: start, Delim: p.Open}
}

// FindMatchingOpen scans backward from s[end] (which must be p.Close) and
// returns the offset of its opening partner.
func (p Pair) FindMatchingOpen(s string, end int) (int, error) {
	if end < 0 || end >= len(s) || s[end] != p.Close {
		return 0, &UnbalancedDelimiterError{Fragment: s, Offset: end, Delim: p.Close}
	}
	depth := 0
	for i := end; i >= 0; i-- {
		switch s[i] {
		case p.Close:
			depth++
		case p.Open:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, &UnbalancedDelimiterError{Fragment: s, Offset: end, Delim: p.Close}
}

// Enclosed reports whether s is exactly one balanced group of p, e.g. "(a+b)"
// but not "(a)+(b)".
func (p Pair) Enclosed(s string) bool {
	if len(s) < 2 || s[0] != p.Open || s[len(s)-1] != p.Close {
		return false
	}
	end, err := p.FindMatchingClose(s, 0)
	return err == nil && end == len(s)-1
}

// Balanced reports whether every delimiter of p in s has a partner.
func (p Pair) Balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case p.Open:
			depth++
		case p.Close:
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

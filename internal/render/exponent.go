package render

import (
	"strings"
	"unicode/utf8"

	"github.com/riverfjs/unimath/internal/brace"
	"github.com/riverfjs/unimath/internal/latex"
)

// ExtractExponents replaces every base^{exponent} in s with its raised-glyph
// form, leftmost first. Exponent bodies are resolved before their base so
// nested exponents read inside out. A caret not followed by a braced group is
// rejected rather than passed through.
func ExtractExponents(s string) (string, error) {
	for {
		caret := strings.IndexByte(s, '^')
		if caret < 0 {
			return s, nil
		}
		next, err := resolveExponent(s, caret)
		if err != nil {
			return "", err
		}
		if len(next) >= len(s) && strings.IndexByte(next, '^') == caret {
			return "", &latex.UnsupportedConstructError{
				Construct: "^",
				Fragment:  s,
				Reason:    "exponent did not resolve",
			}
		}
		s = next
	}
}

func resolveExponent(s string, caret int) (string, error) {
	if caret+1 >= len(s) || s[caret+1] != '{' {
		return "", &latex.UnsupportedConstructError{
			Construct: "^",
			Fragment:  s[caret:],
			Reason:    "exponent must be a braced group",
		}
	}
	end, err := brace.FindMatchingClose(s, caret+1)
	if err != nil {
		return "", err
	}
	body, err := ExtractExponents(s[caret+2 : end])
	if err != nil {
		return "", err
	}

	start, err := baseStart(s, caret)
	if err != nil {
		return "", err
	}
	base, err := latex.Substitute(s[start:caret])
	if err != nil {
		return "", err
	}
	exponent, err := latex.Substitute(body)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(base) > 1 {
		base = latex.MaybeParenthesize(base)
	}
	return s[:start] + base + latex.MakeSuperscript(exponent) + s[end+1:], nil
}

// baseStart finds where the base of the exponent at caret begins: a
// parenthesised group, a command with its braced arguments, a braced group, a
// control word, or the single preceding rune.
func baseStart(s string, caret int) (int, error) {
	if caret == 0 {
		return 0, nil
	}
	if s[caret-1] == ')' {
		return brace.Parens.FindMatchingOpen(s, caret-1)
	}
	if s[caret-1] != '}' {
		if cw := controlWordStart(s, caret); cw >= 0 {
			return cw, nil
		}
		_, size := utf8.DecodeLastRuneInString(s[:caret])
		return caret - size, nil
	}

	last, err := brace.FindMatchingOpen(s, caret-1)
	if err != nil {
		return 0, err
	}
	start := last
	for {
		if cw := controlWordStart(s, start); cw >= 0 {
			return cw, nil
		}
		if start == 0 || s[start-1] != '}' {
			return last, nil
		}
		if start, err = brace.FindMatchingOpen(s, start-1); err != nil {
			return 0, err
		}
	}
}

// controlWordStart returns the index of the backslash of a control word
// ending at end, or -1.
func controlWordStart(s string, end int) int {
	i := end
	for i > 0 && isLetter(s[i-1]) {
		i--
	}
	if i == end || i == 0 || s[i-1] != '\\' {
		return -1
	}
	if i >= 2 && s[i-2] == '\\' {
		return -1
	}
	return i - 1
}

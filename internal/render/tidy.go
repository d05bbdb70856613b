package render

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/riverfjs/unimath/internal/brace"
	"github.com/riverfjs/unimath/internal/latex"
)

// Tidy normalises spacing to the "a +b" convention: whitespace runs collapse,
// no space follows "(" or a sign or precedes ")", and a binary sign gets one
// space before it.
func Tidy(s string) string {
	runes := []rune(strings.Join(strings.Fields(s), " "))
	out := make([]rune, 0, len(runes)+8)
	for i, r := range runes {
		var prev rune
		if n := len(out); n > 0 {
			prev = out[n-1]
		}
		switch {
		case r == ' ':
			if prev == '(' || isSign(prev) || runes[i+1] == ')' {
				continue
			}
		case isSign(r):
			if prev == ')' || (prev != 0 && prev != ' ' && latex.IsAtomicRune(prev)) {
				out = append(out, ' ')
			}
		}
		out = append(out, r)
	}
	return string(out)
}

func isSign(r rune) bool {
	return r == '+' || r == '-' || r == '−'
}

// FixDerivative unwraps the argument group of a rendered derivative:
// "∂/∂x (f)" becomes "∂/∂x f". Only a trailing group that is separated by a
// space and holds a single unit is unwrapped; "sin(x)" is left alone.
func FixDerivative(text string) (string, error) {
	text = strings.TrimRight(text, " ")
	if !strings.HasSuffix(text, ")") {
		return text, nil
	}
	open, err := brace.Parens.FindMatchingOpen(text, len(text)-1)
	if err != nil {
		return "", err
	}
	if open == 0 || text[open-1] != ' ' {
		return text, nil
	}
	inner := text[open+1 : len(text)-1]
	if !SingleUnit(inner) || brace.Parens.Enclosed(inner) {
		return text, nil
	}
	return text[:open] + inner, nil
}

// Cleanup produces the final text: spacing is tidied, residual backslashes
// are dropped and, when nfc is set, the result is put in NFC form.
func Cleanup(text string, nfc bool) string {
	text = strings.ReplaceAll(text, `\`, "")
	text = Tidy(text)
	if nfc {
		text = norm.NFC.String(text)
	}
	return text
}

// stripParens removes one enclosing pair of parentheses.
func stripParens(text string) string {
	text = strings.TrimSpace(text)
	if brace.Parens.Enclosed(text) {
		return strings.TrimSpace(text[1 : len(text)-1])
	}
	return text
}

package cas

import (
	"unicode"
	"unicode/utf8"

	"github.com/riverfjs/unimath/internal/brace"
	"github.com/riverfjs/unimath/internal/latex"
)

// textGroups are commands whose braced argument is prose, not math.
var textGroups = map[string]bool{
	"text": true, "textrm": true, "textit": true, "textbf": true, "mbox": true,
	"mathrm": true, "operatorname": true, "begin": true, "end": true,
}

// constants are letters that never name a variable.
var constants = map[string]bool{"e": true, "i": true, "π": true}

// InferVariables lists the single-letter variables used in a LaTeX source, in
// first-seen order. Greek letter commands contribute their glyph. Subscripts,
// text arguments and the constants e, i and π are skipped.
func InferVariables(src string) []string {
	var vars []string
	add := func(name string) {
		if !constants[name] {
			vars = append(vars, name)
		}
	}

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\\':
			j := i + 1
			for j < len(src) && isASCIILetter(src[j]) {
				j++
			}
			name := src[i+1 : j]
			if name == "" {
				i += 2
				continue
			}
			if textGroups[name] {
				j = skipGroup(src, j)
			} else if sym, ok := latex.LatexSymbols[`\`+name]; ok && isLetterGlyph(sym) {
				add(sym)
			}
			i = j
		case c == '_':
			i = skipGroup(src, i+1)
		case isASCIILetter(c):
			add(string(c))
			i++
		default:
			r, size := utf8.DecodeRuneInString(src[i:])
			if r >= utf8.RuneSelf && unicode.IsLetter(r) {
				add(string(r))
			}
			i += size
		}
	}
	return Unique(vars)
}

// skipGroup returns the index after the argument starting at i: a braced
// group or a single byte.
func skipGroup(src string, i int) int {
	for i < len(src) && src[i] == ' ' {
		i++
	}
	if i >= len(src) {
		return i
	}
	if src[i] != '{' {
		return i + 1
	}
	close, err := brace.FindMatchingClose(src, i)
	if err != nil {
		return len(src)
	}
	return close + 1
}

func isLetterGlyph(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size == len(s) && unicode.IsLetter(r)
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

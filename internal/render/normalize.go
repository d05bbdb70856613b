package render

import (
	"strings"

	"github.com/riverfjs/unimath/internal/brace"
)

// normalizer strips presentation-only markup. Arrow commands sharing a
// prefix with \left and \right map to themselves so they survive;
// strings.Replacer tries pairs in order.
var normalizer = strings.NewReplacer(
	`\leftarrow`, `\leftarrow`,
	`\leftrightarrow`, `\leftrightarrow`,
	`\leftharpoonup`, `\leftharpoonup`,
	`\leftharpoondown`, `\leftharpoondown`,
	`\rightarrow`, `\rightarrow`,
	`\rightleftharpoons`, `\rightleftharpoons`,
	`\rightharpoonup`, `\rightharpoonup`,
	`\rightharpoondown`, `\rightharpoondown`,
	`\left.`, "",
	`\right.`, "",
	`\left`, "",
	`\right`, "",
	`\displaystyle`, "",
	`\,`, "",
	`\;`, "",
	`\:`, "",
	`\!`, "",
	`\quad`, "",
	`\qquad`, "",
	`\dfrac`, `\frac`,
	`\tfrac`, `\frac`,
	"$", "",
)

// namedFunctions are rewritten to bare identifiers. They are matched as
// whole control words, so \lneq is not read as \ln followed by "eq".
var namedFunctions = map[string]string{
	`\log`: "log", `\ln`: "ln", `\exp`: "exp",
	`\sin`: "sin", `\cos`: "cos", `\tan`: "tan",
}

// proseCommands take an argument whose whitespace is significant.
var proseCommands = map[string]bool{
	`\text`: true, `\textrm`: true, `\textit`: true, `\textbf`: true,
	`\mbox`: true, `\mathrm`: true, `\operatorname`: true,
}

// Normalize applies the fixed replacement table, rewrites named functions
// and drops whitespace. A single space is kept after a control word so
// `\partial x` does not fuse into an unknown command, and prose arguments
// are copied verbatim.
func Normalize(latex string) string {
	s := normalizer.Replace(latex)

	var b strings.Builder
	b.Grow(len(s))
	afterWord := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && isLetter(s[i+1]):
			j := i + 1
			for j < len(s) && isLetter(s[j]) {
				j++
			}
			if bare, ok := namedFunctions[s[i:j]]; ok {
				b.WriteString(bare)
				i = j - 1
				afterWord = false
				continue
			}
			b.WriteString(s[i:j])
			if proseCommands[s[i:j]] && j < len(s) && s[j] == '{' {
				if close, err := brace.FindMatchingClose(s, j); err == nil {
					b.WriteString(s[j : close+1])
					i = close
					break
				}
			}
			i = j - 1
			afterWord = true
			continue
		case c == '\\' && i+1 < len(s):
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i++
		case isSpace(c):
			j := i
			for j < len(s) && isSpace(s[j]) {
				j++
			}
			if afterWord && j < len(s) && isLetter(s[j]) {
				b.WriteByte(' ')
			}
			i = j - 1
		default:
			b.WriteByte(c)
		}
		afterWord = false
	}
	return b.String()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

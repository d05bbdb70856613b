// Package latex is the glyph substitution table: it maps flat LaTeX snippets
// (no pending fractions or exponents to restructure) to Unicode text.
package latex

import "strings"

var (
	strictParser  = NewParser(WithStrict(true))
	lenientParser = NewParser()
)

// Substitute converts a flat snippet with the strict parser. Unknown control
// sequences fail with *UnsupportedConstructError.
func Substitute(latex string) (string, error) {
	if !NeedsConversion(latex) {
		return latex, nil
	}
	return strictParser.Parse(latex)
}

// Convert converts a snippet, leaving anything it cannot translate in place.
func Convert(latex string) string {
	if !NeedsConversion(latex) {
		return latex
	}
	return lenientParser.Convert(latex)
}

// NeedsConversion reports whether s still contains LaTeX markup. Text that
// does not is returned unchanged by Substitute and Convert.
func NeedsConversion(s string) bool {
	return strings.ContainsAny(s, "\\{}^_")
}

// ContainsLatexSymbols reports whether content uses a command the table knows.
func ContainsLatexSymbols(content string) bool {
	patterns := []string{`\frac`, `\sqrt`, `\begin`, `^{`, `_{`}
	for _, pattern := range patterns {
		if strings.Contains(content, pattern) {
			return true
		}
	}
	for cmd := range LatexSymbols {
		if len(cmd) > 2 && strings.Contains(content, cmd) {
			return true
		}
	}
	for cmd := range LatexStyles {
		if strings.Contains(content, cmd) {
			return true
		}
	}
	return false
}

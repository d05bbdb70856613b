package highlight

import (
	"unicode"
	"unicode/utf8"

	"github.com/riverfjs/unimath/internal/latex"
)

// OperatorNames are the named functions highlighted as whole words.
var OperatorNames = []string{
	"sin", "cos", "tan", "atan", "asin", "acos",
	"sinh", "cosh", "tanh", "sqrt", "log", "ln", "exp",
}

// Rule tags the matches of Match with Class.
type Rule struct {
	Class TokenClass
	Match Matcher
}

// ClassTable is an ordered, read-only list of rules. Variables are always
// matched first, then the rules in order. Operator names fused to a
// variable, as in "xsin", are left for the rules.
type ClassTable struct {
	rules []Rule
}

// NewClassTable creates a table from rules.
func NewClassTable(rules ...Rule) *ClassTable {
	return &ClassTable{rules: append([]Rule(nil), rules...)}
}

var defaultTable = NewClassTable(
	Rule{ClassOperatorName, Words(OperatorNames...)},
	Rule{ClassDerivativeSymbol, Runes(Set("∂∇"), true)},
	Rule{ClassCalligraphic, Runes(latex.IsCalligraphic, true)},
	Rule{ClassSuperscript, Runes(latex.IsSuperscript, false)},
	Rule{ClassOperatorSymbol, Runes(Set("-+*:_|/−×·÷±∓√∛∜∫∑∏"), true)},
	Rule{ClassParenthesis, Runes(Set("()[]{}⟨⟩"), true)},
	Rule{ClassEquals, Runes(Set("=≠≈≡"), true)},
	Rule{ClassDigit, Numbers()},
)

// DefaultClassTable returns the shared default table.
func DefaultClassTable() *ClassTable {
	return defaultTable
}

// Rules returns a copy of the table's rules.
func (t *ClassTable) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Overlay classifies text.
func (t *ClassTable) Overlay(text string, variables []string) *Overlay {
	o := NewOverlay(text).Apply(ClassVariable, Variables(variables, OperatorNames...))
	for _, rule := range t.rules {
		o = o.Apply(rule.Class, rule.Match)
	}
	return o
}

// Highlight splits text into classified spans. It never fails: anything no
// rule claims is returned as plain text.
func (t *ClassTable) Highlight(text string, variables []string) []Span {
	return t.Overlay(text, variables).Spans()
}

// Highlight classifies text with the default table.
func Highlight(text string, variables []string) []Span {
	return defaultTable.Highlight(text, variables)
}

// Numbers matches runs of digits, with a decimal point allowed between
// digits.
func Numbers() Matcher {
	return func(text string) []Range {
		var out []Range
		for i := 0; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			if !unicode.IsDigit(r) {
				i += size
				continue
			}
			start := i
			for i < len(text) {
				r, size := utf8.DecodeRuneInString(text[i:])
				if unicode.IsDigit(r) {
					i += size
					continue
				}
				if r == '.' && i+1 < len(text) {
					if next, _ := utf8.DecodeRuneInString(text[i+1:]); unicode.IsDigit(next) {
						i++
						continue
					}
				}
				break
			}
			out = append(out, Range{start, i})
		}
		return out
	}
}

// Package highlight classifies the substrings of rendered math text.
//
// Classification runs over an immutable list of segments. Each rule splits
// only the segments no earlier rule has claimed, so a tagged span is never
// rescanned and the concatenated span text always equals the input.
package highlight

import "fmt"

// TokenClass is the category of a highlighted substring.
type TokenClass uint8

const (
	ClassNone TokenClass = iota
	ClassVariable
	ClassOperatorName
	ClassDerivativeSymbol
	ClassCalligraphic
	ClassSuperscript
	ClassOperatorSymbol
	ClassParenthesis
	ClassEquals
	ClassDigit

	classCount
)

var classNames = [classCount]string{
	ClassNone:             "none",
	ClassVariable:         "variable",
	ClassOperatorName:     "operator-name",
	ClassDerivativeSymbol: "derivative-symbol",
	ClassCalligraphic:     "calligraphic",
	ClassSuperscript:      "superscript",
	ClassOperatorSymbol:   "operator-symbol",
	ClassParenthesis:      "parenthesis",
	ClassEquals:           "equals",
	ClassDigit:            "digit",
}

// String returns the class name used in theme files and markup.
func (c TokenClass) String() string {
	if c < classCount {
		return classNames[c]
	}
	return fmt.Sprintf("TokenClass(%d)", uint8(c))
}

// Classes lists every class except ClassNone.
func Classes() []TokenClass {
	out := make([]TokenClass, 0, classCount-1)
	for c := ClassVariable; c < classCount; c++ {
		out = append(out, c)
	}
	return out
}

// ParseClass looks up a class by name.
func ParseClass(name string) (TokenClass, error) {
	for c := ClassNone; c < classCount; c++ {
		if classNames[c] == name {
			return c, nil
		}
	}
	return ClassNone, fmt.Errorf("unknown token class %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (c TokenClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *TokenClass) UnmarshalText(text []byte) error {
	parsed, err := ParseClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Span is a run of text with its class. Plain text has ClassNone.
type Span struct {
	Text  string     `json:"text"`
	Class TokenClass `json:"class"`
}

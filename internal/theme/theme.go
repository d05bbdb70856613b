// Package theme maps token classes to display styles and renders highlighted
// spans for terminals, HTML and inline markup.
package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/riverfjs/unimath/internal/highlight"
)

// Style is how one token class is displayed.
type Style struct {
	// Color is a "#rrggbb" foreground colour; empty keeps the default.
	Color     string `toml:"color" yaml:"color"`
	Bold      bool   `toml:"bold" yaml:"bold"`
	Italic    bool   `toml:"italic" yaml:"italic"`
	Underline bool   `toml:"underline" yaml:"underline"`
}

// IsZero reports whether s changes nothing.
func (s Style) IsZero() bool {
	return s == (Style{})
}

// Theme is an immutable token-class → style mapping.
type Theme struct {
	name   string
	text   Style
	styles map[highlight.TokenClass]Style
}

// New builds a theme. text styles plain spans.
func New(name string, text Style, styles map[highlight.TokenClass]Style) (*Theme, error) {
	t := &Theme{name: name, styles: make(map[highlight.TokenClass]Style, len(styles))}
	var err error
	if t.text, err = normalize(text); err != nil {
		return nil, fmt.Errorf("theme %s: text: %w", name, err)
	}
	for class, st := range styles {
		if class == highlight.ClassNone {
			continue
		}
		if t.styles[class], err = normalize(st); err != nil {
			return nil, fmt.Errorf("theme %s: %s: %w", name, class, err)
		}
	}
	return t, nil
}

func mustNew(name string, text Style, styles map[highlight.TokenClass]Style) *Theme {
	t, err := New(name, text, styles)
	if err != nil {
		panic(err)
	}
	return t
}

// normalize validates the colour and rewrites it as lowercase #rrggbb.
func normalize(s Style) (Style, error) {
	if s.Color == "" {
		return s, nil
	}
	c, err := colorful.Hex(strings.TrimSpace(s.Color))
	if err != nil {
		return s, fmt.Errorf("invalid colour %q: %w", s.Color, err)
	}
	s.Color = c.Hex()
	return s, nil
}

// Name returns the theme name.
func (t *Theme) Name() string { return t.name }

// Text returns the style of unclassified text.
func (t *Theme) Text() Style { return t.text }

// StyleFor returns the style of class, falling back to the text style.
func (t *Theme) StyleFor(class highlight.TokenClass) Style {
	if st, ok := t.styles[class]; ok {
		return st
	}
	return t.text
}

// Classes lists the classes the theme styles explicitly, in class order.
func (t *Theme) Classes() []highlight.TokenClass {
	out := make([]highlight.TokenClass, 0, len(t.styles))
	for c := range t.styles {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ──────────────────────────────────────────────
// Built-in themes
// ──────────────────────────────────────────────

// Material palette.
const (
	orange        = "#ff9800"
	orangeLighter = "#ffcc80"
	redDark       = "#d32f2f"
	red           = "#f44336"
	blue          = "#2196f3"
	blueLight     = "#64b5f6"
	indigoLight   = "#7986cb"
	indigoLighter = "#9fa8da"
	pink          = "#e91e63"
)

var builtins = map[string]*Theme{
	"default": mustNew("default", Style{Color: indigoLighter}, map[highlight.TokenClass]Style{
		highlight.ClassVariable:         {Color: orange},
		highlight.ClassDigit:            {Color: orangeLighter},
		highlight.ClassSuperscript:      {Color: orangeLighter},
		highlight.ClassOperatorSymbol:   {Color: redDark},
		highlight.ClassOperatorName:     {Color: blueLight},
		highlight.ClassDerivativeSymbol: {Color: indigoLight},
		highlight.ClassCalligraphic:     {Color: pink},
		highlight.ClassParenthesis:      {Color: blue},
		highlight.ClassEquals:           {Color: red},
	}),
	"mono": mustNew("mono", Style{}, map[highlight.TokenClass]Style{
		highlight.ClassVariable:         {Italic: true},
		highlight.ClassOperatorName:     {Bold: true},
		highlight.ClassDerivativeSymbol: {Bold: true},
		highlight.ClassEquals:           {Bold: true},
	}),
}

// Default returns the built-in colour theme.
func Default() *Theme { return builtins["default"] }

// Builtin looks up a built-in theme by name.
func Builtin(name string) (*Theme, error) {
	if t, ok := builtins[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unknown theme %q", name)
}

// Names lists the built-in theme names.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

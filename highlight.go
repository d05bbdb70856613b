package unimath

import (
	"io"

	"github.com/riverfjs/unimath/internal/buffer"
	"github.com/riverfjs/unimath/internal/highlight"
	"github.com/riverfjs/unimath/internal/theme"
)

// 导出类型别名
type (
	Theme      = theme.Theme
	ThemeStyle = theme.Style
	ClassTable = highlight.ClassTable
	TokenClass = highlight.TokenClass
	Span       = highlight.Span
)

// Token classes.
const (
	ClassNone             = highlight.ClassNone
	ClassVariable         = highlight.ClassVariable
	ClassOperatorName     = highlight.ClassOperatorName
	ClassDerivativeSymbol = highlight.ClassDerivativeSymbol
	ClassCalligraphic     = highlight.ClassCalligraphic
	ClassSuperscript      = highlight.ClassSuperscript
	ClassOperatorSymbol   = highlight.ClassOperatorSymbol
	ClassParenthesis      = highlight.ClassParenthesis
	ClassEquals           = highlight.ClassEquals
	ClassDigit            = highlight.ClassDigit
)

// LoadTheme returns a built-in theme by name or reads a .toml/.yaml theme
// file.
func LoadTheme(nameOrPath string) (*Theme, error) {
	return theme.Load(nameOrPath)
}

// Highlight splits a rendered expression into classified spans. The
// expression's variables are matched first.
func Highlight(expr *RenderedExpression, opts ...Option) []Span {
	return HighlightText(expr.Text(), expr.Variables(), opts...)
}

// HighlightText classifies arbitrary text. It never fails.
func HighlightText(text string, variables []string, opts ...Option) []Span {
	options := applyOptions(opts...)
	return options.ClassTable.Highlight(text, variables)
}

// HighlightEntities returns the text of spans with one entity per
// classified span. Entity types are class names; offsets are UTF-16.
func HighlightEntities(spans []Span) (string, []Entity) {
	buf := buffer.New()
	writeSpans(buf, spans)
	return buf.String(), buf.Entities()
}

func writeSpans(buf *buffer.TextBuffer, spans []Span) {
	for _, sp := range spans {
		if sp.Class == ClassNone {
			buf.Write(sp.Text)
			continue
		}
		buf.WriteEntity(sp.Text, sp.Class.String())
	}
}

// ──────────────────────────────────────────────
// Formatters
// ──────────────────────────────────────────────

// FormatANSI styles spans for the terminal behind w. The colour profile is
// detected from w; nothing is written.
func FormatANSI(w io.Writer, spans []Span, opts ...Option) string {
	options := applyOptions(opts...)
	return theme.NewTerminal(options.theme(), w).Render(spans)
}

// FormatHTML wraps spans in <span class="um-<class>"> elements.
func FormatHTML(spans []Span) string {
	return theme.HTML(spans)
}

// FormatRich renders spans as console markup such as "[#ff9800]x[/]".
func FormatRich(spans []Span, opts ...Option) string {
	options := applyOptions(opts...)
	return theme.Rich(spans, options.theme())
}

// CSS returns the stylesheet matching FormatHTML for the configured theme.
func CSS(opts ...Option) string {
	options := applyOptions(opts...)
	return theme.CSS(options.theme())
}

package theme

import (
	"html"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riverfjs/unimath/internal/highlight"
)

// ──────────────────────────────────────────────
// Terminal
// ──────────────────────────────────────────────

// Terminal styles spans with ANSI escapes for one output.
type Terminal struct {
	theme    *Theme
	renderer *lipgloss.Renderer
}

// NewTerminal creates a terminal renderer for w. The colour profile is
// detected from w.
func NewTerminal(t *Theme, w io.Writer) *Terminal {
	if t == nil {
		t = Default()
	}
	return &Terminal{theme: t, renderer: lipgloss.NewRenderer(w)}
}

// Render styles every span and joins them.
func (tm *Terminal) Render(spans []highlight.Span) string {
	var b strings.Builder
	for _, sp := range spans {
		st := tm.theme.StyleFor(sp.Class)
		if st.IsZero() {
			b.WriteString(sp.Text)
			continue
		}
		b.WriteString(tm.style(st).Render(sp.Text))
	}
	return b.String()
}

func (tm *Terminal) style(s Style) lipgloss.Style {
	st := tm.renderer.NewStyle().Bold(s.Bold).Italic(s.Italic).Underline(s.Underline)
	if s.Color != "" {
		st = st.Foreground(lipgloss.Color(s.Color))
	}
	return st
}

// ──────────────────────────────────────────────
// HTML
// ──────────────────────────────────────────────

// ClassPrefix prefixes the CSS class of every highlighted span.
const ClassPrefix = "um-"

// HTML wraps classified spans in <span class="um-<class>">. Plain text is
// only escaped.
func HTML(spans []highlight.Span) string {
	var b strings.Builder
	for _, sp := range spans {
		text := html.EscapeString(sp.Text)
		if sp.Class == highlight.ClassNone {
			b.WriteString(text)
			continue
		}
		b.WriteString(`<span class="` + ClassPrefix + sp.Class.String() + `">`)
		b.WriteString(text)
		b.WriteString("</span>")
	}
	return b.String()
}

// CSS returns a stylesheet for the classes HTML emits.
func CSS(t *Theme) string {
	var b strings.Builder
	for _, class := range t.Classes() {
		decl := declarations(t.StyleFor(class))
		if decl == "" {
			continue
		}
		b.WriteString("." + ClassPrefix + class.String() + " { " + decl + " }\n")
	}
	return b.String()
}

func declarations(s Style) string {
	var parts []string
	if s.Color != "" {
		parts = append(parts, "color: "+s.Color+";")
	}
	if s.Bold {
		parts = append(parts, "font-weight: bold;")
	}
	if s.Italic {
		parts = append(parts, "font-style: italic;")
	}
	if s.Underline {
		parts = append(parts, "text-decoration: underline;")
	}
	return strings.Join(parts, " ")
}

// ──────────────────────────────────────────────
// Inline markup
// ──────────────────────────────────────────────

var richEscaper = strings.NewReplacer("[", `\[`)

// Rich renders spans as console markup: "[bold #ff9800]x[/]". Opening
// brackets in the text are escaped.
func Rich(spans []highlight.Span, t *Theme) string {
	if t == nil {
		t = Default()
	}
	var b strings.Builder
	for _, sp := range spans {
		text := richEscaper.Replace(sp.Text)
		tag := richTag(t.StyleFor(sp.Class))
		if tag == "" {
			b.WriteString(text)
			continue
		}
		b.WriteString("[" + tag + "]" + text + "[/]")
	}
	return b.String()
}

func richTag(s Style) string {
	var parts []string
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	if s.Underline {
		parts = append(parts, "underline")
	}
	if s.Color != "" {
		parts = append(parts, s.Color)
	}
	return strings.Join(parts, " ")
}

// Package markup renders fenced math blocks inside Markdown.
//
// A fenced code block whose info string is "math" or "latex" is replaced by
// a math node; each non-empty line of it is rendered to Unicode and emitted
// as highlighted HTML.
package markup

import (
	"bytes"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/unimath/internal/cas"
	"github.com/riverfjs/unimath/internal/highlight"
	"github.com/riverfjs/unimath/internal/render"
	"github.com/riverfjs/unimath/internal/theme"
)

// Languages are the fence info strings treated as math.
var Languages = [][]byte{[]byte("math"), []byte("latex")}

// KindMath is the node kind of a math block.
var KindMath = ast.NewNodeKind("Math")

// Math is a block of LaTeX expressions, one per line.
type Math struct {
	ast.BaseBlock
}

func (n *Math) Kind() ast.NodeKind { return KindMath }

func (n *Math) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// ──────────────────────────────────────────────
// Extension
// ──────────────────────────────────────────────

// Extension wires the math transformer and renderer into goldmark.
type Extension struct {
	renderer *render.Renderer
	table    *highlight.ClassTable
	strict   bool
	onError  func(src string, err error)
}

// Option configures an Extension.
type Option func(*Extension)

// WithRenderer sets the expression renderer.
func WithRenderer(r *render.Renderer) Option {
	return func(e *Extension) { e.renderer = r }
}

// WithClassTable sets the highlight table.
func WithClassTable(t *highlight.ClassTable) Option {
	return func(e *Extension) { e.table = t }
}

// WithStrict makes a failed expression abort the conversion.
func WithStrict(strict bool) Option {
	return func(e *Extension) { e.strict = strict }
}

// WithErrorHandler is called for every expression that falls back to its
// raw form.
func WithErrorHandler(fn func(src string, err error)) Option {
	return func(e *Extension) { e.onError = fn }
}

// New creates the extension.
func New(opts ...Option) *Extension {
	e := &Extension{
		renderer: render.New(),
		table:    highlight.DefaultClassTable(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(md goldmark.Markdown) {
	md.Parser().AddOptions(
		parser.WithASTTransformers(util.Prioritized(transformer{}, 100)),
	)
	md.Renderer().AddOptions(
		renderer.WithNodeRenderers(util.Prioritized(e, 100)),
	)
}

// Convert renders markdown to HTML with GFM and math blocks enabled.
func Convert(source []byte, w io.Writer, opts ...Option) error {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM, New(opts...)))
	return md.Convert(source, w)
}

// ──────────────────────────────────────────────
// Transformer
// ──────────────────────────────────────────────

type transformer struct{}

func (transformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	var blocks []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fenced, ok := n.(*ast.FencedCodeBlock); ok && isMath(fenced.Language(reader.Source())) {
			blocks = append(blocks, fenced)
		}
		return ast.WalkContinue, nil
	})
	for _, fenced := range blocks {
		parent := fenced.Parent()
		if parent == nil {
			continue
		}
		m := &Math{}
		m.SetLines(fenced.Lines())
		parent.ReplaceChild(parent, fenced, m)
	}
}

func isMath(lang []byte) bool {
	for _, l := range Languages {
		if bytes.Equal(lang, l) {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────
// Renderer
// ──────────────────────────────────────────────

// RegisterFuncs implements renderer.NodeRenderer.
func (e *Extension) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMath, e.renderMath)
}

func (e *Extension) renderMath(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<div class="` + theme.ClassPrefix + `math">` + "\n")
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		src := string(bytes.TrimSpace(line.Value(source)))
		if src == "" {
			continue
		}
		out, err := e.Line(src)
		if err != nil {
			return ast.WalkStop, err
		}
		_, _ = w.WriteString("<p>" + out + "</p>\n")
	}
	_, _ = w.WriteString("</div>\n")
	return ast.WalkContinue, nil
}

// Line renders one expression to highlighted HTML. Outside strict mode a
// failure yields the normalized source, escaped and marked as raw.
func (e *Extension) Line(src string) (string, error) {
	expr, err := e.renderer.Render(cas.Parse(src))
	if err != nil {
		if e.strict {
			return "", err
		}
		if e.onError != nil {
			e.onError(src, err)
		}
		return `<span class="` + theme.ClassPrefix + `raw">` + html.EscapeString(render.Normalize(src)) + `</span>`, nil
	}
	return theme.HTML(e.table.Highlight(expr.Text(), expr.Variables())), nil
}

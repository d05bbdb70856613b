// Package main is the unimath command: it renders LaTeX expressions as
// single-line Unicode and prints them highlighted.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/riverfjs/unimath"
)

// Version information (set via ldflags during build).
var version = "dev"

type options struct {
	latex      string
	lhs        string
	rhs        string
	derivative string
	vars       string
	result     string
	format     string
	theme      string
	markdown   string
	css        bool
	inline     bool
	strict     bool
	chunk      int
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, ok := parseFlags()
	if !ok {
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	renderOpts := []unimath.Option{
		unimath.WithStrict(opts.strict),
	}
	if opts.theme != "" {
		t, err := unimath.LoadTheme(opts.theme)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		renderOpts = append(renderOpts, unimath.WithTheme(t))
	}

	var err error
	switch {
	case opts.markdown != "":
		err = runMarkdown(opts, renderOpts)
	case opts.latex != "" || opts.lhs != "" || opts.rhs != "":
		err = runTree(opts, renderOpts)
	default:
		err = runBatch(ctx, opts, renderOpts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (options, bool) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.latex, "latex", "", "LaTeX expression to render")
	flag.StringVar(&opts.lhs, "lhs", "", "Left-hand side of an equation")
	flag.StringVar(&opts.rhs, "rhs", "", "Right-hand side of an equation")
	flag.StringVar(&opts.derivative, "derivative", "", "Differentiate with respect to these comma-separated variables")
	flag.StringVar(&opts.vars, "vars", "", "Comma-separated variable names (inferred when empty)")
	flag.StringVar(&opts.result, "result", "", "Append \" = value\" to the rendered text")
	flag.StringVar(&opts.format, "format", "ansi", "Output format: plain, ansi, html, rich, json")
	flag.StringVar(&opts.theme, "theme", "", "Built-in theme name or .toml/.yaml theme file")
	flag.StringVar(&opts.markdown, "markdown", "", "Render ```math blocks of a Markdown file (- for stdin) to HTML")
	flag.BoolVar(&opts.inline, "inline", false, "Treat input lines as prose and render their \\(...\\) and \\[...\\] regions")
	flag.BoolVar(&opts.css, "css", false, "Print the stylesheet for html output first")
	flag.BoolVar(&opts.strict, "strict", false, "Fail instead of printing the unrendered expression")
	flag.IntVar(&opts.chunk, "chunk", 0, "Split json documents into chunks of this many UTF-16 code units")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: unimath [options] [expression ...]\n\n")
		fmt.Fprintf(os.Stderr, "Expressions are read from -latex, -lhs/-rhs, the arguments, or stdin (one per line).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("unimath %s\n", version)
		return opts, false
	}
	return opts, true
}

// runTree renders the expression described by -latex, -lhs/-rhs and
// -derivative.
func runTree(opts options, renderOpts []unimath.Option) error {
	vars := splitList(opts.vars)
	var tree unimath.Tree
	var source string
	if opts.lhs != "" || opts.rhs != "" {
		tree = unimath.Eq(unimath.Latex(opts.lhs, vars...), unimath.Latex(opts.rhs, vars...))
		source = opts.lhs + " = " + opts.rhs
	} else {
		tree = unimath.Latex(opts.latex, vars...)
		source = opts.latex
	}
	if wrt := splitList(opts.derivative); len(wrt) > 0 {
		tree = unimath.Derivative(tree, wrt...)
	}

	expr, err := unimath.Render(tree, renderOpts...)
	if err != nil {
		if opts.strict {
			return err
		}
		unimath.Logger.Printf("render failed: %v", err)
		text := unimath.Fallback(source)
		return emit(os.Stdout, opts, []unimath.Result{{
			Source: source,
			Text:   text,
			Spans:  []unimath.Span{{Text: text, Class: unimath.ClassNone}},
			Err:    err,
		}}, renderOpts)
	}
	if opts.result != "" {
		expr = expr.WithResult(opts.result)
	}
	return emit(os.Stdout, opts, []unimath.Result{{
		Source:     source,
		Expression: expr,
		Text:       expr.Text(),
		Spans:      unimath.Highlight(expr, renderOpts...),
	}}, renderOpts)
}

// runBatch renders the arguments, or stdin lines when there are none.
func runBatch(ctx context.Context, opts options, renderOpts []unimath.Option) error {
	sources := flag.Args()
	if len(sources) == 0 {
		lines, err := readLines(os.Stdin)
		if err != nil {
			return err
		}
		sources = lines
	}
	if len(sources) == 0 {
		flag.Usage()
		return fmt.Errorf("no expression given")
	}
	if opts.inline {
		for _, line := range sources {
			out, err := unimath.RenderInline(line, renderOpts...)
			if err != nil {
				return err
			}
			fmt.Println(out)
		}
		return nil
	}
	results, err := unimath.RenderAll(ctx, sources, renderOpts...)
	if err != nil {
		return err
	}
	return emit(os.Stdout, opts, results, renderOpts)
}

func runMarkdown(opts options, renderOpts []unimath.Option) error {
	var data []byte
	var err error
	if opts.markdown == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(opts.markdown)
	}
	if err != nil {
		return err
	}
	out, err := unimath.ConvertMarkdown(string(data), renderOpts...)
	if err != nil {
		return err
	}
	if opts.css {
		fmt.Printf("<style>\n%s</style>\n", unimath.CSS(renderOpts...))
	}
	fmt.Print(out)
	return nil
}

// jsonResult is the json form of one rendered expression.
type jsonResult struct {
	Source   string           `json:"source"`
	Text     string           `json:"text"`
	Spans    []unimath.Span   `json:"spans"`
	Entities []unimath.Entity `json:"entities"`
	Error    string           `json:"error,omitempty"`
}

type jsonChunk struct {
	Text     string           `json:"text"`
	Entities []unimath.Entity `json:"entities"`
}

func emit(w io.Writer, opts options, results []unimath.Result, renderOpts []unimath.Option) error {
	switch opts.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if opts.chunk > 0 {
			var chunks []jsonChunk
			for _, c := range unimath.Document(results, opts.chunk) {
				if text, ok := c.(*unimath.Text); ok {
					chunks = append(chunks, jsonChunk{Text: text.Text, Entities: text.Entities})
				}
			}
			return enc.Encode(chunks)
		}
		out := make([]jsonResult, 0, len(results))
		for _, res := range results {
			text, entities := unimath.HighlightEntities(res.Spans)
			jr := jsonResult{Source: res.Source, Text: text, Spans: res.Spans, Entities: entities}
			if res.Err != nil {
				jr.Error = res.Err.Error()
			}
			out = append(out, jr)
		}
		return enc.Encode(out)
	case "plain", "ansi", "html", "rich":
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	if opts.format == "html" && opts.css {
		fmt.Fprintf(w, "<style>\n%s</style>\n", unimath.CSS(renderOpts...))
	}
	for _, res := range results {
		var line string
		switch opts.format {
		case "plain":
			line = res.Text
		case "ansi":
			line = unimath.FormatANSI(w, res.Spans, renderOpts...)
		case "html":
			line = unimath.FormatHTML(res.Spans)
		case "rich":
			line = unimath.FormatRich(res.Spans, renderOpts...)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

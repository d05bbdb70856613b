package unimath

import (
	"github.com/riverfjs/unimath/internal/highlight"
	"github.com/riverfjs/unimath/internal/render"
	"github.com/riverfjs/unimath/internal/theme"
)

// RenderOptions holds options for rendering and highlighting.
type RenderOptions struct {
	Config     *RenderConfig
	Theme      *Theme
	ClassTable *ClassTable

	strict *bool
}

// Option is a function that configures RenderOptions.
type Option func(*RenderOptions)

// WithConfig sets a custom RenderConfig.
func WithConfig(config *RenderConfig) Option {
	return func(opts *RenderOptions) {
		opts.Config = config
	}
}

// WithStrict overrides RenderConfig.Strict: failures are returned instead of
// falling back to the raw expression.
func WithStrict(strict bool) Option {
	return func(opts *RenderOptions) {
		opts.strict = &strict
	}
}

// WithTheme sets the theme used by the formatters, overriding
// RenderConfig.Theme.
func WithTheme(t *Theme) Option {
	return func(opts *RenderOptions) {
		opts.Theme = t
	}
}

// WithClassTable sets the highlight rules.
func WithClassTable(table *ClassTable) Option {
	return func(opts *RenderOptions) {
		opts.ClassTable = table
	}
}

// defaultRenderOptions returns the default options.
func defaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Config:     DefaultConfig(),
		ClassTable: highlight.DefaultClassTable(),
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *RenderOptions {
	options := defaultRenderOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.Config == nil {
		options.Config = DefaultConfig()
	}
	if options.ClassTable == nil {
		options.ClassTable = highlight.DefaultClassTable()
	}
	return options
}

// Strict reports whether failures are returned.
func (o *RenderOptions) Strict() bool {
	if o.strict != nil {
		return *o.strict
	}
	return o.Config.Strict
}

func (o *RenderOptions) renderer() *render.Renderer {
	return render.New(render.WithNFC(o.Config.NFC))
}

// theme resolves the theme: an explicit one, else the configured name or
// file, else the default. A theme that cannot be loaded is logged once per
// call and replaced by the default.
func (o *RenderOptions) theme() *Theme {
	if o.Theme != nil {
		return o.Theme
	}
	if o.Config.Theme == "" {
		return theme.Default()
	}
	t, err := theme.Load(o.Config.Theme)
	if err != nil {
		Logger.Printf("theme %q not loaded, using default: %v", o.Config.Theme, err)
		return theme.Default()
	}
	return t
}

package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/riverfjs/unimath/internal/highlight"
)

// Format is a theme file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ParseError is returned when a theme file cannot be decoded or validated.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("theme %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// file is the on-disk layout:
//
//	name = "solar"
//	[text]
//	color = "#93a1a1"
//	[styles.variable]
//	color = "#b58900"
//	bold = true
type file struct {
	Name   string           `toml:"name" yaml:"name"`
	Text   Style            `toml:"text" yaml:"text"`
	Styles map[string]Style `toml:"styles" yaml:"styles"`
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported theme file %s", path)
}

// Load reads a theme file, or returns the built-in theme of that name.
func Load(nameOrPath string) (*Theme, error) {
	if t, err := Builtin(nameOrPath); err == nil {
		return t, nil
	}
	format, err := FormatOf(nameOrPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("reading theme file %s: %w", nameOrPath, err)
	}
	return Parse(nameOrPath, data, format)
}

// Parse decodes a theme. source names the data in errors and is the default
// theme name.
func Parse(source string, data []byte, format Format) (*Theme, error) {
	var f file
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	default:
		return nil, &ParseError{Path: source, Message: fmt.Sprintf("unknown format %q", format)}
	}
	if err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	styles := make(map[highlight.TokenClass]Style, len(f.Styles))
	for key, st := range f.Styles {
		class, err := highlight.ParseClass(key)
		if err != nil {
			return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
		}
		styles[class] = st
	}

	name := f.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	t, err := New(name, f.Text, styles)
	if err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return t, nil
}

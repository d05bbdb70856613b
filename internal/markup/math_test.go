package markup

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/unimath/internal/render"
)

func TestConvert_MathFence(t *testing.T) {
	src := "# Notes\n\n```math\nx^{2}\n\n3 x = \\frac{1}{2}\n```\n\ntext\n"

	var buf bytes.Buffer
	require.NoError(t, Convert([]byte(src), &buf))
	out := buf.String()

	assert.Contains(t, out, "<h1>Notes</h1>")
	assert.Contains(t, out, `<div class="um-math">`)
	assert.Contains(t, out, `<p><span class="um-variable">x</span><span class="um-superscript">²</span></p>`)
	assert.Contains(t, out, `<span class="um-equals">=</span>`)
	assert.Contains(t, out, "<p>text</p>")
	assert.NotContains(t, out, "<code")
}

func TestConvert_OtherFencesUntouched(t *testing.T) {
	src := "```go\nx^{2}\n```\n"

	var buf bytes.Buffer
	require.NoError(t, Convert([]byte(src), &buf))
	assert.Contains(t, buf.String(), `<code class="language-go">x^{2}`)
}

func TestConvert_Fallback(t *testing.T) {
	src := "```latex\nx^2 < y\n```\n"

	var failed []string
	var buf bytes.Buffer
	err := Convert([]byte(src), &buf, WithErrorHandler(func(s string, err error) {
		failed = append(failed, s)
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"x^2 < y"}, failed)
	assert.Contains(t, buf.String(), `<span class="um-raw">x^2&lt;y</span>`)
}

func TestConvert_Strict(t *testing.T) {
	src := "```math\nx^2\n```\n"

	var buf bytes.Buffer
	err := Convert([]byte(src), &buf, WithStrict(true))
	var re *render.RenderError
	assert.True(t, errors.As(err, &re), "error = %v", err)
}

func TestLine(t *testing.T) {
	e := New(WithRenderer(render.New(render.WithNFC(false))))
	got, err := e.Line(`\frac{a}{b}`)
	require.NoError(t, err)
	assert.Equal(t,
		`<span class="um-variable">a</span><span class="um-operator-symbol">/</span><span class="um-variable">b</span>`,
		got)
}

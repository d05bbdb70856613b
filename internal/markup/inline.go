package markup

import (
	"regexp"
	"strings"
)

var (
	// 代码块和行内代码
	codeRegionRe = regexp.MustCompile("(```[\\s\\S]*?```|`[^`\\n]+`)")

	// 块级公式：\[...\]
	displayMathRe = regexp.MustCompile(`\\\[(.*?)\\\]`)

	// 行内公式：\(...\)
	inlineMathRe = regexp.MustCompile(`\\\((.*?)\\\)`)
)

// RenderFunc renders one LaTeX expression to text.
type RenderFunc func(src string) (string, error)

// ReplaceInline renders the \(...\) and \[...\] regions of prose with fn.
// Code spans and fenced blocks are left alone. The first error from fn stops
// the replacement and is returned.
func ReplaceInline(text string, fn RenderFunc) (string, error) {
	parts := codeRegionRe.Split(text, -1)
	codes := codeRegionRe.FindAllString(text, -1)

	var b strings.Builder
	for i, part := range parts {
		out, err := replaceMath(part, fn)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
		if i < len(codes) {
			b.WriteString(codes[i])
		}
	}
	return b.String(), nil
}

func replaceMath(text string, fn RenderFunc) (string, error) {
	var firstErr error
	replace := func(re *regexp.Regexp, s string) string {
		return re.ReplaceAllStringFunc(s, func(match string) string {
			if firstErr != nil {
				return match
			}
			src := strings.TrimSpace(re.FindStringSubmatch(match)[1])
			if src == "" {
				return match
			}
			out, err := fn(src)
			if err != nil {
				firstErr = err
				return match
			}
			return out
		})
	}
	text = replace(displayMathRe, text)
	text = replace(inlineMathRe, text)
	return text, firstErr
}

package unimath

import (
	"bytes"

	"github.com/riverfjs/unimath/internal/markup"
)

// ConvertMarkdown 将 Markdown 转换为 HTML，```math 和 ```latex 代码块中的每一行
// 渲染为高亮的 Unicode 表达式
//
// 非严格模式下渲染失败的表达式记录日志并以原始文本输出；严格模式下返回第一个错误。
func ConvertMarkdown(markdown string, opts ...Option) (string, error) {
	options := applyOptions(opts...)
	var buf bytes.Buffer
	err := markup.Convert([]byte(markdown), &buf,
		markup.WithRenderer(options.renderer()),
		markup.WithClassTable(options.ClassTable),
		markup.WithStrict(options.Strict()),
		markup.WithErrorHandler(func(src string, err error) {
			Logger.Printf("render failed: %v", err)
		}),
	)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderInline 将文本中的 \(...\) 和 \[...\] 公式替换为渲染后的 Unicode
//
// 代码块和行内代码保持不变。非严格模式下渲染失败的公式记录日志并替换为回退文本。
func RenderInline(text string, opts ...Option) (string, error) {
	options := applyOptions(opts...)
	r := options.renderer()
	return markup.ReplaceInline(text, func(src string) (string, error) {
		expr, err := r.Render(Latex(src))
		if err != nil {
			if options.Strict() {
				return "", err
			}
			Logger.Printf("render failed: %v", err)
			return Fallback(src), nil
		}
		return expr.Text(), nil
	})
}

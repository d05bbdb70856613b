// Package unimath 将数学表达式渲染为单行 Unicode 文本并提供语法高亮
//
// 表达式树（LaTeX 片段、方程、导数）经过固定的阶段被渲染：
// 规范化、上标提取、分式拆分、导数修正、方程拼接、清理。
// 渲染结果可以按 token 类别高亮，并输出为 ANSI、HTML、富文本标记或
// 带 UTF-16 偏移量的 Entity 列表。
//
// 主要 API：
//   - Render(): 渲染表达式树
//   - RenderLatex(): 渲染 LaTeX 字符串
//   - Highlight(): 将渲染结果拆分为带类别的片段
//   - RenderAll(): 并发渲染多个表达式
//   - ConvertMarkdown(): 渲染 Markdown 中的 ```math 代码块
//
// 示例：
//
//	expr, err := unimath.Render(unimath.Latex(`3 x + \frac{1}{2}`))
//	if err != nil {
//	    // 回退到原始表达式
//	    fmt.Println(unimath.Fallback(`3 x + \frac{1}{2}`))
//	}
//	fmt.Println(expr.Text()) // 3x +1/2
package unimath

import (
	"github.com/riverfjs/unimath/internal/latex"
	"github.com/riverfjs/unimath/internal/render"
)

// Render renders tree to Unicode. Errors are *RenderError values naming the
// failing stage; they are returned regardless of strict mode.
func Render(tree Tree, opts ...Option) (*RenderedExpression, error) {
	options := applyOptions(opts...)
	return options.renderer().Render(tree)
}

// RenderLatex renders a LaTeX string. Outside strict mode a failure is
// logged and the fallback text is returned with a nil error.
func RenderLatex(src string, opts ...Option) (string, error) {
	options := applyOptions(opts...)
	expr, err := options.renderer().Render(Latex(src))
	if err != nil {
		if options.Strict() {
			return "", err
		}
		Logger.Printf("render failed: %v", err)
		return Fallback(src), nil
	}
	return expr.Text(), nil
}

// Fallback returns the normalized but unrendered form of src, with whatever
// symbols can be translated translated. It never fails.
func Fallback(src string) string {
	return render.Tidy(latex.Convert(render.Normalize(src)))
}

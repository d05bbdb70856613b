package unimath

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"github.com/riverfjs/unimath/internal/buffer"
)

// Result is the outcome of rendering one source.
type Result struct {
	// Source 原始 LaTeX
	Source string
	// Expression 渲染结果，失败时为 nil
	Expression *RenderedExpression
	// Text 渲染文本，失败时为回退文本
	Text string
	// Spans 高亮片段
	Spans []Span
	// Err 渲染错误，渲染失败时设置，此时 Text 为回退文本
	Err error
}

// Fallback reports whether the result holds the unrendered source.
func (r Result) Fallback() bool {
	return r.Expression == nil
}

// RenderAll 并发渲染多个 LaTeX 表达式
//
// 结果顺序与 sources 一致。渲染器无共享可变状态，因此每个表达式在独立的
// goroutine 中渲染，并发数为 GOMAXPROCS。
//
// 严格模式下返回第一个（按输入顺序）渲染错误；否则失败的表达式记录日志并
// 回退为规范化后的原始文本。ctx 取消时返回 ctx.Err()。
func RenderAll(ctx context.Context, sources []string, opts ...Option) ([]Result, error) {
	options := applyOptions(opts...)
	r := options.renderer()
	results := make([]Result, len(sources))

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := min(runtime.GOMAXPROCS(0), len(sources))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				src := sources[i]
				res := Result{Source: src}
				expr, err := r.Render(Latex(src))
				if err != nil {
					res.Err = err
					res.Text = Fallback(src)
					res.Spans = []Span{{Text: res.Text, Class: ClassNone}}
				} else {
					res.Expression = expr
					res.Text = expr.Text()
					res.Spans = options.ClassTable.Highlight(res.Text, expr.Variables())
				}
				results[i] = res
			}
		}()
	}

	var cancelled error
feed:
	for i := range sources {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if cancelled != nil {
		return nil, cancelled
	}

	for _, res := range results {
		if res.Err == nil {
			continue
		}
		if options.Strict() {
			return nil, res.Err
		}
		Logger.Printf("render failed: %v", res.Err)
	}
	return results, nil
}

// Document 将渲染结果拼接为带 entity 的文本并按长度拆分
//
// 每个结果占一行；每个已分类的高亮片段成为一个 entity，类型为类别名。
// 文本按 maxUTF16Len 个 UTF-16 code units 拆分，优先在换行处拆分，
// maxUTF16Len <= 0 时不拆分。
func Document(results []Result, maxUTF16Len int) []Content {
	buf := buffer.New()
	for i, res := range results {
		if i > 0 {
			buf.Write("\n")
		}
		writeSpans(buf, res.Spans)
	}

	text := buf.String()
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var contents []Content
	for _, chunk := range SplitEntities(text, buf.Entities(), maxUTF16Len) {
		chunkText, chunkEntities := stripNewlinesAdjust(chunk.Text, chunk.Entities)
		if chunkText == "" {
			continue
		}
		contents = append(contents, &Text{
			Text:     chunkText,
			Entities: chunkEntities,
			ContentTrace: ContentTrace{
				SourceType: SourceExpression,
				Extra: map[string]interface{}{
					"lines": strings.Count(chunkText, "\n") + 1,
				},
			},
		})
	}
	return contents
}

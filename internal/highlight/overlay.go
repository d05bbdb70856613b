package highlight

import "strings"

// Range is a half-open byte range [Start, End) within a segment.
type Range struct {
	Start, End int
}

// Matcher finds the ranges of a segment that belong to a class. Ranges must
// be sorted, non-empty and non-overlapping.
type Matcher func(text string) []Range

// segment is one piece of the overlay. Tagged segments are inert.
type segment struct {
	text   string
	class  TokenClass
	tagged bool
}

// Overlay is an immutable segmentation of a string.
type Overlay struct {
	segs []segment
}

// NewOverlay starts with one untagged segment covering text.
func NewOverlay(text string) *Overlay {
	if text == "" {
		return &Overlay{}
	}
	return &Overlay{segs: []segment{{text: text}}}
}

// Apply returns a new overlay in which the ranges match reports inside each
// untagged segment are tagged with class. Tagged segments are copied as is.
func (o *Overlay) Apply(class TokenClass, match Matcher) *Overlay {
	out := make([]segment, 0, len(o.segs))
	for _, seg := range o.segs {
		if seg.tagged {
			out = append(out, seg)
			continue
		}
		pos := 0
		for _, r := range match(seg.text) {
			if r.Start < pos || r.End <= r.Start || r.End > len(seg.text) {
				continue
			}
			if r.Start > pos {
				out = append(out, segment{text: seg.text[pos:r.Start]})
			}
			out = append(out, segment{text: seg.text[r.Start:r.End], class: class, tagged: true})
			pos = r.End
		}
		if pos < len(seg.text) {
			out = append(out, segment{text: seg.text[pos:]})
		}
	}
	return &Overlay{segs: out}
}

// Spans returns the segments as spans, merging adjacent plain text.
func (o *Overlay) Spans() []Span {
	spans := make([]Span, 0, len(o.segs))
	for _, seg := range o.segs {
		if n := len(spans); n > 0 && !seg.tagged && spans[n-1].Class == ClassNone {
			spans[n-1].Text += seg.text
			continue
		}
		spans = append(spans, Span{Text: seg.text, Class: seg.class})
	}
	return spans
}

// Text reassembles the original string.
func (o *Overlay) Text() string {
	var b strings.Builder
	for _, seg := range o.segs {
		b.WriteString(seg.text)
	}
	return b.String()
}

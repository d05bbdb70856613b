package render

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/riverfjs/unimath/internal/brace"
	"github.com/riverfjs/unimath/internal/latex"
)

const fracMarker = `\frac`

// Fraction is one \frac construct cut out of the text that follows the
// marker.
type Fraction struct {
	Pre         string // text between the marker and the numerator
	Numerator   string
	Denominator string
	Post        string // everything after the denominator
}

// LocateFraction splits the text following a \frac marker. The separator
// "}{" is the one whose "}" closes the numerator; it is confirmed by walking
// back to the matching "{".
func LocateFraction(fragment string) (Fraction, error) {
	open := strings.IndexByte(fragment, '{')
	if open < 0 || strings.TrimSpace(fragment[:open]) != "" {
		return Fraction{}, &latex.UnsupportedConstructError{
			Construct: fracMarker,
			Fragment:  fragment,
			Reason:    "numerator must be a braced group",
		}
	}
	if _, err := brace.FindMatchingClose(fragment, open); err != nil {
		return Fraction{}, err
	}

	sep := -1
	for from := open; ; {
		i := strings.Index(fragment[from:], "}{")
		if i < 0 {
			break
		}
		i += from
		if o, err := brace.FindMatchingOpen(fragment, i); err == nil && o == open {
			sep = i
			break
		}
		from = i + 1
	}
	if sep < 0 {
		return Fraction{}, &latex.UnsupportedConstructError{
			Construct: fracMarker,
			Fragment:  fragment,
			Reason:    "denominator must follow the numerator",
		}
	}

	close, err := brace.FindMatchingClose(fragment, sep+1)
	if err != nil {
		return Fraction{}, err
	}
	return Fraction{
		Pre:         fragment[:open],
		Numerator:   fragment[open+1 : sep],
		Denominator: fragment[sep+2 : close],
		Post:        fragment[close+1:],
	}, nil
}

// SplitFraction renders the text following a single \frac marker as
// "pre num/den post", flattening each piece. Numerator and denominator are
// parenthesised unless they read as a single unit.
func SplitFraction(fragment string) (string, error) {
	f, err := LocateFraction(fragment)
	if err != nil {
		return "", err
	}
	parts := make([]string, 4)
	for i, piece := range []string{f.Pre, f.Numerator, f.Denominator, f.Post} {
		if parts[i], err = latex.Substitute(piece); err != nil {
			return "", err
		}
	}
	return parts[0] + " " + Operand(parts[1]) + "/" + Operand(parts[2]) + " " + parts[3], nil
}

// ResolveFractions renders every \frac in s. Fractions are resolved
// rightmost first, so nested ones are finished before their parent; each
// finished fraction is parked behind a private-use placeholder so it is
// flattened exactly once.
func ResolveFractions(s string) (string, error) {
	var st stash
	for {
		idx := strings.LastIndex(s, fracMarker)
		if idx < 0 {
			break
		}
		f, err := LocateFraction(s[idx+len(fracMarker):])
		if err != nil {
			return "", err
		}
		num, err := st.flatten(f.Numerator)
		if err != nil {
			return "", err
		}
		den, err := st.flatten(f.Denominator)
		if err != nil {
			return "", err
		}
		mark, err := st.put(" " + Operand(num) + "/" + Operand(den) + " ")
		if err != nil {
			return "", err
		}
		s = s[:idx] + f.Pre + mark + f.Post
	}
	return st.flatten(s)
}

// Operand parenthesises text unless it is a single glyph unit: one grapheme
// cluster, a parenthesised group, or a run of clusters that each start with
// a letter, digit, raised glyph or prefix symbol.
func Operand(text string) string {
	if SingleUnit(text) {
		return text
	}
	return "(" + text + ")"
}

// SingleUnit reports whether text reads as one glyph unit.
func SingleUnit(text string) bool {
	if text == "" || uniseg.GraphemeClusterCount(text) == 1 {
		return true
	}
	if brace.Parens.Enclosed(text) {
		return true
	}
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if !latex.IsAtomicRune(g.Runes()[0]) {
			return false
		}
	}
	return true
}

// ──────────────────────────────────────────────
// Placeholder stash
// ──────────────────────────────────────────────

const (
	stashFirst rune = 0xE000
	stashLast  rune = 0xF8FF
)

// stash parks finished fragments behind private-use runes, which the flat
// parser copies through untouched.
type stash struct {
	pieces []string
}

func (st *stash) put(text string) (string, error) {
	r := stashFirst + rune(len(st.pieces))
	if r > stashLast {
		return "", &latex.UnsupportedConstructError{
			Construct: fracMarker,
			Fragment:  text,
			Reason:    "too many fractions",
		}
	}
	st.pieces = append(st.pieces, text)
	return string(r), nil
}

// flatten substitutes latex and expands any placeholders in the result.
func (st *stash) flatten(latexText string) (string, error) {
	flat, err := latex.Substitute(latexText)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(st.expand(flat)), nil
}

func (st *stash) expand(s string) string {
	if len(st.pieces) == 0 {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if i := int(r - stashFirst); r >= stashFirst && i < len(st.pieces) {
			b.WriteString(st.pieces[i])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

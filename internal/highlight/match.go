package highlight

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Literals matches any of tokens, preferring the longest at each position.
func Literals(tokens ...string) Matcher {
	sorted := longestFirst(tokens)
	return func(text string) []Range {
		var out []Range
		for i := 0; i < len(text); {
			n := prefixLen(text[i:], sorted)
			if n == 0 {
				_, size := utf8.DecodeRuneInString(text[i:])
				i += size
				continue
			}
			out = append(out, Range{i, i + n})
			i += n
		}
		return out
	}
}

// Words matches any of words where it is not flanked by other letters.
func Words(words ...string) Matcher {
	sorted := longestFirst(words)
	return func(text string) []Range {
		var out []Range
		for i := 0; i < len(text); {
			_, size := utf8.DecodeRuneInString(text[i:])
			if !letterBefore(text, i) {
				for _, w := range sorted {
					if strings.HasPrefix(text[i:], w) && !letterAt(text, i+len(w)) {
						out = append(out, Range{i, i + len(w)})
						size = len(w)
						break
					}
				}
			}
			i += size
		}
		return out
	}
}

// Runes matches maximal runs of runes accepted by pred. With single set,
// each rune is its own match.
func Runes(pred func(rune) bool, single bool) Matcher {
	return func(text string) []Range {
		var out []Range
		start := -1
		for i, r := range text {
			if pred(r) {
				if single {
					out = append(out, Range{i, i + utf8.RuneLen(r)})
				} else if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 {
				out = append(out, Range{start, i})
				start = -1
			}
		}
		if start >= 0 {
			out = append(out, Range{start, len(text)})
		}
		return out
	}
}

// Set returns a predicate accepting the runes of chars.
func Set(chars string) func(rune) bool {
	return func(r rune) bool {
		return strings.ContainsRune(chars, r)
	}
}

// Variables matches variable names inside letter runs. A run is claimed
// only if it splits completely into known names and reserved words, longest
// first. Reserved words are left untagged for later rules, so "xsin" with x
// and reserved sin tags x only, while "exp" with x matches nothing.
func Variables(names []string, reserved ...string) Matcher {
	sorted := longestFirst(names)
	words := longestFirst(append(append([]string(nil), names...), reserved...))
	isName := make(map[string]bool, len(names))
	for _, n := range names {
		isName[n] = true
	}
	return func(text string) []Range {
		if len(sorted) == 0 {
			return nil
		}
		var out []Range
		for i := 0; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			if !unicode.IsLetter(r) {
				// names that are not letters, like θ₁, are matched literally
				if n := prefixLen(text[i:], sorted); n > 0 && !letterBefore(text, i) && !letterAt(text, i+n) {
					out = append(out, Range{i, i + n})
					i += n
					continue
				}
				i += size
				continue
			}
			end := i
			for end < len(text) {
				r, size := utf8.DecodeRuneInString(text[end:])
				if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) {
					break
				}
				end += size
			}
			out = append(out, split(text[i:end], i, words, isName)...)
			i = end
		}
		return out
	}
}

// split decomposes run into words and returns the ranges of those that are
// names. It returns nil unless the whole run is covered.
func split(run string, offset int, words []string, isName map[string]bool) []Range {
	var out []Range
	for pos := 0; pos < len(run); {
		n := prefixLen(run[pos:], words)
		if n == 0 {
			return nil
		}
		if isName[run[pos:pos+n]] {
			out = append(out, Range{offset + pos, offset + pos + n})
		}
		pos += n
	}
	return out
}

func prefixLen(s string, sorted []string) int {
	for _, t := range sorted {
		if t != "" && strings.HasPrefix(s, t) {
			return len(t)
		}
	}
	return 0
}

func longestFirst(tokens []string) []string {
	sorted := append([]string(nil), tokens...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) > utf8.RuneCountInString(sorted[j])
	})
	return sorted
}

func letterBefore(text string, i int) bool {
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return i > 0 && unicode.IsLetter(r)
}

func letterAt(text string, i int) bool {
	r, _ := utf8.DecodeRuneInString(text[i:])
	return i < len(text) && unicode.IsLetter(r)
}

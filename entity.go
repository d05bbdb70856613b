package unimath

import (
	"strings"
	"unicode/utf8"

	"github.com/riverfjs/unimath/internal/buffer"
)

// UTF16Len returns the length of text measured in UTF-16 code units.
//
// Entity offsets and lengths are measured in UTF-16 code units, not Go
// string bytes or runes. Characters outside the BMP (codepoint > 0xFFFF)
// take 2 UTF-16 code units (a surrogate pair); all others take 1.
func UTF16Len(text string) int {
	return buffer.UTF16Len(text)
}

// TextChunk represents a chunk of text with its entities.
type TextChunk struct {
	Text     string
	Entities []Entity
}

// offsetTable maps byte positions to UTF-16 offsets. Only rune starts and
// len(text) are valid split positions.
type offsetTable struct {
	utf16 []int
	start []bool
}

func buildOffsetTable(text string) offsetTable {
	t := offsetTable{
		utf16: make([]int, len(text)+1),
		start: make([]bool, len(text)+1),
	}
	cum := 0
	for i, r := range text {
		t.start[i] = true
		n := utf8.RuneLen(r)
		if n < 0 {
			n = 1
		}
		for j := i; j < i+n && j < len(text); j++ {
			t.utf16[j] = cum
		}
		if r > 0xFFFF {
			cum += 2
		} else {
			cum++
		}
	}
	t.utf16[len(text)] = cum
	t.start[len(text)] = true
	return t
}

// findNewlinePositions returns the byte positions right after each newline.
func findNewlinePositions(text string) []int {
	var points []int
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			points = append(points, i+1)
		}
	}
	return points
}

// SplitEntities splits (text, entities) into chunks not exceeding
// maxUTF16Len UTF-16 code units.
//
// Tries to split at newline boundaries, else at the last rune that fits.
// Entities that span a split boundary are clipped into both chunks.
func SplitEntities(text string, entities []Entity, maxUTF16Len int) []TextChunk {
	total := UTF16Len(text)
	if maxUTF16Len <= 0 || total <= maxUTF16Len {
		return []TextChunk{{Text: text, Entities: entities}}
	}

	offsets := buildOffsetTable(text)
	splitPoints := findNewlinePositions(text)

	var ranges [][2]int
	byteStart := 0
	for byteStart < len(text) {
		budget := offsets.utf16[byteStart] + maxUTF16Len
		if offsets.utf16[len(text)] <= budget {
			ranges = append(ranges, [2]int{byteStart, len(text)})
			break
		}

		bestSplit := -1
		for _, sp := range splitPoints {
			if sp <= byteStart {
				continue
			}
			if offsets.utf16[sp] > budget {
				break
			}
			bestSplit = sp
		}

		if bestSplit == -1 {
			// Hard split at the last rune start within budget.
			bestSplit = byteStart
			for i := byteStart + 1; i <= len(text); i++ {
				if !offsets.start[i] {
					continue
				}
				if offsets.utf16[i] > budget {
					break
				}
				bestSplit = i
			}
			if bestSplit == byteStart {
				// One rune wider than the budget: emit it alone.
				_, size := utf8.DecodeRuneInString(text[byteStart:])
				bestSplit = byteStart + size
			}
		}

		ranges = append(ranges, [2]int{byteStart, bestSplit})
		byteStart = bestSplit
	}

	result := make([]TextChunk, 0, len(ranges))
	for _, r := range ranges {
		chunkText := text[r[0]:r[1]]
		result = append(result, TextChunk{
			Text:     chunkText,
			Entities: clipEntities(chunkText, entities, offsets.utf16[r[0]], offsets.utf16[r[1]]),
		})
	}
	return result
}

// clipEntities keeps the entities overlapping [start, end) in UTF-16 units,
// rebased to start. Byte offsets are recomputed against chunk.
func clipEntities(chunk string, entities []Entity, start, end int) []Entity {
	var out []Entity
	for _, ent := range entities {
		clippedStart := max(ent.Offset, start)
		clippedEnd := min(ent.Offset+ent.Length, end)
		if clippedEnd <= clippedStart {
			continue
		}
		e := Entity{
			Type:   ent.Type,
			Offset: clippedStart - start,
			Length: clippedEnd - clippedStart,
		}
		e.ByteOffset = byteIndex(chunk, e.Offset)
		e.ByteLength = byteIndex(chunk, e.Offset+e.Length) - e.ByteOffset
		out = append(out, e)
	}
	return out
}

// byteIndex converts a UTF-16 offset into a byte offset in text.
func byteIndex(text string, utf16Offset int) int {
	cum := 0
	for i, r := range text {
		if cum >= utf16Offset {
			return i
		}
		if r > 0xFFFF {
			cum += 2
		} else {
			cum++
		}
	}
	return len(text)
}

// shiftEntities rebases entities onto text that starts utf16Start units
// into the old text and is utf16Len units long.
func shiftEntities(text string, entities []Entity, utf16Start, utf16Len int) []Entity {
	var adjusted []Entity
	for _, ent := range entities {
		newOffset := max(0, ent.Offset-utf16Start)
		newEnd := min(ent.Offset-utf16Start+ent.Length, utf16Len)
		if newEnd <= newOffset {
			continue
		}
		e := Entity{Type: ent.Type, Offset: newOffset, Length: newEnd - newOffset}
		e.ByteOffset = byteIndex(text, e.Offset)
		e.ByteLength = byteIndex(text, newEnd) - e.ByteOffset
		adjusted = append(adjusted, e)
	}
	return adjusted
}

// stripNewlinesAdjust strips leading/trailing newlines from text and adjusts
// entity offsets.
func stripNewlinesAdjust(text string, entities []Entity) (string, []Entity) {
	stripped := strings.TrimLeft(text, "\n")
	leading := len(text) - len(stripped)
	stripped = strings.TrimRight(stripped, "\n")
	if len(stripped) == len(text) {
		return text, entities
	}
	if stripped == "" {
		return stripped, nil
	}
	// Newlines are each 1 UTF-16 code unit
	return stripped, shiftEntities(stripped, entities, leading, UTF16Len(stripped))
}

// TrimSpace removes leading and trailing whitespace while adjusting entities.
func TrimSpace(text string, entities []Entity) (string, []Entity) {
	trimmed := strings.TrimSpace(text)
	if trimmed == text {
		return text, entities
	}
	if trimmed == "" {
		return trimmed, nil
	}
	startOffset := strings.Index(text, trimmed)
	return trimmed, shiftEntities(trimmed, entities, UTF16Len(text[:startOffset]), UTF16Len(trimmed))
}

package buffer

import "github.com/riverfjs/unimath/internal/types"

// UTF16Len returns the length of text measured in UTF-16 code units.
func UTF16Len(text string) int {
	count := 0
	for _, r := range text {
		if r > 0xFFFF {
			count += 2
		} else {
			count++
		}
	}
	return count
}

// TextBuffer accumulates text, tracks byte and UTF-16 offsets, and records an
// entity for every typed write.
type TextBuffer struct {
	parts       []string
	utf16Offset int
	byteOffset  int
	entities    []types.Entity
}

// New creates a new TextBuffer.
func New() *TextBuffer {
	return &TextBuffer{
		parts: make([]string, 0),
	}
}

// Write appends plain text to the buffer.
func (tb *TextBuffer) Write(text string) {
	tb.parts = append(tb.parts, text)
	tb.utf16Offset += UTF16Len(text)
	tb.byteOffset += len(text)
}

// WriteEntity appends text and records it as an entity of the given type.
// Empty text records nothing.
func (tb *TextBuffer) WriteEntity(text, entityType string) {
	if text == "" {
		return
	}
	tb.entities = append(tb.entities, types.Entity{
		Type:       entityType,
		Offset:     tb.utf16Offset,
		Length:     UTF16Len(text),
		ByteOffset: tb.byteOffset,
		ByteLength: len(text),
	})
	tb.Write(text)
}

// UTF16Offset returns the current UTF-16 offset.
func (tb *TextBuffer) UTF16Offset() int {
	return tb.utf16Offset
}

// ByteOffset returns the current byte offset (total string length).
func (tb *TextBuffer) ByteOffset() int {
	return tb.byteOffset
}

// Entities returns the recorded entities in write order.
func (tb *TextBuffer) Entities() []types.Entity {
	return append([]types.Entity(nil), tb.entities...)
}

// String returns the accumulated text.
func (tb *TextBuffer) String() string {
	if len(tb.parts) == 0 {
		return ""
	}
	result := make([]byte, 0, tb.byteOffset)
	for _, p := range tb.parts {
		result = append(result, p...)
	}
	return string(result)
}

// Reset clears the buffer.
func (tb *TextBuffer) Reset() {
	tb.parts = tb.parts[:0]
	tb.entities = tb.entities[:0]
	tb.utf16Offset = 0
	tb.byteOffset = 0
}

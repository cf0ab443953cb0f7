// Package text provides an immutable point-in-time view of a document's
// text, with the offset arithmetic the anchor resolver and the outline
// selector need: byte ranges, line slicing, and byte-offset to UTF-16
// position conversion.
package text

import (
	"sort"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Point is a zero-based position in a snapshot. Column counts UTF-16 code
// units, not bytes, because the reference-lookup side speaks LSP positions.
type Point struct {
	Row    int
	Column int
}

// PointRange is a half-open span between two points.
type PointRange struct {
	Start Point
	End   Point
}

// Snapshot is an immutable view of a document's text. All reads within one
// call operate against the same snapshot; later edits to the live file never
// change offsets already computed here.
type Snapshot struct {
	text        string
	lineOffsets []int // byte offset of each line start
}

// NewSnapshot captures the given text.
func NewSnapshot(text string) *Snapshot {
	offsets := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &Snapshot{text: text, lineOffsets: offsets}
}

// Len returns the text length in bytes.
func (s *Snapshot) Len() int {
	return len(s.text)
}

// Text returns the full text.
func (s *Snapshot) Text() string {
	return s.text
}

// Slice returns the text within [start, end), clamped to the snapshot.
func (s *Snapshot) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.text) {
		end = len(s.text)
	}
	if start >= end {
		return ""
	}
	return s.text[start:end]
}

// LineCount returns the number of lines. An empty snapshot has one line.
func (s *Snapshot) LineCount() int {
	return len(s.lineOffsets)
}

// LineStart returns the byte offset of the given zero-based row. Rows past
// the last line map to the end of the text.
func (s *Snapshot) LineStart(row int) int {
	if row < 0 {
		return 0
	}
	if row >= len(s.lineOffsets) {
		return len(s.text)
	}
	return s.lineOffsets[row]
}

// LineText returns the text of the given zero-based row without its line
// terminator. Rows out of range yield "".
func (s *Snapshot) LineText(row int) string {
	if row < 0 || row >= len(s.lineOffsets) {
		return ""
	}
	line := s.text[s.LineStart(row):s.LineStart(row+1)]
	return strings.TrimRight(line, "\r\n")
}

// OffsetToPointUTF16 converts a byte offset to a zero-based point whose
// column counts UTF-16 code units in the offset's line.
func (s *Snapshot) OffsetToPointUTF16(offset int) Point {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.text) {
		offset = len(s.text)
	}
	// First line whose start is beyond the offset, minus one.
	row := sort.Search(len(s.lineOffsets), func(i int) bool {
		return s.lineOffsets[i] > offset
	}) - 1

	column := 0
	for _, r := range s.text[s.lineOffsets[row]:offset] {
		column += utf16.RuneLen(r)
	}
	return Point{Row: row, Column: column}
}

// FloorCharBoundary returns the largest offset at or before n that does not
// split a UTF-8 encoded character.
func (s *Snapshot) FloorCharBoundary(n int) int {
	if n < 0 {
		return 0
	}
	if n >= len(s.text) {
		return len(s.text)
	}
	for n > 0 && !utf8.RuneStart(s.text[n]) {
		n--
	}
	return n
}

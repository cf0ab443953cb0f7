// Package outline renders structured document summaries: a paginated symbol
// listing substituted for full text above a size threshold.
package outline

import (
	"math"
	"strings"

	"github.com/0muji4/code-navigator/internal/text"
)

// AutoOutlineSize is the size in bytes above which a file's outline is
// provided instead of its full content.
const AutoOutlineSize = 16384

// fallbackPrefixSize bounds the prefix returned for oversized files with no
// outline available.
const fallbackPrefixSize = 1024

// UnboundedPageSize requests all remaining items on one page.
const UnboundedPageSize = math.MaxInt

// SymbolItem is one entry of a document's outline, supplied by the
// outline-extraction collaborator and treated as read-only here.
type SymbolItem struct {
	// Text is the item's display text, typically the symbol name.
	Text string
	// Depth is the nesting level, zero for top-level items.
	Depth int
	// Range spans the whole item in zero-based line/column coordinates.
	Range text.PointRange
	// SourceStart and SourceEnd delimit the byte range used to derive a
	// signature snippet.
	SourceStart int
	SourceEnd   int
}

// Entry pairs an item with its resolved signature snippet, if any.
type Entry struct {
	Item    SymbolItem
	Snippet string
}

// BuildEntries derives a signature snippet for each item: the first
// non-empty trimmed line of text at the start of the item's source range.
// Snippets help disambiguate symbols, e.g. by showing parameter lists.
func BuildEntries(snap *text.Snapshot, items []SymbolItem) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, Entry{Item: item, Snippet: snippetAt(snap, item.SourceStart)})
	}
	return entries
}

// snippetAt returns the rest of the row at the given byte offset, trimmed,
// or "" when that yields nothing.
func snippetAt(snap *text.Snapshot, offset int) string {
	if offset < 0 || offset > snap.Len() {
		return ""
	}
	row := snap.OffsetToPointUTF16(offset).Row
	line := snap.Slice(offset, snap.LineStart(row+1))
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

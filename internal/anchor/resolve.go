package anchor

import (
	"fmt"

	"github.com/0muji4/code-navigator/internal/text"
)

// ResolvedSpan is the exact byte range selected for one anchor, plus the
// derived center position used for downstream position-based lookups.
// Ephemeral: it is only meaningful against the snapshot it was resolved in.
type ResolvedSpan struct {
	Start  int
	End    int
	Center text.Point
}

// Resolution errors. Each carries enough context for the caller to refine
// its anchor and retry; none of them ever yields a partial span.

// NoContextMatchError reports a context string absent from the document.
type NoContextMatchError struct {
	Context string
}

func (e *NoContextMatchError) Error() string {
	return "No occurrences of the provided context_str were found"
}

// AmbiguousContextMatchError reports a context string that appears more than
// once in the document.
type AmbiguousContextMatchError struct {
	Context string
	Count   int
}

func (e *AmbiguousContextMatchError) Error() string {
	return "Multiple occurrences of the provided context_str were found; contextual anchors must be unique"
}

// NoTokenMatchError reports a token absent from the matched context span.
type NoTokenMatchError struct {
	Token string
}

func (e *NoTokenMatchError) Error() string {
	return fmt.Sprintf("Token `%s` not found inside the provided context_str", e.Token)
}

// AmbiguousTokenMatchError reports multiple token occurrences with no index
// supplied.
type AmbiguousTokenMatchError struct {
	Token string
	Count int
}

func (e *AmbiguousTokenMatchError) Error() string {
	return fmt.Sprintf("Multiple occurrences of token `%s` found inside context; provide index to disambiguate", e.Token)
}

// IndexOutOfRangeError reports a 1-based index outside the occurrence count.
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("selection_index %d out of range: token occurrences inside context = %d", e.Index, e.Count)
}

// Resolve locates the anchor's token in the snapshot in two phases.
//
// Phase 1 finds every non-overlapping occurrence of ContextStr in the whole
// document; exactly one is required. The whole document is searched on
// purpose: the anchor exists precisely because the caller does not know
// where its context lives.
//
// Phase 2 finds every non-overlapping occurrence of Token strictly inside
// the matched context span (clamped to the snapshot's length), then selects
// one via the optional 1-based index.
//
// The center position lands inside the token rather than at its boundary:
// for a single-line token it is the floor-mean of the start and end UTF-16
// columns; a multi-line token reports its start column.
func Resolve(snap *text.Snapshot, a *Anchor) (ResolvedSpan, error) {
	contextMatches := occurrences(snap.Text(), a.ContextStr)
	if len(contextMatches) == 0 {
		return ResolvedSpan{}, &NoContextMatchError{Context: a.ContextStr}
	}
	if len(contextMatches) > 1 {
		return ResolvedSpan{}, &AmbiguousContextMatchError{Context: a.ContextStr, Count: len(contextMatches)}
	}

	contextStart := contextMatches[0]
	contextEnd := contextStart + len(a.ContextStr)
	if contextEnd > snap.Len() {
		contextEnd = snap.Len()
	}

	tokenMatches := occurrences(snap.Slice(contextStart, contextEnd), a.Token)
	if len(tokenMatches) == 0 {
		return ResolvedSpan{}, &NoTokenMatchError{Token: a.Token}
	}
	if len(tokenMatches) > 1 && a.Index == nil {
		return ResolvedSpan{}, &AmbiguousTokenMatchError{Token: a.Token, Count: len(tokenMatches)}
	}

	selected := 1
	if a.Index != nil {
		selected = *a.Index
	}
	if selected < 1 || selected > len(tokenMatches) {
		return ResolvedSpan{}, &IndexOutOfRangeError{Index: selected, Count: len(tokenMatches)}
	}

	start := contextStart + tokenMatches[selected-1]
	end := start + len(a.Token)
	if end > snap.Len() {
		end = snap.Len()
	}

	startPt := snap.OffsetToPointUTF16(start)
	endPt := snap.OffsetToPointUTF16(end)
	center := text.Point{Row: startPt.Row, Column: startPt.Column}
	if startPt.Row == endPt.Row {
		center.Column = (startPt.Column + endPt.Column) / 2
	}

	return ResolvedSpan{Start: start, End: end, Center: center}, nil
}

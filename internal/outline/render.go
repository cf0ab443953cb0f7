package outline

import (
	"fmt"
	"regexp"
	"strings"
)

// Render produces the deterministic text form of an outline page plus a
// trailing pagination footer.
//
// It skips offset entries, applies the optional case-sensitive filter
// against each item's display text, and takes up to resultsPerPage matches.
// Whether more items remain is judged by the raw cursor position after the
// last taken match, so entries rejected by the filter while filling the page
// count toward the next page's offset.
func Render(entries []Entry, filter *regexp.Regexp, offset, resultsPerPage int) string {
	if offset < 0 {
		offset = 0
	}

	var page []Entry
	i := offset
	for ; i < len(entries) && len(page) < resultsPerPage; i++ {
		e := entries[i]
		if filter != nil && !filter.MatchString(e.Item.Text) {
			continue
		}
		page = append(page, e)
	}
	hasMore := i < len(entries)

	var b strings.Builder
	for _, e := range page {
		renderEntry(&b, e)
	}

	pageStart := offset + 1
	pageEnd := offset + len(page)
	if hasMore {
		fmt.Fprintf(&b, "\nShowing symbols %d-%d (there were more symbols found; use offset: %d to see next page)\n",
			pageStart, pageEnd, pageEnd)
	} else {
		fmt.Fprintf(&b, "\nShowing symbols %d-%d (total symbols: %d)\n",
			pageStart, pageEnd, pageEnd)
	}
	return b.String()
}

// renderEntry writes one outline line: depth indentation, the signature
// snippet (or the plain display text when no snippet exists), and a 1-based
// line indicator.
func renderEntry(b *strings.Builder, e Entry) {
	for range e.Item.Depth {
		b.WriteByte(' ')
	}

	snippet := strings.TrimSpace(firstLine(e.Snippet))
	if snippet != "" {
		b.WriteString(snippet)
	} else {
		b.WriteString(e.Item.Text)
	}

	startLine := e.Item.Range.Start.Row + 1
	endLine := e.Item.Range.End.Row + 1
	if startLine == endLine {
		fmt.Fprintf(b, " [L%d]\n", startLine)
	} else {
		fmt.Fprintf(b, " [L%d-%d]\n", startLine, endLine)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

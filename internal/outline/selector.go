package outline

import (
	"context"
	"fmt"

	"github.com/0muji4/code-navigator/internal/text"
)

// BufferContent is the result of the size-adaptive content selection:
// either a document's verbatim text or a rendered outline.
type BufferContent struct {
	Text      string
	IsOutline bool
}

// Source is the document capability the selector needs: one immutable
// snapshot and a one-shot await for the background structural analysis.
type Source interface {
	Snapshot() *text.Snapshot
	// WaitOutline suspends until the document's outline analysis has
	// completed, returning its symbol items. It only fails when ctx is
	// cancelled first; an analysis that produced nothing yields an empty
	// slice.
	WaitOutline(ctx context.Context) ([]SymbolItem, error)
}

// ContentOrOutline returns the full content of a document or its outline,
// depending on size. Documents at or under AutoOutlineSize bytes are
// returned verbatim. Larger documents wait for structural analysis and are
// summarized; when no outline exists, a bounded prefix is returned instead
// so the caller still has some context.
func ContentOrOutline(ctx context.Context, src Source, path string) (BufferContent, error) {
	snap := src.Snapshot()
	if snap.Len() <= AutoOutlineSize {
		return BufferContent{Text: snap.Text()}, nil
	}

	items, err := src.WaitOutline(ctx)
	if err != nil {
		return BufferContent{}, err
	}

	if len(items) == 0 {
		cut := snap.FloorCharBoundary(fallbackPrefixSize)
		content := snap.Slice(0, cut)
		header := "# First 1KB of file (file too large to show full content, and no outline available)"
		if path != "" {
			header = fmt.Sprintf("# First 1KB of %s (file too large to show full content, and no outline available)", path)
		}
		return BufferContent{Text: header + "\n\n" + content}, nil
	}

	outlineText := Render(BuildEntries(snap, items), nil, 0, UnboundedPageSize)
	header := "# File outline"
	if path != "" {
		header = fmt.Sprintf("# File outline for %s", path)
	}
	return BufferContent{Text: header + "\n\n" + outlineText, IsOutline: true}, nil
}

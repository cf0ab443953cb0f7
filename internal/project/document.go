package project

import (
	"context"

	"github.com/0muji4/code-navigator/internal/outline"
	"github.com/0muji4/code-navigator/internal/symbol"
	"github.com/0muji4/code-navigator/internal/text"
)

// Document is one opened file: an immutable snapshot plus the result of its
// background outline analysis. A document never mutates after creation;
// offsets computed against its snapshot stay valid for the whole call.
type Document struct {
	absPath     string
	displayPath string
	snap        *text.Snapshot

	outlineDone  chan struct{}
	outlineItems []outline.SymbolItem
}

var _ outline.Source = (*Document)(nil)

func newDocument(absPath, displayPath string, snap *text.Snapshot) *Document {
	return &Document{
		absPath:     absPath,
		displayPath: displayPath,
		snap:        snap,
		outlineDone: make(chan struct{}),
	}
}

// Snapshot returns the document's immutable text.
func (d *Document) Snapshot() *text.Snapshot {
	return d.snap
}

// AbsPath returns the absolute filesystem path.
func (d *Document) AbsPath() string {
	return d.absPath
}

// DisplayPath returns the caller-facing path: project-relative when the
// document lives under the root.
func (d *Document) DisplayPath() string {
	return d.displayPath
}

// WaitOutline suspends until the background outline analysis has completed
// and returns its items. Unsupported or unparsable documents yield an empty
// outline, not an error; the only failure is caller cancellation.
func (d *Document) WaitOutline(ctx context.Context) ([]outline.SymbolItem, error) {
	select {
	case <-d.outlineDone:
		return d.outlineItems, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// extractOutline runs once per document, in the background.
func (d *Document) extractOutline(extractor *symbol.Extractor) {
	defer close(d.outlineDone)

	items, err := extractor.Outline(d.absPath, []byte(d.snap.Text()))
	if err != nil {
		// 未対応の言語などはアウトラインなしとして扱う
		return
	}
	d.outlineItems = items
}

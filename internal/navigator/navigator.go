// Package navigator composes anchor resolution with the reference-lookup
// collaborator and maps its results into reportable locations.
package navigator

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/0muji4/code-navigator/internal/anchor"
	"github.com/0muji4/code-navigator/internal/lsp"
	"github.com/0muji4/code-navigator/internal/project"
	"github.com/0muji4/code-navigator/internal/text"
)

// Location is one reportable reference match. Lines and characters are
// zero-based; characters count UTF-16 code units.
type Location struct {
	Path           string `json:"path"`
	StartLine      int    `json:"start_line"`
	StartCharacter int    `json:"start_character"`
	EndLine        int    `json:"end_line"`
	EndCharacter   int    `json:"end_character"`
	Excerpt        string `json:"excerpt,omitempty"`
}

// SnippetPreview is the intermediate context emitted once a token occurrence
// has been selected, so the agent can see what it anchored to before the
// lookup completes.
type SnippetPreview struct {
	Snippet        string `json:"snippet"`
	StartLine      int    `json:"snippet_start_line"`
	EndLine        int    `json:"snippet_end_line"`
	SelectionIndex int    `json:"selection_index"`
}

// Events is the per-call diagnostic side channel. Implementations react to
// incremental progress; none of these calls affect the returned result.
type Events interface {
	Diagnostic(msg string)
	SnippetPreview(p SnippetPreview)
	Locations(locs []Location)
}

type nopEvents struct{}

func (nopEvents) Diagnostic(string) {}

func (nopEvents) SnippetPreview(SnippetPreview) {}

func (nopEvents) Locations([]Location) {}

// Navigator orchestrates one find-references call per invocation.
type Navigator struct {
	project *project.Project
	lookup  lsp.ReferenceLookup
}

func New(p *project.Project, lookup lsp.ReferenceLookup) *Navigator {
	return &Navigator{project: p, lookup: lookup}
}

// FindReferences resolves the anchor against the target document's current
// snapshot and queries the lookup collaborator at the resolved center
// position.
//
// Anchor-quality problems (validation failures, resolution ambiguity) emit a
// diagnostic and return an empty result: the intended recovery is the caller
// refining its anchor, not a process-level failure. Infrastructure problems
// (document open failure, lookup failure) return a hard error.
func (n *Navigator) FindReferences(ctx context.Context, a *anchor.Anchor, events Events) ([]Location, error) {
	if events == nil {
		events = nopEvents{}
	}

	if err := a.ValidateBasic(); err != nil {
		events.Diagnostic(fmt.Sprintf("Contextual anchor validation failed: %v", err))
		return []Location{}, nil
	}

	doc, err := n.project.Open(a.Path)
	if err != nil {
		return nil, fmt.Errorf("navigator: open %s: %w", a.Path, err)
	}
	snap := doc.Snapshot()

	span, err := anchor.Resolve(snap, a)
	if err != nil {
		events.Diagnostic(err.Error())
		return []Location{}, nil
	}

	events.SnippetPreview(previewAround(snap, span, a))

	refs, err := n.lookup.References(ctx, doc.AbsPath(), lsp.Position{
		Line:      span.Center.Row,
		Character: span.Center.Column,
	})
	if err != nil {
		return nil, fmt.Errorf("navigator: references lookup: %w", err)
	}

	locations := make([]Location, 0, len(refs))
	for _, ref := range refs {
		excerpt, err := n.excerptFor(ref)
		if err != nil {
			return nil, err
		}
		locations = append(locations, Location{
			Path:           doc.DisplayPath(),
			StartLine:      ref.Range.Start.Line,
			StartCharacter: ref.Range.Start.Character,
			EndLine:        ref.Range.End.Line,
			EndCharacter:   ref.Range.End.Character,
			Excerpt:        excerpt,
		})
	}

	if len(refs) > 0 {
		n.updateAgentLocation(refs[0])
		events.Locations(locations)
	}

	return locations, nil
}

// previewAround collects the rows surrounding the chosen token so the agent
// can confirm what was selected.
func previewAround(snap *text.Snapshot, span anchor.ResolvedSpan, a *anchor.Anchor) SnippetPreview {
	startPt := snap.OffsetToPointUTF16(span.Start)
	startRow := startPt.Row - 17
	if startRow < 0 {
		startRow = 0
	}
	endRow := startPt.Row + 14

	snippet := snap.Slice(snap.LineStart(startRow), snap.LineStart(endRow+1))
	snippet = strings.TrimRight(snippet, "\r\n")

	selected := 1
	if a.Index != nil {
		selected = *a.Index
	}
	return SnippetPreview{
		Snippet:        snippet,
		StartLine:      startRow,
		EndLine:        endRow,
		SelectionIndex: selected,
	}
}

// excerptFor reads the first line at the match's start row, trimmed of
// trailing line terminators. An unreadable referenced document is an
// infrastructure failure.
func (n *Navigator) excerptFor(ref lsp.Location) (string, error) {
	refDoc, err := n.project.OpenAbs(lsp.PathFromURI(ref.URI))
	if err != nil {
		return "", fmt.Errorf("navigator: open referenced document %s: %w", ref.URI, err)
	}
	return refDoc.Snapshot().LineText(ref.Range.Start.Line), nil
}

// updateAgentLocation is best-effort: a reference outside the project root
// cannot be expressed as a project-relative focus hint and is only logged.
func (n *Navigator) updateAgentLocation(first lsp.Location) {
	absPath := lsp.PathFromURI(first.URI)
	rel, err := filepath.Rel(n.project.Root(), absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		log.Printf("navigator: agent location not updated for %s", absPath)
		return
	}
	n.project.SetAgentLocation(project.AgentLocation{
		Path: rel,
		Position: text.Point{
			Row:    first.Range.Start.Line,
			Column: first.Range.Start.Character,
		},
	})
}

// RenderLocations is the human-readable form of a find-references result.
func RenderLocations(locs []Location) string {
	if len(locs) == 0 {
		return "No references found"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d references:", len(locs))
	for _, loc := range locs {
		fmt.Fprintf(&b, "\n- %s:%d:%d - %d:%d", loc.Path, loc.StartLine, loc.StartCharacter, loc.EndLine, loc.EndCharacter)
		if loc.Excerpt != "" {
			fmt.Fprintf(&b, ": %s", loc.Excerpt)
		}
	}
	return b.String()
}

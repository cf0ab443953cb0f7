package symbol

import (
	"fmt"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/0muji4/code-navigator/internal/outline"
	"github.com/0muji4/code-navigator/internal/text"
)

// Extractor turns a document into its outline: one symbol item per
// declaration, nested by syntactic depth, in source order.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Outline extracts the symbol items of one file. The language is picked by
// file extension; unregistered extensions are an error so callers can fall
// back to full content.
func (e *Extractor) Outline(path string, source []byte) ([]outline.SymbolItem, error) {
	lang := ByExtension(filepath.Ext(path))
	if lang == nil {
		return nil, fmt.Errorf("symbol: no language registered for %q", path)
	}

	p := sitter.NewParser()
	p.SetLanguage(lang.TreeSitterLang())
	tree := p.Parse(nil, source)

	var items []outline.SymbolItem
	var walk func(n *sitter.Node, depth int)
	walk = func(n *sitter.Node, depth int) {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			name, ok := lang.DeclarationName(child, source)
			if !ok {
				walk(child, depth)
				continue
			}
			items = append(items, outline.SymbolItem{
				Text:        name,
				Depth:       depth,
				Range:       nodeRange(child),
				SourceStart: int(child.StartByte()),
				SourceEnd:   int(child.EndByte()),
			})
			walk(child, depth+1)
		}
	}
	walk(tree.RootNode(), 0)

	return items, nil
}

func nodeRange(n *sitter.Node) text.PointRange {
	start := n.StartPoint()
	end := n.EndPoint()
	return text.PointRange{
		Start: text.Point{Row: int(start.Row), Column: int(start.Column)},
		End:   text.Point{Row: int(end.Row), Column: int(end.Column)},
	}
}

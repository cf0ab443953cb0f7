package symbol

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// Go implements the Language interface for Go source code.
type Go struct{}

func init() {
	Register(&Go{})
}

func (g *Go) Name() string {
	return "go"
}

func (g *Go) Extensions() []string {
	return []string{".go"}
}

func (g *Go) TreeSitterLang() *sitter.Language {
	return golang.GetLanguage()
}

// DeclarationName recognizes functions, methods, type specs, and the first
// name of const/var specs.
func (g *Go) DeclarationName(node *sitter.Node, source []byte) (string, bool) {
	switch node.Type() {
	case "function_declaration", "method_declaration", "type_spec", "const_spec", "var_spec":
		if name := node.ChildByFieldName("name"); name != nil {
			return name.Content(source), true
		}
	}
	return "", false
}

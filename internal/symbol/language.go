// Package symbol extracts document outlines and locates symbol definitions
// using tree-sitter grammars.
package symbol

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Language describes one supported language: its grammar and how to
// recognize outline-worthy declarations in its syntax tree.
type Language interface {
	// Name returns the language identifier (e.g., "go").
	Name() string

	// Extensions returns file extensions for this language (e.g., [".go"]).
	Extensions() []string

	// TreeSitterLang returns the tree-sitter grammar.
	TreeSitterLang() *sitter.Language

	// DeclarationName returns the display name for a declaration node, or
	// false when the node is not an outline-worthy declaration.
	DeclarationName(node *sitter.Node, source []byte) (string, bool)
}

// registry holds all registered languages.
var registry = make(map[string]Language)

// Register adds a language to the registry, typically from an init function
// in the language's implementation file.
func Register(lang Language) {
	registry[lang.Name()] = lang
}

// Get returns a language by name, or nil if not found.
func Get(name string) Language {
	return registry[name]
}

// ByExtension finds a language by file extension.
func ByExtension(ext string) Language {
	for _, lang := range registry {
		for _, e := range lang.Extensions() {
			if e == ext {
				return lang
			}
		}
	}
	return nil
}

package lsp

import "context"

// ReferenceLookup resolves position-based reference lookups against a
// language-intelligence backend.
type ReferenceLookup interface {
	References(ctx context.Context, absPath string, pos Position) ([]Location, error)
	Close() error
}

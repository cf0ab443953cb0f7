// Package anchor implements contextual anchors: a caller-supplied
// context-plus-token description of a document location, robust to the
// caller not knowing exact byte offsets, and the resolver that turns one
// into an exact character span within a snapshot.
package anchor

import (
	"errors"
	"fmt"
	"strings"
)

// Anchor identifies a token somewhere in a document.
//
// ContextStr is a short multi-word snippet that must include Token. Index is
// an optional 1-based selection used when Token appears multiple times
// inside ContextStr; if omitted and multiple occurrences exist, the resolver
// reports an error so the caller can resupply with an index.
type Anchor struct {
	Path       string `json:"path"`
	ContextStr string `json:"context_str"`
	Token      string `json:"token"`
	Index      *int   `json:"index,omitempty"`
}

// Structural validation errors, reported before any document access.
var (
	ErrMissingContext = errors.New("context_str is empty")
	ErrMissingToken   = errors.New("token is empty")
)

// ContextDoesNotContainTokenError reports a token absent from its own
// context string.
type ContextDoesNotContainTokenError struct {
	Context string
	Token   string
}

func (e *ContextDoesNotContainTokenError) Error() string {
	return fmt.Sprintf("context_str does not contain token `%s`", e.Token)
}

// InvalidIndexError reports an index below the 1-based minimum.
type InvalidIndexError struct {
	Index int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("index must be 1-based and >= 1 (got %d)", e.Index)
}

// ValidateBasic performs cheap structural checks that need no document:
// ContextStr and Token are non-empty, ContextStr contains Token, and Index
// (if present) is at least 1. Detailed validation against the document is
// the resolver's job.
func (a *Anchor) ValidateBasic() error {
	if a.ContextStr == "" {
		return ErrMissingContext
	}
	if a.Token == "" {
		return ErrMissingToken
	}
	if !strings.Contains(a.ContextStr, a.Token) {
		return &ContextDoesNotContainTokenError{Context: a.ContextStr, Token: a.Token}
	}
	if a.Index != nil && *a.Index == 0 {
		return &InvalidIndexError{Index: *a.Index}
	}
	return nil
}

// TokenOccurrences returns the byte offsets, relative to ContextStr, of each
// non-overlapping occurrence of Token, in increasing order.
func (a *Anchor) TokenOccurrences() []int {
	return occurrences(a.ContextStr, a.Token)
}

// occurrences finds every non-overlapping occurrence of needle in hay by
// repeated left-to-right search, restarting immediately after each match.
func occurrences(hay, needle string) []int {
	var res []int
	if needle == "" {
		return res
	}
	start := 0
	for {
		pos := strings.Index(hay[start:], needle)
		if pos < 0 {
			return res
		}
		res = append(res, start+pos)
		start += pos + len(needle)
	}
}

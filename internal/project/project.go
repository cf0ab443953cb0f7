// Package project owns the per-root document table: it opens files into
// immutable snapshots, schedules their background outline analysis, and
// tracks the shared "most recently located position" hint.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/0muji4/code-navigator/internal/symbol"
	"github.com/0muji4/code-navigator/internal/text"
)

// AgentLocation is the shared focus hint: the most recently located
// document/position pair. Updates are last-write-wins; it is a breadcrumb,
// not a correctness-critical value.
type AgentLocation struct {
	Path     string // project-relative
	Position text.Point
}

// Project scopes all document access to one root directory.
type Project struct {
	root      string
	extractor *symbol.Extractor

	mu   sync.Mutex
	docs map[string]*Document

	agentLoc atomic.Pointer[AgentLocation]
}

// New creates a project rooted at the given directory.
func New(root string) (*Project, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("project root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", root)
	}
	return &Project{
		root:      abs,
		extractor: symbol.NewExtractor(),
		docs:      make(map[string]*Document),
	}, nil
}

// Root returns the absolute project root.
func (p *Project) Root() string {
	return p.root
}

// Open returns the document for a project-relative path, reading it into a
// snapshot on first access and starting its outline analysis in the
// background.
func (p *Project) Open(relPath string) (*Document, error) {
	absPath := filepath.Clean(filepath.Join(p.root, relPath))

	// パストラバーサル防止
	if !strings.HasPrefix(absPath, p.root) {
		return nil, fmt.Errorf("path %q is outside project root", relPath)
	}

	return p.open(absPath)
}

// OpenAbs opens a document by absolute path. It exists for locations handed
// back by the lookup collaborator, which may point outside the root (e.g.
// into dependencies); callers must not pass untrusted input here.
func (p *Project) OpenAbs(absPath string) (*Document, error) {
	return p.open(filepath.Clean(absPath))
}

func (p *Project) open(absPath string) (*Document, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if doc, ok := p.docs[absPath]; ok {
		return doc, nil
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	displayPath := absPath
	if rel, err := filepath.Rel(p.root, absPath); err == nil && !strings.HasPrefix(rel, "..") {
		displayPath = rel
	}

	doc := newDocument(absPath, displayPath, text.NewSnapshot(string(data)))
	p.docs[absPath] = doc

	go doc.extractOutline(p.extractor)

	return doc, nil
}

// SetAgentLocation records the focus hint. Last write wins.
func (p *Project) SetAgentLocation(loc AgentLocation) {
	p.agentLoc.Store(&loc)
}

// AgentLocation returns the current focus hint, if any.
func (p *Project) AgentLocation() (AgentLocation, bool) {
	loc := p.agentLoc.Load()
	if loc == nil {
		return AgentLocation{}, false
	}
	return *loc, true
}

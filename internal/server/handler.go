package server

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/0muji4/code-navigator/internal/agent"
	"github.com/0muji4/code-navigator/internal/anchor"
	"github.com/0muji4/code-navigator/internal/lsp"
	"github.com/0muji4/code-navigator/internal/navigator"
	"github.com/0muji4/code-navigator/internal/outline"
	"github.com/0muji4/code-navigator/internal/persona"
	"github.com/0muji4/code-navigator/internal/project"
	"github.com/0muji4/code-navigator/internal/symbol"

	"github.com/mark3labs/mcp-go/mcp"
)

// Handler は MCP リクエストをナビゲーションのユースケースに変換する Adapter です。
type Handler struct {
	project    *project.Project
	resolver   symbol.Resolver
	apiKey     string
	personaDir string

	mu     sync.Mutex
	lookup lsp.ReferenceLookup
}

// NewHandler は指定されたプロジェクトルートに対する Handler を生成します。
func NewHandler(root, apiKey, personaDir string) (*Handler, error) {
	proj, err := project.New(root)
	if err != nil {
		return nil, err
	}
	return &Handler{
		project:    proj,
		resolver:   symbol.NewTreeResolver(proj.Root()),
		apiKey:     apiKey,
		personaDir: personaDir,
	}, nil
}

// analyzer は初回アクセス時に gopls クライアントを起動します。
func (h *Handler) analyzer() (lsp.ReferenceLookup, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.lookup == nil {
		client, err := lsp.NewClient(h.project.Root())
		if err != nil {
			return nil, fmt.Errorf("failed to start LSP: %w", err)
		}
		h.lookup = client
	}
	return h.lookup, nil
}

// Close は保持しているコラボレータを解放します。
func (h *Handler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.lookup != nil {
		err := h.lookup.Close()
		h.lookup = nil
		return err
	}
	return nil
}

// HandleFindReferences はコンテキストアンカーを解決し、参照元を返します。
// アンカー品質の問題は診断通知付きの空結果、インフラ障害はツールエラーです。
func (h *Handler) HandleFindReferences(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil
	}
	contextStr, err := req.RequireString("context_str")
	if err != nil {
		return mcp.NewToolResultError("context_str is required"), nil
	}
	token, err := req.RequireString("token")
	if err != nil {
		return mcp.NewToolResultError("token is required"), nil
	}

	a := anchor.Anchor{Path: path, ContextStr: contextStr, Token: token}
	// 明示的な index=0 もバリデーションまで通すため、存在チェックで取り出す
	if raw, ok := req.GetArguments()["index"]; ok {
		if f, ok := raw.(float64); ok {
			ix := int(f)
			a.Index = &ix
		}
	}

	lookup, err := h.analyzer()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	nav := navigator.New(h.project, lookup)
	locations, err := nav.FindReferences(ctx, &a, newMCPEvents(ctx))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(navigator.RenderLocations(locations)), nil
}

// HandleReadFile はサイズ適応型のコンテンツ取得を行います。
func (h *Handler) HandleReadFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError("file_path is required"), nil
	}

	doc, err := h.project.Open(filePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to open %s: %v", filePath, err)), nil
	}

	content, err := outline.ContentOrOutline(ctx, doc, doc.DisplayPath())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(content.Text), nil
}

// HandleFileOutline はアウトラインのページを描画します。
func (h *Handler) HandleFileOutline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError("file_path is required"), nil
	}
	filter := req.GetString("filter", "")
	offset := req.GetInt("offset", 0)
	resultsPerPage := req.GetInt("results_per_page", outline.UnboundedPageSize)

	doc, err := h.project.Open(filePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to open %s: %v", filePath, err)), nil
	}

	items, err := doc.WaitOutline(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var re *regexp.Regexp
	if filter != "" {
		re, err = regexp.Compile(filter)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid filter %q: %v", filter, err)), nil
		}
	}

	entries := outline.BuildEntries(doc.Snapshot(), items)
	return mcp.NewToolResultText(outline.Render(entries, re, offset, resultsPerPage)), nil
}

// HandleFindSymbol はシンボル名から定義位置を検索します。
func (h *Handler) HandleFindSymbol(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}

	locations, err := h.resolver.FindSymbol(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("find symbol %q: %v", name, err)), nil
	}

	if len(locations) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("Symbol %q not found.", name)), nil
	}

	out := fmt.Sprintf("Found symbol %q at:", name)
	for _, loc := range locations {
		out += fmt.Sprintf("\n%s:%d:%d", loc.FilePath, loc.Line, loc.Character)
	}
	return mcp.NewToolResultText(out), nil
}

// HandleExplore は探索エージェントの ReAct ループを実行します。
func (h *Handler) HandleExplore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.apiKey == "" {
		return mcp.NewToolResultError("GEMINI_API_KEY is not configured"), nil
	}

	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil
	}
	personaName := req.GetString("persona", "navigator")

	personaPath := filepath.Join(h.personaDir, personaName+".yaml")
	p, err := persona.Load(personaPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load persona %q: %v", personaName, err)), nil
	}

	lookup, err := h.analyzer()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	nav := navigator.New(h.project, lookup)
	explorer, err := agent.NewExplorer(ctx, h.apiKey, h.project, nav, h.resolver, p)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create agent: %v", err)), nil
	}

	result, err := explorer.Run(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("agent error: %v", err)), nil
	}

	return mcp.NewToolResultText(result), nil
}

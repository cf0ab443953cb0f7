package server

import (
	"context"

	"github.com/0muji4/code-navigator/internal/navigator"

	"github.com/mark3labs/mcp-go/server"
)

var _ navigator.Events = (*mcpEvents)(nil)

// mcpEvents はナビゲーションの診断・進捗イベントを MCP 通知として
// クライアントに横流しします。戻り値のスキーマには含まれません。
type mcpEvents struct {
	ctx context.Context
}

func newMCPEvents(ctx context.Context) *mcpEvents {
	return &mcpEvents{ctx: ctx}
}

func (e *mcpEvents) Diagnostic(msg string) {
	e.notify("notifications/message", map[string]any{
		"level": "info",
		"data":  msg,
	})
}

func (e *mcpEvents) SnippetPreview(p navigator.SnippetPreview) {
	e.notify("code-navigator/snippet", map[string]any{
		"snippet":            p.Snippet,
		"snippet_start_line": p.StartLine,
		"snippet_end_line":   p.EndLine,
		"selection_index":    p.SelectionIndex,
	})
}

func (e *mcpEvents) Locations(locs []navigator.Location) {
	e.notify("code-navigator/locations", map[string]any{
		"locations": locs,
	})
}

func (e *mcpEvents) notify(method string, params map[string]any) {
	s := server.ServerFromContext(e.ctx)
	if s == nil {
		return
	}
	// 通知の失敗はツール呼び出しの成否に影響させない
	_ = s.SendNotificationToClient(e.ctx, method, params)
}

package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New は MCP サーバーを生成し、ナビゲーションツールを登録して返します。
// ビジネスロジックは handler に委譲し、ここではプロトコル変換のみ行います。
func New(handler *Handler) *server.MCPServer {
	s := server.NewMCPServer(
		"code-navigator",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	findReferencesTool := mcp.NewTool("find-references",
		mcp.WithDescription("コンテキストアンカーで指定されたシンボルの参照元を検索します。context_str はファイル内で一意に一致する必要があり、token が複数回現れる場合は index（1始まり）で選択します。アンカーの問題（曖昧・不一致）は診断付きの空結果として返り、アンカーを修正して再試行できます。"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("対象のファイルパス（プロジェクトルートからの相対パス）"),
		),
		mcp.WithString("context_str",
			mcp.Required(),
			mcp.Description("token を含む短い複数単語のコンテキスト文字列（ファイル内で一意であること）"),
		),
		mcp.WithString("token",
			mcp.Required(),
			mcp.Description("context_str 内で特定したいトークン（完全一致）"),
		),
		mcp.WithNumber("index",
			mcp.Description("token が context_str 内に複数回現れる場合の選択インデックス（1始まり）"),
		),
	)
	s.AddTool(findReferencesTool, handler.HandleFindReferences)

	readFileTool := mcp.NewTool("read-file",
		mcp.WithDescription("指定されたファイルの内容を読み取ります。16KBを超えるファイルは自動的にシンボルアウトラインに置き換えられます。"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("対象のファイルパス（プロジェクトルートからの相対パス）"),
		),
	)
	s.AddTool(readFileTool, handler.HandleReadFile)

	fileOutlineTool := mcp.NewTool("file-outline",
		mcp.WithDescription("指定されたファイルのシンボルアウトライン（ページネーション付き）を取得します。"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("対象のファイルパス（プロジェクトルートからの相対パス）"),
		),
		mcp.WithString("filter",
			mcp.Description("シンボル表示テキストに対する正規表現フィルタ（大文字小文字を区別）"),
		),
		mcp.WithNumber("offset",
			mcp.Description("スキップするシンボル数（0始まり）"),
		),
		mcp.WithNumber("results_per_page",
			mcp.Description("1ページあたりのシンボル数（省略時は残り全件）"),
		),
	)
	s.AddTool(fileOutlineTool, handler.HandleFileOutline)

	findSymbolTool := mcp.NewTool("find-symbol",
		mcp.WithDescription("シンボル名からソースコード上の定義位置を検索します。"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("検索するシンボル名"),
		),
	)
	s.AddTool(findSymbolTool, handler.HandleFindSymbol)

	exploreTool := mcp.NewTool("explore",
		mcp.WithDescription("Gemini ReActループでコードベースを探索し、質問に回答します。ナビゲーションツール（find-references, read-file, file-outline, find-symbol）を内部で活用します。"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("探索の指示・質問"),
		),
		mcp.WithString("persona",
			mcp.Description("使用するペルソナ名。デフォルト: navigator"),
		),
	)
	s.AddTool(exploreTool, handler.HandleExplore)

	return s
}

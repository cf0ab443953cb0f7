package agent

import "google.golang.org/genai"

// tools は探索エージェントに公開する関数ツールの宣言を返します
func tools() []*genai.Tool {
	return []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "find-references",
					Description: "コンテキストアンカー（context_str + token）で指定されたシンボルの参照元（References）を検索します。context_str はファイル内で一意に一致する必要があります。token が context_str 内に複数回現れる場合は index（1始まり）で選択してください。",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"path": {
								Type:        genai.TypeString,
								Description: "対象のファイルパス（プロジェクトルートからの相対パス）",
							},
							"context_str": {
								Type:        genai.TypeString,
								Description: "token を含む短い複数単語のコンテキスト文字列（ファイル内で一意であること）",
							},
							"token": {
								Type:        genai.TypeString,
								Description: "context_str 内で特定したいトークン（完全一致）",
							},
							"index": {
								Type:        genai.TypeInteger,
								Description: "token が context_str 内に複数回現れる場合の選択インデックス（1始まり）",
							},
						},
						Required: []string{"path", "context_str", "token"},
					},
				},
				{
					Name:        "read-file",
					Description: "指定されたファイルの内容を読み取ります。大きいファイルは自動的にシンボルアウトラインに置き換えられます。",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"file_path": {
								Type:        genai.TypeString,
								Description: "対象のファイルパス（プロジェクトルートからの相対パス）",
							},
						},
						Required: []string{"file_path"},
					},
				},
				{
					Name:        "file-outline",
					Description: "指定されたファイルのシンボルアウトライン（ページネーション付き）を取得します。filter で表示テキストを絞り込めます。",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"file_path": {
								Type:        genai.TypeString,
								Description: "対象のファイルパス（プロジェクトルートからの相対パス）",
							},
							"filter": {
								Type:        genai.TypeString,
								Description: "シンボル表示テキストに対する正規表現フィルタ（大文字小文字を区別）",
							},
							"offset": {
								Type:        genai.TypeInteger,
								Description: "スキップするシンボル数（0始まり）",
							},
							"results_per_page": {
								Type:        genai.TypeInteger,
								Description: "1ページあたりのシンボル数（省略時は残り全件）",
							},
						},
						Required: []string{"file_path"},
					},
				},
				{
					Name:        "find-symbol",
					Description: "シンボル名（関数名、型名、変数名など）からソースコード上の定義位置（ファイルパス、行番号、文字位置）を検索します。find-references 用の context_str を書くためにまず定義位置を確認したい場合に使ってください。",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name": {
								Type:        genai.TypeString,
								Description: "検索するシンボル名（例: Resolve, NewClient, SymbolItem）",
							},
						},
						Required: []string{"name"},
					},
				},
			},
		},
	}
}

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/0muji4/code-navigator/internal/server"
)

func main() {
	// --- プロジェクトルートの決定 ---
	root := os.Getenv("PROJECT_ROOT")
	if len(os.Args) >= 2 {
		root = os.Args[1]
	}
	if root == "" {
		log.Fatal("project root is required (argv[1] or PROJECT_ROOT)")
	}

	// --- 環境変数の読み込み ---
	// GEMINI_API_KEY は explore ツールでのみ必要
	apiKey := os.Getenv("GEMINI_API_KEY")

	personaDir := os.Getenv("PERSONA_DIR")
	if personaDir == "" {
		// デフォルト: 実行ファイルからの相対パス
		exe, err := os.Executable()
		if err != nil {
			log.Fatal(err)
		}
		personaDir = filepath.Join(filepath.Dir(exe), "configs", "personas")
	}

	// --- DI: Adapter 層の組み立て ---
	handler, err := server.NewHandler(root, apiKey, personaDir)
	if err != nil {
		log.Fatalf("failed to create handler: %v", err)
	}
	defer handler.Close()

	s := server.New(handler)

	// --- Framework: MCP stdio サーバーの起動 ---
	fmt.Fprintf(os.Stderr, "code-navigator MCP server starting (root: %s)...\n", root)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

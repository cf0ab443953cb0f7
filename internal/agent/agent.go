package agent

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/0muji4/code-navigator/internal/anchor"
	"github.com/0muji4/code-navigator/internal/navigator"
	"github.com/0muji4/code-navigator/internal/outline"
	"github.com/0muji4/code-navigator/internal/persona"
	"github.com/0muji4/code-navigator/internal/project"
	"github.com/0muji4/code-navigator/internal/symbol"

	"google.golang.org/genai"
)

// Explorer はLLMとコードナビゲーションツールを統括する構造体です
type Explorer struct {
	client   *genai.Client
	project  *project.Project
	nav      *navigator.Navigator
	resolver symbol.Resolver
	persona  *persona.Persona
	history  []*genai.Content
}

func NewExplorer(
	ctx context.Context,
	apiKey string,
	proj *project.Project,
	nav *navigator.Navigator,
	resolver symbol.Resolver,
	p *persona.Persona,
) (*Explorer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Explorer{
		client:   client,
		project:  proj,
		nav:      nav,
		resolver: resolver,
		persona:  p,
	}, nil
}

// collectedEvents は診断メッセージをツール結果テキストに取り込みます
type collectedEvents struct {
	diagnostics []string
}

func (c *collectedEvents) Diagnostic(msg string) {
	c.diagnostics = append(c.diagnostics, msg)
}

func (c *collectedEvents) SnippetPreview(navigator.SnippetPreview) {}

func (c *collectedEvents) Locations([]navigator.Location) {}

// Run はユーザーの問いかけに対してReActループを実行します
func (e *Explorer) Run(ctx context.Context, userQuery string) (string, error) {
	e.history = append(e.history, genai.NewContentFromText(userQuery, "user"))

	config := &genai.GenerateContentConfig{
		Tools: tools(),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(e.persona.SystemPrompt)},
		},
	}

	maxIterations := e.persona.MaxIterations

	// ReAct Loop
	for i := 0; i < maxIterations; i++ {
		fmt.Fprintf(os.Stderr, "[%d/%d] Thinking...\n", i+1, maxIterations)

		// レート制限対応: 429 エラー時はリトライ（最大2回）
		var resp *genai.GenerateContentResponse
		var err error
		for retry := 0; retry < 3; retry++ {
			resp, err = e.client.Models.GenerateContent(ctx, e.persona.Model, e.history, config)
			if err == nil {
				break
			}
			if strings.Contains(err.Error(), "429") && retry < 2 {
				wait := time.Duration(30*(retry+1)) * time.Second
				fmt.Fprintf(os.Stderr, "  Rate limited. Waiting %v...\n", wait)
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return "", ctx.Err()
				}
				continue
			}
			return "", fmt.Errorf("agent: generate content: %w", err)
		}

		functionCalls := resp.FunctionCalls()
		if len(functionCalls) == 0 {
			return resp.Text(), nil
		}

		e.history = append(e.history, resp.Candidates[0].Content)

		var responseParts []*genai.Part
		for _, call := range functionCalls {
			resultText, execErr := e.dispatch(ctx, call)
			if execErr != nil {
				resultText = fmt.Sprintf("Error: %v", execErr)
			}

			responseParts = append(responseParts, genai.NewPartFromFunctionResponse(
				call.Name,
				map[string]any{"result": resultText},
			))
		}

		e.history = append(e.history, &genai.Content{
			Role:  "tool",
			Parts: responseParts,
		})

		// ループ終盤で最終回答を促す
		if i == maxIterations-2 {
			e.history = append(e.history, genai.NewContentFromText(
				"残りのツール呼び出しは1回です。これまでに収集した情報に基づいて、最終的な回答をテキストで出力してください。",
				"user",
			))
		}
	}

	return "", fmt.Errorf("agent: loop limit exceeded")
}

func (e *Explorer) dispatch(ctx context.Context, call *genai.FunctionCall) (string, error) {
	switch call.Name {
	case "find-references":
		a := anchor.Anchor{}
		a.Path, _ = call.Args["path"].(string)
		a.ContextStr, _ = call.Args["context_str"].(string)
		a.Token, _ = call.Args["token"].(string)
		if raw, ok := call.Args["index"].(float64); ok {
			ix := int(raw)
			a.Index = &ix
		}
		fmt.Fprintf(os.Stderr, "  Tool: find-references(%s, token=%q)\n", a.Path, a.Token)
		return e.executeFindReferences(ctx, &a)

	case "read-file":
		filePath, _ := call.Args["file_path"].(string)
		fmt.Fprintf(os.Stderr, "  Tool: read-file(%s)\n", filePath)
		return e.executeReadFile(ctx, filePath)

	case "file-outline":
		filePath, _ := call.Args["file_path"].(string)
		filter, _ := call.Args["filter"].(string)
		offset := 0
		if raw, ok := call.Args["offset"].(float64); ok {
			offset = int(raw)
		}
		resultsPerPage := outline.UnboundedPageSize
		if raw, ok := call.Args["results_per_page"].(float64); ok {
			resultsPerPage = int(raw)
		}
		fmt.Fprintf(os.Stderr, "  Tool: file-outline(%s)\n", filePath)
		return e.executeFileOutline(ctx, filePath, filter, offset, resultsPerPage)

	case "find-symbol":
		name, _ := call.Args["name"].(string)
		fmt.Fprintf(os.Stderr, "  Tool: find-symbol(%s)\n", name)
		return e.executeFindSymbol(name)
	}

	return "", fmt.Errorf("agent: unknown tool %q", call.Name)
}

func (e *Explorer) executeFindReferences(ctx context.Context, a *anchor.Anchor) (string, error) {
	events := &collectedEvents{}
	locations, err := e.nav.FindReferences(ctx, a, events)
	if err != nil {
		return "", err
	}

	output := navigator.RenderLocations(locations)
	if len(events.diagnostics) > 0 {
		output = strings.Join(events.diagnostics, "\n") + "\n" + output
	}
	fmt.Fprintf(os.Stderr, "   -> %s\n", output)
	return output, nil
}

func (e *Explorer) executeReadFile(ctx context.Context, filePath string) (string, error) {
	doc, err := e.project.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("agent: read file %s: %w", filePath, err)
	}
	content, err := outline.ContentOrOutline(ctx, doc, doc.DisplayPath())
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

func (e *Explorer) executeFileOutline(ctx context.Context, filePath, filter string, offset, resultsPerPage int) (string, error) {
	doc, err := e.project.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("agent: outline %s: %w", filePath, err)
	}
	items, err := doc.WaitOutline(ctx)
	if err != nil {
		return "", err
	}

	var re *regexp.Regexp
	if filter != "" {
		re, err = regexp.Compile(filter)
		if err != nil {
			return "", fmt.Errorf("agent: invalid filter %q: %w", filter, err)
		}
	}

	entries := outline.BuildEntries(doc.Snapshot(), items)
	return outline.Render(entries, re, offset, resultsPerPage), nil
}

func (e *Explorer) executeFindSymbol(name string) (string, error) {
	locations, err := e.resolver.FindSymbol(name)
	if err != nil {
		return "", fmt.Errorf("agent: find symbol %q: %w", name, err)
	}

	if len(locations) == 0 {
		return fmt.Sprintf("Symbol %q not found.", name), nil
	}

	var result []string
	for _, loc := range locations {
		result = append(result, fmt.Sprintf("%s:%d:%d", loc.FilePath, loc.Line, loc.Character))
	}

	output := fmt.Sprintf("Found symbol %q at:\n%s", name, strings.Join(result, "\n"))
	fmt.Fprintf(os.Stderr, "   -> %s\n", output)
	return output, nil
}

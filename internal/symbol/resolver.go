package symbol

import (
	"os"
	"path/filepath"
	"strings"
)

// SymbolLocation represents where a symbol is defined.
type SymbolLocation struct {
	FilePath  string // プロジェクトルートからの相対パス
	Line      int    // 1-based
	Character int    // 1-based
}

// Resolver finds symbol definitions by name.
type Resolver interface {
	FindSymbol(name string) ([]SymbolLocation, error)
}

var _ Resolver = (*TreeResolver)(nil)

// TreeResolver resolves symbol names to source locations by extracting the
// outline of every registered-language file under the project root.
type TreeResolver struct {
	rootPath  string
	extractor *Extractor
}

func NewTreeResolver(rootPath string) *TreeResolver {
	return &TreeResolver{rootPath: rootPath, extractor: NewExtractor()}
}

var skipDirs = map[string]bool{
	".git":         true,
	"vendor":       true,
	"node_modules": true,
	"target":       true,
	"dist":         true,
}

func (r *TreeResolver) FindSymbol(name string) ([]SymbolLocation, error) {
	var results []SymbolLocation

	err := filepath.WalkDir(r.rootPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		// 登録済み言語のみ、テストファイルは除外
		if ByExtension(filepath.Ext(path)) == nil || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		items, err := r.extractor.Outline(path, source)
		if err != nil {
			return nil
		}

		for _, item := range items {
			if item.Text != name {
				continue
			}
			relPath, _ := filepath.Rel(r.rootPath, path)
			results = append(results, SymbolLocation{
				FilePath:  relPath,
				Line:      item.Range.Start.Row + 1,
				Character: item.Range.Start.Column + 1,
			})
		}
		return nil
	})

	return results, err
}

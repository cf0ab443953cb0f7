package outline

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0muji4/code-navigator/internal/text"
)

func item(textStr string, depth, startRow, endRow int) SymbolItem {
	return SymbolItem{
		Text:  textStr,
		Depth: depth,
		Range: text.PointRange{
			Start: text.Point{Row: startRow},
			End:   text.Point{Row: endRow},
		},
	}
}

func plainEntries(items ...SymbolItem) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		entries = append(entries, Entry{Item: it})
	}
	return entries
}

func fiveItems() []Entry {
	return plainEntries(
		item("s1", 0, 0, 0),
		item("s2", 0, 1, 1),
		item("s3", 0, 2, 2),
		item("s4", 0, 3, 3),
		item("s5", 0, 4, 4),
	)
}

func TestRenderPaginationWithMore(t *testing.T) {
	out := Render(fiveItems(), nil, 0, 3)
	require.Equal(t,
		"s1 [L1]\ns2 [L2]\ns3 [L3]\n"+
			"\nShowing symbols 1-3 (there were more symbols found; use offset: 3 to see next page)\n",
		out)
}

func TestRenderPaginationLastPage(t *testing.T) {
	out := Render(fiveItems(), nil, 3, 3)
	require.Equal(t,
		"s4 [L4]\ns5 [L5]\n"+
			"\nShowing symbols 4-5 (total symbols: 5)\n",
		out)
}

func TestRenderDepthIndentAndRanges(t *testing.T) {
	entries := plainEntries(
		item("Outer", 0, 0, 9),
		item("inner", 2, 3, 3),
	)
	out := Render(entries, nil, 0, UnboundedPageSize)
	require.Equal(t,
		"Outer [L1-10]\n  inner [L4]\n"+
			"\nShowing symbols 1-2 (total symbols: 2)\n",
		out)
}

func TestRenderPrefersSnippet(t *testing.T) {
	entries := []Entry{
		{Item: item("Beta", 0, 1, 4), Snippet: "func Beta(n int) error {"},
		{Item: item("Gamma", 0, 5, 5), Snippet: "   \t "},
	}
	out := Render(entries, nil, 0, UnboundedPageSize)
	// a blank snippet falls back to the display text
	require.Equal(t,
		"func Beta(n int) error { [L2-5]\nGamma [L6]\n"+
			"\nShowing symbols 1-2 (total symbols: 2)\n",
		out)
}

func TestRenderFilterIsCaseSensitive(t *testing.T) {
	entries := plainEntries(
		item("Handler", 0, 0, 0),
		item("handler", 0, 1, 1),
	)
	out := Render(entries, regexp.MustCompile("Handler"), 0, UnboundedPageSize)
	require.Equal(t,
		"Handler [L1]\n"+
			"\nShowing symbols 1-1 (total symbols: 1)\n",
		out)
}

func TestRenderFilterAdvancesRawCursor(t *testing.T) {
	entries := plainEntries(
		item("foo_a", 0, 0, 0),
		item("bar", 0, 1, 1),
		item("foo_b", 0, 2, 2),
		item("foo_c", 0, 3, 3),
	)
	// the page fills at raw index 2, so the next page resumes at offset 2
	out := Render(entries, regexp.MustCompile("foo"), 0, 2)
	require.Equal(t,
		"foo_a [L1]\nfoo_b [L3]\n"+
			"\nShowing symbols 1-2 (there were more symbols found; use offset: 2 to see next page)\n",
		out)
}

func TestBuildEntriesSnippets(t *testing.T) {
	snap := text.NewSnapshot("package demo\n\nfunc Alpha() {\n\treturn\n}\n")
	items := []SymbolItem{
		{Text: "Alpha", SourceStart: 14, SourceEnd: 40,
			Range: text.PointRange{Start: text.Point{Row: 2}, End: text.Point{Row: 4}}},
	}
	entries := BuildEntries(snap, items)
	require.Len(t, entries, 1)
	require.Equal(t, "func Alpha() {", entries[0].Snippet)
}

package outline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0muji4/code-navigator/internal/text"
)

type fakeSource struct {
	snap  *text.Snapshot
	items []SymbolItem
	ready chan struct{} // nil means immediately ready
}

func (f *fakeSource) Snapshot() *text.Snapshot {
	return f.snap
}

func (f *fakeSource) WaitOutline(ctx context.Context) ([]SymbolItem, error) {
	if f.ready != nil {
		select {
		case <-f.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.items, nil
}

func TestContentOrOutlineSmallFile(t *testing.T) {
	content := strings.Repeat("x", AutoOutlineSize)
	src := &fakeSource{snap: text.NewSnapshot(content)}

	got, err := ContentOrOutline(context.Background(), src, "small.txt")
	require.NoError(t, err)
	require.False(t, got.IsOutline)
	require.Equal(t, content, got.Text)
}

func TestContentOrOutlineLargeFileNoOutline(t *testing.T) {
	// ⚡ is 3 bytes, so the 1024-byte cutoff falls mid-rune at 1023
	content := strings.Repeat("⚡", 6000)
	src := &fakeSource{snap: text.NewSnapshot(content)}

	got, err := ContentOrOutline(context.Background(), src, "big.txt")
	require.NoError(t, err)
	require.False(t, got.IsOutline)
	require.True(t, strings.HasPrefix(got.Text,
		"# First 1KB of big.txt (file too large to show full content, and no outline available)\n\n"))
	require.Contains(t, got.Text, "⚡⚡⚡⚡⚡⚡⚡")

	body := strings.SplitN(got.Text, "\n\n", 2)[1]
	require.Equal(t, strings.Repeat("⚡", 341), body)
}

func TestContentOrOutlineLargeFileNoOutlineNoPath(t *testing.T) {
	src := &fakeSource{snap: text.NewSnapshot(strings.Repeat("y", AutoOutlineSize+1))}

	got, err := ContentOrOutline(context.Background(), src, "")
	require.NoError(t, err)
	require.False(t, got.IsOutline)
	require.True(t, strings.HasPrefix(got.Text,
		"# First 1KB of file (file too large to show full content, and no outline available)\n\n"))
}

func TestContentOrOutlineRendersOutline(t *testing.T) {
	header := "func Top() {\n\tbody\n}\n"
	content := header + strings.Repeat("// padding\n", 2000)
	src := &fakeSource{
		snap: text.NewSnapshot(content),
		items: []SymbolItem{
			{Text: "Top", SourceStart: 0, SourceEnd: len(header),
				Range: text.PointRange{Start: text.Point{Row: 0}, End: text.Point{Row: 2}}},
		},
	}

	got, err := ContentOrOutline(context.Background(), src, "a.go")
	require.NoError(t, err)
	require.True(t, got.IsOutline)
	require.Equal(t,
		"# File outline for a.go\n\n"+
			"func Top() { [L1-3]\n"+
			"\nShowing symbols 1-1 (total symbols: 1)\n",
		got.Text)
}

func TestContentOrOutlineCancelledWhileWaiting(t *testing.T) {
	src := &fakeSource{
		snap:  text.NewSnapshot(strings.Repeat("z", AutoOutlineSize+1)),
		ready: make(chan struct{}), // never closes
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ContentOrOutline(ctx, src, "a.go")
	require.ErrorIs(t, err, context.Canceled)
}

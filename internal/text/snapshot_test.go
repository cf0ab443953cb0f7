package text

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnapshotLines(t *testing.T) {
	snap := NewSnapshot("alpha\nbeta\r\ngamma")

	require.Equal(t, 17, snap.Len())
	require.Equal(t, 3, snap.LineCount())
	require.Equal(t, "alpha", snap.LineText(0))
	require.Equal(t, "beta", snap.LineText(1))
	require.Equal(t, "gamma", snap.LineText(2))
	require.Equal(t, "", snap.LineText(3))
	require.Equal(t, 0, snap.LineStart(0))
	require.Equal(t, 6, snap.LineStart(1))
	require.Equal(t, 17, snap.LineStart(99))
}

func TestSnapshotSliceClamps(t *testing.T) {
	snap := NewSnapshot("hello")

	require.Equal(t, "hello", snap.Slice(0, 100))
	require.Equal(t, "ell", snap.Slice(1, 4))
	require.Equal(t, "", snap.Slice(4, 2))
	require.Equal(t, "he", snap.Slice(-5, 2))
}

func TestOffsetToPointUTF16(t *testing.T) {
	// 𝒳 is 4 bytes of UTF-8 but 2 UTF-16 code units; ⚡ is 3 bytes / 1 unit.
	snap := NewSnapshot("ab\n𝒳cd\n⚡x")

	require.Equal(t, Point{Row: 0, Column: 0}, snap.OffsetToPointUTF16(0))
	require.Equal(t, Point{Row: 0, Column: 2}, snap.OffsetToPointUTF16(2))
	require.Equal(t, Point{Row: 1, Column: 0}, snap.OffsetToPointUTF16(3))
	// after 𝒳: byte 7, column 2
	require.Equal(t, Point{Row: 1, Column: 2}, snap.OffsetToPointUTF16(7))
	require.Equal(t, Point{Row: 1, Column: 3}, snap.OffsetToPointUTF16(8))
	// after ⚡ on the last line
	require.Equal(t, Point{Row: 2, Column: 1}, snap.OffsetToPointUTF16(13))
	// out-of-range offsets clamp
	require.Equal(t, Point{Row: 2, Column: 2}, snap.OffsetToPointUTF16(999))
	require.Equal(t, Point{Row: 0, Column: 0}, snap.OffsetToPointUTF16(-1))
}

func TestFloorCharBoundary(t *testing.T) {
	snap := NewSnapshot("a⚡b")

	require.Equal(t, 0, snap.FloorCharBoundary(0))
	require.Equal(t, 1, snap.FloorCharBoundary(1))
	require.Equal(t, 1, snap.FloorCharBoundary(2))
	require.Equal(t, 1, snap.FloorCharBoundary(3))
	require.Equal(t, 4, snap.FloorCharBoundary(4))
	require.Equal(t, 5, snap.FloorCharBoundary(999))
}

package anchor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0muji4/code-navigator/internal/text"
)

func TestResolveUniqueContextUniqueToken(t *testing.T) {
	snap := text.NewSnapshot("before\nlet answer = compute();\nafter\n")
	a := Anchor{Path: "a.go", ContextStr: "let answer = compute();", Token: "answer"}

	span, err := Resolve(snap, &a)
	require.NoError(t, err)
	require.Equal(t, "answer", snap.Slice(span.Start, span.End))
	// "let answer" starts at offset 7; token occupies columns 11..17 on row 1
	require.Equal(t, 11, span.Start)
	require.Equal(t, 1, span.Center.Row)
	require.Equal(t, (4+10)/2, span.Center.Column)
}

func TestResolveNoContextMatch(t *testing.T) {
	snap := text.NewSnapshot("nothing to see here")
	a := Anchor{ContextStr: "absent context", Token: "absent"}

	_, err := Resolve(snap, &a)
	var nerr *NoContextMatchError
	require.ErrorAs(t, err, &nerr)
}

func TestResolveAmbiguousContextMatch(t *testing.T) {
	// the context appears twice; token quality is irrelevant
	snap := text.NewSnapshot("foo bar baz\nfoo bar baz\n")
	a := Anchor{ContextStr: "foo bar", Token: "foo"}

	_, err := Resolve(snap, &a)
	var aerr *AmbiguousContextMatchError
	require.ErrorAs(t, err, &aerr)
	require.Equal(t, 2, aerr.Count)
}

func TestResolveNoTokenMatch(t *testing.T) {
	// resolver trusts the snapshot, not the anchor's own context string
	snap := text.NewSnapshot("alpha beta gamma")
	a := Anchor{ContextStr: "beta", Token: "beta gamma"}

	_, err := Resolve(snap, &a)
	var nerr *NoTokenMatchError
	require.ErrorAs(t, err, &nerr)
	require.Equal(t, "beta gamma", nerr.Token)
}

func TestResolveAmbiguousTokenWithoutIndex(t *testing.T) {
	snap := text.NewSnapshot("if x == x {\n")
	a := Anchor{ContextStr: "if x == x {", Token: "x"}

	_, err := Resolve(snap, &a)
	var aerr *AmbiguousTokenMatchError
	require.ErrorAs(t, err, &aerr)
	require.Equal(t, 2, aerr.Count)
}

func TestResolveIndexSelectsOccurrence(t *testing.T) {
	doc := "header\nfn example(foo: i32) -> i32 { foo + 1 }\nfooter\n"
	snap := text.NewSnapshot(doc)
	a := Anchor{
		Path:       "a.rs",
		ContextStr: "fn example(foo: i32) -> i32 { foo + 1 }",
		Token:      "foo",
		Index:      intp(2),
	}

	span, err := Resolve(snap, &a)
	require.NoError(t, err)
	require.Equal(t, "foo", snap.Slice(span.Start, span.End))
	// second occurrence: inside the body, not the parameter
	require.Equal(t, 7+30, span.Start)
}

func TestResolveIndexOutOfRange(t *testing.T) {
	snap := text.NewSnapshot("fn example(foo: i32) -> i32 { foo + 1 }")
	a := Anchor{ContextStr: "fn example(foo: i32) -> i32 { foo + 1 }", Token: "foo", Index: intp(3)}

	_, err := Resolve(snap, &a)
	var oerr *IndexOutOfRangeError
	require.ErrorAs(t, err, &oerr)
	require.Equal(t, 3, oerr.Index)
	require.Equal(t, 2, oerr.Count)
}

func TestResolveCenterCountsUTF16Units(t *testing.T) {
	// ⚡ is 3 bytes but a single UTF-16 unit, so the center lands between
	// the token's UTF-16 columns, not its byte columns.
	snap := text.NewSnapshot("⚡ foo bar\n")
	a := Anchor{ContextStr: "⚡ foo", Token: "foo"}

	span, err := Resolve(snap, &a)
	require.NoError(t, err)
	require.Equal(t, 0, span.Center.Row)
	require.Equal(t, (2+5)/2, span.Center.Column)
}

func TestResolveMultiLineTokenUsesStartColumn(t *testing.T) {
	snap := text.NewSnapshot("aa begin\nend bb\n")
	a := Anchor{ContextStr: "aa begin\nend bb", Token: "begin\nend"}

	span, err := Resolve(snap, &a)
	require.NoError(t, err)
	require.Equal(t, 0, span.Center.Row)
	require.Equal(t, 3, span.Center.Column)
}

package anchor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestValidateBasicPasses(t *testing.T) {
	a := Anchor{
		Path:       "src/lib.go",
		ContextStr: "fn example(foo: i32) -> i32 { foo + 1 }",
		Token:      "foo",
		Index:      intp(1),
	}
	require.NoError(t, a.ValidateBasic())
	require.Equal(t, []int{11, 30}, a.TokenOccurrences())
}

func TestValidateBasicMissingContext(t *testing.T) {
	a := Anchor{Path: "a.go", Token: "x"}
	require.ErrorIs(t, a.ValidateBasic(), ErrMissingContext)
}

func TestValidateBasicMissingToken(t *testing.T) {
	a := Anchor{Path: "a.go", ContextStr: "something"}
	require.ErrorIs(t, a.ValidateBasic(), ErrMissingToken)
}

func TestValidateBasicContextWithoutToken(t *testing.T) {
	a := Anchor{Path: "a.go", ContextStr: "some other text", Token: "needle"}

	var cerr *ContextDoesNotContainTokenError
	require.ErrorAs(t, a.ValidateBasic(), &cerr)
	require.Equal(t, "needle", cerr.Token)
}

func TestValidateBasicInvalidIndex(t *testing.T) {
	// index = 0 fails regardless of the other fields
	a := Anchor{Path: "a.go", ContextStr: "token token", Token: "token", Index: intp(0)}

	var ierr *InvalidIndexError
	require.ErrorAs(t, a.ValidateBasic(), &ierr)
	require.Equal(t, 0, ierr.Index)
}

func TestTokenOccurrencesOrdering(t *testing.T) {
	a := Anchor{ContextStr: "foo bar foo", Token: "foo"}
	require.Equal(t, []int{0, 8}, a.TokenOccurrences())
}

func TestTokenOccurrencesNonOverlapping(t *testing.T) {
	a := Anchor{ContextStr: "aaaa", Token: "aa"}
	require.Equal(t, []int{0, 2}, a.TokenOccurrences())
}

func TestTokenOccurrencesEmptyToken(t *testing.T) {
	a := Anchor{ContextStr: "anything"}
	require.Empty(t, a.TokenOccurrences())
}

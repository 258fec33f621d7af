package blocks_test

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/Spacerat/format-blocks/internal/nested"
)

// wantNestedExample is the expected rendering of the data built in TestNestedExample, at
// margin0=10, margin1=60. Every item line in the stacked form ends in ", " (the formatter always
// appends Text(", ") after an item, including the last), so the trailing spaces below are
// significant; that can't be asserted through an Example's "// Output:" comment, since gofmt
// strips trailing whitespace from comments.
const wantNestedExample = "[123, 456, 789, 123, [\n" +
	"  'a', \n" +
	"  [543, 5432, 5432, 432, 432, 432, 543, 432, 432, 432], \n" +
	"  'c', \n" +
	"  'd', \n" +
	"  [123, 5432, 765432, 6543], \n" +
	"]]"

func TestNestedExample(t *testing.T) {
	data := []any{
		123.0, 456.0, 789.0, 123.0,
		[]any{
			"a",
			[]any{543.0, 5432.0, 5432.0, 432.0, 432.0, 432.0, 543.0, 432.0, 432.0, 432.0},
			"c", "d",
			[]any{123.0, 5432.0, 765432.0, 6543.0},
		},
	}

	got, err := nested.Format(data, 10, 60)
	require.NoError(t, err)
	assert.EqualValues(t, strings.TrimSpace(got), strings.TrimSpace(wantNestedExample))
}

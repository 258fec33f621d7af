package nested_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/Spacerat/format-blocks/internal/nested"
)

func TestFormatFlatFitsOnOneLine(t *testing.T) {
	got, err := nested.Format([]any{1.0, 2.0, 3.0}, 10, 60)
	require.NoError(t, err)
	assert.EqualValues(t, got, "[1, 2, 3]")
}

func TestFormatStringsAreQuoted(t *testing.T) {
	got, err := nested.Format([]any{"a", "b"}, 10, 60)
	require.NoError(t, err)
	assert.EqualValues(t, got, "['a', 'b']")
}

func TestFormatRejectsInvalidOptions(t *testing.T) {
	_, err := nested.Format([]any{1.0}, 10, 5)
	require.NotNil(t, err)
}

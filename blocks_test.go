package blocks_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	blocks "github.com/Spacerat/format-blocks"
	"github.com/Spacerat/format-blocks/internal/cost"
)

func render(t *testing.T, b blocks.LayoutBlock, opts ...blocks.Option) string {
	t.Helper()
	o, err := blocks.NewOptions(opts...)
	require.NoError(t, err)
	return blocks.Render(b, o)
}

func TestTextBlockBasic(t *testing.T) {
	tests := map[string]string{
		"Empty":  "",
		"Simple": "foobar",
		"Spaces": "        ",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			got := render(t, blocks.Text(text))
			assert.EqualValues(t, got, text)
		})
	}
}

func TestJoinedLineBlock(t *testing.T) {
	b, err := blocks.JoinedLine([]blocks.LayoutBlock{
		blocks.BreakingText("hello"),
		blocks.Text("world"),
		blocks.Text("!"),
	}, blocks.Text(" "), false)
	require.NoError(t, err)

	got := render(t, b)
	assert.EqualValues(t, got, "hello\nworld !")
}

func TestStackBlockBasic(t *testing.T) {
	b, err := blocks.Stack([]blocks.LayoutBlock{
		blocks.Text("hello"), blocks.Text("world"), blocks.Text("!"),
	})
	require.NoError(t, err)

	got := render(t, b)
	assert.EqualValues(t, got, "hello\nworld\n!")
}

func TestChoiceBlock(t *testing.T) {
	tests := map[string]struct {
		opts []blocks.Option
		want string
	}{
		"FitsOnOneLineWithMargin": {
			opts: []blocks.Option{blocks.Margin0(105), blocks.Margin1(125)},
			want: "hello beautiful world !",
		},
		"TooNarrowMustStack": {
			opts: []blocks.Option{blocks.Margin1(10)},
			want: "hello\nbeautiful\nworld\n!",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			elements := []blocks.LayoutBlock{
				blocks.Text("hello"), blocks.Text("beautiful"), blocks.Text("world"), blocks.Text("!"),
			}
			joined, err := blocks.JoinedLine(elements, blocks.Text(" "), false)
			require.NoError(t, err)
			stacked, err := blocks.Stack(elements)
			require.NoError(t, err)
			choice, err := blocks.Choice(joined, stacked)
			require.NoError(t, err)

			got := render(t, choice, tc.opts...)
			assert.EqualValues(t, got, tc.want)
		})
	}
}

func TestCompositeBlockRejectsEmptyElements(t *testing.T) {
	_, err := blocks.Line()
	require.NotNil(t, err)

	var usageErr *blocks.BlockUsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("got %T, want *blocks.BlockUsageError", err)
	}
}

func TestChoiceOfSingletonMatchesBareBlock(t *testing.T) {
	inner, err := blocks.Stack([]blocks.LayoutBlock{blocks.Text("a"), blocks.Text("b")})
	require.NoError(t, err)
	choice, err := blocks.Choice(inner)
	require.NoError(t, err)

	assert.EqualValues(t, render(t, inner), render(t, choice))
}

func TestRenderNeverBreaksWhenMarginIsGenerousAndNoCostIsSaved(t *testing.T) {
	elements := []blocks.LayoutBlock{blocks.Text("a"), blocks.Text("b"), blocks.Text("c")}
	joined, err := blocks.JoinedLine(elements, blocks.Text(" "), false)
	require.NoError(t, err)

	got := render(t, joined, blocks.Margin1(1_000_000))
	assert.EqualValues(t, got, "a b c")
}

func TestOptionsRejectsIllegalMargins(t *testing.T) {
	_, err := blocks.NewOptions(blocks.Margin0(10), blocks.Margin1(5))
	require.NotNil(t, err)

	var cfgErr *blocks.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("got %T, want *blocks.ConfigurationError", err)
	}
}

func TestStackLayoutElements(t *testing.T) {
	b, err := blocks.Stack([]blocks.LayoutBlock{blocks.Text("hello"), blocks.Text("world")})
	require.NoError(t, err)
	o, err := blocks.NewOptions()
	require.NoError(t, err)

	soln := b.OptLayout(nil, o)
	got := soln.LayoutAt(0).Elements

	want := []cost.LayoutElement{
		cost.String("hello"),
		cost.NewLine(0),
		cost.String("world"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestOptLayoutMemoizesPerContinuation(t *testing.T) {
	o, err := blocks.NewOptions()
	require.NoError(t, err)

	tb := blocks.Text("hello")
	first := tb.OptLayout(nil, o)
	second := tb.OptLayout(nil, o)
	assert.True(t, first == second, "two OptLayout calls with the same nil continuation should not recompute")
}

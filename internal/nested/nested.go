// Package nested renders arbitrarily nested lists of numbers and strings, choosing for every
// nested list between an indented block (one item per line) and a single unbroken line,
// whichever is cheaper under the given margins. It exists mainly as a worked example of
// composing the block constructors in github.com/Spacerat/format-blocks, and backs the fmtblocks
// command.
package nested

import (
	"fmt"

	blocks "github.com/Spacerat/format-blocks"
)

// Format renders data, a value built from ints, floats, strings, and []any of the same.
func Format(data any, margin0, margin1 int) (string, error) {
	opts, err := blocks.NewOptions(blocks.Margin0(margin0), blocks.Margin1(margin1))
	if err != nil {
		return "", err
	}
	root := formatValue(data, blocks.MustLine(blocks.Text("")))
	return blocks.Render(root, opts), nil
}

// formatValue extends current with data's representation: a literal for a leaf, or a choice
// between formatBlock and formatLine for a nested list.
func formatValue(data any, current *blocks.LineBlock) blocks.LayoutBlock {
	items, ok := data.([]any)
	if !ok {
		return current.Extended(blocks.Text(repr(data)))
	}
	return blocks.MustChoice(formatBlock(items, current), formatLine(items, current))
}

// formatBlock lays items out as an indented stack, one item per line, each followed by ", ".
func formatBlock(items []any, current *blocks.LineBlock) blocks.LayoutBlock {
	stack := blocks.MustStack([]blocks.LayoutBlock{current.Extended(blocks.Text("["))})
	for _, item := range items {
		stack = stack.Extended(blocks.MustLine(
			blocks.Text("  "), formatValue(item, blocks.MustLine(blocks.Text(""))), blocks.Text(", "),
		))
	}
	return stack.Extended(blocks.Text("]"))
}

// formatLine lays items out on current's own line, separated by ", ".
func formatLine(items []any, current *blocks.LineBlock) blocks.LayoutBlock {
	current = current.Extended(blocks.Text("["))
	for i, item := range items {
		if i == len(items)-1 {
			current = blocks.MustLine(formatValue(item, current))
		} else {
			current = blocks.MustLine(formatValue(item, current), blocks.Text(", "))
		}
	}
	return current.Extended(blocks.Text("]"))
}

func repr(v any) string {
	switch t := v.(type) {
	case string:
		return "'" + t + "'"
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprint(t)
	default:
		return fmt.Sprint(t)
	}
}

package blocks

import (
	"io"
	"strings"

	"github.com/Spacerat/format-blocks/internal/assert"
	"github.com/Spacerat/format-blocks/internal/cost"
)

// Print writes the optimal layout of root, under opts, to w. It returns an error only if writing
// to w fails; a well-formed block tree always has an optimal layout.
func Print(root LayoutBlock, opts Options, w io.Writer) error {
	soln := root.OptLayout(nil, opts)
	return emit(soln.LayoutAt(0), w)
}

// Render returns the optimal layout of root, under opts, as a string.
func Render(root LayoutBlock, opts Options) string {
	var sb strings.Builder
	if err := Print(root, opts, &sb); err != nil {
		// strings.Builder's Write never fails.
		assert.Unreachable("blocks: writing to a strings.Builder failed: %v", err)
	}
	return sb.String()
}

// emit walks a layout's elements and writes them verbatim: a String element is written as-is, a
// NewLine element as a newline followed by its indent worth of spaces.
func emit(l cost.Layout, w io.Writer) error {
	for _, e := range l.Elements {
		switch e.Kind {
		case cost.StringElement:
			if _, err := io.WriteString(w, e.Text); err != nil {
				return err
			}
		case cost.NewLineElement:
			if _, err := io.WriteString(w, "\n"+spaces(e.Indent)); err != nil {
				return err
			}
		default:
			assert.Unreachable("blocks: unknown layout element kind %d", e.Kind)
		}
	}
	return nil
}

package blocks

import "github.com/Spacerat/format-blocks/internal/cost"

// VerbBlock emits several lines of text verbatim, joined by newlines.
type VerbBlock struct {
	lines   []string
	firstNL bool
	memo    memo
}

// Verb returns a block that emits lines verbatim, one per line, with a mandatory break after it.
// If firstNL is true a leading newline is emitted before the first line.
func Verb(lines []string, firstNL bool) *VerbBlock {
	return &VerbBlock{lines: lines, firstNL: firstNL}
}

// IsBreaking implements [LayoutBlock]. A VerbBlock always mandates a break after it.
func (b *VerbBlock) IsBreaking() bool { return true }

// OptLayout implements [LayoutBlock].
func (b *VerbBlock) OptLayout(restOfLine *cost.Solution, opts Options) *cost.Solution {
	if s, ok := b.memo.get(restOfLine); ok {
		return s
	}
	s := b.doOptLayout(opts)
	s = cost.WithRestOfLine(s, restOfLine)
	b.memo.set(restOfLine, s)
	return s
}

// doOptLayout builds the layout and, like an empty TextBlock, a flat three-knot cost function:
// zero cost up to margin0 (suppressed entirely when margin0 is 0, to avoid a zero-width first
// segment), options.margin0Cost per column from margin0 to margin1, and the sum of both costs'
// slopes beyond margin1. When margin0 equals margin1 the middle knot has zero width and is
// dropped, going straight from the zero-cost segment to the combined slope. The span is always 0:
// a verbatim block never contributes to the column of whatever follows on its last line other
// than via the newlines it itself emits.
func (b *VerbBlock) doOptLayout(opts Options) *cost.Solution {
	var elems []cost.LayoutElement
	for i, ln := range b.lines {
		if i > 0 || b.firstNL {
			elems = append(elems, cost.NewLine(0))
		}
		elems = append(elems, cost.String(ln))
	}
	layout := cost.Layout{Elements: elems}

	const span = 0
	f := cost.NewFactory()
	if opts.margin0 > 0 {
		f.Append(0, span, 0, 0, layout)
	}
	if opts.margin0 == opts.margin1 {
		// margin0-span and margin1-span coincide (span is always 0 here); there is no column
		// range in which only margin0Cost applies, so the two remaining knots collapse into one.
		f.Append(opts.margin0-span, span, 0, opts.margin0Cost+opts.margin1Cost, layout)
	} else {
		f.Append(opts.margin0-span, span, 0, opts.margin0Cost, layout)
		f.Append(opts.margin1-span, span,
			float64(opts.margin1-opts.margin0)*opts.margin0Cost,
			opts.margin0Cost+opts.margin1Cost,
			layout)
	}
	return f.Build()
}

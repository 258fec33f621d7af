package blocks

import "github.com/Spacerat/format-blocks/internal/cost"

// TextBlock is a block containing a single unbroken string.
type TextBlock struct {
	text     string
	breaking bool
	memo     memo
}

// Text returns a block holding the literal string s.
func Text(s string) *TextBlock {
	return &TextBlock{text: s}
}

// BreakingText returns a block holding the literal string s, with a line break mandated
// immediately after it.
func BreakingText(s string) *TextBlock {
	return &TextBlock{text: s, breaking: true}
}

// IsBreaking implements [LayoutBlock].
func (b *TextBlock) IsBreaking() bool { return b.breaking }

// OptLayout implements [LayoutBlock].
func (b *TextBlock) OptLayout(restOfLine *cost.Solution, opts Options) *cost.Solution {
	if s, ok := b.memo.get(restOfLine); ok {
		return s
	}
	s := b.doOptLayout(opts)
	s = cost.WithRestOfLine(s, restOfLine)
	b.memo.set(restOfLine, s)
	return s
}

// doOptLayout computes the cost function for this block alone, i.e. with no continuation. The
// function takes 1, 2 or 3 knots depending on how span compares to the two margins.
func (b *TextBlock) doOptLayout(opts Options) *cost.Solution {
	span := len(b.text)
	layout := cost.Layout{Elements: []cost.LayoutElement{cost.String(b.text)}}
	f := cost.NewFactory()

	switch {
	case span >= opts.margin1:
		// NOTE: this multiplies by opts.margin1 (the threshold) rather than opts.margin1Cost
		// (the per-column cost past it), reproducing a long-standing discrepancy between this
		// branch and the two below it. Left as-is; changing it changes every layout that spills
		// past the hard margin.
		f.Append(0, span,
			float64(span-opts.margin0)*opts.margin0Cost+float64(span-opts.margin1)*float64(opts.margin1),
			opts.margin0Cost+opts.margin1Cost,
			layout)
	case span >= opts.margin0:
		f.Append(0, span,
			float64(span-opts.margin0)*opts.margin0Cost,
			opts.margin0Cost,
			layout)
		f.Append(opts.margin1-span, span,
			float64(opts.margin1-opts.margin0)*opts.margin0Cost,
			opts.margin0Cost+opts.margin1Cost,
			layout)
	default:
		f.Append(0, span, 0, 0, layout)
		if opts.margin0 == opts.margin1 {
			// margin0-span and margin1-span coincide here; there is no column range in which
			// only margin0Cost applies, so the two remaining knots collapse into one.
			f.Append(opts.margin0-span, span, 0, opts.margin0Cost+opts.margin1Cost, layout)
		} else {
			f.Append(opts.margin0-span, span, 0, opts.margin0Cost, layout)
			f.Append(opts.margin1-span, span,
				float64(opts.margin1-opts.margin0)*opts.margin0Cost,
				opts.margin0Cost+opts.margin1Cost,
				layout)
		}
	}
	return f.Build()
}

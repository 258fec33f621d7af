// Package blocks implements a combinator library for pretty-printing structured text under a
// two-margin cost model.
//
// A caller assembles a tree of [LayoutBlock]s describing how pieces of text may be arranged —
// concatenated on a line ([Line]), stacked vertically ([Stack]), wrapped like a paragraph
// ([Wrap]), or chosen among alternatives ([Choice]) — and calls [Render] or [Print] to obtain the
// arrangement whose cost is minimal. Cost is a weighted sum of the characters that spill past a
// soft margin, the characters that spill past a hard margin, and the number of line breaks used;
// see [Options] for the weights.
//
// The hard part of this package, the layout optimizer, lives in the internal cost package: it
// represents the cost of a block as a function of the column at which the block starts, and
// computes that function exactly rather than by trial placement. This package is the public
// surface over it: the block constructors, the convenience helpers built from them ([Indented],
// [JoinedLine], ...), and the renderer that turns an optimal layout into text.
package blocks

import "fmt"

// ConfigurationError reports that an [Options] value violates one of its invariants.
type ConfigurationError struct {
	Field string
	Msg   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("format-blocks: illegal option value for %q: %s", e.Field, e.Msg)
}

// BreakElementLines re-partitions the element-lines of a [Line] block: the lines a [Line]'s
// children are split into at mandatory breaks, before each is laid out. It may merge, split, or
// reorder the lines, but every element present in the input must appear exactly once in the
// output.
type BreakElementLines func(lines [][]LayoutBlock) [][]LayoutBlock

// Options carries the cost parameters that drive layout selection. Build one with [NewOptions];
// the zero value is not valid.
type Options struct {
	margin0           int
	margin0Cost       float64
	margin1           int
	margin1Cost       float64
	breakCost         float64
	latePackCost      float64
	breakElementLines BreakElementLines
}

// An Option configures an [Options] value built by [NewOptions].
type Option func(*Options)

// Margin0 sets the soft margin: the column past which [Margin0Cost] is charged per column.
// Default 0.
func Margin0(n int) Option { return func(o *Options) { o.margin0 = n } }

// Margin0Cost sets the per-column cost of exceeding the soft margin. Default 0.05.
func Margin0Cost(c float64) Option { return func(o *Options) { o.margin0Cost = c } }

// Margin1 sets the hard margin: the column past which [Margin1Cost] is additionally charged per
// column, on top of [Margin0Cost]. Default 80.
func Margin1(n int) Option { return func(o *Options) { o.margin1 = n } }

// Margin1Cost sets the per-column cost of exceeding the hard margin. Default 100.
func Margin1Cost(c float64) Option { return func(o *Options) { o.margin1Cost = c } }

// BreakCost sets the cost of introducing one line break. Default 2.
func BreakCost(c float64) Option { return func(o *Options) { o.breakCost = c } }

// LatePackCost sets a small tie-breaking penalty, applied per candidate break position in a
// [Wrap] block, that favors packing elements onto earlier lines over otherwise-equal layouts.
// Default 0.001.
func LatePackCost(c float64) Option { return func(o *Options) { o.latePackCost = c } }

// WithBreakElementLines installs a hook that re-partitions a [Line] block's element-lines before
// they are laid out. There is no default hook.
func WithBreakElementLines(f BreakElementLines) Option {
	return func(o *Options) { o.breakElementLines = f }
}

// NewOptions builds an Options from the given functional options, applied on top of the package
// defaults, and validates the result. It returns a [*ConfigurationError] if any value is illegal.
func NewOptions(opts ...Option) (Options, error) {
	o := Options{
		margin0:      0,
		margin0Cost:  0.05,
		margin1:      80,
		margin1Cost:  100,
		breakCost:    2,
		latePackCost: 1e-3,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.check(); err != nil {
		return Options{}, err
	}
	return o, nil
}

func (o Options) check() error {
	switch {
	case o.margin0 < 0:
		return &ConfigurationError{Field: "margin0", Msg: "must be >= 0"}
	case o.margin1 < o.margin0:
		return &ConfigurationError{Field: "margin1", Msg: "must be >= margin0"}
	case o.margin0Cost < 0:
		return &ConfigurationError{Field: "margin0Cost", Msg: "must be >= 0"}
	case o.margin1Cost < 0:
		return &ConfigurationError{Field: "margin1Cost", Msg: "must be >= 0"}
	case o.breakCost < 0:
		return &ConfigurationError{Field: "breakCost", Msg: "must be >= 0"}
	case o.latePackCost < 0:
		return &ConfigurationError{Field: "latePackCost", Msg: "must be >= 0"}
	default:
		return nil
	}
}

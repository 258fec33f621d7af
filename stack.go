package blocks

import "github.com/Spacerat/format-blocks/internal/cost"

// StackBlock arranges its elements vertically, separated by line breaks.
type StackBlock struct {
	elements  []LayoutBlock
	breakMult float64
	breaking  bool
	memo      memo
}

// StackOption configures a [StackBlock] built by [Stack].
type StackOption func(*StackBlock)

// BreakMult scales this block's contribution to break cost relative to its surroundings.
// Default 1.
func BreakMult(m float64) StackOption { return func(b *StackBlock) { b.breakMult = m } }

// Stack returns a block that arranges elements vertically. It returns a [*BlockUsageError] if
// elements is empty.
func Stack(elements []LayoutBlock, opts ...StackOption) (*StackBlock, error) {
	if err := validateElements("Stack", elements); err != nil {
		return nil, err
	}
	b := &StackBlock{elements: elements, breakMult: 1, breaking: lastIsBreaking(elements)}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// MustStack is like [Stack] but panics instead of returning an error.
func MustStack(elements []LayoutBlock, opts ...StackOption) *StackBlock {
	b, err := Stack(elements, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// Extended returns a new StackBlock with additional elements appended after b's own, keeping b's
// break multiplier.
func (b *StackBlock) Extended(elements ...LayoutBlock) *StackBlock {
	all := make([]LayoutBlock, 0, len(b.elements)+len(elements))
	all = append(all, b.elements...)
	all = append(all, elements...)
	return &StackBlock{elements: all, breakMult: b.breakMult, breaking: lastIsBreaking(all)}
}

// IsBreaking implements [LayoutBlock].
func (b *StackBlock) IsBreaking() bool { return b.breaking }

// OptLayout implements [LayoutBlock].
func (b *StackBlock) OptLayout(restOfLine *cost.Solution, opts Options) *cost.Solution {
	if s, ok := b.memo.get(restOfLine); ok {
		return s
	}
	s := b.doOptLayout(restOfLine, opts)
	b.memo.set(restOfLine, s)
	return s
}

// doOptLayout lays out every element but the last against no continuation (they face the end of
// a line), and the last against restOfLine, then stacks the results and prices in the breaks
// between them.
func (b *StackBlock) doOptLayout(restOfLine *cost.Solution, opts Options) *cost.Solution {
	solns := make([]*cost.Solution, len(b.elements))
	for i, e := range b.elements {
		if i == len(b.elements)-1 {
			solns[i] = e.OptLayout(restOfLine, opts)
		} else {
			solns[i] = e.OptLayout(nil, opts)
		}
	}
	soln := cost.VSum(solns)
	return soln.PlusConst(opts.breakCost * b.breakMult * float64(max(len(b.elements)-1, 0)))
}

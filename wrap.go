package blocks

import "github.com/Spacerat/format-blocks/internal/cost"

// WrapBlock arranges its elements like a justified paragraph, packing as many as fit on each
// line before breaking, and optionally repeating a prefix at the start of every wrapped line.
type WrapBlock struct {
	elements  []LayoutBlock
	sep       string
	prefix    string
	hasPrefix bool
	breakMult float64
	memo      memo
}

// WrapOption configures a [WrapBlock] built by [Wrap].
type WrapOption func(*WrapBlock)

// Sep sets the separator placed between packed elements. Default " ".
func Sep(sep string) WrapOption { return func(b *WrapBlock) { b.sep = sep } }

// Prefix sets a string placed at the start of every wrapped line. There is no default prefix.
func Prefix(prefix string) WrapOption {
	return func(b *WrapBlock) { b.prefix, b.hasPrefix = prefix, true }
}

// WrapBreakMult scales this block's contribution to break cost relative to its surroundings.
// Default 1.
func WrapBreakMult(m float64) WrapOption { return func(b *WrapBlock) { b.breakMult = m } }

// Wrap returns a block that packs elements like a justified paragraph. It returns a
// [*BlockUsageError] if elements is empty.
func Wrap(elements []LayoutBlock, opts ...WrapOption) (*WrapBlock, error) {
	if err := validateElements("Wrap", elements); err != nil {
		return nil, err
	}
	b := &WrapBlock{elements: elements, sep: " ", breakMult: 1}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// MustWrap is like [Wrap] but panics instead of returning an error.
func MustWrap(elements []LayoutBlock, opts ...WrapOption) *WrapBlock {
	b, err := Wrap(elements, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// Extended returns a new WrapBlock with additional elements appended after b's own, keeping b's
// separator, prefix and break multiplier.
func (b *WrapBlock) Extended(elements ...LayoutBlock) *WrapBlock {
	all := make([]LayoutBlock, 0, len(b.elements)+len(elements))
	all = append(all, b.elements...)
	all = append(all, elements...)
	nb := &WrapBlock{elements: all, sep: b.sep, breakMult: b.breakMult, prefix: b.prefix, hasPrefix: b.hasPrefix}
	return nb
}

// IsBreaking implements [LayoutBlock]. A WrapBlock is breaking if its last element is.
func (b *WrapBlock) IsBreaking() bool { return lastIsBreaking(b.elements) }

// OptLayout implements [LayoutBlock].
func (b *WrapBlock) OptLayout(restOfLine *cost.Solution, opts Options) *cost.Solution {
	if s, ok := b.memo.get(restOfLine); ok {
		return s
	}
	s := b.doOptLayout(restOfLine, opts)
	b.memo.set(restOfLine, s)
	return s
}

// doOptLayout finds the optimal packing of elements into lines by dynamic programming, filled
// right to left. wrap[i] holds the optimal layout for elements i..n-1; the full answer is
// wrap[0].
//
// For each i, candidate breaks are considered after every element j = i..n-2 that can still
// extend the current line (stopping as soon as a mandatory break is hit), plus, if no mandatory
// break was hit, the option of not breaking at all and handing off to restOfLine. Each candidate
// prices in one line break (scaled by breakMult) and a tiny late-pack penalty that prefers
// packing more elements onto earlier lines among otherwise-equal candidates.
func (b *WrapBlock) doOptLayout(restOfLine *cost.Solution, opts Options) *cost.Solution {
	n := len(b.elements)
	sepLayout := Text(b.sep).OptLayout(nil, opts)
	var prefixLayout *cost.Solution
	if b.hasPrefix {
		prefixLayout = Text(b.prefix).OptLayout(nil, opts)
	}
	eltLayouts := make([]*cost.Solution, n)
	for i, e := range b.elements {
		eltLayouts[i] = e.OptLayout(nil, opts)
	}

	wrapSolns := make([]*cost.Solution, n)
	for i := n - 1; i >= 0; i-- {
		lineLayout := eltLayouts[i]
		if prefixLayout != nil {
			lineLayout = cost.WithRestOfLine(prefixLayout, lineLayout)
		}

		var candidates []*cost.Solution
		lastBreaking := b.elements[i].IsBreaking()
		exhausted := true
		for j := i; j <= n-2; j++ {
			tail := wrapSolns[j+1]
			full := cost.VSum([]*cost.Solution{lineLayout, tail})
			candidates = append(candidates, full.PlusConst(
				opts.breakCost*b.breakMult+opts.latePackCost*float64(n-j)))

			if lastBreaking {
				exhausted = false
				break
			}

			sepElt := cost.WithRestOfLine(sepLayout, eltLayouts[j+1])
			lineLayout = cost.WithRestOfLine(lineLayout, sepElt)
			lastBreaking = b.elements[j+1].IsBreaking()
		}
		if exhausted {
			candidates = append(candidates, cost.WithRestOfLine(lineLayout, restOfLine))
		}
		wrapSolns[i] = cost.Min(candidates)
	}
	return wrapSolns[0]
}

package blocks

import "github.com/Spacerat/format-blocks/internal/cost"

// LineBlock places its elements on a single line, except that any element whose IsBreaking is
// true forces a line break after it.
type LineBlock struct {
	elements []LayoutBlock
	breaking bool
	memo     memo
}

// Line returns a block that places elements on a single line, breaking after any element that
// mandates it. It returns a [*BlockUsageError] if elements is empty.
func Line(elements ...LayoutBlock) (*LineBlock, error) {
	if err := validateElements("Line", elements); err != nil {
		return nil, err
	}
	return &LineBlock{elements: elements, breaking: lastIsBreaking(elements)}, nil
}

// MustLine is like [Line] but panics instead of returning an error. Use it for elements known at
// compile time to be non-empty.
func MustLine(elements ...LayoutBlock) *LineBlock {
	b, err := Line(elements...)
	if err != nil {
		panic(err)
	}
	return b
}

// Extended returns a new LineBlock with additional elements appended after b's own.
func (b *LineBlock) Extended(elements ...LayoutBlock) *LineBlock {
	all := make([]LayoutBlock, 0, len(b.elements)+len(elements))
	all = append(all, b.elements...)
	all = append(all, elements...)
	return &LineBlock{elements: all, breaking: lastIsBreaking(all)}
}

// IsBreaking implements [LayoutBlock].
func (b *LineBlock) IsBreaking() bool { return b.breaking }

// OptLayout implements [LayoutBlock].
func (b *LineBlock) OptLayout(restOfLine *cost.Solution, opts Options) *cost.Solution {
	if s, ok := b.memo.get(restOfLine); ok {
		return s
	}
	s := b.doOptLayout(restOfLine, opts)
	b.memo.set(restOfLine, s)
	return s
}

func (b *LineBlock) doOptLayout(restOfLine *cost.Solution, opts Options) *cost.Solution {
	elementLines := splitOnBreaks(b.elements)
	if len(elementLines) > 1 && opts.breakElementLines != nil {
		elementLines = opts.breakElementLines(elementLines)
	}

	var lineSolns []*cost.Solution
	for i, ln := range elementLines {
		var lnSoln *cost.Solution
		if i == len(elementLines)-1 {
			lnSoln = restOfLine
		}
		for j := len(ln) - 1; j >= 0; j-- {
			lnSoln = ln[j].OptLayout(lnSoln, opts)
		}
		if lnSoln != nil {
			lineSolns = append(lineSolns, lnSoln)
		}
	}

	soln := cost.VSum(lineSolns)
	return soln.PlusConst(opts.breakCost * float64(len(lineSolns)-1))
}

// splitOnBreaks partitions elements into element-lines, starting a new line immediately after
// any element (other than the last) whose IsBreaking is true.
func splitOnBreaks(elements []LayoutBlock) [][]LayoutBlock {
	lines := [][]LayoutBlock{{}}
	for i, elt := range elements {
		last := len(lines) - 1
		lines[last] = append(lines[last], elt)
		if i < len(elements)-1 && elt.IsBreaking() {
			lines = append(lines, []LayoutBlock{})
		}
	}
	return lines
}

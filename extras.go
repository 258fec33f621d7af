package blocks

import "github.com/Spacerat/format-blocks/internal/cost"

// Indented returns content prefixed with indent spaces of literal leading text.
func Indented(content LayoutBlock, indent int) *LineBlock {
	return MustLine(Text(spaces(indent)), content)
}

// OptionallyIndented places content between prefix and suffix (either of which may be nil),
// choosing between two alternatives: content alone on a new, indented line, or everything joined
// on one line with no indentation.
func OptionallyIndented(prefix, content, suffix LayoutBlock, indent int) (*ChoiceBlock, error) {
	if content == nil {
		content = Text("")
	}

	var stacked []LayoutBlock
	if prefix != nil {
		stacked = append(stacked, prefix)
	}
	stacked = append(stacked, Indented(content, indent))
	if suffix != nil {
		stacked = append(stacked, suffix)
	}

	var flat []LayoutBlock
	if prefix != nil {
		flat = append(flat, prefix)
	}
	flat = append(flat, content)
	if suffix != nil {
		flat = append(flat, suffix)
	}

	stack, err := Stack(stacked)
	if err != nil {
		return nil, err
	}
	line, err := Line(flat...)
	if err != nil {
		return nil, err
	}
	return Choice(stack, line)
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// JoinedLineBlock joins a list of elements with a separator, like strings.Join, laying the
// result out on a single line (with internal breaks where an element mandates one).
type JoinedLineBlock struct {
	elements     []LayoutBlock
	joiner       LayoutBlock
	joinBreaking bool
	breaking     bool
	memo         memo
}

// JoinedLine returns a block that joins elements with joiner. If joinBreaking is false (the
// common case), the joiner is omitted after an element that already mandates a break, since the
// break itself already separates it from what follows.
func JoinedLine(elements []LayoutBlock, joiner LayoutBlock, joinBreaking bool) (LayoutBlock, error) {
	if err := validateElements("JoinedLine", elements); err != nil {
		return nil, err
	}
	if len(elements) == 1 {
		return elements[0], nil
	}
	return &JoinedLineBlock{
		elements:     elements,
		joiner:       joiner,
		joinBreaking: joinBreaking,
		breaking:     lastIsBreaking(elements),
	}, nil
}

// IsBreaking implements [LayoutBlock].
func (b *JoinedLineBlock) IsBreaking() bool { return b.breaking }

// OptLayout implements [LayoutBlock].
func (b *JoinedLineBlock) OptLayout(restOfLine *cost.Solution, opts Options) *cost.Solution {
	if s, ok := b.memo.get(restOfLine); ok {
		return s
	}
	s := b.doOptLayout(restOfLine, opts)
	b.memo.set(restOfLine, s)
	return s
}

func (b *JoinedLineBlock) doOptLayout(restOfLine *cost.Solution, opts Options) *cost.Solution {
	var joined []LayoutBlock
	for _, e := range b.elements[:len(b.elements)-1] {
		joined = append(joined, e)
		if !e.IsBreaking() || b.joinBreaking {
			joined = append(joined, b.joiner)
		}
	}
	joined = append(joined, b.elements[len(b.elements)-1])

	line := MustLine(joined...)
	return line.OptLayout(restOfLine, opts)
}

// conditionalJoinedLine joins elements with joiner, but omits the joiner between a pair when the
// element on the right starts with a rune in noSpaceLeft or the element on the left ends with a
// rune in noSpaceRight. The runes are found by descending into [LineBlock] and [StackBlock]
// elements (see startRune and endRune); any other composite element is treated as having none.
func conditionalJoinedLine(elements []LayoutBlock, joiner string, noSpaceLeft, noSpaceRight map[rune]bool) (LayoutBlock, error) {
	if err := validateElements("conditionalJoinedLine", elements); err != nil {
		return nil, err
	}
	if len(elements) == 1 {
		return elements[0], nil
	}

	groups := [][]LayoutBlock{{elements[0]}}
	end := endRune(elements[0])
	for _, elt := range elements[1:] {
		start := startRune(elt)
		if noSpaceLeft[start] || noSpaceRight[end] {
			last := len(groups) - 1
			groups[last] = append(groups[last], elt)
		} else {
			groups = append(groups, []LayoutBlock{elt})
		}
		end = endRune(elt)
	}

	lines := make([]LayoutBlock, len(groups))
	for i, g := range groups {
		lines[i] = MustLine(g...)
	}
	return JoinedLine(lines, Text(joiner), false)
}

// startRune returns the first rune of the leftmost [TextBlock] reachable by descending into the
// first element of composite blocks, or 0 if none is found.
func startRune(b LayoutBlock) rune {
	for {
		switch v := b.(type) {
		case *TextBlock:
			for _, r := range v.text {
				return r
			}
			return 0
		case *LineBlock:
			if len(v.elements) == 0 {
				return 0
			}
			b = v.elements[0]
		case *StackBlock:
			if len(v.elements) == 0 {
				return 0
			}
			b = v.elements[0]
		default:
			return 0
		}
	}
}

// endRune returns startRune of a composite block's *last* element, or startRune of b itself for a
// leaf. Note that this is not the last rune of anything: it descends into the last child, then
// immediately falls back to startRune's own first-child descent from there. That mismatch
// (resolving an "end" by descending toward a "start") is a bug inherited from the block language
// this package implements, preserved here rather than silently fixed.
func endRune(b LayoutBlock) rune {
	switch v := b.(type) {
	case *LineBlock:
		if len(v.elements) == 0 {
			return 0
		}
		return startRune(v.elements[len(v.elements)-1])
	case *StackBlock:
		if len(v.elements) == 0 {
			return 0
		}
		return startRune(v.elements[len(v.elements)-1])
	default:
		return startRune(b)
	}
}

// joinedStack arranges elements vertically, appending joiner after every element but the last.
func joinedStack(elements []LayoutBlock, joiner LayoutBlock, breakMult float64) (LayoutBlock, error) {
	if err := validateElements("joinedStack", elements); err != nil {
		return nil, err
	}
	if len(elements) == 1 {
		return elements[0], nil
	}

	lines := make([]LayoutBlock, 0, len(elements))
	for _, e := range elements[:len(elements)-1] {
		lines = append(lines, MustLine(e, joiner))
	}
	lines = append(lines, elements[len(elements)-1])
	return Stack(lines, BreakMult(breakMult))
}

// wrapIfLong wraps elements like a justified paragraph if there are at least wrapLen of them,
// otherwise joins them on a single line: wrapping a handful of short elements only adds DP
// overhead for a layout [JoinedLine] would already find.
func wrapIfLong(elements []LayoutBlock, sep string, breakMult float64, wrapLen int) (LayoutBlock, error) {
	if err := validateElements("wrapIfLong", elements); err != nil {
		return nil, err
	}
	if len(elements) >= wrapLen {
		return Wrap(elements, Sep(sep), WrapBreakMult(breakMult))
	}
	return JoinedLine(elements, Text(sep), false)
}

package blocks

import "github.com/Spacerat/format-blocks/internal/cost"

// ChoiceBlock contains alternate layouts of the same content; its optimal layout is whichever
// alternative is cheapest at the column it starts. All elements of a ChoiceBlock should agree on
// IsBreaking, since only the last element's value is reported.
type ChoiceBlock struct {
	elements []LayoutBlock
	breaking bool
	memo     memo
}

// Choice returns a block whose optimal layout is the pointwise minimum over elements' layouts.
// It returns a [*BlockUsageError] if elements is empty.
func Choice(elements ...LayoutBlock) (*ChoiceBlock, error) {
	if err := validateElements("Choice", elements); err != nil {
		return nil, err
	}
	return &ChoiceBlock{elements: elements, breaking: lastIsBreaking(elements)}, nil
}

// MustChoice is like [Choice] but panics instead of returning an error.
func MustChoice(elements ...LayoutBlock) *ChoiceBlock {
	b, err := Choice(elements...)
	if err != nil {
		panic(err)
	}
	return b
}

// IsBreaking implements [LayoutBlock].
func (b *ChoiceBlock) IsBreaking() bool { return b.breaking }

// OptLayout implements [LayoutBlock].
func (b *ChoiceBlock) OptLayout(restOfLine *cost.Solution, opts Options) *cost.Solution {
	if s, ok := b.memo.get(restOfLine); ok {
		return s
	}
	solns := make([]*cost.Solution, len(b.elements))
	for i, e := range b.elements {
		solns[i] = e.OptLayout(restOfLine, opts)
	}
	s := cost.Min(solns)
	b.memo.set(restOfLine, s)
	return s
}

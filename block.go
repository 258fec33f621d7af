package blocks

import (
	"errors"

	"github.com/Spacerat/format-blocks/internal/cost"
)

// ErrNoElements reports that a composite block was constructed with zero elements.
var ErrNoElements = errors.New("format-blocks: composite blocks must contain at least one element")

// BlockUsageError reports that a block was constructed incorrectly.
type BlockUsageError struct {
	Block string
	Err   error
}

func (e *BlockUsageError) Error() string {
	return "format-blocks: " + e.Block + ": " + e.Err.Error()
}

func (e *BlockUsageError) Unwrap() error { return e.Err }

// LayoutBlock is a node in the tree of layout alternatives a caller assembles to describe how
// some content may be arranged. Blocks are built bottom-up and are conceptually immutable once
// constructed, apart from the memo table backing OptLayout.
type LayoutBlock interface {
	// OptLayout returns the least-cost layout for this block followed by restOfLine, the
	// solution representing whatever comes after this block on the same line (nil if nothing
	// does). Results are memoized per distinct restOfLine, keyed by pointer identity.
	OptLayout(restOfLine *cost.Solution, opts Options) *cost.Solution

	// IsBreaking reports whether a line break is mandated immediately after this block.
	IsBreaking() bool
}

// memo caches the result of OptLayout per continuation, keyed by the continuation's identity
// (nil is a distinguished key). It converts what would otherwise be exponential re-solving of
// shared [Choice] branches into polynomial work.
type memo struct {
	withNil *cost.Solution
	hasNil  bool
	byIdent map[*cost.Solution]*cost.Solution
}

func (m *memo) get(restOfLine *cost.Solution) (*cost.Solution, bool) {
	if restOfLine == nil {
		return m.withNil, m.hasNil
	}
	s, ok := m.byIdent[restOfLine]
	return s, ok
}

func (m *memo) set(restOfLine, soln *cost.Solution) {
	if restOfLine == nil {
		m.withNil, m.hasNil = soln, true
		return
	}
	if m.byIdent == nil {
		m.byIdent = make(map[*cost.Solution]*cost.Solution)
	}
	m.byIdent[restOfLine] = soln
}

func validateElements(blockName string, elements []LayoutBlock) error {
	if len(elements) == 0 {
		return &BlockUsageError{Block: blockName, Err: ErrNoElements}
	}
	return nil
}

func lastIsBreaking(elements []LayoutBlock) bool {
	return elements[len(elements)-1].IsBreaking()
}

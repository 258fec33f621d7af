// Package cost implements the piecewise-linear cost-function algebra that underlies the
// format-blocks layout optimizer.
//
// A [Solution] represents the cost of realizing some piece of content, plus everything that
// follows it on the same line, as a function of the column at which the content starts. The
// function is piecewise linear and is represented as five parallel slices indexed by "knot" — the
// column at which the slope changes. Alongside the cost at each knot this package tracks the span
// (how many columns the content occupies past its starting column on its last line) and the
// concrete [Layout] that witnesses that cost, so that once the optimum is found the caller can
// recover the text to emit without re-deriving it.
//
// The analytic base cases ([TextBlock], [VerbBlock]) are convex: their slopes never decrease from
// one knot to the next. [WithRestOfLine] and [VSum] preserve whatever convexity their inputs have.
// [Min], however, takes the pointwise minimum of several solutions, and that minimum is not convex
// in general — the arg-min can switch from a steeper candidate to a shallower one, so the result's
// slope can decrease at a knot. A Solution is therefore only piecewise linear in general; convexity
// is a property of some Solutions, not an invariant of the type.
//
// The algebra has four operations: [WithRestOfLine] composes a solution horizontally with
// whatever follows it on the same line, [VSum] stacks solutions as successive lines, [Min] takes
// the pointwise minimum of several solutions (used to choose among alternatives), and
// [Solution.PlusConst] shifts a solution's cost by a flat amount (used to price in line breaks).
package cost

import (
	"fmt"
	"math"
	"sort"

	"github.com/Spacerat/format-blocks/internal/assert"
)

// epsilon absorbs floating point error when comparing costs and slopes, so that near-equal
// values compare equal instead of producing spurious zero-width segments.
const epsilon = 1e-9

// ElementKind distinguishes the two kinds of [LayoutElement].
type ElementKind int

const (
	// StringElement is literal text.
	StringElement ElementKind = iota
	// NewLineElement is a line break followed by Indent leading spaces.
	NewLineElement
)

// LayoutElement is a single piece of a rendered [Layout]: either literal text, or a line break
// with a given indentation.
type LayoutElement struct {
	Kind   ElementKind
	Text   string // valid when Kind == StringElement
	Indent int    // valid when Kind == NewLineElement
}

// String returns a LayoutElement holding literal text.
func String(s string) LayoutElement {
	return LayoutElement{Kind: StringElement, Text: s}
}

// NewLine returns a LayoutElement holding a line break followed by indent leading spaces.
func NewLine(indent int) LayoutElement {
	return LayoutElement{Kind: NewLineElement, Indent: indent}
}

func (e LayoutElement) String() string {
	switch e.Kind {
	case StringElement:
		return fmt.Sprintf("%q", e.Text)
	case NewLineElement:
		return fmt.Sprintf("\\n+%d", e.Indent)
	default:
		assert.Unreachable("cost: unknown element kind %d", e.Kind)
		return ""
	}
}

// Layout is the ordered sequence of [LayoutElement]s that realizes a block's chosen arrangement.
// Rendering a Layout is a trivial walk; all of the work lies in choosing which Layout is optimal.
type Layout struct {
	Elements []LayoutElement
}

// Concat returns the layout formed by placing b immediately after a.
func Concat(a, b Layout) Layout {
	elems := make([]LayoutElement, 0, len(a.Elements)+len(b.Elements))
	elems = append(elems, a.Elements...)
	elems = append(elems, b.Elements...)
	return Layout{Elements: elems}
}

// Solution is the cost of realizing a block, plus its continuation, as a function of the column
// at which the block starts. See the package doc for the shape of the representation.
//
// A Solution is immutable once built; every operation in this package returns a fresh value.
type Solution struct {
	knots   []int
	spans   []int
	costs   []float64
	slopes  []float64
	layouts []Layout
}

// NumKnots returns the number of knots in s.
func (s *Solution) NumKnots() int {
	return len(s.knots)
}

// segmentAt returns the index of the segment covering column k: the largest i such that
// knots[i] <= k. Segments extend to +inf past the last knot.
func (s *Solution) segmentAt(k int) int {
	i := sort.Search(len(s.knots), func(i int) bool { return s.knots[i] > k }) - 1
	if i < 0 {
		i = 0
	}
	return i
}

// ValueAt returns the cost of s at starting column k.
func (s *Solution) ValueAt(k int) float64 {
	i := s.segmentAt(k)
	return s.costs[i] + s.slopes[i]*float64(k-s.knots[i])
}

// SlopeAt returns the slope of s at starting column k.
func (s *Solution) SlopeAt(k int) float64 {
	return s.slopes[s.segmentAt(k)]
}

// SpanAt returns the span of s at starting column k: the number of columns occupied past k on
// the last line of the layout that achieves s's cost there.
func (s *Solution) SpanAt(k int) int {
	return s.spans[s.segmentAt(k)]
}

// LayoutAt returns the witnessing layout for starting column k.
func (s *Solution) LayoutAt(k int) Layout {
	return s.layouts[s.segmentAt(k)]
}

// PlusConst returns a Solution identical to s except that every cost is shifted by c. Knots,
// slopes, spans and layouts are unchanged.
func (s *Solution) PlusConst(c float64) *Solution {
	if c == 0 {
		return s
	}
	costs := make([]float64, len(s.costs))
	for i, v := range s.costs {
		costs[i] = v + c
	}
	return &Solution{
		knots:   s.knots,
		spans:   s.spans,
		costs:   costs,
		slopes:  s.slopes,
		layouts: s.layouts,
	}
}

func (s *Solution) String() string {
	return fmt.Sprintf("Solution{knots=%v, spans=%v, costs=%v, slopes=%v}", s.knots, s.spans, s.costs, s.slopes)
}

// WithRestOfLine returns the cost function for placing self immediately followed by rest on the
// same line. If rest is nil, self is returned unchanged.
//
// rest's argument is shifted by self's span on the segment in question, because rest begins
// self.span columns past wherever self began.
func WithRestOfLine(self *Solution, rest *Solution) *Solution {
	if rest == nil {
		return self
	}

	f := NewFactory()
	n := len(self.knots)
	for i := 0; i < n; i++ {
		segStart := self.knots[i]
		hasSegEnd := i+1 < n
		var segEnd int
		if hasSegEnd {
			segEnd = self.knots[i+1]
		}
		shift := self.spans[i]

		candidates := []int{segStart}
		for _, bk := range rest.knots {
			k := bk - shift
			if k > segStart && (!hasSegEnd || k < segEnd) {
				candidates = append(candidates, k)
			}
		}
		sort.Ints(candidates)

		for _, k := range candidates {
			selfCost := self.costs[i] + self.slopes[i]*float64(k-segStart)
			restArg := k + shift
			totalCost := selfCost + rest.ValueAt(restArg)
			totalSlope := self.slopes[i] + rest.SlopeAt(restArg)
			totalSpan := shift + rest.SpanAt(restArg)
			totalLayout := Concat(self.layouts[i], rest.LayoutAt(restArg))
			f.Append(k, totalSpan, totalCost, totalSlope, totalLayout)
		}
	}
	return f.Build()
}

// VSum stacks solutions as successive lines. Only the first solution's starting column is the
// function's argument; the second and subsequent lines always start at column 0, so only their
// value at 0 contributes to cost.
func VSum(solutions []*Solution) *Solution {
	assert.That(len(solutions) > 0, "cost: VSum requires at least one solution")
	if len(solutions) == 1 {
		return solutions[0]
	}

	first := solutions[0]
	rest := solutions[1:]

	var extra float64
	var tail []LayoutElement
	for _, s := range rest {
		extra += s.ValueAt(0)
		tail = append(tail, NewLine(0))
		tail = append(tail, s.LayoutAt(0).Elements...)
	}
	lastSpan := rest[len(rest)-1].SpanAt(0)

	f := NewFactory()
	for i, k := range first.knots {
		elems := make([]LayoutElement, 0, len(first.layouts[i].Elements)+len(tail))
		elems = append(elems, first.layouts[i].Elements...)
		elems = append(elems, tail...)
		f.Append(k, lastSpan, first.costs[i]+extra, first.slopes[i], Layout{Elements: elems})
	}
	return f.Build()
}

// Min returns the pointwise minimum of solutions, a piecewise-linear function re-sliced into
// convex-by-segment form. Ties in value are broken in favor of the smaller slope (so the true
// minimum continues to hold just past the tie); remaining ties are broken in favor of the
// earliest solution in input order.
func Min(solutions []*Solution) *Solution {
	assert.That(len(solutions) > 0, "cost: Min requires at least one solution")
	if len(solutions) == 1 {
		return solutions[0]
	}

	knotSet := make(map[int]struct{})
	for _, s := range solutions {
		for _, k := range s.knots {
			knotSet[k] = struct{}{}
		}
	}
	knots := make([]int, 0, len(knotSet))
	for k := range knotSet {
		knots = append(knots, k)
	}
	sort.Ints(knots)

	f := NewFactory()
	cur := 0
	for {
		winner, val, slope, span, layout := pickMin(solutions, cur)
		f.Append(cur, span, val, slope, layout)

		next, found := 0, false
		if k, ok := firstGreater(knots, cur); ok {
			next, found = k, true
		}
		if k, ok := earliestCrossing(solutions, winner, cur, val, slope); ok && (!found || k < next) {
			next, found = k, true
		}
		if !found {
			break
		}
		cur = next
	}
	return f.Build()
}

// pickMin evaluates every solution at k and returns the index, value, slope, span and layout of
// the one that is minimal there. Among solutions tied on value, the one with the smaller slope
// wins, since it is the one that remains minimal for columns just past k; remaining ties go to
// the earliest index.
func pickMin(solutions []*Solution, k int) (idx int, val, slope float64, span int, layout Layout) {
	idx = -1
	for i, s := range solutions {
		seg := s.segmentAt(k)
		v := s.costs[seg] + s.slopes[seg]*float64(k-s.knots[seg])
		sl := s.slopes[seg]
		switch {
		case idx == -1:
		case v < val-epsilon:
		case v > val+epsilon:
			continue
		case sl < slope-epsilon:
		default:
			continue
		}
		idx, val, slope, span, layout = i, v, sl, s.spans[seg], s.layouts[seg]
	}
	return idx, val, slope, span, layout
}

// earliestCrossing finds the smallest integer column strictly greater than k at which some
// solution other than winner overtakes it, given winner's value and slope at k.
func earliestCrossing(solutions []*Solution, winner int, k int, val, slope float64) (int, bool) {
	best := 0
	found := false
	for j, s := range solutions {
		if j == winner {
			continue
		}
		seg := s.segmentAt(k)
		aj := s.costs[seg] + s.slopes[seg]*float64(k-s.knots[seg])
		bj := s.slopes[seg]
		if bj >= slope-epsilon {
			continue // j never overtakes: it's at least as steep as the winner
		}
		if aj <= val+epsilon {
			continue // j is already tied or ahead; pickMin would have chosen it
		}
		t := float64(k) + (aj-val)/(slope-bj)
		c := int(math.Ceil(t - epsilon))
		if c <= k {
			c = k + 1
		}
		if !found || c < best {
			best, found = c, true
		}
	}
	return best, found
}

func firstGreater(sorted []int, k int) (int, bool) {
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i] > k })
	if i == len(sorted) {
		return 0, false
	}
	return sorted[i], true
}

// Factory is an append-only builder for [Solution]s whose cost function is known analytically,
// such as the base cases computed directly by a text or verbatim block.
type Factory struct {
	knots   []int
	spans   []int
	costs   []float64
	slopes  []float64
	layouts []Layout
}

// NewFactory returns an empty Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Append adds a knot to the solution under construction. knot must be strictly greater than the
// previously appended knot (or be the first knot, which must be 0); this is an invariant of every
// [Solution] and violating it indicates a bug in the caller. Slope is not required to be
// non-decreasing here: that holds for the analytic base cases by construction, but [Min] builds
// legitimately non-convex solutions through this same Factory, so Append cannot assume convexity.
func (f *Factory) Append(knot, span int, cost, slope float64, layout Layout) {
	n := len(f.knots)
	if n == 0 {
		assert.That(knot == 0, "cost: first knot must be 0, got %d", knot)
	} else {
		assert.That(knot > f.knots[n-1], "cost: knots must be strictly increasing, got %d after %d", knot, f.knots[n-1])
	}
	f.knots = append(f.knots, knot)
	f.spans = append(f.spans, span)
	f.costs = append(f.costs, cost)
	f.slopes = append(f.slopes, slope)
	f.layouts = append(f.layouts, layout)
}

// Build returns the Solution accumulated so far. The Factory must not be reused afterward.
func (f *Factory) Build() *Solution {
	assert.That(len(f.knots) > 0, "cost: Build called on an empty Factory")
	return &Solution{
		knots:   f.knots,
		spans:   f.spans,
		costs:   f.costs,
		slopes:  f.slopes,
		layouts: f.layouts,
	}
}

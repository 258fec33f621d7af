package cost_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/Spacerat/format-blocks/internal/cost"
)

// text builds the same 1/2/3-knot Solution a TextBlock would for s under the default options
// (margin0=0, margin0Cost=0.05, margin1=80, margin1Cost=100), without depending on package
// blocks, so the cost algebra can be tested in isolation.
func text(s string) *cost.Solution {
	const (
		margin0     = 0
		margin0Cost = 0.05
		margin1     = 80
		margin1Cost = 100.0
	)
	span := len(s)
	layout := cost.Layout{Elements: []cost.LayoutElement{cost.String(s)}}
	f := cost.NewFactory()
	switch {
	case span >= margin1:
		f.Append(0, span,
			float64(span-margin0)*margin0Cost+float64(span-margin1)*margin1,
			margin0Cost+margin1Cost, layout)
	case span >= margin0:
		f.Append(0, span, float64(span-margin0)*margin0Cost, margin0Cost, layout)
		f.Append(margin1-span, span, float64(margin1-margin0)*margin0Cost, margin0Cost+margin1Cost, layout)
	default:
		f.Append(0, span, 0, 0, layout)
		f.Append(margin0-span, span, 0, margin0Cost, layout)
		f.Append(margin1-span, span, float64(margin1-margin0)*margin0Cost, margin0Cost+margin1Cost, layout)
	}
	return f.Build()
}

func TestSolutionValueAt(t *testing.T) {
	s := text("hello")
	// margin0 is 0, so each of the 5 columns of "hello" already costs margin0Cost.
	assert.EqualValues(t, s.ValueAt(0), 0.25)
	// starting at 75, "hello" ends exactly at margin1 (80): 80 columns at margin0Cost.
	assert.EqualValues(t, s.ValueAt(75), 4.0)
	// one column further: margin0Cost + margin1Cost applies to the single column past margin1.
	assert.EqualValues(t, s.ValueAt(76), 4.0+0.05+100)
}

func TestWithRestOfLineNilIsIdentity(t *testing.T) {
	s := text("hi")
	got := cost.WithRestOfLine(s, nil)
	assert.True(t, got == s, "WithRestOfLine(s, nil) should return s unchanged")
}

func TestWithRestOfLineAddsSpans(t *testing.T) {
	a := text("ab")
	b := text("cde")
	got := cost.WithRestOfLine(a, b)

	for k := 0; k < 100; k++ {
		wantSpan := a.SpanAt(k) + b.SpanAt(k+a.SpanAt(k))
		assert.EqualValues(t, got.SpanAt(k), wantSpan, "k=%d", k)
		wantVal := a.ValueAt(k) + b.ValueAt(k+a.SpanAt(k))
		closeEnough(t, got.ValueAt(k), wantVal, k)
	}
}

func TestVSumSingleIsIdentity(t *testing.T) {
	a := text("only")
	got := cost.VSum([]*cost.Solution{a})
	assert.True(t, got == a, "VSum of a single solution should return it unchanged")
}

func TestVSumAddsSecondLineAtZero(t *testing.T) {
	a := text("ab")
	b := text("cde")
	got := cost.VSum([]*cost.Solution{a, b})

	for k := 0; k < 100; k++ {
		wantVal := a.ValueAt(k) + b.ValueAt(0)
		closeEnough(t, got.ValueAt(k), wantVal, k)
		assert.EqualValues(t, got.SpanAt(k), b.SpanAt(0), "k=%d", k)
	}
}

func TestMinIsPointwise(t *testing.T) {
	a := text("short")
	b := text("a rather longer bit of text than the other one")
	got := cost.Min([]*cost.Solution{a, b})

	for k := 0; k < 200; k++ {
		want := a.ValueAt(k)
		if v := b.ValueAt(k); v < want {
			want = v
		}
		closeEnough(t, got.ValueAt(k), want, k)
	}
}

func TestMinTieBreaksToEarlierInput(t *testing.T) {
	a := text("same")
	b := text("diff") // same length, so same costs, but a distinguishable layout
	got := cost.Min([]*cost.Solution{a, b})
	assert.EqualValues(t, got.LayoutAt(0).Elements[0].Text, "same")
}

func TestPlusConst(t *testing.T) {
	s := text("x")
	got := s.PlusConst(7)
	for k := 0; k < 100; k++ {
		closeEnough(t, got.ValueAt(k), s.ValueAt(k)+7, k)
	}
}

func TestFactoryRejectsNonZeroFirstKnot(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected Append to panic when the first knot is not 0")
		}
	}()
	f := cost.NewFactory()
	f.Append(1, 0, 0, 0, cost.Layout{})
}

func TestFactoryRejectsNonIncreasingKnots(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected Append to panic on a non-increasing knot")
		}
	}()
	f := cost.NewFactory()
	f.Append(0, 0, 0, 0, cost.Layout{})
	f.Append(0, 0, 0, 0, cost.Layout{})
}

// TestMinProducesNonConvexEnvelope covers a Solution where a steep-then-shallow winner switch
// makes the lower envelope's slope decrease at a knot. This is not a bug: the pointwise minimum of
// convex solutions is not convex in general, and Min (and everything that may later compose its
// result, e.g. WithRestOfLine or VSum wrapping a Choice) must not assume otherwise.
func TestMinProducesNonConvexEnvelope(t *testing.T) {
	steep := cost.NewFactory()
	steep.Append(0, 0, 0, 10, cost.Layout{})
	a := steep.Build()

	shallow := cost.NewFactory()
	shallow.Append(0, 0, 100, 1, cost.Layout{})
	b := shallow.Build()

	got := cost.Min([]*cost.Solution{a, b})
	for k := 0; k < 20; k++ {
		want := a.ValueAt(k)
		if v := b.ValueAt(k); v < want {
			want = v
		}
		closeEnough(t, got.ValueAt(k), want, k)
	}
	// a wins near 0 with slope 10; b overtakes once its flatter line catches up, so the envelope's
	// slope must drop from 10 to something smaller at the crossing knot rather than panicking.
	assert.True(t, got.SlopeAt(0) > got.SlopeAt(15), "expected a decreasing slope across the crossover")
}

func closeEnough(t *testing.T, got, want float64, k int) {
	t.Helper()
	const eps = 1e-6
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	if diff > eps {
		t.Fatalf("k=%d: got %g, want %g", k, got, want)
	}
}

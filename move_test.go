package weave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrowsInOut(t *testing.T) {
	w := New()
	defer w.Close()

	a := w.NewKnot()
	b := w.NewKnot()
	ab := w.NewArrow(a, b)

	assert.Equal(t, []EntityId{ab}, w.ArrowsOut([]EntityId{a}))
	assert.Equal(t, []EntityId{ab}, w.ArrowsIn([]EntityId{b}))
	assert.ElementsMatch(t, []EntityId{ab}, w.Arrows([]EntityId{a}))
	assert.ElementsMatch(t, []EntityId{ab}, w.Arrows([]EntityId{b}))
}

func TestToSourceToTargetSkipWrongKind(t *testing.T) {
	w := New()
	defer w.Close()

	a := w.NewKnot()
	b := w.NewKnot()
	ab := w.NewArrow(a, b)
	mark := w.NewMark(b)
	tether := w.NewTether(a)

	assert.Equal(t, []EntityId{a}, w.ToSource([]EntityId{ab, mark}))
	assert.Equal(t, []EntityId{b}, w.ToTarget([]EntityId{ab, tether}))
}

func TestNextPrev(t *testing.T) {
	w := New()
	defer w.Close()

	a := w.NewKnot()
	b := w.NewKnot()
	w.NewArrow(a, b)

	assert.Equal(t, []EntityId{b}, w.Next(a))
	assert.Equal(t, []EntityId{a}, w.Prev(b))
}

func TestDepsTransitiveClosure(t *testing.T) {
	w := New()
	defer w.Close()

	a := w.NewKnot()
	b := w.NewKnot()
	ab := w.NewArrow(a, b)
	markOnArrow := w.NewMark(ab)

	deps := w.Deps([]EntityId{a})
	assert.ElementsMatch(t, []EntityId{ab, markOnArrow}, deps)
}

func TestUpDownFollowOnlyHierarchicalArrows(t *testing.T) {
	w := New()
	defer w.Close()

	root := w.NewKnot()
	child := w.NewKnot()
	plainTarget := w.NewKnot()

	parents := w.Parent(root, []EntityId{child})
	require.Len(t, parents, 1)
	w.NewArrow(root, plainTarget)

	assert.Equal(t, []EntityId{child}, w.Down(root))
	assert.Equal(t, []EntityId{root}, w.Up(child))
	assert.Empty(t, w.Up(plainTarget))
}

func TestLiftLower(t *testing.T) {
	w := New()
	defer w.Close()

	a := w.NewKnot()
	b := w.NewKnot()
	arrow := w.NewArrow(a, b)

	assert.Empty(t, w.Down(a))

	lifted := w.Lift([]EntityId{arrow})
	assert.Equal(t, []EntityId{arrow}, lifted)
	assert.Equal(t, []EntityId{b}, w.Down(a))

	lowered := w.Lower([]EntityId{arrow})
	assert.Equal(t, []EntityId{arrow}, lowered)
	assert.Empty(t, w.Down(a))
}

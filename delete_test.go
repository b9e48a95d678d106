package weave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrowsOnACycle(t *testing.T) {
	w := New()
	defer w.Close()

	x := w.NewKnot()
	y := w.NewKnot()
	xy := w.NewArrow(x, y)
	yx := w.NewArrow(y, x)

	first := w.Arrows([]EntityId{x})
	assert.ElementsMatch(t, []EntityId{xy, yx}, first)

	// first names two Arrows, neither of which is itself an Arrow
	// endpoint here, so querying Arrows one hop further yields nothing.
	second := w.Arrows(first)
	assert.Empty(t, second)
}

func TestDeleteCascadeFreesDependents(t *testing.T) {
	w := New()
	defer w.Close()

	a := w.NewKnot()
	b := w.NewKnot()
	arrow := w.NewArrow(a, b)
	mark := w.NewMark(arrow)

	require.True(t, w.DeleteCascade(&arrow))
	assert.True(t, w.IsNil(arrow))
	assert.False(t, w.IsValid(mark))
	assert.True(t, w.IsValid(a))
	assert.True(t, w.IsValid(b))
}

func TestOrphanVsCascade(t *testing.T) {
	w := New()
	defer w.Close()

	a := w.NewKnot()
	r := w.NewArrow(a, a)

	assert.False(t, w.DeleteOrphan(&a))
	assert.True(t, w.IsValid(a))

	require.True(t, w.DeleteCascade(&a))
	assert.True(t, w.IsNil(a))
	assert.False(t, w.IsValid(r))
}

func TestDeleteOrphanOnUnreferencedEntity(t *testing.T) {
	w := New()
	defer w.Close()

	k := w.NewKnot()
	require.True(t, w.DeleteOrphan(&k))
	assert.True(t, w.IsNil(k))
}

func TestDeleteCascadeOnDeadHandleIsNoop(t *testing.T) {
	w := New()
	defer w.Close()

	h := EntityId(12345)
	assert.False(t, w.DeleteCascade(&h))
	assert.True(t, w.IsNil(h))
}

func TestDependsReflectsReferences(t *testing.T) {
	w := New()
	defer w.Close()

	a := w.NewKnot()
	b := w.NewKnot()
	arrow := w.NewArrow(a, b)

	assert.ElementsMatch(t, []EntityId{arrow}, w.Depends(a))
	assert.ElementsMatch(t, []EntityId{arrow}, w.Depends(b))
}

package weave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectFanOut(t *testing.T) {
	w := New()
	defer w.Close()

	source := w.NewKnot()
	t1 := w.NewKnot()
	t2 := w.NewKnot()

	arrows := w.Connect(source, []EntityId{t1, t2})
	require.Len(t, arrows, 2)
	assert.ElementsMatch(t, []EntityId{t1, t2}, w.ToTarget(arrows))
	for _, a := range arrows {
		assert.True(t, w.IsArrow(a))
	}
}

func TestHoistMembershipAndCleanupOnDelete(t *testing.T) {
	w := New()
	defer w.Close()

	subject := w.NewKnot()
	o1 := w.NewKnot()
	o2 := w.NewKnot()

	marks := w.Hoist(subject, []EntityId{o1, o2})
	require.Len(t, marks, 2)
	for _, m := range marks {
		assert.True(t, w.IsMark(m))
	}

	members := w.hoistedUnder(subject)
	assert.ElementsMatch(t, []EntityId{o1, o2}, members)

	require.True(t, w.DeleteOrphan(&o1))
	members = w.hoistedUnder(subject)
	assert.ElementsMatch(t, []EntityId{o2}, members)
}

func TestParentCreatesHierarchicalArrow(t *testing.T) {
	w := New()
	defer w.Close()

	root := w.NewKnot()
	child := w.NewKnot()

	arrows := w.Parent(root, []EntityId{child})
	require.Len(t, arrows, 1)
	assert.True(t, w.IsArrow(arrows[0]))
	assert.Equal(t, []EntityId{child}, w.Down(root))
}

func TestPivotCreatesBidirectionalArrows(t *testing.T) {
	w := New()
	defer w.Close()

	center := w.NewKnot()
	child := w.NewKnot()

	arrows := w.Pivot(center, []EntityId{child})
	require.Len(t, arrows, 2)
	assert.ElementsMatch(t, []EntityId{center}, w.ToTarget([]EntityId{arrows[0]}))
	assert.ElementsMatch(t, []EntityId{child}, w.ToTarget([]EntityId{arrows[1]}))
}

func TestLiftIsIdempotentOnAlreadyTagged(t *testing.T) {
	w := New()
	defer w.Close()

	root := w.NewKnot()
	child := w.NewKnot()
	arrows := w.Parent(root, []EntityId{child})

	again := w.Lift(arrows)
	assert.Empty(t, again)
}

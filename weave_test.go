package weave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleAndKindPredicates(t *testing.T) {
	w := New()
	defer w.Close()

	a := w.NewKnot()
	b := w.NewKnot()
	c := w.NewArrow(a, b)

	assert.True(t, w.IsArrow(c))
	assert.False(t, w.IsMark(c))

	require.True(t, w.ChangeSource(c, c))
	assert.True(t, w.IsArrow(c))
	assert.False(t, w.IsMark(c))

	require.True(t, w.DeleteCascade(&c))
	assert.True(t, w.IsNil(c))
}

func TestKindPredicatesPartitionLiveEntities(t *testing.T) {
	w := New()
	defer w.Close()

	k := w.NewKnot()
	a := w.NewArrow(k, Nil)
	m := w.NewMark(k)
	te := w.NewTether(k)

	for _, h := range []EntityId{k, a, m, te} {
		kind, ok := w.KindOf(h)
		require.True(t, ok)
		switch kind {
		case Knot:
			assert.True(t, w.IsKnot(h))
		case Arrow:
			assert.True(t, w.IsArrow(h))
		case Mark:
			assert.True(t, w.IsMark(h))
		case Tether:
			assert.True(t, w.IsTether(h))
		}
	}
}

func TestHandleReuseIsDistinguishable(t *testing.T) {
	w := New()
	defer w.Close()

	first := w.NewKnot()
	require.True(t, w.DeleteOrphan(&first))
	second := w.NewKnot()

	assert.NotEqual(t, first, second)
}

func TestNewArrowRejectsDeadEndpoint(t *testing.T) {
	w := New()
	defer w.Close()

	dead := w.NewKnot()
	require.True(t, w.DeleteOrphan(&dead))

	assert.Equal(t, Nil, w.NewArrow(dead, Nil))
	assert.Equal(t, Nil, w.NewMark(dead))
	assert.Equal(t, Nil, w.NewTether(dead))
}

func TestChangeEndsOutOfDomainIsNoop(t *testing.T) {
	w := New()
	defer w.Close()

	k := w.NewKnot()
	mark := w.NewMark(k)

	assert.False(t, w.ChangeSource(mark, k))
	assert.False(t, w.ChangeEnds(mark, k, k))
}

func TestNilWeaveMethodsAreSafe(t *testing.T) {
	var w *Weave
	assert.False(t, w.IsValid(Nil))
	assert.Equal(t, Nil, w.NewKnot())
	assert.Nil(t, w.Arrows(nil))
	assert.False(t, w.DeleteCascade(&[]EntityId{Nil}[0]))
	assert.NotPanics(t, func() { w.Close() })
}

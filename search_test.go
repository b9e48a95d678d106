package weave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSubgraphMatchFixture wires up the pattern/target sub-graphs from the
// subgraph-match scenario: a 3-vertex pattern with a transitive triangle of
// arrows, hoisted under hp, embedded into a 4-vertex target with a
// bidirectional core, hoisted under ht.
func buildSubgraphMatchFixture(w *Weave) (hp, hT EntityId, p1, p2, p3, t1, t2, t3, t4 EntityId) {
	hp = w.NewKnot()
	p1 = w.NewKnot()
	p2 = w.NewKnot()
	p3 = w.NewKnot()
	w.NewArrow(p1, p2)
	w.NewArrow(p1, p3)
	w.NewArrow(p2, p3)
	w.Hoist(hp, []EntityId{p1, p2, p3})

	hT = w.NewKnot()
	t1 = w.NewKnot()
	t2 = w.NewKnot()
	t3 = w.NewKnot()
	t4 = w.NewKnot()
	w.NewArrow(t1, t2)
	w.NewArrow(t1, t3)
	w.NewArrow(t2, t3)
	w.NewArrow(t3, t2)
	w.NewArrow(t2, t4)
	w.NewArrow(t3, t4)
	w.Hoist(hT, []EntityId{t1, t2, t3, t4})
	return
}

func matchAsPairs(m Match) map[EntityId]EntityId {
	out := make(map[EntityId]EntityId, len(m.Source))
	for i, s := range m.Source {
		out[s] = m.Target[i]
	}
	return out
}

func TestFindAllSubgraphMatch(t *testing.T) {
	w := New()
	defer w.Close()
	hp, ht, p1, p2, p3, t1, t2, t3, t4 := buildSubgraphMatchFixture(w)

	matches := w.FindAll(hp, ht)
	require.NotEmpty(t, matches)

	want := []map[EntityId]EntityId{
		{p1: t1, p2: t2, p3: t3},
		{p1: t1, p2: t3, p3: t2},
		{p1: t2, p2: t3, p3: t4},
		{p1: t3, p2: t2, p3: t4},
	}

	var got []map[EntityId]EntityId
	for _, m := range matches {
		assert.Len(t, m.Source, 3)
		assert.Len(t, m.Target, 3)
		got = append(got, matchAsPairs(m))
	}
	for _, w := range want {
		assert.Contains(t, got, w)
	}
}

func TestFindOneReturnsAMemberOfFindAll(t *testing.T) {
	w := New()
	defer w.Close()
	hp, ht, _, _, _, _, _, _, _ := buildSubgraphMatchFixture(w)

	one, ok := w.FindOne(hp, ht)
	require.True(t, ok)

	all := w.FindAll(hp, ht)
	found := false
	for _, m := range all {
		if matchesEqual(m, one) {
			found = true
			break
		}
	}
	assert.True(t, found)
}

func matchesEqual(a, b Match) bool {
	if len(a.Source) != len(b.Source) {
		return false
	}
	for i := range a.Source {
		if a.Source[i] != b.Source[i] || a.Target[i] != b.Target[i] {
			return false
		}
	}
	return true
}

func TestSearchInjective(t *testing.T) {
	w := New()
	defer w.Close()
	hp, ht, _, _, _, _, _, _, _ := buildSubgraphMatchFixture(w)

	for _, m := range w.FindAll(hp, ht) {
		seen := make(map[EntityId]struct{}, len(m.Target))
		for _, target := range m.Target {
			_, dup := seen[target]
			assert.False(t, dup, "match must be injective")
			seen[target] = struct{}{}
		}
	}
}

func TestSearchWithUnhoistedRootsReturnsEmpty(t *testing.T) {
	w := New()
	defer w.Close()

	a := w.NewKnot()
	b := w.NewKnot()

	assert.Empty(t, w.FindAll(a, b))
	_, ok := w.FindOne(a, b)
	assert.False(t, ok)
}

package weave

// toSet builds a membership set from a handle slice for O(1) containment
// checks during a single scan of the entity store.
func toSet(s []EntityId) map[EntityId]struct{} {
	set := make(map[EntityId]struct{}, len(s))
	for _, h := range s {
		set[h] = struct{}{}
	}
	return set
}

// scan walks live slots in slot-index order, calling keep for each. This
// is creation order only until a freed slot is reused: a recycled slot
// keeps its earlier position. keep returns whether to append the slot's
// handle to the result.
// Callers must hold w.mu for at least reading.
func (w *Weave) scan(keep func(idx int, s *slot) bool) []EntityId {
	var out []EntityId
	for idx := range w.slots {
		s := &w.slots[idx]
		if !s.occupied {
			continue
		}
		if keep(idx, s) {
			out = append(out, makeHandle(s.generation, uint32(idx)))
		}
	}
	return out
}

// Arrows returns every live Arrow with source or target in s.
func (w *Weave) Arrows(s []EntityId) []EntityId {
	if w == nil {
		return nil
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	set := toSet(s)
	return w.scan(func(_ int, slt *slot) bool {
		if slt.kind != Arrow {
			return false
		}
		_, bySrc := set[slt.source]
		_, byTgt := set[slt.target]
		return bySrc || byTgt
	})
}

// ArrowsIn returns every live Arrow with target in s.
func (w *Weave) ArrowsIn(s []EntityId) []EntityId {
	if w == nil {
		return nil
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	set := toSet(s)
	return w.scan(func(_ int, slt *slot) bool {
		if slt.kind != Arrow {
			return false
		}
		_, ok := set[slt.target]
		return ok
	})
}

// ArrowsOut returns every live Arrow with source in s.
func (w *Weave) ArrowsOut(s []EntityId) []EntityId {
	if w == nil {
		return nil
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	set := toSet(s)
	return w.scan(func(_ int, slt *slot) bool {
		if slt.kind != Arrow {
			return false
		}
		_, ok := set[slt.source]
		return ok
	})
}

// Marks returns every live Mark with target in s.
func (w *Weave) Marks(s []EntityId) []EntityId {
	if w == nil {
		return nil
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	set := toSet(s)
	return w.scan(func(_ int, slt *slot) bool {
		if slt.kind != Mark {
			return false
		}
		_, ok := set[slt.target]
		return ok
	})
}

// Tethers returns every live Tether with source in s.
func (w *Weave) Tethers(s []EntityId) []EntityId {
	if w == nil {
		return nil
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	set := toSet(s)
	return w.scan(func(_ int, slt *slot) bool {
		if slt.kind != Tether {
			return false
		}
		_, ok := set[slt.source]
		return ok
	})
}

// ToSource returns, for each Arrow or Tether in s, its source, in the
// order elements of s were given. Elements of s of any other kind (or not
// live) are skipped.
func (w *Weave) ToSource(s []EntityId) []EntityId {
	if w == nil {
		return nil
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []EntityId
	for _, h := range s {
		slt, ok := w.lookup(h)
		if !ok || (slt.kind != Arrow && slt.kind != Tether) {
			continue
		}
		out = append(out, slt.source)
	}
	return out
}

// ToTarget returns, for each Arrow or Mark in s, its target, in the order
// elements of s were given. Elements of s of any other kind (or not live)
// are skipped.
func (w *Weave) ToTarget(s []EntityId) []EntityId {
	if w == nil {
		return nil
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []EntityId
	for _, h := range s {
		slt, ok := w.lookup(h)
		if !ok || (slt.kind != Arrow && slt.kind != Mark) {
			continue
		}
		out = append(out, slt.target)
	}
	return out
}

// Deps returns depends⁺(s): the transitive closure of entities that
// depend on any member of s (directly or through one another), excluding
// the members of s themselves.
func (w *Weave) Deps(s []EntityId) []EntityId {
	if w == nil {
		return nil
	}
	w.mu.RLock()
	defer w.mu.RUnlock()

	seen := toSet(s)
	var order []EntityId
	queue := append([]EntityId(nil), s...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for dep := range w.refs[cur] {
			if _, ok := seen[dep]; ok {
				continue
			}
			seen[dep] = struct{}{}
			order = append(order, dep)
			queue = append(queue, dep)
		}
	}
	return order
}

// Next returns the one-hop Arrow successors of x.
func (w *Weave) Next(x EntityId) []EntityId {
	return w.ToTarget(w.ArrowsOut([]EntityId{x}))
}

// NextN concatenates Next(x) for each x in s, in input order.
func (w *Weave) NextN(s []EntityId) []EntityId {
	var out []EntityId
	for _, x := range s {
		out = append(out, w.Next(x)...)
	}
	return out
}

// Prev returns the one-hop Arrow predecessors of x.
func (w *Weave) Prev(x EntityId) []EntityId {
	return w.ToSource(w.ArrowsIn([]EntityId{x}))
}

// PrevN concatenates Prev(x) for each x in s, in input order.
func (w *Weave) PrevN(s []EntityId) []EntityId {
	var out []EntityId
	for _, x := range s {
		out = append(out, w.Prev(x)...)
	}
	return out
}

// isHierarchical reports whether arrow a was tagged by Parent or Lift (and
// not since untagged by Lower). Callers must hold w.mu for reading.
func (w *Weave) isHierarchical(a EntityId) bool {
	_, ok := w.hierArrows[a]
	return ok
}

// Up follows hierarchical Arrows (those tagged by Parent or Lift) from x
// to its parent(s).
func (w *Weave) Up(x EntityId) []EntityId {
	if w == nil {
		return nil
	}
	in := w.ArrowsIn([]EntityId{x})
	w.mu.RLock()
	var hier []EntityId
	for _, a := range in {
		if w.isHierarchical(a) {
			hier = append(hier, a)
		}
	}
	w.mu.RUnlock()
	return w.ToSource(hier)
}

// UpN concatenates Up(x) for each x in s, in input order.
func (w *Weave) UpN(s []EntityId) []EntityId {
	var out []EntityId
	for _, x := range s {
		out = append(out, w.Up(x)...)
	}
	return out
}

// Down follows hierarchical Arrows from x to its child(ren); the inverse
// of Up.
func (w *Weave) Down(x EntityId) []EntityId {
	if w == nil {
		return nil
	}
	out := w.ArrowsOut([]EntityId{x})
	w.mu.RLock()
	var hier []EntityId
	for _, a := range out {
		if w.isHierarchical(a) {
			hier = append(hier, a)
		}
	}
	w.mu.RUnlock()
	return w.ToTarget(hier)
}

// DownN concatenates Down(x) for each x in s, in input order.
func (w *Weave) DownN(s []EntityId) []EntityId {
	var out []EntityId
	for _, x := range s {
		out = append(out, w.Down(x)...)
	}
	return out
}

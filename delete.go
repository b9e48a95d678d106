package weave

// Depends returns depends(h): the live entities that reference h as their
// source or target (Marks count h as target, Tethers count h as source).
// The returned order is unspecified.
func (w *Weave) Depends(h EntityId) []EntityId {
	if w == nil {
		return nil
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	set, ok := w.refs[h]
	if !ok {
		return nil
	}
	out := make([]EntityId, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	return out
}

// dependsClosure walks the reverse-reference index breadth-first to collect
// {h} ∪ depends⁺(h) in discovery order. Callers must hold w.mu.
func (w *Weave) dependsClosure(h EntityId) []EntityId {
	seen := map[EntityId]struct{}{h: {}}
	order := []EntityId{h}
	queue := []EntityId{h}
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

// freeSlot releases one entity's storage. Callers must hold w.mu and must
// have already detached it from any dependents (or be freeing dependents
// first, per dependsClosure's discovery order).
func (w *Weave) freeSlot(h EntityId) {
	slt, ok := w.lookup(h)
	if !ok {
		return
	}
	w.removeRef(slt.source, h)
	w.removeRef(slt.target, h)
	delete(w.refs, h)
	delete(w.components, h)
	delete(w.hoistMembers, h)
	w.unhoistAll(h)

	// Keep hierarchical-Arrow tagging consistent whichever side of the
	// tag pair is being freed (the Arrow or its tag Mark).
	if arrow, ok := w.markTagsArrow[h]; ok {
		delete(w.hierArrows, arrow)
		delete(w.tagMarkOf, arrow)
		delete(w.markTagsArrow, h)
	}
	if mark, ok := w.tagMarkOf[h]; ok {
		delete(w.markTagsArrow, mark)
		delete(w.tagMarkOf, h)
	}
	delete(w.hierArrows, h)

	_, idx, _ := split(h)
	slt.occupied = false
	slt.generation++
	slt.source = Nil
	slt.target = Nil
	w.free = append(w.free, idx)
}

// DeleteCascade frees h and transitively every live entity that depends on
// it (source or target equal to h, or to any entity thereby freed), then
// writes Nil into *h. Returns false as a no-op if *h does not name a live
// entity (Nil is still written).
func (w *Weave) DeleteCascade(h *EntityId) bool {
	if w == nil || h == nil {
		return false
	}
	op := w.traceOp("weave.delete.cascade")
	defer op.End(nil)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.lookup(*h); !ok {
		*h = Nil
		return false
	}
	closure := w.dependsClosure(*h)
	for i := len(closure) - 1; i >= 0; i-- {
		w.freeSlot(closure[i])
	}
	*h = Nil
	return true
}

// DeleteOrphan frees h only if no live entity references it (depends(h) is
// empty), writing Nil into *h on success. Otherwise it is a no-op and *h is
// left unchanged.
func (w *Weave) DeleteOrphan(h *EntityId) bool {
	if w == nil || h == nil {
		return false
	}
	op := w.traceOp("weave.delete.orphan")
	defer op.End(nil)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.lookup(*h); !ok {
		return false
	}
	if len(w.refs[*h]) > 0 {
		return false
	}
	w.freeSlot(*h)
	*h = Nil
	return true
}

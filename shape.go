package weave

// Shape operators are compound structural edits layered over the entity
// store's primitives (NewArrow/NewMark/NewTether). Each takes the Weave's
// lock once and manipulates slots directly rather than calling back into
// the public New* constructors, which would re-acquire a non-reentrant
// lock.

// Connect creates a new Arrow from source to each entry of targets, in
// order, and returns the created Arrow handles.
func (w *Weave) Connect(source EntityId, targets []EntityId) []EntityId {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.liveOrNil(source) {
		return nil
	}
	out := make([]EntityId, 0, len(targets))
	for _, t := range targets {
		if !w.liveOrNil(t) {
			continue
		}
		h := w.alloc(Arrow, source, t)
		w.addRef(source, h)
		w.addRef(t, h)
		out = append(out, h)
	}
	return out
}

// Hoist establishes a containment relationship: every o in objects is
// recorded as belonging to subject. Per entity a Mark is created with
// target = subject (satisfying Marks(S) for S = {subject}); the Mark's
// otherwise-unused source field is additionally set to o for internal
// bookkeeping, since a Mark alone cannot carry the reverse pointer the
// search engine needs to recover hoist-set membership. Search scopes a
// pattern or target sub-graph to what Hoist recorded here, not by
// re-deriving it from the Mark set.
//
// Returns the created Mark handles, one per object in objects that is live
// or Nil; objects naming dead entities are skipped.
func (w *Weave) Hoist(subject EntityId, objects []EntityId) []EntityId {
	if w == nil {
		return nil
	}
	op := w.traceOp("weave.shape.hoist")
	defer op.End(nil)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.liveOrNil(subject) {
		return nil
	}
	out := make([]EntityId, 0, len(objects))
	for _, o := range objects {
		if !w.liveOrNil(o) {
			continue
		}
		h := w.newMarkWithSource(o, subject)
		out = append(out, h)

		subjects, ok := w.hoistOf[o]
		if !ok {
			subjects = make(map[EntityId]struct{})
			w.hoistOf[o] = subjects
		}
		if _, already := subjects[subject]; !already {
			w.hoistMembers[subject] = append(w.hoistMembers[subject], o)
		}
		subjects[subject] = struct{}{}
	}
	return out
}

// unhoistAll removes object h from every hoist set it belongs to. Called
// when h is freed, so hoistMembers never retains a handle to a dead
// entity. Callers must hold w.mu.
func (w *Weave) unhoistAll(h EntityId) {
	subjects, ok := w.hoistOf[h]
	if !ok {
		return
	}
	for subject := range subjects {
		members := w.hoistMembers[subject]
		for i, o := range members {
			if o == h {
				members = append(members[:i], members[i+1:]...)
				break
			}
		}
		if len(members) == 0 {
			delete(w.hoistMembers, subject)
		} else {
			w.hoistMembers[subject] = members
		}
	}
	delete(w.hoistOf, h)
}

// tagHierarchical marks arrow a as a hierarchical edge by attaching a Mark
// whose target is a, recording the pair in both directions. No-op if a is
// not a live Arrow or is already tagged. Callers must hold w.mu.
func (w *Weave) tagHierarchical(a EntityId) {
	if _, already := w.hierArrows[a]; already {
		return
	}
	slt, ok := w.lookup(a)
	if !ok || slt.kind != Arrow {
		return
	}
	mark := w.alloc(Mark, Nil, a)
	w.addRef(a, mark)
	w.hierArrows[a] = struct{}{}
	w.tagMarkOf[a] = mark
	w.markTagsArrow[mark] = a
}

// untagHierarchical removes a's hierarchical tag, freeing its tag Mark.
// No-op if a was not tagged. Callers must hold w.mu.
func (w *Weave) untagHierarchical(a EntityId) bool {
	mark, ok := w.tagMarkOf[a]
	if !ok {
		return false
	}
	w.freeSlot(mark)
	return true
}

// Parent creates a hierarchical relationship from root to each child: an
// Arrow (root → child) tagged as a parent-edge, so Up/Down can tell it
// apart from a plain Arrow. Returns the created Arrow handles.
func (w *Weave) Parent(root EntityId, children []EntityId) []EntityId {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.liveOrNil(root) {
		return nil
	}
	out := make([]EntityId, 0, len(children))
	for _, c := range children {
		if !w.liveOrNil(c) {
			continue
		}
		a := w.alloc(Arrow, root, c)
		w.addRef(root, a)
		w.addRef(c, a)
		w.tagHierarchical(a)
		out = append(out, a)
	}
	return out
}

// Pivot creates a fan-out around center: every child in children gains
// both an incoming and an outgoing Arrow to/from center. Returns the
// created Arrow handles, two per child that is live or Nil (child→center,
// center→child); children naming dead entities are skipped.
func (w *Weave) Pivot(center EntityId, children []EntityId) []EntityId {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.liveOrNil(center) {
		return nil
	}
	out := make([]EntityId, 0, 2*len(children))
	for _, c := range children {
		if !w.liveOrNil(c) {
			continue
		}
		in := w.alloc(Arrow, c, center)
		w.addRef(c, in)
		w.addRef(center, in)
		outA := w.alloc(Arrow, center, c)
		w.addRef(center, outA)
		w.addRef(c, outA)
		out = append(out, in, outA)
	}
	return out
}

// Lift promotes each live, untagged Arrow in arrows to hierarchical: Up
// and Down will traverse it from then on. Returns the subset of arrows
// that were newly tagged.
func (w *Weave) Lift(arrows []EntityId) []EntityId {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	var out []EntityId
	for _, a := range arrows {
		if _, already := w.hierArrows[a]; already {
			continue
		}
		slt, ok := w.lookup(a)
		if !ok || slt.kind != Arrow {
			continue
		}
		w.tagHierarchical(a)
		out = append(out, a)
	}
	return out
}

// Lower demotes each hierarchical Arrow in arrows back to plain, freeing
// its tag Mark. Returns the subset of arrows that were actually untagged.
func (w *Weave) Lower(arrows []EntityId) []EntityId {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	var out []EntityId
	for _, a := range arrows {
		if w.untagHierarchical(a) {
			out = append(out, a)
		}
	}
	return out
}

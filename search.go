package weave

import "sort"

// Match is one injective structural embedding of a pattern sub-graph into a
// target sub-graph. Source[i] and Target[i] are corresponding vertices:
// Target[i] is where the i-th pattern vertex (in report order, see
// hoistReportOrder) was mapped.
type Match struct {
	Source []EntityId
	Target []EntityId
}

// hoistedUnder returns a snapshot of the entities hoisted under subject.
func (w *Weave) hoistedUnder(subject EntityId) []EntityId {
	w.mu.RLock()
	defer w.mu.RUnlock()
	members := w.hoistMembers[subject]
	if len(members) == 0 {
		return nil
	}
	return append([]EntityId(nil), members...)
}

// vertexArity is the per-vertex structural signature search uses for
// domain pruning and report ordering: in-arrows, out-arrows, marks
// targeting it, and tethers sourced from it, plus its kind.
type vertexArity struct {
	kind    Kind
	inDeg   int
	outDeg  int
	markDeg int
	tethDeg int
}

func (w *Weave) arityOf(x EntityId) vertexArity {
	k, _ := w.KindOf(x)
	return vertexArity{
		kind:    k,
		inDeg:   len(w.ArrowsIn([]EntityId{x})),
		outDeg:  len(w.ArrowsOut([]EntityId{x})),
		markDeg: len(w.Marks([]EntityId{x})),
		tethDeg: len(w.Tethers([]EntityId{x})),
	}
}

// fitsArity reports whether a candidate's arity dominates a pattern
// vertex's arity componentwise, per §4.6 step 2.
func fitsArity(candidate, want vertexArity) bool {
	return candidate.kind == want.kind &&
		candidate.inDeg >= want.inDeg &&
		candidate.outDeg >= want.outDeg &&
		candidate.markDeg >= want.markDeg &&
		candidate.tethDeg >= want.tethDeg
}

// buildAdjacency computes, for each vertex in verts, the set of other
// members of verts it has a direct directed structural link to: an Arrow
// from it, or — when the vertex itself is a hoisted Mark/Tether — its
// single endpoint, read in the same source-to-target direction an Arrow
// would use (Mark m with target v contributes m→v; Tether t with source v
// contributes v→t). Links to entities outside verts are not part of the
// induced sub-graph and are ignored.
func (w *Weave) buildAdjacency(verts []EntityId) map[EntityId]map[EntityId]struct{} {
	members := toSet(verts)
	adj := make(map[EntityId]map[EntityId]struct{}, len(verts))
	add := func(from, to EntityId) {
		set, ok := adj[from]
		if !ok {
			set = make(map[EntityId]struct{})
			adj[from] = set
		}
		set[to] = struct{}{}
	}
	for _, v := range verts {
		if _, ok := adj[v]; !ok {
			adj[v] = make(map[EntityId]struct{})
		}
		for _, t := range w.ToTarget(w.ArrowsOut([]EntityId{v})) {
			if _, ok := members[t]; ok {
				add(v, t)
			}
		}
		switch k, _ := w.KindOf(v); k {
		case Mark:
			if tgt := w.ToTarget([]EntityId{v}); len(tgt) == 1 {
				if _, ok := members[tgt[0]]; ok {
					add(v, tgt[0])
				}
			}
		case Tether:
			if src := w.ToSource([]EntityId{v}); len(src) == 1 {
				if _, ok := members[src[0]]; ok {
					add(src[0], v)
				}
			}
		}
	}
	return adj
}

// hoistReportOrder fixes the enumeration order search reports matches in:
// decreasing total arity, tie-broken by ascending EntityId.
func hoistReportOrder(verts []EntityId, arity map[EntityId]vertexArity) []EntityId {
	order := append([]EntityId(nil), verts...)
	total := func(a vertexArity) int { return a.inDeg + a.outDeg + a.markDeg + a.tethDeg }
	sort.Slice(order, func(i, j int) bool {
		ai, aj := total(arity[order[i]]), total(arity[order[j]])
		if ai != aj {
			return ai > aj
		}
		return order[i] < order[j]
	})
	return order
}

// searchState carries the fixed inputs to one search run, shared across
// all recursive calls.
type searchState struct {
	order      []EntityId // fixed report order over V(P)
	domains    map[EntityId][]EntityId
	patternAdj map[EntityId]map[EntityId]struct{}
	targetAdj  map[EntityId]map[EntityId]struct{}
	findAll    bool
	matches    []Match
}

// consistent reports whether tentatively mapping v to t is compatible with
// every already-assigned pair, by checking that every directed structural
// link among pattern vertices (Arrow, or a hoisted Mark/Tether's single
// endpoint — see buildAdjacency) has a corresponding link among their
// images.
func consistent(v, t EntityId, assigned map[EntityId]EntityId, patternAdj, targetAdj map[EntityId]map[EntityId]struct{}) bool {
	if _, ok := patternAdj[v][v]; ok {
		if _, ok := targetAdj[t][t]; !ok {
			return false
		}
	}
	for u, tu := range assigned {
		if _, ok := patternAdj[v][u]; ok {
			if _, ok := targetAdj[t][tu]; !ok {
				return false
			}
		}
		if _, ok := patternAdj[u][v]; ok {
			if _, ok := targetAdj[tu][t]; !ok {
				return false
			}
		}
	}
	return true
}

// candidatesFor narrows v's initial domain to values consistent with the
// current partial assignment and not already used.
func candidatesFor(st *searchState, v EntityId, assigned map[EntityId]EntityId, used map[EntityId]struct{}) []EntityId {
	var out []EntityId
	for _, t := range st.domains[v] {
		if _, taken := used[t]; taken {
			continue
		}
		if consistent(v, t, assigned, st.patternAdj, st.targetAdj) {
			out = append(out, t)
		}
	}
	return out
}

// backtrack implements the MRV-ordered search of §4.6 steps 3-5. assigned
// maps pattern vertices already bound; used tracks their images for
// injectivity. Returns true if the caller should stop (FindOne succeeded).
func backtrack(st *searchState, assigned map[EntityId]EntityId, used map[EntityId]struct{}) bool {
	if len(assigned) == len(st.order) {
		src := make([]EntityId, len(st.order))
		tgt := make([]EntityId, len(st.order))
		for i, v := range st.order {
			src[i] = v
			tgt[i] = assigned[v]
		}
		st.matches = append(st.matches, Match{Source: src, Target: tgt})
		return !st.findAll
	}

	var next EntityId
	var candidates []EntityId
	best := -1
	for _, v := range st.order {
		if _, done := assigned[v]; done {
			continue
		}
		c := candidatesFor(st, v, assigned, used)
		if len(c) == 0 {
			return false
		}
		if best == -1 || len(c) < best || (len(c) == best && v < next) {
			next, candidates, best = v, c, len(c)
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	for _, t := range candidates {
		assigned[next] = t
		used[t] = struct{}{}
		stop := backtrack(st, assigned, used)
		delete(assigned, next)
		delete(used, t)
		if stop {
			return true
		}
	}
	return false
}

// search runs the shared Ullmann-style backtracking engine for both
// FindOne and FindAll.
func (w *Weave) search(patternRoot, targetRoot EntityId, findAll bool) []Match {
	if w == nil {
		return nil
	}
	patternVerts := w.hoistedUnder(patternRoot)
	targetVerts := w.hoistedUnder(targetRoot)
	if len(patternVerts) == 0 || len(targetVerts) == 0 {
		return nil
	}

	arity := make(map[EntityId]vertexArity, len(patternVerts)+len(targetVerts))
	for _, v := range patternVerts {
		arity[v] = w.arityOf(v)
	}
	for _, t := range targetVerts {
		arity[t] = w.arityOf(t)
	}

	st := &searchState{
		order:      hoistReportOrder(patternVerts, arity),
		domains:    make(map[EntityId][]EntityId, len(patternVerts)),
		patternAdj: w.buildAdjacency(patternVerts),
		targetAdj:  w.buildAdjacency(targetVerts),
		findAll:    findAll,
	}
	for _, v := range patternVerts {
		var domain []EntityId
		for _, t := range targetVerts {
			if fitsArity(arity[t], arity[v]) {
				domain = append(domain, t)
			}
		}
		if len(domain) == 0 {
			return nil
		}
		st.domains[v] = domain
	}

	backtrack(st, make(map[EntityId]EntityId, len(st.order)), make(map[EntityId]struct{}, len(st.order)))
	return st.matches
}

// FindOne returns one injective structural embedding of the sub-graph
// hoisted under patternRoot into the sub-graph hoisted under targetRoot,
// or ok=false if none exists.
func (w *Weave) FindOne(patternRoot, targetRoot EntityId) (Match, bool) {
	matches := w.search(patternRoot, targetRoot, false)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}

// FindAll returns every injective structural embedding of the sub-graph
// hoisted under patternRoot into the sub-graph hoisted under targetRoot.
func (w *Weave) FindAll(patternRoot, targetRoot EntityId) []Match {
	return w.search(patternRoot, targetRoot, true)
}

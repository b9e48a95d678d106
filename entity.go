package weave

import (
	"context"
	"log/slog"
	"sync"

	"github.com/weave-run/weave/internal/trace"
)

// EntityId is a stable opaque handle to an entity. The zero value, Nil,
// is valid everywhere but refers to no entity.
type EntityId uint64

// Nil is the distinguished handle that refers to no entity.
const Nil EntityId = 0

// Kind identifies which of the four entity variants a handle names.
type Kind uint8

const (
	// Knot is a plain node with no endpoints.
	Knot Kind = iota
	// Arrow is a directed edge with a source and a target.
	Arrow
	// Mark is a unary annotation with a target only.
	Mark
	// Tether is a unary back-reference with a source only.
	Tether
)

func (k Kind) String() string {
	switch k {
	case Knot:
		return "Knot"
	case Arrow:
		return "Arrow"
	case Mark:
		return "Mark"
	case Tether:
		return "Tether"
	default:
		return "Unknown"
	}
}

// slot is one dense, index-addressable entity record. Both source and
// target are always allocated; which of them is semantically live depends
// on kind (see Kind). The unused field on Mark (source) and Tether (target)
// is reserved for shape-operator bookkeeping internal to this package (see
// shape.go) and is never exposed through the public API.
type slot struct {
	kind       Kind
	source     EntityId
	target     EntityId
	generation uint32
	occupied   bool
}

// Weave is the top-level owning container of all entities, schemas, and
// components. The zero value is not usable; construct one with [New].
//
// A Weave is safe for concurrent use: all exported methods take the
// internal lock. Methods on a nil *Weave are safe no-ops that return the
// zero value for their return type, matching the pattern used throughout
// this package.
type Weave struct {
	mu     sync.RWMutex
	logger *slog.Logger

	slots []slot
	free  []uint32 // free slot indices, LIFO

	// refs is the reverse-reference index: refs[x] is the set of live
	// entities y such that source(y) == x or target(y) == x. It powers
	// depends(x) for the deletion engine without a full scan.
	refs map[EntityId]map[EntityId]struct{}

	dataSchemas []*DataSchema
	dataByName  map[string]DataId

	components map[EntityId]map[DataId]*Component

	// hoistMembers[subject] is the ordered set of objects hoisted under
	// subject, maintained by Hoist. A Mark with target == subject also
	// exists per object (see shape.go), satisfying the Marks(S) move op,
	// but a Mark alone cannot carry the reverse pointer back to its
	// object, so this index is the source of truth the search engine
	// actually queries.
	hoistMembers map[EntityId][]EntityId

	// hoistOf is the reverse of hoistMembers: hoistOf[object] is the set of
	// subjects object was hoisted under, used to keep hoistMembers clean
	// when an object is deleted.
	hoistOf map[EntityId]map[EntityId]struct{}

	// hierArrows is the set of Arrow ids tagged hierarchical by Parent or
	// Lift, consulted by Up/Down and untagged by Lower.
	hierArrows map[EntityId]struct{}

	// tagMarkOf/markTagsArrow record the Mark each hierarchical Arrow was
	// tagged with, in both directions, so Lower (or a direct delete of
	// either side) can keep hierArrows consistent.
	tagMarkOf     map[EntityId]EntityId
	markTagsArrow map[EntityId]EntityId
}

// Option configures a Weave at construction time.
type Option func(*weaveConfig)

type weaveConfig struct {
	logger *slog.Logger
}

// WithLogger attaches a structured logger used for optional debug tracing
// of Weave operations. A nil logger (the default) disables tracing at
// near-zero cost.
func WithLogger(logger *slog.Logger) Option {
	return func(c *weaveConfig) {
		c.logger = logger
	}
}

// New constructs an empty Weave.
func New(opts ...Option) *Weave {
	cfg := &weaveConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Weave{
		logger:        cfg.logger,
		refs:          make(map[EntityId]map[EntityId]struct{}),
		dataByName:    make(map[string]DataId),
		components:    make(map[EntityId]map[DataId]*Component),
		hoistMembers:  make(map[EntityId][]EntityId),
		hoistOf:       make(map[EntityId]map[EntityId]struct{}),
		hierArrows:    make(map[EntityId]struct{}),
		tagMarkOf:     make(map[EntityId]EntityId),
		markTagsArrow: make(map[EntityId]EntityId),
	}
}

// Close releases a Weave's internal storage. It is the teardown
// counterpart to [New]; a Weave's lifetime strictly contains the lifetime
// of every handle and every borrowed component value derived from it, so
// handles must not be used after Close. Close is idempotent and safe to
// call on a nil *Weave.
func (w *Weave) Close() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.slots = nil
	w.free = nil
	w.refs = nil
	w.dataSchemas = nil
	w.dataByName = nil
	w.components = nil
	w.hoistMembers = nil
	w.hoistOf = nil
	w.hierArrows = nil
	w.tagMarkOf = nil
	w.markTagsArrow = nil
}

const indexMask = 1<<32 - 1

func makeHandle(generation, index uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index+1))
}

// split decodes a handle into its generation and slot index. ok is false
// for Nil and for any value whose low 32 bits (the packed index+1) are zero.
func split(h EntityId) (generation uint32, index uint32, ok bool) {
	if h == Nil {
		return 0, 0, false
	}
	packedIndex := uint32(uint64(h) & indexMask)
	if packedIndex == 0 {
		return 0, 0, false
	}
	return uint32(uint64(h) >> 32), packedIndex - 1, true
}

// alloc reserves a slot, recycling a freed one when available, and returns
// its handle. Callers must hold w.mu for writing.
func (w *Weave) alloc(kind Kind, source, target EntityId) EntityId {
	if n := len(w.free); n > 0 {
		idx := w.free[n-1]
		w.free = w.free[:n-1]
		s := &w.slots[idx]
		s.kind = kind
		s.source = source
		s.target = target
		s.occupied = true
		return makeHandle(s.generation, idx)
	}
	idx := uint32(len(w.slots))
	w.slots = append(w.slots, slot{kind: kind, source: source, target: target, occupied: true, generation: 1})
	return makeHandle(1, idx)
}

// lookup returns the slot for h if it names a live entity.
func (w *Weave) lookup(h EntityId) (*slot, bool) {
	gen, idx, ok := split(h)
	if !ok || int(idx) >= len(w.slots) {
		return nil, false
	}
	s := &w.slots[idx]
	if !s.occupied || s.generation != gen {
		return nil, false
	}
	return s, true
}

// IsNil reports whether h is the Nil handle.
func (w *Weave) IsNil(h EntityId) bool {
	return h == Nil
}

// IsValid reports whether h names a live entity.
func (w *Weave) IsValid(h EntityId) bool {
	if w == nil {
		return false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.lookup(h)
	return ok
}

func (w *Weave) isKind(h EntityId, k Kind) bool {
	if w == nil {
		return false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.lookup(h)
	return ok && s.kind == k
}

// IsKnot reports whether h names a live Knot.
func (w *Weave) IsKnot(h EntityId) bool { return w.isKind(h, Knot) }

// IsArrow reports whether h names a live Arrow.
func (w *Weave) IsArrow(h EntityId) bool { return w.isKind(h, Arrow) }

// IsMark reports whether h names a live Mark.
func (w *Weave) IsMark(h EntityId) bool { return w.isKind(h, Mark) }

// IsTether reports whether h names a live Tether.
func (w *Weave) IsTether(h EntityId) bool { return w.isKind(h, Tether) }

// KindOf returns the kind of a live entity and true, or (0, false) if h
// does not name a live entity.
func (w *Weave) KindOf(h EntityId) (Kind, bool) {
	if w == nil {
		return 0, false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.lookup(h)
	if !ok {
		return 0, false
	}
	return s.kind, true
}

// addRef records that entity 'from' references entity 'to' (as source or
// target), so depends(to) can find it later. Callers must hold w.mu.
func (w *Weave) addRef(to, from EntityId) {
	if to == Nil {
		return
	}
	set, ok := w.refs[to]
	if !ok {
		set = make(map[EntityId]struct{})
		w.refs[to] = set
	}
	set[from] = struct{}{}
}

func (w *Weave) removeRef(to, from EntityId) {
	if to == Nil {
		return
	}
	set, ok := w.refs[to]
	if !ok {
		return
	}
	delete(set, from)
	if len(set) == 0 {
		delete(w.refs, to)
	}
}

// liveOrNil reports whether h is Nil or names a currently live entity.
// Callers must hold w.mu for at least reading.
func (w *Weave) liveOrNil(h EntityId) bool {
	if h == Nil {
		return true
	}
	_, ok := w.lookup(h)
	return ok
}

// NewKnot creates a plain node with no endpoints.
func (w *Weave) NewKnot() EntityId {
	if w == nil {
		return Nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.alloc(Knot, Nil, Nil)
}

// NewArrow creates a directed edge from s to t. Both must be live or Nil;
// otherwise NewArrow is a contract violation and returns Nil.
func (w *Weave) NewArrow(s, t EntityId) EntityId {
	if w == nil {
		return Nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.liveOrNil(s) || !w.liveOrNil(t) {
		return Nil
	}
	h := w.alloc(Arrow, s, t)
	w.addRef(s, h)
	w.addRef(t, h)
	return h
}

// NewMark creates an annotation entity with target t. t must be live or
// Nil; otherwise NewMark is a contract violation and returns Nil.
func (w *Weave) NewMark(t EntityId) EntityId {
	if w == nil {
		return Nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.liveOrNil(t) {
		return Nil
	}
	h := w.alloc(Mark, Nil, t)
	w.addRef(t, h)
	return h
}

// NewTether creates a back-reference entity with source s. s must be live
// or Nil; otherwise NewTether is a contract violation and returns Nil.
func (w *Weave) NewTether(s EntityId) EntityId {
	if w == nil {
		return Nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.liveOrNil(s) {
		return Nil
	}
	h := w.alloc(Tether, s, Nil)
	w.addRef(s, h)
	return h
}

// newMarkWithSource is the internal constructor shape ops use to attach a
// Mark's unused source field as bookkeeping (see shape.go's Hoist). It is
// not part of the public contract: the public NewMark always leaves source
// at Nil.
//
// s is deliberately NOT registered in the reverse-reference index: it is
// not a real reference as far as depends(s) is concerned (a Mark's only
// public endpoint is target), so indexing it would make every hoisted
// object spuriously non-orphan. hoistMembers/hoistOf (see shape.go) are
// the only index this bookkeeping feeds.
func (w *Weave) newMarkWithSource(s, t EntityId) EntityId {
	h := w.alloc(Mark, s, t)
	w.addRef(t, h)
	return h
}

// ChangeSource rewrites the source endpoint of h. Defined only for Arrow
// and Tether; out-of-domain calls are a contract violation and return
// false without modifying h.
func (w *Weave) ChangeSource(h, s EntityId) bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	slt, ok := w.lookup(h)
	if !ok || (slt.kind != Arrow && slt.kind != Tether) {
		return false
	}
	if !w.liveOrNil(s) {
		return false
	}
	w.removeRef(slt.source, h)
	slt.source = s
	w.addRef(s, h)
	return true
}

// ChangeTarget rewrites the target endpoint of h. Defined only for Arrow
// and Mark; out-of-domain calls are a contract violation and return false
// without modifying h.
func (w *Weave) ChangeTarget(h, t EntityId) bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	slt, ok := w.lookup(h)
	if !ok || (slt.kind != Arrow && slt.kind != Mark) {
		return false
	}
	if !w.liveOrNil(t) {
		return false
	}
	w.removeRef(slt.target, h)
	slt.target = t
	w.addRef(t, h)
	return true
}

// ChangeEnds rewrites both endpoints of h. Defined only for Arrow;
// out-of-domain calls are a contract violation and return false without
// modifying h.
func (w *Weave) ChangeEnds(h, s, t EntityId) bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	slt, ok := w.lookup(h)
	if !ok || slt.kind != Arrow {
		return false
	}
	if !w.liveOrNil(s) || !w.liveOrNil(t) {
		return false
	}
	w.removeRef(slt.source, h)
	w.removeRef(slt.target, h)
	slt.source = s
	slt.target = t
	w.addRef(s, h)
	w.addRef(t, h)
	return true
}

// traceOp starts an optional debug span for an operation; safe when the
// Weave has no logger attached.
func (w *Weave) traceOp(name string) *trace.Op {
	return trace.Begin(context.Background(), w.logger, name)
}

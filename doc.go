// Package weave provides an in-memory typed, labeled hyper-graph store.
//
// The Weave represents a world as four kinds of entities — plain nodes
// (Knot), directed edges (Arrow), annotations on an entity (Mark), and
// back-references to an entity (Tether) — optionally decorated with
// user-defined data components, and supports injective structural
// sub-graph matching between two hoisted regions of the graph.
//
// # Architecture Overview
//
// The module is organized into layers with strict dependency ordering:
//
//	Foundation tier (no internal dependencies):
//	  - immutable: a single immutable scalar wrapper backing component fields
//	  - internal/trace: optional debug logging, nil-logger-safe throughout
//
//	Core tier:
//	  - weave: entity store, deletion engine, data registry, move ops,
//	    shape ops, and the search engine
//
// # Entry Point
//
//	import "github.com/weave-run/weave"
//
//	w := weave.New()
//	defer w.Close()
//
//	a := w.NewKnot()
//	b := w.NewKnot()
//	c := w.NewArrow(a, b)
//	if w.IsArrow(c) {
//	    // ...
//	}
//
// # Subpackages
//
//   - [github.com/weave-run/weave/immutable]: the component field value wrapper
//   - [github.com/weave-run/weave/internal/trace]: optional debug logging
package weave

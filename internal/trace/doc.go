// Package trace provides optional debug logging helpers for the weave module.
//
// This package is an internal utility for developer observability. It is
// distinct from the boolean/sentinel returns (false, Nil, empty results)
// the core uses to signal failures and contract violations.
//
// # Internal Package
//
// This package is internal to the weave module and is not importable by
// external consumers per Go's internal/ package semantics. It exists purely
// for coordination across the core packages.
//
// # Design Principles
//
//   - Near-zero cost when disabled: when the logger is nil, overhead is a
//     single nil check. The Lazy variants guarantee no allocation from
//     attribute construction when disabled.
//   - Logging uses [log/slog] (Go 1.21+); request IDs from
//     [WithNewRequestID] are generated with github.com/google/uuid.
//   - Logger injection: loggers are passed via functional options at API
//     boundaries, never read from globals or the environment.
//
// # Usage Patterns
//
//   - [Begin]/[Op.End]: operation boundaries (start/end of public API calls).
//   - [Debug], [Info], [Warn], [Error]: simple, pre-computed attributes.
//   - [DebugLazy], [InfoLazy], [WarnLazy], [ErrorLazy]: computed attributes,
//     the function argument is not called when logging is disabled.
//   - [Enabled]: for complex control flow or multiple log calls at different
//     levels.
//
// # Context Handling
//
// All logging functions accept a context parameter and pass it through to
// the underlying [log/slog.Logger]. The Op runner additionally includes a
// "request_id" attribute when one was attached via [WithRequestID], and
// records the context's cancellation state at [Op.End].
//
//	func (w *Weave) DeleteCascade(h *EntityId) bool {
//	    op := trace.Begin(context.Background(), w.logger, "weave.delete.cascade")
//	    defer op.End(nil)
//	    ...
//	}
//
// # Operation Names
//
// Operation names follow the format weave.<package>.<operation>, e.g.
// weave.shape.hoist, weave.search.findall. Names are implementation details
// and may change without notice.
package trace

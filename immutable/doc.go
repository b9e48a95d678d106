// Package immutable provides an immutable scalar wrapper used by the weave
// core to store component field values.
//
// A DataSchema field is one of four datatypes (Int, Float, Bool, String);
// [Value] wraps whichever of those a caller passed to AddComponent and
// exposes it back through type-safe accessors ([Value.Int], [Value.Float],
// [Value.Bool], [Value.String]) that fail closed — each returns its zero
// value plus false when the wrapped value doesn't match, rather than
// panicking.
//
//	val := immutable.Wrap(int64(13))
//	if n, ok := val.Int(); ok {
//	    fmt.Println(n)
//	}
package immutable

package immutable

import "math"

// Value wraps a single scalar and provides immutable, type-safe access.
//
// Value is the storage cell behind one component field: the Weave stores one
// per (entity, schema, field-index) triple. It is safe for concurrent read
// access once constructed.
type Value struct {
	val any
}

// Wrap wraps a value with ownership transfer semantics.
//
// After calling Wrap, the caller must not retain or mutate v afterward.
// Use [WrapClone] when the value comes from a caller that may keep using it
// (e.g. a string passed into AddComponent).
func Wrap(v any) Value {
	return Value{val: v}
}

// WrapClone wraps a copy of the value. For the scalar kinds this package
// supports (bool, the integer widths, the float widths, string), a copy is
// value-identical to the original, so WrapClone and Wrap behave the same;
// the distinct name documents intent at call sites that accept caller-owned
// data (see [Wrap]).
func WrapClone(v any) Value {
	return Value{val: v}
}

// Unwrap returns the underlying value.
func (v Value) Unwrap() any {
	return v.val
}

// IsNil reports whether the wrapped value is the zero any.
func (v Value) IsNil() bool {
	return v.val == nil
}

// Bool returns the value as a bool and true if the value is a bool.
// Returns (false, false) if the value is not a bool.
func (v Value) Bool() (bool, bool) {
	b, ok := v.val.(bool)
	return b, ok
}

// Int returns the value as an int64 and true if the value is an integer or
// whole-number float. Mirrors the datatype coercion rules of a DataSchema's
// Int field: any stored integer width is accepted, as is a float that holds
// no fractional part.
func (v Value) Int() (int64, bool) {
	switch n := v.val.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		n64 := uint64(n)
		if n64 > uint64(math.MaxInt64) {
			return 0, false
		}
		return int64(n64), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		if n < float64(math.MinInt64) || n > float64(math.MaxInt64) {
			return 0, false
		}
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case float32:
		n64 := float64(n)
		if math.IsNaN(n64) || math.IsInf(n64, 0) {
			return 0, false
		}
		if n64 < float64(math.MinInt64) || n64 > float64(math.MaxInt64) {
			return 0, false
		}
		if n64 != math.Trunc(n64) {
			return 0, false
		}
		return int64(n64), true
	default:
		return 0, false
	}
}

// Float returns the value as a float64 and true if the value is numeric.
func (v Value) Float() (float64, bool) {
	switch n := v.val.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// String returns the value as a string and true if the value is a string.
// Returns ("", false) if the value is not a string.
func (v Value) String() (string, bool) {
	s, ok := v.val.(string)
	return s, ok
}

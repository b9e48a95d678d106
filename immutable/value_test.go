package immutable_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weave-run/weave/immutable"
)

func TestValueBool(t *testing.T) {
	v := immutable.Wrap(true)
	b, ok := v.Bool()
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = immutable.Wrap("x").Bool()
	assert.False(t, ok)
}

func TestValueInt(t *testing.T) {
	v := immutable.Wrap(int64(13))
	n, ok := v.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(13), n)

	// whole-number floats coerce.
	n, ok = immutable.Wrap(float64(42)).Int()
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	_, ok = immutable.Wrap(float64(3.14)).Int()
	assert.False(t, ok)

	_, ok = immutable.Wrap(math.NaN()).Int()
	assert.False(t, ok)
}

func TestValueFloat(t *testing.T) {
	v := immutable.Wrap(3.14)
	f, ok := v.Float()
	assert.True(t, ok)
	assert.InDelta(t, 3.14, f, 1e-9)

	f, ok = immutable.Wrap(int64(7)).Float()
	assert.True(t, ok)
	assert.InDelta(t, 7.0, f, 1e-9)
}

func TestValueString(t *testing.T) {
	v := immutable.Wrap("hello")
	s, ok := v.String()
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	_, ok = immutable.Wrap(13).String()
	assert.False(t, ok)
}

func TestValueIsNil(t *testing.T) {
	assert.True(t, immutable.Wrap(nil).IsNil())
	assert.False(t, immutable.Wrap(0).IsNil())
}

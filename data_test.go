package weave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchemaFields() []DataField {
	return []DataField{
		{Name: "i", Type: IntDatatype},
		{Name: "b", Type: BoolDatatype},
		{Name: "s", Type: StringDatatype},
		{Name: "f", Type: FloatDatatype},
		{Name: "z", Type: StringDatatype},
	}
}

func TestComponentRoundTrip(t *testing.T) {
	w := New()
	defer w.Close()

	require.True(t, w.DefineData("Test", testSchemaFields()))

	k := w.NewKnot()
	require.True(t, w.AddComponent(k, "Test", []any{int64(13), true, "hello", 3.14, "world"}))

	assert.True(t, w.HasComponent(k, "Test"))

	c, ok := w.GetComponent(k, "Test")
	require.True(t, ok)

	i, ok := c.Int("i")
	require.True(t, ok)
	assert.Equal(t, int64(13), i)

	b, ok := c.Bool("b")
	require.True(t, ok)
	assert.True(t, b)

	s, ok := c.String("s")
	require.True(t, ok)
	assert.Equal(t, "hello", s)

	f, ok := c.Float("f")
	require.True(t, ok)
	assert.InDelta(t, 3.14, f, 0.0001)

	z, ok := c.String("z")
	require.True(t, ok)
	assert.Equal(t, "world", z)

	require.True(t, w.RemoveComponent(k, "Test"))
	assert.False(t, w.HasComponent(k, "Test"))
}

func TestRemoveComponentIsIdempotent(t *testing.T) {
	w := New()
	defer w.Close()
	require.True(t, w.DefineData("Test", testSchemaFields()))

	k := w.NewKnot()
	assert.False(t, w.RemoveComponent(k, "Test"))

	require.True(t, w.AddComponent(k, "Test", []any{int64(1), false, "a", 1.0, "b"}))
	assert.True(t, w.RemoveComponent(k, "Test"))
	assert.False(t, w.RemoveComponent(k, "Test"))
}

func TestAddComponentReplacesExisting(t *testing.T) {
	w := New()
	defer w.Close()
	require.True(t, w.DefineData("Test", testSchemaFields()))

	k := w.NewKnot()
	require.True(t, w.AddComponent(k, "Test", []any{int64(1), true, "a", 1.0, "b"}))
	require.True(t, w.AddComponent(k, "Test", []any{int64(2), false, "c", 2.0, "d"}))

	c, ok := w.GetComponent(k, "Test")
	require.True(t, ok)
	i, _ := c.Int("i")
	assert.Equal(t, int64(2), i)
}

func TestAddComponentRejectsUnknownSchema(t *testing.T) {
	w := New()
	defer w.Close()

	k := w.NewKnot()
	assert.False(t, w.AddComponent(k, "Missing", nil))
	assert.False(t, w.HasComponent(k, "Missing"))
}

func TestSchemaImmutability(t *testing.T) {
	w := New()
	defer w.Close()

	require.True(t, w.DefineData("X", []DataField{{Name: "a", Type: IntDatatype}}))
	assert.False(t, w.DefineData("X", []DataField{{Name: "b", Type: FloatDatatype}}))

	field, ok := w.GetDataField("X", 0)
	require.True(t, ok)
	assert.Equal(t, "a", field.Name)
	assert.Equal(t, IntDatatype, field.Type)
	assert.Equal(t, 1, w.GetDataFieldCount("X"))
}

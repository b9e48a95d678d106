package weave

import (
	"github.com/weave-run/weave/immutable"
)

// Datatype is the primitive type of one DataSchema field.
type Datatype uint8

const (
	// IntDatatype holds a 64-bit signed integer.
	IntDatatype Datatype = iota
	// FloatDatatype holds a 64-bit floating point number.
	FloatDatatype
	// BoolDatatype holds a boolean.
	BoolDatatype
	// StringDatatype holds a string; the Weave owns a copy of the bytes
	// for the component's lifetime.
	StringDatatype
)

func (d Datatype) String() string {
	switch d {
	case IntDatatype:
		return "Int"
	case FloatDatatype:
		return "Float"
	case BoolDatatype:
		return "Bool"
	case StringDatatype:
		return "String"
	default:
		return "Unknown"
	}
}

// DataField is one named, typed field of a DataSchema.
type DataField struct {
	Name string
	Type Datatype
}

// DataId identifies a registered DataSchema within a Weave.
type DataId int

// DataSchema is a named, ordered list of typed fields. Schemas are
// registered once per Weave under a string name and are immutable after
// registration: registration order fixes field indexing.
type DataSchema struct {
	id     DataId
	name   string
	fields []DataField
	index  map[string]int
}

// Name returns the schema's registered name.
func (s *DataSchema) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// FieldCount returns the number of fields in the schema.
func (s *DataSchema) FieldCount() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Field returns the i-th field definition.
func (s *DataSchema) Field(i int) (DataField, bool) {
	if s == nil || i < 0 || i >= len(s.fields) {
		return DataField{}, false
	}
	return s.fields[i], true
}

// DefineData registers a new schema under name with the given ordered
// fields. Returns false without modifying anything if name is already
// registered: schema definitions are immutable once created.
func (w *Weave) DefineData(name string, fields []DataField) bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.dataByName[name]; exists {
		return false
	}
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}
	schema := &DataSchema{
		id:     DataId(len(w.dataSchemas)),
		name:   name,
		fields: append([]DataField(nil), fields...),
		index:  index,
	}
	w.dataByName[name] = schema.id
	w.dataSchemas = append(w.dataSchemas, schema)
	return true
}

// schemaByName returns the registered schema for name. Callers must hold
// w.mu for at least reading.
func (w *Weave) schemaByName(name string) (*DataSchema, bool) {
	id, ok := w.dataByName[name]
	if !ok {
		return nil, false
	}
	return w.dataSchemas[id], true
}

// GetDataId returns the DataId registered under name.
func (w *Weave) GetDataId(name string) (DataId, bool) {
	if w == nil {
		return 0, false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	id, ok := w.dataByName[name]
	return id, ok
}

// GetDataFieldCount returns the number of fields in the schema registered
// under name, or 0 if name is unregistered.
func (w *Weave) GetDataFieldCount(name string) int {
	if w == nil {
		return 0
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.schemaByName(name)
	if !ok {
		return 0
	}
	return s.FieldCount()
}

// GetDataField returns the i-th field of the schema registered under name.
func (w *Weave) GetDataField(name string, i int) (DataField, bool) {
	if w == nil {
		return DataField{}, false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.schemaByName(name)
	if !ok {
		return DataField{}, false
	}
	return s.Field(i)
}

// Component is an instance of a DataSchema attached to one entity. At most
// one Component per (entity, schema) pair exists at a time; AddComponent
// replaces any prior one of the same schema.
type Component struct {
	schema *DataSchema
	fields []immutable.Value
}

// Schema returns the DataSchema this component is an instance of.
func (c *Component) Schema() *DataSchema {
	if c == nil {
		return nil
	}
	return c.schema
}

// Field returns a borrowed handle to field i's value. The returned Value
// is invalidated once the component is removed or replaced.
func (c *Component) Field(i int) (immutable.Value, bool) {
	if c == nil || i < 0 || i >= len(c.fields) {
		return immutable.Value{}, false
	}
	return c.fields[i], true
}

func (c *Component) fieldByName(name string) (immutable.Value, bool) {
	if c == nil || c.schema == nil {
		return immutable.Value{}, false
	}
	i, ok := c.schema.index[name]
	if !ok {
		return immutable.Value{}, false
	}
	return c.fields[i], true
}

// Int returns the named field's value as an int64.
func (c *Component) Int(name string) (int64, bool) {
	v, ok := c.fieldByName(name)
	if !ok {
		return 0, false
	}
	return v.Int()
}

// Float returns the named field's value as a float64.
func (c *Component) Float(name string) (float64, bool) {
	v, ok := c.fieldByName(name)
	if !ok {
		return 0, false
	}
	return v.Float()
}

// Bool returns the named field's value as a bool.
func (c *Component) Bool(name string) (bool, bool) {
	v, ok := c.fieldByName(name)
	if !ok {
		return false, false
	}
	return v.Bool()
}

// String returns the named field's value as a string.
func (c *Component) String(name string) (string, bool) {
	v, ok := c.fieldByName(name)
	if !ok {
		return "", false
	}
	return v.String()
}

// AddComponent attaches a component of the schema registered under name to
// entity e, copying rawFields into Weave-owned storage. rawFields must
// have one entry per schema field, in schema order. Returns false (a
// no-op) if e is not live, name is unregistered, or the field count
// mismatches; any existing component of the same schema on e is replaced.
func (w *Weave) AddComponent(e EntityId, name string, rawFields []any) bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.lookup(e); !ok {
		return false
	}
	schema, ok := w.schemaByName(name)
	if !ok {
		return false
	}
	if len(rawFields) != len(schema.fields) {
		return false
	}
	fields := make([]immutable.Value, len(rawFields))
	for i, raw := range rawFields {
		fields[i] = immutable.WrapClone(raw)
	}
	byEntity, ok := w.components[e]
	if !ok {
		byEntity = make(map[DataId]*Component)
		w.components[e] = byEntity
	}
	byEntity[schema.id] = &Component{schema: schema, fields: fields}
	return true
}

// HasComponent reports whether e currently carries a component of the
// schema registered under name.
func (w *Weave) HasComponent(e EntityId, name string) bool {
	if w == nil {
		return false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	schema, ok := w.schemaByName(name)
	if !ok {
		return false
	}
	byEntity, ok := w.components[e]
	if !ok {
		return false
	}
	_, ok = byEntity[schema.id]
	return ok
}

// GetComponent returns e's component of the schema registered under name.
func (w *Weave) GetComponent(e EntityId, name string) (*Component, bool) {
	if w == nil {
		return nil, false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	schema, ok := w.schemaByName(name)
	if !ok {
		return nil, false
	}
	byEntity, ok := w.components[e]
	if !ok {
		return nil, false
	}
	c, ok := byEntity[schema.id]
	return c, ok
}

// GetComponentField returns a borrowed handle to field i of e's component
// of the schema registered under name.
func (w *Weave) GetComponentField(e EntityId, name string, i int) (immutable.Value, bool) {
	c, ok := w.GetComponent(e, name)
	if !ok {
		return immutable.Value{}, false
	}
	return c.Field(i)
}

// RemoveComponent detaches e's component of the schema registered under
// name, if any. Idempotent: removing an absent component is a no-op that
// returns false.
func (w *Weave) RemoveComponent(e EntityId, name string) bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	schema, ok := w.schemaByName(name)
	if !ok {
		return false
	}
	byEntity, ok := w.components[e]
	if !ok {
		return false
	}
	if _, ok := byEntity[schema.id]; !ok {
		return false
	}
	delete(byEntity, schema.id)
	if len(byEntity) == 0 {
		delete(w.components, e)
	}
	return true
}

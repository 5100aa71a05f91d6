package model

// Field is one named value of a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is one row of data: an ordered mapping from field name to Value.
// The zero Record is empty. Records are treated as immutable; With returns a
// modified copy.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord builds a record from fields. A repeated name overwrites the
// earlier value but keeps its position.
func NewRecord(fields ...Field) Record {
	r := Record{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if i, ok := r.index[f.Name]; ok {
			r.fields[i].Value = f.Value
			continue
		}
		r.index[f.Name] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r
}

// F is shorthand for building a Field.
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// Get returns the value stored under name.
func (r Record) Get(name string) (Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return Null(), false
	}
	return r.fields[i].Value, true
}

// Value returns the value stored under name, or Null when absent.
func (r Record) Value(name string) Value {
	v, _ := r.Get(name)
	return v
}

// ID returns the string form of the "id" field.
func (r Record) ID() string {
	return r.Value("id").String()
}

// Fields returns the fields in insertion order.
func (r Record) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

// Names returns the field names in insertion order.
func (r Record) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }

// With returns a copy of r with name set to v.
func (r Record) With(name string, v Value) Record {
	fields := append(r.Fields(), F(name, v))
	return NewRecord(fields...)
}

// Equal reports whether both records hold the same fields in the same order.
func (r Record) Equal(other Record) bool {
	if len(r.fields) != len(other.fields) {
		return false
	}
	for i, f := range r.fields {
		o := other.fields[i]
		if f.Name != o.Name || !f.Value.Equal(o.Value) {
			return false
		}
	}
	return true
}

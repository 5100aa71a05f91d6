package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_KeepsFieldOrder(t *testing.T) {
	r := NewRecord(
		F("id", String("USER-101")),
		F("name", String("John Doe")),
		F("orders", Int(12)),
	)
	assert.Equal(t, []string{"id", "name", "orders"}, r.Names())
	assert.Equal(t, "USER-101", r.ID())
	assert.Equal(t, 3, r.Len())
}

func TestRecord_RepeatedNameOverwritesInPlace(t *testing.T) {
	r := NewRecord(F("id", String("1")), F("name", String("a")), F("id", String("2")))
	assert.Equal(t, []string{"id", "name"}, r.Names())
	assert.Equal(t, "2", r.ID())
}

func TestRecord_MissingFieldIsNull(t *testing.T) {
	r := NewRecord(F("id", String("1")))
	v, ok := r.Get("email")
	assert.False(t, ok)
	assert.True(t, v.IsNull())
	assert.True(t, r.Value("email").IsNull())

	var zero Record
	assert.Equal(t, "", zero.ID())
	assert.Equal(t, 0, zero.Len())
}

func TestRecord_WithCopies(t *testing.T) {
	r := NewRecord(F("id", String("1")), F("status", String("active")))
	changed := r.With("status", String("inactive"))

	assert.Equal(t, "active", r.Value("status").String())
	assert.Equal(t, "inactive", changed.Value("status").String())
	assert.False(t, r.Equal(changed))

	added := r.With("email", String("a@example.com"))
	assert.Equal(t, []string{"id", "status", "email"}, added.Names())
}

func TestSchemaFor(t *testing.T) {
	for _, e := range Entities {
		s, err := SchemaFor(e)
		assert.NoError(t, err)
		assert.Equal(t, "id", s.Fields[0].Name)
		assert.NotContains(t, fieldNames(s.EditableFields()), "id")
	}

	_, err := SchemaFor(Entity("coupons"))
	assert.Error(t, err)
	assert.False(t, MustSchema(EntityPayments).Creatable)
}

func fieldNames(specs []FieldSpec) []string {
	names := make([]string, len(specs))
	for i, f := range specs {
		names[i] = f.Name
	}
	return names
}

package ui

import (
	"testing"

	"backoffice/internal/db"
	"backoffice/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *db.Store {
	t.Helper()
	s, err := db.Open(db.MemoryDSN, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	f, err := db.LoadFixture("")
	require.NoError(t, err)
	require.NoError(t, s.Seed(f))
	return s
}

func fill(m *FormModel, values map[string]string) {
	for i, f := range m.fields {
		if v, ok := values[f.Name]; ok {
			m.inputs[i].SetValue(v)
		}
	}
}

func validOrder() map[string]string {
	return map[string]string{
		"customer": "Grace Hopper",
		"date":     "1/2/2025",
		"total":    "1234.5",
		"items":    "3",
		"status":   "pending",
	}
}

func TestFormValidate_NormalizesInput(t *testing.T) {
	m := NewFormModel(nil, model.MustSchema(model.EntityOrders), nil)
	fill(m, validOrder())

	r, err := m.Validate()
	require.NoError(t, err)

	assert.Equal(t, "2025-01-02", r.Value("date").String())
	assert.Equal(t, "$1,234.50", r.Value("total").String())
	n, ok := r.Value("items").AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 3.0, n)
	assert.Empty(t, r.ID(), "new records get their id from the store")
}

func TestFormValidate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  error
		msg   string
	}{
		{"required", "customer", "  ", ErrRequired, "Customer is required"},
		{"number", "items", "three", ErrNotNumber, "Items must be a number"},
		{"money", "total", "lots", ErrNotMoney, "Total must be an amount like $12.50"},
		{"option", "status", "lost", ErrInvalidOption, "Status is not a valid option"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewFormModel(nil, model.MustSchema(model.EntityOrders), nil)
			values := validOrder()
			values[tt.field] = tt.value
			fill(m, values)

			_, err := m.Validate()
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFormValidate_UnparsedDateKept(t *testing.T) {
	m := NewFormModel(nil, model.MustSchema(model.EntityOrders), nil)
	values := validOrder()
	values["date"] = "next week"
	fill(m, values)

	r, err := m.Validate()
	require.NoError(t, err)
	assert.Equal(t, "next week", r.Value("date").String())
}

func TestForm_EditPrefillsAndKeepsID(t *testing.T) {
	store := openStore(t)
	existing, err := store.Get(model.EntityUsers, "USER-104")
	require.NoError(t, err)

	m := NewFormModel(store, model.MustSchema(model.EntityUsers), &existing)
	assert.True(t, m.Editing())
	assert.Equal(t, "Edit User USER-104", m.Title())

	r, err := m.Validate()
	require.NoError(t, err)
	assert.Equal(t, "USER-104", r.ID())
	assert.Equal(t, existing.Value("email"), r.Value("email"))
}

func TestForm_SaveInsertsRecord(t *testing.T) {
	store := openStore(t)
	m := NewFormModel(store, model.MustSchema(model.EntityOrders), nil)
	fill(m, validOrder())

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	saved, ok := cmd().(model.RecordSavedMsg)
	require.True(t, ok)
	assert.Equal(t, "insert", saved.Operation)
	assert.Equal(t, "ORD-009", saved.ID)

	got, err := store.Get(model.EntityOrders, "ORD-009")
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", got.Value("customer").String())
}

func TestForm_SaveShowsValidationError(t *testing.T) {
	m := NewFormModel(nil, model.MustSchema(model.EntityOrders), nil)

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Nil(t, cmd)
	assert.Equal(t, "Customer is required", m.Error())
	assert.Contains(t, m.View(80, 40), "Customer is required")
}

func TestForm_FieldNavigationWraps(t *testing.T) {
	m := NewFormModel(nil, model.MustSchema(model.EntityOrders), nil)

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, len(m.fields)-1, m.focusedField)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.focusedField)
}

func TestForm_Cancel(t *testing.T) {
	m := NewFormModel(nil, model.MustSchema(model.EntityOrders), nil)

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, model.FormCancelledMsg{}, cmd())
}

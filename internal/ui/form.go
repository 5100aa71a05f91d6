package ui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"backoffice/internal/db"
	"backoffice/internal/model"
	"backoffice/internal/util"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form validation errors. Messages read "<label> <reason>".
var (
	ErrRequired      = errors.New("is required")
	ErrNotNumber     = errors.New("must be a number")
	ErrNotMoney      = errors.New("must be an amount like $12.50")
	ErrInvalidOption = errors.New("is not a valid option")
)

// FormModel creates or edits one record.
type FormModel struct {
	store        *db.Store
	schema       model.Schema
	fields       []model.FieldSpec
	inputs       []textinput.Model
	before       *model.Record
	focusedField int
	error        string
	keys         FormKeyMap
}

// NewFormModel creates a form for schema. A nil existing record creates a
// new one.
func NewFormModel(store *db.Store, schema model.Schema, existing *model.Record) *FormModel {
	fields := schema.EditableFields()
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = f.Placeholder
		inputs[i].CharLimit = 100
		if existing != nil {
			inputs[i].SetValue(existing.Value(f.Name).String())
		}
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	m := &FormModel{
		store:  store,
		schema: schema,
		fields: fields,
		inputs: inputs,
		keys:   DefaultFormKeyMap(),
	}
	if existing != nil {
		before := *existing
		m.before = &before
	}
	return m
}

// Editing reports whether the form edits an existing record.
func (m *FormModel) Editing() bool {
	return m.before != nil
}

// Title is the form heading.
func (m *FormModel) Title() string {
	if m.before != nil {
		return fmt.Sprintf("Edit %s %s", m.schema.Singular, m.before.ID())
	}
	return "New " + m.schema.Singular
}

// Error returns the last validation error.
func (m *FormModel) Error() string {
	return m.error
}

// Update handles input. Non-key messages go to the focused input.
func (m *FormModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.focusedField], cmd = m.inputs[m.focusedField].Update(msg)
		return cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		return func() tea.Msg {
			return model.FormCancelledMsg{}
		}
	case key.Matches(keyMsg, m.keys.Save):
		r, err := m.Validate()
		if err != nil {
			m.error = err.Error()
			return nil
		}
		m.error = ""
		return m.save(r)
	case key.Matches(keyMsg, m.keys.NextField):
		m.nextField()
		return nil
	case key.Matches(keyMsg, m.keys.PrevField):
		m.prevField()
		return nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusedField], cmd = m.inputs[m.focusedField].Update(msg)
	return cmd
}

// Validate checks every input and builds the record to save.
func (m *FormModel) Validate() (model.Record, error) {
	fields := make([]model.Field, 0, len(m.fields)+1)
	if m.before != nil {
		fields = append(fields, model.F("id", model.String(m.before.ID())))
	}
	for i, f := range m.fields {
		v, err := parseInput(f, strings.TrimSpace(m.inputs[i].Value()))
		if err != nil {
			return model.Record{}, err
		}
		fields = append(fields, model.F(f.Name, v))
	}
	return model.NewRecord(fields...), nil
}

func parseInput(f model.FieldSpec, raw string) (model.Value, error) {
	if raw == "" {
		if f.Required {
			return model.Null(), fmt.Errorf("%s %w", f.Label, ErrRequired)
		}
		return model.Null(), nil
	}
	if len(f.Options) > 0 && !slices.Contains(f.Options, raw) {
		return model.Null(), fmt.Errorf("%s %w (%s)", f.Label, ErrInvalidOption, strings.Join(f.Options, ", "))
	}

	switch f.Kind {
	case model.FieldNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.Null(), fmt.Errorf("%s %w", f.Label, ErrNotNumber)
		}
		return model.Number(n), nil
	case model.FieldMoney:
		n, err := util.ParseMoney(raw)
		if err != nil {
			return model.Null(), fmt.Errorf("%s %w", f.Label, ErrNotMoney)
		}
		return model.String(util.FormatMoney(n)), nil
	case model.FieldDate:
		if date, err := util.ParseDateInput(raw); err == nil {
			return model.String(date), nil
		}
	}
	return model.String(raw), nil
}

func (m *FormModel) save(r model.Record) tea.Cmd {
	store := m.store
	e := m.schema.Entity
	before := m.before
	return func() tea.Msg {
		if before != nil {
			if err := store.Update(e, r); err != nil {
				return model.ErrorMsg{Err: err}
			}
			return model.RecordSavedMsg{
				Entity:    e,
				ID:        r.ID(),
				Operation: "update",
				Before:    before,
				After:     r,
			}
		}

		created, err := store.Insert(e, r)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.RecordSavedMsg{
			Entity:    e,
			ID:        created.ID(),
			Operation: "insert",
			After:     created,
		}
	}
}

// View renders the form.
func (m *FormModel) View(width, height int) string {
	var fields []string
	fields = append(fields, PageTitleStyle.Render(m.Title()))
	for i, f := range m.fields {
		label := f.Label
		if f.Required {
			label += " *"
		}
		if len(f.Options) > 0 {
			label += HelpDescStyle.Render("  " + strings.Join(f.Options, " | "))
		}
		fields = append(fields, renderFormField(label, m.inputs[i], m.focusedField == i))
	}

	if m.error != "" {
		fields = append(fields, ErrorStyle.Render(m.error))
	}

	return PanelStyle.
		Width(max(20, width-4)).
		Render(strings.Join(fields, "\n"))
}

func (m *FormModel) nextField() {
	m.inputs[m.focusedField].Blur()
	m.focusedField = (m.focusedField + 1) % len(m.inputs)
	m.inputs[m.focusedField].Focus()
}

func (m *FormModel) prevField() {
	m.inputs[m.focusedField].Blur()
	m.focusedField--
	if m.focusedField < 0 {
		m.focusedField = len(m.inputs) - 1
	}
	m.inputs[m.focusedField].Focus()
}

func renderFormField(label string, input textinput.Model, focused bool) string {
	style := PanelStyle.Padding(0, 1)
	if focused {
		style = ActivePanelStyle.Padding(0, 1)
	}
	return style.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		LabelStyle.Render(label),
		input.View(),
	))
}

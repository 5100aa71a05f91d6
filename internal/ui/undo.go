package ui

import (
	"fmt"

	"backoffice/internal/db"
	"backoffice/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

type undoAction struct {
	label  string
	entity model.Entity
	undo   func() error
	redo   func() error
}

type undoAppliedMsg struct {
	err       error
	action    undoAction
	direction string // undo, redo
}

func (m *Model) pushUndoAction(action undoAction) {
	m.undoStack = append(m.undoStack, action)
	m.redoStack = nil
}

func (m *Model) undoCmd() tea.Cmd {
	if len(m.undoStack) == 0 {
		return nil
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	return func() tea.Msg {
		err := action.undo()
		return undoAppliedMsg{err: err, action: action, direction: "undo"}
	}
}

func (m *Model) redoCmd() tea.Cmd {
	if len(m.redoStack) == 0 {
		return nil
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	return func() tea.Msg {
		err := action.redo()
		return undoAppliedMsg{err: err, action: action, direction: "redo"}
	}
}

func buildSaveAction(store *db.Store, msg model.RecordSavedMsg) *undoAction {
	sc, err := model.SchemaFor(msg.Entity)
	if err != nil {
		return nil
	}
	e := msg.Entity
	after := msg.After
	switch msg.Operation {
	case "insert":
		return &undoAction{
			label:  fmt.Sprintf("%s %s created", sc.Singular, after.ID()),
			entity: e,
			undo: func() error {
				return store.DeleteIDs(e, after.ID())
			},
			redo: func() error {
				return store.Restore(e, after)
			},
		}
	case "update":
		if msg.Before == nil {
			return nil
		}
		before := *msg.Before
		return &undoAction{
			label:  fmt.Sprintf("%s %s updated", sc.Singular, after.ID()),
			entity: e,
			undo: func() error {
				return store.Update(e, before)
			},
			redo: func() error {
				return store.Update(e, after)
			},
		}
	default:
		return nil
	}
}

func buildDeleteAction(store *db.Store, msg model.RecordsDeletedMsg) undoAction {
	e := msg.Entity
	deleted := append([]model.Record(nil), msg.Deleted...)
	ids := db.IDs(deleted)

	label := fmt.Sprintf("%d %s deleted", len(deleted), e)
	if len(deleted) == 1 {
		label = fmt.Sprintf("%s deleted", ids[0])
	}
	return undoAction{
		label:  label,
		entity: e,
		undo: func() error {
			return store.Restore(e, deleted...)
		},
		redo: func() error {
			return store.DeleteIDs(e, ids...)
		},
	}
}

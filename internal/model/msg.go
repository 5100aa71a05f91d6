package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// RecordsLoadedMsg is sent when an entity's records are loaded.
type RecordsLoadedMsg struct {
	Entity  Entity
	Records []Record
}

// DetailLoadedMsg is sent when a record and its related records are loaded.
type DetailLoadedMsg struct {
	Entity  Entity
	Record  Record
	Related []RelatedGroup
}

// DashboardLoadedMsg is sent when dashboard stats are computed.
type DashboardLoadedMsg struct {
	Stats DashboardStats
}

// RecordSavedMsg is sent when a record is successfully saved.
type RecordSavedMsg struct {
	Entity    Entity
	ID        string
	Operation string // insert, update
	Before    *Record
	After     Record
}

// RecordsDeletedMsg is sent after one or more records are deleted.
type RecordsDeletedMsg struct {
	Entity  Entity
	Deleted []Record
}

// FormCancelledMsg is sent when a form is cancelled.
type FormCancelledMsg struct{}

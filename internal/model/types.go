package model

// RelatedGroup is a titled list of records shown under a detail card.
type RelatedGroup struct {
	Title   string
	Entity  Entity
	Records []Record
}

// DashboardStats summarises the store for the dashboard screen.
type DashboardStats struct {
	TotalOrders  int
	Revenue      float64
	Products     int
	ActiveUsers  int
	RecentOrders []Record
}

// Screen represents different app screens.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenList
	ScreenDetail
	ScreenForm
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
	ModeSearch
)

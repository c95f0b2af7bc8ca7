package models

import "time"

// Task belongs to exactly one user; OwnerID is set at creation and never
// changes afterwards.
type Task struct {
	ID          string
	OwnerID     string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskUpdate describes a partial task update. Nil fields are untouched.
type TaskUpdate struct {
	Description *string
	Completed   *bool
}

// TaskFilter narrows and orders task listings. SortBy holds a column name
// already validated by the caller; zero Limit/Skip mean "no limit"/"no skip".
type TaskFilter struct {
	Completed *bool
	SortBy    string
	SortAsc   bool
	Limit     int
	Skip      int
}

package models

import "time"

// WeekWindow is the inclusive calendar interval for one reporting cycle.
// The label doubles as the default local directory for the week's files.
type WeekWindow struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window, boundaries included.
func (w *WeekWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

package model

import "github.com/hormonya/hormonya/internal/cycle"

// Cycle is one recorded cycle start for a user. Records are append-only.
type Cycle struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	StartDate cycle.Date `json:"start_date"`
}

// StartDates extracts the start dates of cycles, preserving order.
func StartDates(cycles []*Cycle) []cycle.Date {
	dates := make([]cycle.Date, len(cycles))
	for i, c := range cycles {
		dates[i] = c.StartDate
	}
	return dates
}

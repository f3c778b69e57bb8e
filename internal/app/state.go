// Package app holds the client-side tracker state: the displayed month, the
// selected cycle start and the prediction derived from it.
package app

import (
	"github.com/hormonya/hormonya/internal/calendar"
	"github.com/hormonya/hormonya/internal/cycle"
)

// State is the calendar tracker state. The zero value is not usable; call NewState.
// State is not safe for concurrent use; Tracker serialises access to it.
type State struct {
	today     cycle.Date
	month     calendar.Month
	selected  *cycle.Date
	predicted *cycle.Date
}

// NewState starts on today's month with nothing selected.
func NewState(today cycle.Date) *State {
	return &State{
		today: today,
		month: calendar.MonthOf(today),
	}
}

// Today returns the date the state highlights as today.
func (s *State) Today() cycle.Date { return s.today }

// Month returns the displayed month.
func (s *State) Month() calendar.Month { return s.month }

// Selected returns the selected cycle start, or nil.
func (s *State) Selected() *cycle.Date { return copyDate(s.selected) }

// Predicted returns the predicted next start, or nil.
func (s *State) Predicted() *cycle.Date { return copyDate(s.predicted) }

// ShowMonth changes the displayed month.
func (s *State) ShowMonth(m calendar.Month) { s.month = m }

// NextMonth advances the displayed month.
func (s *State) NextMonth() { s.month = s.month.Next() }

// PrevMonth moves the displayed month back.
func (s *State) PrevMonth() { s.month = s.month.Prev() }

// PickDate selects d as a cycle start and predicts the next one.
// The displayed month does not change.
func (s *State) PickDate(d cycle.Date) {
	next := cycle.PredictNext(d)
	s.selected = &d
	s.predicted = &next
}

// LoadHistory selects the most recent of dates. An empty history leaves
// the state as it is.
func (s *State) LoadHistory(dates []cycle.Date) {
	latest, ok := cycle.Latest(dates)
	if !ok {
		return
	}
	s.PickDate(latest)
}

// Reset clears the selection and returns to today's month.
func (s *State) Reset() {
	s.month = calendar.MonthOf(s.today)
	s.selected = nil
	s.predicted = nil
}

// View is one rendered month.
type View struct {
	Title     string
	Month     calendar.Month
	Cells     []calendar.DayCell
	Weeks     [][]calendar.DayCell
	Selected  *cycle.Date
	Predicted *cycle.Date
}

// Render draws the displayed month.
func (s *State) Render() View {
	cells := calendar.Render(s.month.Year, s.month.Month, s.today, s.selected, s.predicted)
	return View{
		Title:     s.month.Title(),
		Month:     s.month,
		Cells:     cells,
		Weeks:     calendar.Weeks(cells),
		Selected:  s.Selected(),
		Predicted: s.Predicted(),
	}
}

// snapshot captures the state so a failed operation can roll it back.
func (s *State) snapshot() State {
	return State{
		today:     s.today,
		month:     s.month,
		selected:  copyDate(s.selected),
		predicted: copyDate(s.predicted),
	}
}

func (s *State) restore(saved State) {
	*s = saved
}

func copyDate(d *cycle.Date) *cycle.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// Package calendar builds the month grid shown by the tracker.
package calendar

import (
	"fmt"
	"time"

	"github.com/hormonya/hormonya/internal/cycle"
)

// DayCell is one cell of the month grid. Blank leading cells have Day == 0.
type DayCell struct {
	Day         int    `json:"day,omitempty"`
	Date        string `json:"date,omitempty"`
	IsToday     bool   `json:"isToday"`
	IsSelected  bool   `json:"isSelected"`
	IsPredicted bool   `json:"isPredicted"`
}

// Empty reports whether c is a leading blank cell.
func (c DayCell) Empty() bool {
	return c.Day == 0
}

// Month identifies a displayed month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d cycle.Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// Next returns the following month.
func (m Month) Next() Month {
	return m.shift(1)
}

// Prev returns the preceding month.
func (m Month) Prev() Month {
	return m.shift(-1)
}

func (m Month) shift(n int) Month {
	t := time.Date(m.Year, m.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Title formats the month as "October 2026".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// FirstWeekday is the weekday index (Sunday = 0) of day 1.
func (m Month) FirstWeekday() int {
	return int(time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// DaysIn returns the number of days in the month.
func (m Month) DaysIn() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Render produces the month grid: FirstWeekday blank cells followed by one
// cell per day. selected and predicted may be nil.
func Render(year int, month time.Month, today cycle.Date, selected, predicted *cycle.Date) []DayCell {
	m := Month{Year: year, Month: month}

	todayStr := today.String()
	selectedStr := dateString(selected)
	predictedStr := dateString(predicted)

	lead := m.FirstWeekday()
	days := m.DaysIn()
	cells := make([]DayCell, lead, lead+days)

	for day := 1; day <= days; day++ {
		date := cycle.Date{Year: year, Month: month, Day: day}.String()
		cells = append(cells, DayCell{
			Day:         day,
			Date:        date,
			IsToday:     date == todayStr,
			IsSelected:  selectedStr != "" && date == selectedStr,
			IsPredicted: predictedStr != "" && date == predictedStr,
		})
	}

	return cells
}

// Weeks splits cells into rows of seven. The last row is padded with blanks.
func Weeks(cells []DayCell) [][]DayCell {
	var rows [][]DayCell
	for start := 0; start < len(cells); start += 7 {
		end := start + 7
		row := make([]DayCell, 7)
		if end > len(cells) {
			end = len(cells)
		}
		copy(row, cells[start:end])
		rows = append(rows, row)
	}
	return rows
}

func dateString(d *cycle.Date) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.String()
}

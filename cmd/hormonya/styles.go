package main

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hormonya/hormonya/internal/app"
	"github.com/hormonya/hormonya/internal/calendar"
	"github.com/hormonya/hormonya/internal/cycle"
	"github.com/hormonya/hormonya/internal/session"
)

// Palette
var (
	rose  = lipgloss.Color("#E75480")
	blush = lipgloss.Color("#F8BBD0")
	plum  = lipgloss.Color("#6A1B4D")
	muted = lipgloss.Color("#9E9E9E")
)

const cellSize = 5

var weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

var boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// styles renders CLI output. Colors are dropped automatically when the
// writer is not a terminal; the cell markers keep the grid readable then.
type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	cell      lipgloss.Style
	today     lipgloss.Style
	selected  lipgloss.Style
	predicted lipgloss.Style
	legend    lipgloss.Style
	label     lipgloss.Style
	bold      lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	cell := r.NewStyle().Width(cellSize).Align(lipgloss.Right)
	return styles{
		title:     r.NewStyle().Bold(true).Foreground(plum).Width(cellSize * 7).Align(lipgloss.Center),
		header:    cell.Foreground(muted),
		cell:      cell,
		today:     cell.Underline(true).Bold(true),
		selected:  cell.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(rose),
		predicted: cell.Foreground(rose).Background(blush),
		legend:    r.NewStyle().Foreground(muted),
		label:     r.NewStyle().Bold(true).Foreground(plum),
		bold:      r.NewStyle().Bold(true),
	}
}

// month draws the grid. Markers: * cycle start, + predicted, . today.
func (s styles) month(v app.View) string {
	var b strings.Builder

	b.WriteString(s.title.Render(v.Title))
	b.WriteByte('\n')

	for _, d := range weekdayHeader {
		b.WriteString(s.header.Render(d))
	}
	b.WriteByte('\n')

	for _, week := range v.Weeks {
		for _, c := range week {
			b.WriteString(s.dayCell(c))
		}
		b.WriteByte('\n')
	}

	b.WriteString(s.legend.Render("* cycle start  + predicted  . today"))
	b.WriteByte('\n')
	return b.String()
}

func (s styles) dayCell(c calendar.DayCell) string {
	if c.Empty() {
		return s.cell.Render("")
	}

	text := fmt.Sprintf("%d", c.Day)
	switch {
	case c.IsSelected:
		return s.selected.Render(text + "*")
	case c.IsPredicted:
		return s.predicted.Render(text + "+")
	case c.IsToday:
		return s.today.Render(text + ".")
	default:
		return s.cell.Render(text + " ")
	}
}

func (s styles) date(d cycle.Date) string {
	return s.bold.Render(d.Time().Format("Monday, January 2, 2006"))
}

func (s styles) identity(id *session.Identity) string {
	var b strings.Builder
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", s.label.Render(label), value)
	}

	row("Name:  ", id.DisplayName())
	row("Email: ", id.Email)
	if id.Age != nil {
		row("Age:   ", fmt.Sprintf("%d", *id.Age))
	}
	if id.Gender != nil {
		row("Gender:", *id.Gender)
	}
	row("BMI:   ", bmiLine(id))
	return b.String()
}

// reply renders the **bold** markup the model uses.
func (s styles) reply(text string) string {
	return boldPattern.ReplaceAllStringFunc(text, func(m string) string {
		return s.bold.Render(m[2 : len(m)-2])
	})
}

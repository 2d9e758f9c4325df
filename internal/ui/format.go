package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/twdsco/hackertracker/internal/calendar"
	"github.com/twdsco/hackertracker/internal/layout"
)

// PrintOpts configures event printing behavior.
type PrintOpts struct {
	Verbose       bool // Show every detail line
	MaxTitleWidth int  // Maximum title width (0 = auto)
}

// CalcMaxTitleWidth calculates the maximum title width based on options.
func (o PrintOpts) CalcMaxTitleWidth(defaultWidth int) int {
	if o.MaxTitleWidth > 0 {
		return o.MaxTitleWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	// Base: "  #123  " plus the badge
	available := termWidth() - 20
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// PrintCard prints one event as a title line followed by its details.
func PrintCard(w io.Writer, card calendar.EventCard, opts PrintOpts, maxTitleWidth int) {
	title := ansi.Truncate(card.Title, maxTitleWidth, "...")
	id := formatMuted(fmt.Sprintf("#%-3d", card.ID))
	if card.Tentative {
		_, _ = fmt.Fprintf(w, "  %s %s  %s\n", id, formatTentative(title), formatTentative(calendar.BadgeTentative))
	} else {
		_, _ = fmt.Fprintf(w, "  %s %s\n", id, formatConfirmed(title))
	}

	_, _ = fmt.Fprintf(w, "       %s\n", card.When)
	if opts.Verbose {
		for _, f := range card.Fields()[1:] {
			_, _ = fmt.Fprintf(w, "       %s：%s\n", f.Label, f.Value)
		}
	} else if card.Location != "" {
		_, _ = fmt.Fprintf(w, "       %s\n", card.Location)
	}
	if len(card.Tags) > 0 {
		_, _ = fmt.Fprintf(w, "       %s\n", formatMuted(strings.Join(card.Tags, " · ")))
	}
}

// PrintList prints the month groups of the list view.
func PrintList(w io.Writer, lv calendar.ListView, opts PrintOpts) {
	maxTitleWidth := opts.CalcMaxTitleWidth(50)
	for i, group := range lv.Groups {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "=== %s ===\n", formatHeader(group.Title))
		for _, card := range group.Cards {
			PrintCard(w, card, opts, maxTitleWidth)
		}
	}
}

// PrintDetail prints every field of one event.
func PrintDetail(w io.Writer, card calendar.EventCard) {
	title := card.Title
	if card.Tentative {
		title += "  " + formatTentative(calendar.BadgeTentative)
	}
	_, _ = fmt.Fprintf(w, "%s\n", formatHeader(title))
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 40))
	for _, f := range card.Fields() {
		_, _ = fmt.Fprintf(w, "%s：%s\n", f.Label, f.Value)
	}
	if len(card.Tags) > 0 {
		_, _ = fmt.Fprintf(w, "標籤：%s\n", strings.Join(card.Tags, "、"))
	}
}

// monthCellLines is the number of event lines shown per day cell.
const monthCellLines = 3

// RenderMonthTable draws the month as a bordered table with the titles of
// the events covering each day.
func RenderMonthTable(mv calendar.MonthView, width int) string {
	colW := max(6, (width-8)/7)

	rows := make([][]string, 0, len(mv.Weeks))
	for _, week := range mv.Weeks {
		row := make([]string, len(week.Days))
		for col, cell := range week.Days {
			row[col] = monthCell(week, col, cell, colW)
		}
		rows = append(rows, row)
	}

	header := lipgloss.NewStyle().Bold(true).Align(lipgloss.Center).Width(colW)
	cellStyle := lipgloss.NewStyle().Width(colW)
	outStyle := cellStyle.Faint(true)

	t := table.New().
		Headers(mv.Weekdays...).
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if row < len(mv.Weeks) && !mv.Weeks[row].Days[col].InMonth {
				return outStyle
			}
			return cellStyle
		})
	return t.Render()
}

func monthCell(week calendar.WeekRow, col int, cell calendar.DayCell, colW int) string {
	lines := []string{strconv.Itoa(cell.Day)}

	var titles []string
	for _, p := range layout.InColumn(week.Placements, col) {
		title := p.Event.Title
		if p.Event.IsTentative() {
			title = "?" + title
		}
		titles = append(titles, title)
	}

	for i, title := range titles {
		if i == monthCellLines-1 && len(titles) > monthCellLines {
			lines = append(lines, fmt.Sprintf("+%d", len(titles)-i))
			break
		}
		lines = append(lines, ansi.Truncate(title, colW, "…"))
	}
	return strings.Join(lines, "\n")
}

// PrintYear prints each month of the year with its event days marked:
// confirmed days in bold cyan, tentative-only days in yellow.
func PrintYear(w io.Writer, yv calendar.YearView) {
	_, _ = fmt.Fprintf(w, "=== %s ===\n", formatHeader(yv.Title))
	for _, mm := range yv.Months {
		label := fmt.Sprintf("%-4s", mm.Title)
		if !mm.Highlight {
			_, _ = fmt.Fprintf(w, "  %s %s\n", formatMuted(label), formatMuted("-"))
			continue
		}

		var days []string
		for _, d := range mm.Days {
			switch d.State {
			case calendar.DayConfirmed:
				days = append(days, formatConfirmed(strconv.Itoa(d.Day)))
			case calendar.DayTentative:
				days = append(days, formatTentative(strconv.Itoa(d.Day)))
			}
		}
		_, _ = fmt.Fprintf(w, "  %s %s\n", formatHeader(label), strings.Join(days, " "))
	}
}

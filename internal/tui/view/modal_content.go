// Package view provides rendering helpers for the TUI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twdsco/hackertracker/internal/calendar"
)

// DetailStyles groups styles for the event detail body.
type DetailStyles struct {
	BodyStyle  lipgloss.Style
	LabelStyle lipgloss.Style
	TagStyle   lipgloss.Style
	BadgeStyle lipgloss.Style
}

// DetailTitle returns the modal title for a card.
func DetailTitle(card calendar.EventCard) string {
	return card.Title
}

// RenderDetailBody renders tags, the tentative badge and the labelled
// fields of card. Absent optional fields are omitted.
func RenderDetailBody(card calendar.EventCard, styles DetailStyles) string {
	var body strings.Builder

	var head []string
	for _, tag := range card.Tags {
		head = append(head, styles.TagStyle.Render(tag))
	}
	if card.Tentative {
		head = append(head, styles.BadgeStyle.Render(calendar.BadgeTentative))
	}
	if len(head) > 0 {
		body.WriteString(strings.Join(head, styles.BodyStyle.Render(" ")) + "\n\n")
	}

	fields := card.Fields()
	labelW := 0
	for _, f := range fields {
		labelW = max(labelW, lipgloss.Width(f.Label))
	}
	for i, f := range fields {
		if i > 0 {
			body.WriteString("\n")
		}
		body.WriteString(styles.LabelStyle.Render(Fit(f.Label, labelW)) + styles.BodyStyle.Render("  "+f.Value))
	}
	return body.String()
}

// ChoiceStyles groups styles for selectable lists and grids.
type ChoiceStyles struct {
	BodyStyle     lipgloss.Style
	ActiveStyle   lipgloss.Style
	InactiveStyle lipgloss.Style
	CurrentStyle  lipgloss.Style
	BadgeStyle    lipgloss.Style
	HintStyle     lipgloss.Style
}

// RenderPicklistBody renders the events of one day with the cursor on
// selected.
func RenderPicklistBody(items []calendar.PickItem, selected int, styles ChoiceStyles) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		style, marker := styles.InactiveStyle, "  "
		if i == selected {
			style, marker = styles.ActiveStyle, "▸ "
		}
		line := style.Render(marker + item.Title)
		if item.Tentative {
			line += styles.BodyStyle.Render(" ") + styles.BadgeStyle.Render(calendar.BadgeTentative)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// FilterItem is one tag of the filter modal.
type FilterItem struct {
	Tag    string
	Active bool
}

// RenderFilterBody renders the tag checklist and the share query.
func RenderFilterBody(items []FilterItem, cursor int, query string, styles ChoiceStyles) string {
	lines := make([]string, 0, len(items)+2)
	for i, item := range items {
		box := "[ ]"
		if item.Active {
			box = "[x]"
		}
		style, marker := styles.InactiveStyle, "  "
		if i == cursor {
			style, marker = styles.ActiveStyle, "▸ "
		}
		lines = append(lines, style.Render(marker+box+" "+item.Tag))
	}
	share := "(全部活動)"
	if query != "" {
		share = "?" + query
	}
	lines = append(lines, "", styles.HintStyle.Render(share))
	return strings.Join(lines, "\n")
}

// RenderPickerBody renders picker options as a grid of cols columns.
func RenderPickerBody(options []calendar.PickerOption, selected, cols int, styles ChoiceStyles) string {
	cols = max(1, cols)
	cellW := 0
	for _, opt := range options {
		cellW = max(cellW, lipgloss.Width(opt.Label))
	}
	cellW += 2

	var rows []string
	for i := 0; i < len(options); i += cols {
		var cells []string
		for j := i; j < min(i+cols, len(options)); j++ {
			opt := options[j]
			style := styles.InactiveStyle
			switch {
			case j == selected:
				style = styles.ActiveStyle
			case opt.Current:
				style = styles.CurrentStyle
			}
			cells = append(cells, style.Width(cellW).Align(lipgloss.Center).Render(opt.Label))
		}
		rows = append(rows, strings.Join(cells, styles.BodyStyle.Render(" ")))
	}
	return strings.Join(rows, "\n")
}

// HelpEntry is one key binding shown in the help modal.
type HelpEntry struct {
	Keys string
	Desc string
}

// RenderHelpBody renders key bindings in two aligned columns.
func RenderHelpBody(entries []HelpEntry, styles ChoiceStyles) string {
	keyW := 0
	for _, e := range entries {
		keyW = max(keyW, lipgloss.Width(e.Keys))
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, styles.ActiveStyle.Render(Fit(e.Keys, keyW))+styles.BodyStyle.Render("  "+e.Desc))
	}
	return strings.Join(lines, "\n")
}

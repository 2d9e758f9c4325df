package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderStyles colors the title bar.
type HeaderStyles struct {
	App       lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Title     lipgloss.Style
	Meta      lipgloss.Style
	Separator lipgloss.Style
}

// HeaderModel is the content of the title bar.
type HeaderModel struct {
	AppName string
	Tabs    []string
	Active  int
	// Title is the heading of the current view, e.g. "2026年 8月".
	Title string
	// Meta is right-aligned, e.g. the event count.
	Meta  string
	Width int
}

// RenderHeader renders the tab bar on the first line and the view heading
// on the second.
func RenderHeader(model HeaderModel, styles HeaderStyles) string {
	parts := []string{styles.App.Render(model.AppName)}
	for i, tab := range model.Tabs {
		style := styles.Tab
		if i == model.Active {
			style = styles.TabActive
		}
		parts = append(parts, style.Render(tab))
	}
	tabs := strings.Join(parts, styles.Separator.Render(" "))

	title := styles.Title.Render(model.Title)
	meta := styles.Meta.Render(model.Meta)
	gap := model.Width - lipgloss.Width(title) - lipgloss.Width(meta)
	if gap < 1 {
		gap = 1
	}
	second := title + styles.Separator.Render(strings.Repeat(" ", gap)) + meta

	return Fit(tabs, model.Width) + "\n" + Fit(second, model.Width)
}

// Package view provides view composition helpers for the TUI.
package view

import "github.com/charmbracelet/lipgloss"

// OverlayRenderer renders modal overlays on top of base content.
type OverlayRenderer interface {
	Render(base string, width, height int, content string) string
}

// ViewState contains pre-rendered content and overlay metadata.
type ViewState struct {
	Width            int
	Height           int
	BaseContent      string
	ModalContent     string
	ShowModal        bool
	Overlay          OverlayRenderer
	EmptyPlaceholder string
}

// Render composes the final view output.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Loading..."
	}

	base := state.BaseContent
	if state.ShowModal && state.Overlay != nil {
		return state.Overlay.Render(base, state.Width, state.Height, state.ModalContent)
	}

	return base
}

// ScreenState holds the three stacked sections of the main screen.
type ScreenState struct {
	InnerW  int
	HeaderH int
	BodyH   int
	FooterH int
	Header  string
	Body    string
	Footer  string
	Bg      lipgloss.Color
}

// RenderScreen boxes each section to its height and stacks them.
func RenderScreen(state ScreenState) string {
	sections := make([]string, 0, 3)
	if state.HeaderH > 0 {
		sections = append(sections, section(state.InnerW, state.HeaderH, lipgloss.Top, state.Header, state.Bg))
	}
	if state.BodyH > 0 {
		sections = append(sections, section(state.InnerW, state.BodyH, lipgloss.Top, state.Body, state.Bg))
	}
	if state.FooterH > 0 {
		sections = append(sections, section(state.InnerW, state.FooterH, lipgloss.Bottom, state.Footer, state.Bg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// section fills a w x h box with bg and places content at vAlign.
func section(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content, lipgloss.WithWhitespaceBackground(bg))
	return PadLinesWithBackground(placed, w, h, bg)
}

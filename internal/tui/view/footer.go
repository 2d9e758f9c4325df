package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterModel contains content and styles for rendering the footer.
type FooterModel struct {
	InnerW      int
	FilterText  string
	StatusText  string
	HelpText    string
	FilterStyle lipgloss.Style
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
}

// FooterHeight is the number of lines RenderFooter produces.
const FooterHeight = 3

// RenderFooter renders the active filter, status and key help lines.
func RenderFooter(model FooterModel) string {
	return footerLine(model.InnerW, model.FilterStyle, model.FilterText) + "\n" +
		footerLine(model.InnerW, model.StatusStyle, model.StatusText) + "\n" +
		footerLine(model.InnerW, model.HelpStyle, model.HelpText)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := width - frameW
	if contentWidth < 0 {
		contentWidth = 0
	}
	style = style.Width(contentWidth)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
	}
	return style.Render(content)
}

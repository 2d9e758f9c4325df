package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/twdsco/hackertracker/internal/tui/view"
)

// The backdrop extends this far around the modal frame.
const (
	overlayPadX      = 2
	overlayPadY      = 1
	overlayMinWidth  = 18
	overlayMinHeight = 5
)

// OverlayModel splices a modal, on an opaque backdrop, over the screen.
type OverlayModel struct {
	active  bool
	bgColor lipgloss.Color
}

// NewOverlayModel initializes an overlay model.
func NewOverlayModel() OverlayModel {
	return OverlayModel{}
}

// Toggle flips the overlay visibility.
func (o *OverlayModel) Toggle() {
	o.active = !o.active
}

// Active reports whether the overlay is visible.
func (o OverlayModel) Active() bool {
	return o.active
}

// SetBackground updates the backdrop color.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// Render centers content on a backdrop box over base.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 {
		return base
	}

	contentLines := trimTrailingEmpty(strings.Split(content, "\n"))
	boxW, boxH := o.boxSize(contentLines, width, height)
	if boxW <= 0 || boxH <= 0 {
		return base
	}
	top := (height - boxH) / 2
	left := (width - boxW) / 2

	box := o.backdrop(contentLines, boxW, boxH)
	baseLines := fitLines(base, width, height)

	lines := make([]string, height)
	for row := range lines {
		if row < top || row >= top+boxH {
			lines[row] = baseLines[row]
			continue
		}
		lines[row] = ansi.Cut(baseLines[row], 0, left) +
			box[row-top] +
			ansi.Cut(baseLines[row], left+boxW, width)
	}
	return strings.Join(lines, "\n")
}

// boxSize is the content size plus padding, clamped to the screen.
func (o OverlayModel) boxSize(content []string, width, height int) (int, int) {
	contentW := 0
	for _, line := range content {
		contentW = max(contentW, lipgloss.Width(line))
	}
	boxW := max(contentW+2*overlayPadX, overlayMinWidth)
	boxH := max(len(content)+2*overlayPadY, overlayMinHeight)
	return min(boxW, width), min(boxH, height)
}

// backdrop draws the box rows with content centered on them.
func (o OverlayModel) backdrop(content []string, boxW, boxH int) []string {
	bgSeq := view.ModalBackgroundSeq(o.bgColor)
	blank := bgSeq + strings.Repeat(" ", boxW) + ansi.ResetStyle

	rows := make([]string, boxH)
	for i := range rows {
		rows[i] = blank
	}

	contentW := 0
	for _, line := range content {
		contentW = max(contentW, lipgloss.Width(line))
	}
	contentW = min(contentW, boxW)
	contentH := min(len(content), boxH)
	top := (boxH - contentH) / 2
	left := (boxW - contentW) / 2

	for i := 0; i < contentH; i++ {
		line := content[i]
		if lipgloss.Width(line) > contentW {
			line = ansi.Cut(line, 0, contentW)
		}
		line += strings.Repeat(" ", contentW-lipgloss.Width(line))
		line = view.ApplyModalBackgroundResets(line, o.bgColor)

		rows[top+i] = bgSeq + strings.Repeat(" ", left) +
			line +
			bgSeq + strings.Repeat(" ", boxW-left-contentW) +
			ansi.ResetStyle
	}
	return rows
}

func trimTrailingEmpty(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// fitLines returns exactly height lines of exactly width cells.
func fitLines(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for i, line := range lines {
		w := lipgloss.Width(line)
		switch {
		case w > width:
			lines[i] = ansi.Cut(line, 0, width)
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func dottedScreen(width, height int) string {
	row := strings.Repeat(".", width)
	return strings.Repeat(row+"\n", height-1) + row
}

func TestOverlayToggle(t *testing.T) {
	overlay := NewOverlayModel()
	if overlay.Active() {
		t.Fatalf("expected overlay to start inactive")
	}

	overlay.Toggle()
	if !overlay.Active() {
		t.Fatalf("expected overlay to be active after toggle")
	}

	overlay.Toggle()
	if overlay.Active() {
		t.Fatalf("expected overlay to be inactive after second toggle")
	}
}

func TestOverlayRenderInactiveReturnsBase(t *testing.T) {
	overlay := NewOverlayModel()
	base := "alpha\nbeta"
	got := overlay.Render(base, 10, 2, "content")
	if got != base {
		t.Fatalf("expected base content unchanged when inactive")
	}
}

func TestOverlayRenderAddsOverlay(t *testing.T) {
	overlay := NewOverlayModel()
	overlay.SetBackground(lipgloss.Color("#0c0c0c"))
	overlay.Toggle()

	width := 30
	height := 12
	content := "活動列表"
	got := overlay.Render(dottedScreen(width, height), width, height, content)

	lines := strings.Split(got, "\n")
	if len(lines) != height {
		t.Fatalf("expected %d lines, got %d", height, len(lines))
	}

	boxW, boxH := overlay.boxSize([]string{content}, width, height)
	if boxW != overlayMinWidth || boxH != overlayMinHeight {
		t.Fatalf("box = %dx%d, want the minimum %dx%d", boxW, boxH, overlayMinWidth, overlayMinHeight)
	}
	top := (height - boxH) / 2
	bgSeq := ansi.Style{}.BackgroundColor(ansi.HexColor(string(overlay.bgColor))).String()
	if !strings.Contains(ansi.Strip(got), content) {
		t.Fatalf("expected rendered content to include the modal text")
	}

	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Fatalf("expected line width %d, got %d", width, w)
		}

		hasBg := strings.Contains(line, bgSeq)
		if i >= top && i < top+boxH {
			if !hasBg {
				t.Fatalf("expected overlay background on line %d", i)
			}
		} else if hasBg {
			t.Fatalf("expected no overlay background on line %d", i)
		}
	}
}

func TestOverlayBoxGrowsWithContent(t *testing.T) {
	overlay := NewOverlayModel()
	content := []string{strings.Repeat("x", 30), "", "y"}

	boxW, boxH := overlay.boxSize(content, 80, 24)
	if boxW != 30+2*overlayPadX || boxH != 3+2*overlayPadY {
		t.Fatalf("box = %dx%d, want %dx%d", boxW, boxH, 30+2*overlayPadX, 3+2*overlayPadY)
	}

	boxW, boxH = overlay.boxSize(content, 20, 4)
	if boxW != 20 || boxH != 4 {
		t.Fatalf("box = %dx%d, want clamped to 20x4", boxW, boxH)
	}
}

func TestOverlayRenderClipsWideContent(t *testing.T) {
	overlay := NewOverlayModel()
	overlay.Toggle()

	got := overlay.Render(dottedScreen(20, 6), 20, 6, strings.Repeat("w", 50))
	for _, line := range strings.Split(got, "\n") {
		if w := lipgloss.Width(line); w != 20 {
			t.Fatalf("line width = %d, want 20", w)
		}
	}
}

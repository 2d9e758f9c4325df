package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderModalButtons_UsesModalBodySeparator(t *testing.T) {
	styles := ModalStyles{
		ModalBodyStyle:         lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		ModalButtonStyle:       lipgloss.NewStyle(),
		ModalButtonActiveStyle: lipgloss.NewStyle(),
	}

	view := RenderModalButtons(styles, "[Enter] 開啟", "[Esc] 關閉")
	sep := styles.ModalBodyStyle.Render(" ")
	if !strings.Contains(view, sep) {
		t.Fatalf("expected modal button separator to use modal body style")
	}
}

func TestRenderModalFrame_Sections(t *testing.T) {
	out := RenderModalFrame("HITCON", "body", "footer", 0, ModalStyles{})
	for _, want := range []string{"HITCON", "body", "footer"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q: %q", want, out)
		}
	}
	if strings.Count(out, "\n") != 4 {
		t.Errorf("expected title, body and footer separated by blank lines, got %q", out)
	}
}

func TestRenderModalFrame_MaxWidth(t *testing.T) {
	body := strings.Repeat("x", 80)
	out := RenderModalFrame("t", body, "", 30, ModalStyles{})
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 30 {
			t.Fatalf("line width = %d, want <= 30: %q", w, line)
		}
	}
}

package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func darkTheme() *Theme {
	return &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Confirmed:   "#112233",
		Tentative:   "#445566",
		Today:       "#777777",
		Warning:     "#888888",
	}
}

func TestNewPalette_EventShades(t *testing.T) {
	base := darkTheme()

	palette := NewPalette(base)

	if palette.ConfirmedBg != lipgloss.Color(darkenColor(base.Confirmed)) {
		t.Fatalf("ConfirmedBg = %q, want %q", palette.ConfirmedBg, darkenColor(base.Confirmed))
	}
	if palette.TentativeBg != lipgloss.Color(darkenColor(base.Tentative)) {
		t.Fatalf("TentativeBg = %q, want %q", palette.TentativeBg, darkenColor(base.Tentative))
	}
	if palette.ConfirmedBgAlt != lipgloss.Color(alternateShade(darkenColor(base.Confirmed), false)) {
		t.Fatalf("ConfirmedBgAlt = %q, want %q", palette.ConfirmedBgAlt, alternateShade(darkenColor(base.Confirmed), false))
	}
	if palette.TentativeOutBg != lipgloss.Color(muteColor(base.Tentative)) {
		t.Fatalf("TentativeOutBg = %q, want %q", palette.TentativeOutBg, muteColor(base.Tentative))
	}
}

func TestNewPalette_ModalFallbacks(t *testing.T) {
	base := darkTheme()

	palette := NewPalette(base)
	if palette.Modal.Bg != lipgloss.Color(base.BgHighlight) {
		t.Fatalf("Modal.Bg = %q, want %q", palette.Modal.Bg, base.BgHighlight)
	}
	if palette.Modal.Border.Dark != base.Accent {
		t.Fatalf("Modal.Border.Dark = %q, want %q", palette.Modal.Border.Dark, base.Accent)
	}
	if palette.Modal.Backdrop != lipgloss.Color(base.BgSelection) {
		t.Fatalf("Modal.Backdrop = %q, want %q", palette.Modal.Backdrop, base.BgSelection)
	}
}

func TestNewPalette_LightThemeInvertsShades(t *testing.T) {
	base := &Theme{
		Bg:          "#f5f5f5",
		BgHighlight: "#eeeeee",
		BgSelection: "#e0e0e0",
		Fg:          "#222222",
		FgMuted:     "#555555",
		Accent:      "#2f6feb",
		Confirmed:   "#1d8a8a",
		Tentative:   "#2f8f2f",
		Today:       "#c97b00",
		Warning:     "#c2410c",
	}

	palette := NewPalette(base)
	if relativeLuminance(string(palette.ConfirmedBg)) <= relativeLuminance(base.Confirmed) {
		t.Fatalf("ConfirmedBg luminance = %f, want greater than Confirmed", relativeLuminance(string(palette.ConfirmedBg)))
	}
	if relativeLuminance(string(palette.TentativeBg)) <= relativeLuminance(base.Tentative) {
		t.Fatalf("TentativeBg luminance = %f, want greater than Tentative", relativeLuminance(string(palette.TentativeBg)))
	}
}

func TestNewPalette_NilUsesDefault(t *testing.T) {
	palette := NewPalette(nil)
	if palette.Bg == "" {
		t.Fatal("NewPalette(nil).Bg is empty")
	}
}

func TestDarkenColor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"#ff8000", "#804028"},
		{"#112233", "#282828"}, // floored
		{"red", "red"},
		{"#fff", "#fff"},
	}
	for _, tc := range tests {
		if got := darkenColor(tc.in); got != tc.want {
			t.Errorf("darkenColor(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBlendColors(t *testing.T) {
	if got := blendColors("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("ratio 0 = %q", got)
	}
	if got := blendColors("#000000", "#ffffff", 2); got != "#ffffff" {
		t.Errorf("ratio clamped to 1 = %q", got)
	}
	if got := blendColors("nope", "#ffffff", 0.5); got != "nope" {
		t.Errorf("invalid input = %q", got)
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}

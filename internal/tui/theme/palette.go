// Package theme provides color themes for the TUI.
package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Confirmed   lipgloss.Color
	Tentative   lipgloss.Color
	Today       lipgloss.Color
	Warning     lipgloss.Color

	// Event bar backgrounds. The Alt shades separate bars stacked in
	// neighbouring slots; the Out shades are used outside the shown month.
	ConfirmedBg    lipgloss.Color
	TentativeBg    lipgloss.Color
	ConfirmedBgAlt lipgloss.Color
	TentativeBgAlt lipgloss.Color
	ConfirmedOutBg lipgloss.Color
	TentativeOutBg lipgloss.Color

	TextOnAccent    lipgloss.Color
	TextOnConfirmed lipgloss.Color
	TextOnTentative lipgloss.Color
	TextOnToday     lipgloss.Color

	Modal ModalColors
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg          lipgloss.Color
	Border      lipgloss.AdaptiveColor
	Text        lipgloss.AdaptiveColor
	Muted       lipgloss.AdaptiveColor
	Highlight   lipgloss.AdaptiveColor
	Panel       lipgloss.AdaptiveColor
	ReverseText lipgloss.AdaptiveColor
	Backdrop    lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	isLight := isLightTheme(t.Bg)
	confirmedBgHex := eventBg(t.Confirmed, t.Bg, isLight)
	tentativeBgHex := eventBg(t.Tentative, t.Bg, isLight)

	modalPalette := t.Modal()
	modalBgHex := modalPalette.BaseBg
	modalPanelHex := coalesce(t.BgSelection, t.BgHighlight, t.Bg)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Confirmed:   lipgloss.Color(t.Confirmed),
		Tentative:   lipgloss.Color(t.Tentative),
		Today:       lipgloss.Color(t.Today),
		Warning:     lipgloss.Color(t.Warning),

		ConfirmedBg:    lipgloss.Color(confirmedBgHex),
		TentativeBg:    lipgloss.Color(tentativeBgHex),
		ConfirmedBgAlt: lipgloss.Color(alternateShade(confirmedBgHex, isLight)),
		TentativeBgAlt: lipgloss.Color(alternateShade(tentativeBgHex, isLight)),
		ConfirmedOutBg: lipgloss.Color(eventOutBg(t.Confirmed, t.Bg, isLight)),
		TentativeOutBg: lipgloss.Color(eventOutBg(t.Tentative, t.Bg, isLight)),

		TextOnAccent:    lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnConfirmed: lipgloss.Color(chooseTextColor(confirmedBgHex, t.Bg, t.Fg)),
		TextOnTentative: lipgloss.Color(chooseTextColor(tentativeBgHex, t.Bg, t.Fg)),
		TextOnToday:     lipgloss.Color(chooseTextColor(t.Today, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:          lipgloss.Color(modalBgHex),
			Border:      adaptiveColor(modalPalette.ModalBorder),
			Text:        adaptiveColor(modalPalette.TextPrimary),
			Muted:       adaptiveColor(modalPalette.TextMuted),
			Highlight:   adaptiveColor(modalPalette.Highlight),
			Panel:       adaptiveColor(modalPanelHex),
			ReverseText: reverseTextColor(modalBgHex, modalPalette.TextPrimary),
			Backdrop:    lipgloss.Color(modalPanelHex),
		},
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// hexColor parses "#rrggbb". Anything else is reported as not ok and the
// callers hand the input back unchanged.
func hexColor(hex string) (colorful.Color, bool) {
	if len(hex) != 7 {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	return c, err == nil
}

// Event bars sit on the calendar background: on light themes the event color
// is washed towards the background, on dark themes it is dimmed.
func eventBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent)
}

func eventOutBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.88)
	}
	return muteColor(accent)
}

// darkenColor halves each channel, keeping at least 40/255 so bars stay
// visible on near-black backgrounds.
func darkenColor(hex string) string {
	return scaleColor(hex, 0.50, 40)
}

// muteColor dims further, for bars on days outside the shown month.
func muteColor(hex string) string {
	return scaleColor(hex, 0.30, 30)
}

func scaleColor(hex string, factor float64, floor uint8) string {
	c, ok := hexColor(hex)
	if !ok {
		return hex
	}
	lo := float64(floor) / 255
	scale := func(v float64) float64 { return math.Max(v*factor, lo) }
	return colorful.Color{R: scale(c.R), G: scale(c.G), B: scale(c.B)}.Clamped().Hex()
}

// alternateShade separates bars stacked in neighbouring slots.
func alternateShade(hex string, isLight bool) string {
	if isLight {
		return blendColors(hex, "#000000", 0.10)
	}
	return blendColors(hex, "#ffffff", 0.30)
}

// blendColors mixes b into a by ratio (0 keeps a, 1 yields b) in RGB space.
func blendColors(a, b string, ratio float64) string {
	ca, ok := hexColor(a)
	if !ok {
		return a
	}
	cb, ok := hexColor(b)
	if !ok {
		return a
	}
	ratio = math.Min(math.Max(ratio, 0), 1)
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}

func adaptiveColor(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: hex, Light: hex}
}

func reverseTextColor(darkBg, lightText string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: darkBg, Light: lightText}
}

// chooseTextColor picks whichever text color reads better on bg.
func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

// contrastRatio is the WCAG contrast ratio, from 1 to 21.
func contrastRatio(a, b string) float64 {
	l1, l2 := relativeLuminance(a), relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// relativeLuminance is the WCAG luminance of a hex color; unparsable
// colors count as black.
func relativeLuminance(hex string) float64 {
	c, ok := hexColor(hex)
	if !ok {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

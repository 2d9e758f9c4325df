// Package tui provides the terminal user interface for hackertracker.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/twdsco/hackertracker/internal/tui/theme"
	"github.com/twdsco/hackertracker/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorConfirmed   lipgloss.Color
	colorTentative   lipgloss.Color
	colorToday       lipgloss.Color
	colorWarning     lipgloss.Color

	// App container
	AppStyle lipgloss.Style

	Header view.HeaderStyles
	Month  view.MonthStyles
	Year   view.YearStyles
	List   view.ListStyles

	// Footer lines
	FilterStyle lipgloss.Style
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	// Modal styles
	ModalBgColor       lipgloss.Color
	ModalBackdropColor lipgloss.Color
	Modal              view.ModalStyles
	ModalSet           view.ModalStyleSet

	// Compose text inputs
	InputTextStyle        lipgloss.Style
	InputCursorStyle      lipgloss.Style
	InputPlaceholderStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorConfirmed = palette.Confirmed
	s.colorTentative = palette.Tentative
	s.colorToday = palette.Today
	s.colorWarning = palette.Warning

	base := lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)
	muted := base.Foreground(s.colorFgMuted)

	s.AppStyle = base.Padding(0, 1)

	s.Header = view.HeaderStyles{
		App: base.Bold(true).
			Foreground(palette.TextOnAccent).
			Background(s.colorAccent).
			Padding(0, 1),
		Tab:       muted.Padding(0, 1),
		TabActive: base.Bold(true).Underline(true).Foreground(s.colorAccent).Padding(0, 1),
		Title:     base.Bold(true).Foreground(s.colorAccent),
		Meta:      muted,
		Separator: base,
	}

	// Month grid. Day labels and bars carry their own backgrounds.
	s.Month = view.MonthStyles{
		Header:      base.Bold(true).Foreground(s.colorAccent),
		Day:         base.Bold(true),
		DayOut:      muted,
		DayToday:    base.Bold(true).Foreground(palette.TextOnToday).Background(s.colorToday),
		DaySelected: base.Bold(true).Foreground(s.colorAccent).Background(s.colorBgSelection),
		Confirmed: lipgloss.NewStyle().
			Foreground(palette.TextOnConfirmed).
			Background(palette.ConfirmedBg),
		ConfirmedAlt: lipgloss.NewStyle().
			Foreground(palette.TextOnConfirmed).
			Background(palette.ConfirmedBgAlt),
		Tentative: lipgloss.NewStyle().
			Foreground(palette.TextOnTentative).
			Background(palette.TentativeBg).
			Italic(true),
		TentativeAlt: lipgloss.NewStyle().
			Foreground(palette.TextOnTentative).
			Background(palette.TentativeBgAlt).
			Italic(true),
		Muted: lipgloss.NewStyle().
			Foreground(s.colorFgMuted).
			Background(palette.ConfirmedOutBg),
		Overflow: base.Foreground(s.colorWarning),
		Cell:     base,
		Border:   base.Foreground(s.colorFgMuted),
	}

	s.Year = view.YearStyles{
		Title:        muted,
		TitleActive:  base.Bold(true).Foreground(s.colorAccent),
		Weekday:      muted,
		Day:          base,
		DayConfirmed: base.Bold(true).Foreground(s.colorConfirmed),
		DayTentative: base.Italic(true).Foreground(s.colorTentative),
		DayToday:     base.Underline(true).Foreground(s.colorToday),
		DaySelected:  base.Bold(true).Foreground(s.colorAccent).Background(s.colorBgSelection),
		Box: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(s.colorBgHighlight).
			BorderBackground(s.colorBg),
		BoxSelected: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(s.colorAccent).
			BorderBackground(s.colorBg),
	}

	s.List = view.ListStyles{
		Group:         base.Bold(true).Foreground(s.colorAccent),
		Title:         base.Bold(true),
		TitleSelected: base.Bold(true).Foreground(s.colorAccent).Background(s.colorBgSelection),
		Badge:         base.Foreground(s.colorTentative),
		Label:         muted,
		Meta:          base,
		Tag:           base.Foreground(s.colorConfirmed),
		Empty:         muted.Italic(true),
	}

	s.FilterStyle = base.Foreground(s.colorConfirmed)
	s.StatusStyle = base.Bold(true).Foreground(s.colorAccent)
	s.ErrorStyle = base.Bold(true).Foreground(s.colorWarning)
	s.HelpStyle = muted

	// Modal styles - use high-contrast theme colors
	modal := palette.Modal
	modalBg := modal.Bg
	s.ModalBackdropColor = modal.Backdrop
	s.ModalBgColor = modalBg
	modalBase := lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.Modal = view.ModalStyles{
		ModalStyle: modalBase.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(modal.Border).
			Padding(1, 2).
			Align(lipgloss.Left),
		ModalHeaderStyle: modalBase.Bold(true),
		ModalTitleStyle:  modalBase.Bold(true).Foreground(modal.Border),
		ModalFooterStyle: modalBase,
		ModalBodyStyle:   modalBase,
		ModalButtonStyle: modalBase.
			Background(modal.Panel).
			Padding(0, 2),
		ModalButtonActiveStyle: modalBase.
			Background(modal.Highlight).
			Foreground(modal.ReverseText).
			Padding(0, 2).
			Underline(true),
	}

	s.ModalSet = view.ModalStyleSet{
		BodyStyle:         modalBase,
		MetaStyle:         modalBase.Foreground(modal.Muted),
		SectionTitleStyle: modalBase.Bold(true),
		TagStyle: modalBase.
			Background(modal.Panel).
			Bold(true).
			Padding(0, 1),
		LabelStyle:    modalBase.Bold(true).Foreground(modal.Muted),
		HintStyle:     modalBase.Foreground(modal.Muted).Italic(true),
		ErrorStyle:    modalBase.Bold(true).Foreground(s.colorWarning),
		BadgeStyle:    modalBase.Foreground(s.colorTentative),
		ActiveStyle:   modalBase.Bold(true).Background(modal.Highlight),
		InactiveStyle: modalBase,
		CurrentStyle:  modalBase.Bold(true).Foreground(s.colorAccent),
		InputStyle:    modalBase,
		InputFocusedStyle: modalBase.
			Background(modal.Panel),
	}

	s.InputTextStyle = modalBase
	s.InputCursorStyle = lipgloss.NewStyle().
		Foreground(modal.ReverseText).
		Background(modal.Highlight)
	s.InputPlaceholderStyle = modalBase.Foreground(modal.Muted)

	return s
}

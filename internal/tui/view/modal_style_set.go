// Package view provides rendering helpers for the TUI.
package view

import "github.com/charmbracelet/lipgloss"

// ModalStyleSet groups modal styles to reduce call-site verbosity.
type ModalStyleSet struct {
	BodyStyle         lipgloss.Style
	MetaStyle         lipgloss.Style
	SectionTitleStyle lipgloss.Style
	TagStyle          lipgloss.Style
	LabelStyle        lipgloss.Style
	HintStyle         lipgloss.Style
	ErrorStyle        lipgloss.Style
	BadgeStyle        lipgloss.Style
	ActiveStyle       lipgloss.Style
	InactiveStyle     lipgloss.Style
	CurrentStyle      lipgloss.Style
	InputStyle        lipgloss.Style
	InputFocusedStyle lipgloss.Style
}

// DetailStyles returns the modal styles needed for event details.
func (s ModalStyleSet) DetailStyles() DetailStyles {
	return DetailStyles{
		BodyStyle:  s.BodyStyle,
		LabelStyle: s.LabelStyle,
		TagStyle:   s.TagStyle,
		BadgeStyle: s.BadgeStyle,
	}
}

// ChoiceStyles returns the modal styles needed for pickers, picklists and
// the tag filter.
func (s ModalStyleSet) ChoiceStyles() ChoiceStyles {
	return ChoiceStyles{
		BodyStyle:     s.BodyStyle,
		ActiveStyle:   s.ActiveStyle,
		InactiveStyle: s.InactiveStyle,
		CurrentStyle:  s.CurrentStyle,
		BadgeStyle:    s.BadgeStyle,
		HintStyle:     s.HintStyle,
	}
}

// ComposeStyles returns the modal styles needed for the compose form.
func (s ModalStyleSet) ComposeStyles() ComposeStyles {
	return ComposeStyles{
		BodyStyle:         s.BodyStyle,
		LabelStyle:        s.LabelStyle,
		SectionTitleStyle: s.SectionTitleStyle,
		HintStyle:         s.HintStyle,
		ErrorStyle:        s.ErrorStyle,
		ActiveStyle:       s.ActiveStyle,
		InactiveStyle:     s.InactiveStyle,
		InputStyle:        s.InputStyle,
		InputFocusedStyle: s.InputFocusedStyle,
		MetaStyle:         s.MetaStyle,
	}
}

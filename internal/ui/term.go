package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Confirmed events: bold cyan
	colorConfirmed = color.New(color.FgCyan, color.Bold)

	// Tentative events and the badge: yellow to make it pop
	colorTentative = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Success lines: green
	colorOK = color.New(color.FgGreen)

	// Failures: red
	colorFail = color.New(color.FgRed, color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output, including the lipgloss tables.
func DisableColor() {
	color.NoColor = true
	lipgloss.SetColorProfile(termenv.Ascii)
}

func formatConfirmed(s string) string {
	return colorConfirmed.Sprint(s)
}

func formatTentative(s string) string {
	return colorTentative.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatOK(s string) string {
	return colorOK.Sprint(s)
}

func formatFail(s string) string {
	return colorFail.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

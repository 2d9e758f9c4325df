package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Choice is one option of a toggle row.
type Choice struct {
	Label string
	On    bool
}

// FormRow is one row of the compose form: a text input, or a set of
// choices when Choices is non-empty.
type FormRow struct {
	Label   string
	Input   string
	Choices []Choice
	// Cursor is the highlighted choice while the row has focus.
	Cursor  int
	Focused bool
}

// ComposeFormModel contains what the compose modal shows.
type ComposeFormModel struct {
	Rows     []FormRow
	Hint     string
	Error    string
	Output   string
	FileName string
}

// ComposeStyles groups styles for the compose form.
type ComposeStyles struct {
	BodyStyle         lipgloss.Style
	LabelStyle        lipgloss.Style
	SectionTitleStyle lipgloss.Style
	HintStyle         lipgloss.Style
	ErrorStyle        lipgloss.Style
	ActiveStyle       lipgloss.Style
	InactiveStyle     lipgloss.Style
	InputStyle        lipgloss.Style
	InputFocusedStyle lipgloss.Style
	MetaStyle         lipgloss.Style
}

// RenderComposeBody renders either the form or, once generated, the JSON
// output and its file name.
func RenderComposeBody(model ComposeFormModel, styles ComposeStyles) string {
	if model.Output != "" {
		return renderComposeOutput(model, styles)
	}

	labelW := 0
	for _, row := range model.Rows {
		labelW = max(labelW, lipgloss.Width(row.Label))
	}

	var body strings.Builder
	for i, row := range model.Rows {
		if i > 0 {
			body.WriteString("\n")
		}
		marker := "  "
		if row.Focused {
			marker = "▸ "
		}
		body.WriteString(styles.LabelStyle.Render(marker+Fit(row.Label, labelW)) + styles.BodyStyle.Render(" "))
		if len(row.Choices) == 0 {
			style := styles.InputStyle
			if row.Focused {
				style = styles.InputFocusedStyle
			}
			body.WriteString(style.Render(row.Input))
			continue
		}
		body.WriteString(renderChoices(row, styles))
	}

	if model.Hint != "" {
		body.WriteString("\n\n" + styles.HintStyle.Render(model.Hint))
	}
	if model.Error != "" {
		body.WriteString("\n" + styles.ErrorStyle.Render(model.Error))
	}
	return body.String()
}

func renderChoices(row FormRow, styles ComposeStyles) string {
	parts := make([]string, 0, len(row.Choices))
	for i, c := range row.Choices {
		box := "[ ]"
		if c.On {
			box = "[x]"
		}
		style := styles.InactiveStyle
		if row.Focused && i == row.Cursor {
			style = styles.ActiveStyle
		}
		parts = append(parts, style.Render(box+" "+c.Label))
	}
	return strings.Join(parts, styles.BodyStyle.Render(" "))
}

func renderComposeOutput(model ComposeFormModel, styles ComposeStyles) string {
	var body strings.Builder
	body.WriteString(styles.SectionTitleStyle.Render(model.FileName) + "\n\n")
	for i, line := range strings.Split(strings.TrimRight(model.Output, "\n"), "\n") {
		if i > 0 {
			body.WriteString("\n")
		}
		body.WriteString(styles.MetaStyle.Render(line))
	}
	return body.String()
}

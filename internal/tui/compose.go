package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twdsco/hackertracker/internal/compose"
	"github.com/twdsco/hackertracker/internal/event"
	"github.com/twdsco/hackertracker/internal/tui/view"
)

// Text inputs of the compose form, in display order.
const (
	inputTitle = iota
	inputStartDate
	inputStartTime
	inputEndDate
	inputEndTime
	inputLocation
	inputOrganizer
	inputContact
	inputURL
	inputCount
)

type formRowKind int

const (
	rowInput formRowKind = iota
	rowOnline
	rowStatus
	rowTags
)

type formRow struct {
	kind  formRowKind
	input int
	label string
}

var composeRows = []formRow{
	{kind: rowInput, input: inputTitle, label: "標題"},
	{kind: rowInput, input: inputStartDate, label: "開始日期"},
	{kind: rowInput, input: inputStartTime, label: "開始時間"},
	{kind: rowInput, input: inputEndDate, label: "結束日期"},
	{kind: rowInput, input: inputEndTime, label: "結束時間"},
	{kind: rowInput, input: inputLocation, label: "地點"},
	{kind: rowOnline, label: "線上活動"},
	{kind: rowInput, input: inputOrganizer, label: "主辦單位"},
	{kind: rowInput, input: inputContact, label: "聯絡資訊"},
	{kind: rowInput, input: inputURL, label: "活動網址"},
	{kind: rowStatus, label: "狀態"},
	{kind: rowTags, label: "標籤"},
}

var inputPlaceholders = [inputCount]string{
	inputTitle:     "活動名稱",
	inputStartDate: "YYYY-MM-DD",
	inputStartTime: "HH:MM (選填)",
	inputEndDate:   "YYYY-MM-DD",
	inputEndTime:   "HH:MM (選填)",
	inputLocation:  "地點",
	inputOrganizer: "主辦單位",
	inputContact:   "email 或社群連結",
	inputURL:       "https://",
}

var statusOptions = []event.Status{event.StatusConfirmed, event.StatusTentative}

// composeForm is the state of the candidate-event form.
type composeForm struct {
	inputs   [inputCount]textinput.Model
	tags     []string
	tagOn    []bool
	online   bool
	status   int
	focus    int
	cursor   int
	err      string
	output   compose.Output
	onlineAt string
}

func newComposeForm(vocab event.Vocabulary, onlineLocation string, styles *Styles) composeForm {
	f := composeForm{
		tags:     vocab.Tags(),
		tagOn:    make([]bool, vocab.Len()),
		onlineAt: onlineLocation,
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = inputPlaceholders[i]
		ti.CharLimit = 256
		ti.Width = 40
		if styles != nil {
			ti.TextStyle = styles.InputTextStyle
			ti.PlaceholderStyle = styles.InputPlaceholderStyle
			ti.Cursor.Style = styles.InputCursorStyle
		}
		f.inputs[i] = ti
	}
	f.inputs[inputTitle].Focus()
	return f
}

func (f composeForm) row() formRow {
	return composeRows[f.focus]
}

func (f composeForm) hasOutput() bool {
	return f.output.JSON != ""
}

// move shifts focus by delta rows, wrapping around.
func (f composeForm) move(delta int) composeForm {
	if r := f.row(); r.kind == rowInput {
		f.inputs[r.input].Blur()
	}
	f.focus = (f.focus + delta + len(composeRows)) % len(composeRows)
	f.cursor = 0
	if r := f.row(); r.kind == rowInput {
		f.inputs[r.input].Focus()
	}
	return f
}

func (f composeForm) choiceCount() int {
	switch f.row().kind {
	case rowTags:
		return len(f.tags)
	case rowStatus:
		return len(statusOptions)
	case rowOnline:
		return 1
	}
	return 0
}

func (f composeForm) moveChoice(delta int) composeForm {
	if n := f.choiceCount(); n > 0 {
		f.cursor = (f.cursor + delta + n) % n
	}
	return f
}

// toggle flips the highlighted choice of the focused row.
func (f composeForm) toggle() composeForm {
	switch f.row().kind {
	case rowTags:
		f.tagOn[f.cursor] = !f.tagOn[f.cursor]
	case rowStatus:
		f.status = f.cursor
	case rowOnline:
		f.online = !f.online
		loc := &f.inputs[inputLocation]
		if f.online {
			loc.SetValue(f.onlineAt)
		} else if loc.Value() == f.onlineAt {
			loc.SetValue("")
		}
	}
	return f
}

// update forwards a key to the focused text input.
func (f composeForm) update(msg tea.Msg) (composeForm, tea.Cmd) {
	r := f.row()
	if r.kind != rowInput {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[r.input], cmd = f.inputs[r.input].Update(msg)
	return f, cmd
}

func (f composeForm) draft() compose.Draft {
	var tags []string
	for i, on := range f.tagOn {
		if on {
			tags = append(tags, f.tags[i])
		}
	}
	return compose.Draft{
		Title:     f.inputs[inputTitle].Value(),
		StartDate: f.inputs[inputStartDate].Value(),
		StartTime: f.inputs[inputStartTime].Value(),
		EndDate:   f.inputs[inputEndDate].Value(),
		EndTime:   f.inputs[inputEndTime].Value(),
		Location:  f.inputs[inputLocation].Value(),
		Organizer: f.inputs[inputOrganizer].Value(),
		Contact:   f.inputs[inputContact].Value(),
		URL:       f.inputs[inputURL].Value(),
		Status:    string(statusOptions[f.status]),
		Tags:      tags,
		Online:    f.online,
	}
}

// submit validates the draft. On failure the previous output is dropped
// and the error message is kept for display.
func (f composeForm) submit(c *compose.Composer) composeForm {
	out, err := c.Build(f.draft())
	if err != nil {
		f.output = compose.Output{}
		f.err = compose.Message(err)
		return f
	}
	f.output = out
	f.err = ""
	return f
}

// edit leaves the output view and returns to the form.
func (f composeForm) edit() composeForm {
	f.output = compose.Output{}
	return f
}

func (f composeForm) model() view.ComposeFormModel {
	m := view.ComposeFormModel{
		Hint:     compose.Hint,
		Error:    f.err,
		Output:   f.output.JSON,
		FileName: f.output.FileName,
	}
	for i, r := range composeRows {
		row := view.FormRow{Label: r.label, Focused: i == f.focus}
		if row.Focused {
			row.Cursor = f.cursor
		}
		switch r.kind {
		case rowInput:
			row.Input = f.inputs[r.input].View()
		case rowOnline:
			row.Choices = []view.Choice{{Label: f.onlineAt, On: f.online}}
		case rowStatus:
			for j, s := range statusOptions {
				row.Choices = append(row.Choices, view.Choice{Label: string(s), On: j == f.status})
			}
		case rowTags:
			for j, tag := range f.tags {
				row.Choices = append(row.Choices, view.Choice{Label: tag, On: f.tagOn[j]})
			}
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}

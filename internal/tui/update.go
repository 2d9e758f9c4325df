package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twdsco/hackertracker/internal/calendar"
	"github.com/twdsco/hackertracker/internal/tui/commands"
)

// statusDuration is how long a status message stays in the footer.
const statusDuration = 3 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case commands.EventsLoadedMsg:
		return m.handleEventsLoaded(msg)

	case commands.CopiedMsg:
		cmd := m.setStatus("已複製"+msg.What, false)
		return m, cmd

	case commands.ErrMsg:
		LogError("command", msg.Err)
		if errors.Is(msg.Err, commands.ErrNothingToCopy) {
			cmd := m.setStatus("沒有可複製的內容", true)
			return m, cmd
		}
		cmd := m.setStatus(fmt.Sprintf("錯誤：%v", msg.Err), true)
		return m, cmd

	case commands.StatusMsgCmd:
		cmd := m.setStatus(msg.Msg, false)
		return m, cmd

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	// Cursor blink and other input messages go to the compose form
	if m.mode == ModeModal && m.modalType == ModalCompose {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

// handleEventsLoaded swaps in loaded events. The first load moves the
// cursors to the earliest event; a failed reload keeps what is shown.
func (m Model) handleEventsLoaded(msg commands.EventsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	LogLoad(msg.Events.Len(), msg.Initial, msg.Err)

	if msg.Err != nil && !msg.Initial {
		cmd := m.setStatus(fmt.Sprintf("重新載入失敗，保留目前資料：%v", msg.Err), true)
		return m, cmd
	}

	m.dispatch("ReplaceEvents", calendar.ReplaceEvents(msg.Events))
	if msg.Initial {
		if first, ok := msg.Events.Earliest(); ok {
			if day, ok := first.StartDay(); ok {
				m.dispatch("SetMonth", calendar.SetMonth(day.Year(), day.Month()))
				m.dispatch("SetYear", calendar.SetYear(day.Year()))
				m.monthDay = day
				m.yearDay = day
			}
		}
	}
	m.syncList()

	if msg.Err != nil {
		cmd := m.setStatus(fmt.Sprintf("無法載入活動資料：%v", msg.Err), true)
		return m, cmd
	}
	cmd := m.setStatus(fmt.Sprintf("已載入 %d 筆活動", msg.Events.Len()), false)
	return m, cmd
}

// setStatus shows msg in the footer until statusDuration passed.
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusTime = time.Now().Add(statusDuration)
	return commands.ClearStatusAfter(statusDuration)
}

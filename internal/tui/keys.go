package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twdsco/hackertracker/internal/calendar"
	"github.com/twdsco/hackertracker/internal/dateutil"
	"github.com/twdsco/hackertracker/internal/tui/commands"
)

// keyMap holds the bindings of normal mode. Modal keys are matched
// directly in the modal handlers.
type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	ShowList  key.Binding
	ShowMonth key.Binding
	ShowYear  key.Binding
	NextView  key.Binding
	PrevView  key.Binding
	Filter    key.Binding
	Share     key.Binding
	Compose   key.Binding
	Reload    key.Binding

	// List
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Open     key.Binding

	// Month and year grids
	Prev        key.Binding
	Next        key.Binding
	DayLeft     key.Binding
	DayRight    key.Binding
	WeekUp      key.Binding
	WeekDown    key.Binding
	Today       key.Binding
	MonthPicker key.Binding
	YearPicker  key.Binding
	OpenMonth   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "離開")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "說明")),
		ShowList:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "列表")),
		ShowMonth: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "月曆")),
		ShowYear:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "年曆")),
		NextView:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "下一個檢視")),
		PrevView:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "上一個檢視")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "標籤篩選")),
		Share:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "複製分享連結")),
		Compose:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "新增活動")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "重新載入")),

		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "上一個")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "下一個")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "上一頁")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdown", "下一頁")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "第一個")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "最後一個")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "開啟")),

		Prev:        key.NewBinding(key.WithKeys("h", "["), key.WithHelp("h/[", "上一頁")),
		Next:        key.NewBinding(key.WithKeys("l", "]"), key.WithHelp("l/]", "下一頁")),
		DayLeft:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "前一天")),
		DayRight:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "後一天")),
		WeekUp:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "前一週")),
		WeekDown:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "後一週")),
		Today:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "今天")),
		MonthPicker: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "選擇月份")),
		YearPicker:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "選擇年份")),
		OpenMonth:   key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "開啟月曆")),
	}
}

// shortHelp returns the footer bindings of v.
func (k keyMap) shortHelp(v calendar.View) []key.Binding {
	switch v {
	case calendar.ViewMonth:
		return []key.Binding{k.Prev, k.Next, k.Open, k.MonthPicker, k.Filter, k.Help, k.Quit}
	case calendar.ViewYear:
		return []key.Binding{k.Prev, k.Next, k.Open, k.OpenMonth, k.YearPicker, k.Filter, k.Help, k.Quit}
	default:
		return []key.Binding{k.Up, k.Down, k.Open, k.Filter, k.Compose, k.Help, k.Quit}
	}
}

// fullHelp returns every binding, grouped for the help modal.
func (k keyMap) fullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ShowList, k.ShowMonth, k.ShowYear, k.NextView, k.Filter, k.Share, k.Compose, k.Reload, k.Help, k.Quit},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom, k.Open},
		{k.Prev, k.Next, k.DayLeft, k.DayRight, k.WeekUp, k.WeekDown, k.Today, k.MonthPicker, k.YearPicker, k.OpenMonth},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg, m.mode, m.modalType)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == ModeModal {
		return m.handleModalKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys shared by every view, then the current
// view's own keys.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.openModal(ModalHelp, "快捷鍵")
		return m, nil
	case key.Matches(msg, m.keys.ShowList):
		m.showView(calendar.ViewList)
		return m, nil
	case key.Matches(msg, m.keys.ShowMonth):
		m.showView(calendar.ViewMonth)
		return m, nil
	case key.Matches(msg, m.keys.ShowYear):
		m.showView(calendar.ViewYear)
		return m, nil
	case key.Matches(msg, m.keys.NextView):
		m.showView((m.state.View() + 1) % 3)
		return m, nil
	case key.Matches(msg, m.keys.PrevView):
		m.showView((m.state.View() + 2) % 3)
		return m, nil
	case key.Matches(msg, m.keys.Filter):
		m.filterIndex = 0
		m.openModal(ModalFilter, "標籤篩選")
		return m, nil
	case key.Matches(msg, m.keys.Share):
		cmd := m.copyShareQuery()
		return m, cmd
	case key.Matches(msg, m.keys.Compose):
		m.form = newComposeForm(m.state.Filter().Vocabulary(), m.composer.OnlineLocation(), m.styles)
		m.openModal(ModalCompose, "新增活動")
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Reload):
		if m.load == nil || m.loading {
			return m, nil
		}
		m.loading = true
		return m, commands.LoadEvents(m.load, m.timeout, false)
	}

	switch m.state.View() {
	case calendar.ViewMonth:
		return m.handleMonthKeys(msg)
	case calendar.ViewYear:
		return m.handleYearKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.listCards()
	page := max(1, m.list.Height/listCardLines)

	switch {
	case key.Matches(msg, m.keys.Up):
		m.listIndex--
	case key.Matches(msg, m.keys.Down):
		m.listIndex++
	case key.Matches(msg, m.keys.PageUp):
		m.listIndex -= page
	case key.Matches(msg, m.keys.PageDown):
		m.listIndex += page
	case key.Matches(msg, m.keys.Top):
		m.listIndex = 0
	case key.Matches(msg, m.keys.Bottom):
		m.listIndex = len(cards) - 1
	case key.Matches(msg, m.keys.Open):
		if m.listIndex >= 0 && m.listIndex < len(cards) {
			m.openDetail(cards[m.listIndex].ID, false)
		}
		return m, nil
	default:
		return m, nil
	}
	m.clampListIndex()
	m.syncList()
	return m, nil
}

func (m Model) handleMonthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Prev):
		m.shiftMonth(-1)
	case key.Matches(msg, m.keys.Next):
		m.shiftMonth(1)
	case key.Matches(msg, m.keys.DayLeft):
		m.moveMonthDay(-1)
	case key.Matches(msg, m.keys.DayRight):
		m.moveMonthDay(1)
	case key.Matches(msg, m.keys.WeekUp):
		m.moveMonthDay(-7)
	case key.Matches(msg, m.keys.WeekDown):
		m.moveMonthDay(7)
	case key.Matches(msg, m.keys.Today):
		today := m.today()
		m.dispatch("SetMonth", calendar.SetMonth(today.Year(), today.Month()))
		m.monthDay = today
		LogSelection(calendar.ViewMonth, m.monthDay, "today")
	case key.Matches(msg, m.keys.MonthPicker):
		cursor := m.state.MonthCursor()
		m.monthPicker = calendar.NewMonthPicker(cursor)
		m.pickerIndex = int(cursor.Month) - 1
		m.openModal(ModalMonthPicker, m.monthPicker.Title())
	case key.Matches(msg, m.keys.Open):
		cmd := m.openSelection(m.state.SelectDay(m.monthDay))
		return m, cmd
	}
	return m, nil
}

func (m Model) handleYearKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Prev):
		m.shiftYear(-1)
	case key.Matches(msg, m.keys.Next):
		m.shiftYear(1)
	case key.Matches(msg, m.keys.DayLeft):
		m.moveYearDay(-1)
	case key.Matches(msg, m.keys.DayRight):
		m.moveYearDay(1)
	case key.Matches(msg, m.keys.WeekUp):
		m.moveYearDay(-7)
	case key.Matches(msg, m.keys.WeekDown):
		m.moveYearDay(7)
	case key.Matches(msg, m.keys.Today):
		today := m.today()
		m.dispatch("SetYear", calendar.SetYear(today.Year()))
		m.yearDay = today
		LogSelection(calendar.ViewYear, m.yearDay, "today")
	case key.Matches(msg, m.keys.YearPicker):
		year := m.state.YearCursor()
		m.yearPicker = calendar.NewYearPicker(year)
		m.pickerIndex = year - m.yearPicker.Start
		m.openModal(ModalYearPicker, m.yearPicker.Title())
	case key.Matches(msg, m.keys.OpenMonth):
		m.dispatch("OpenMonth", calendar.OpenMonth(m.yearDay.Year(), m.yearDay.Month()))
		m.monthDay = m.yearDay
		LogSelection(calendar.ViewMonth, m.monthDay, "open_month")
	case key.Matches(msg, m.keys.Open):
		cmd := m.openSelection(m.state.SelectDay(m.yearDay))
		return m, cmd
	}
	return m, nil
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalDetail:
		return m.handleDetailKeys(msg)
	case ModalPicklist:
		return m.handlePicklistKeys(msg)
	case ModalFilter:
		return m.handleFilterKeys(msg)
	case ModalMonthPicker, ModalYearPicker:
		return m.handlePickerKeys(msg)
	case ModalCompose:
		return m.handleComposeKeys(msg)
	default:
		switch msg.String() {
		case "esc", "q", "?", "enter":
			m.closeModal()
		}
		return m, nil
	}
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		if m.detailBack {
			m.detailBack = false
			m.modalType = ModalPicklist
			LogModalOpen(ModalPicklist, m.picklist.Title)
			return m, nil
		}
		m.closeModal()
	case "u":
		card, ok := m.state.Detail(m.detailID)
		if !ok || card.URL == "" {
			cmd := m.setStatus("這個活動沒有網址", false)
			return m, cmd
		}
		return m, commands.Copy(card.URL, "活動網址")
	}
	return m, nil
}

func (m Model) handlePicklistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.picklist.Items
	switch msg.String() {
	case "esc", "q":
		m.closeModal()
	case "up", "k":
		m.pickIndex = max(0, m.pickIndex-1)
	case "down", "j":
		m.pickIndex = min(len(items)-1, m.pickIndex+1)
	case "enter":
		if m.pickIndex >= 0 && m.pickIndex < len(items) {
			m.openDetail(items[m.pickIndex].ID, true)
		}
	}
	return m, nil
}

func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tags := m.state.Filter().Vocabulary().Tags()
	switch msg.String() {
	case "esc", "f", "q":
		m.closeModal()
	case "up", "k":
		m.filterIndex = max(0, m.filterIndex-1)
	case "down", "j":
		m.filterIndex = min(len(tags)-1, m.filterIndex+1)
	case " ", "enter", "x":
		if m.filterIndex >= 0 && m.filterIndex < len(tags) {
			m.dispatch("ToggleTag", calendar.ToggleTag(tags[m.filterIndex]))
			m.syncList()
		}
	case "c":
		m.dispatch("ClearTags", calendar.ClearTags())
		m.syncList()
	case "s":
		cmd := m.copyShareQuery()
		return m, cmd
	}
	return m, nil
}

func (m Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	const n = 12
	switch msg.String() {
	case "esc", "q":
		m.closeModal()
		return m, nil
	case "left", "h":
		m.pickerIndex--
	case "right", "l":
		m.pickerIndex++
	case "up", "k":
		m.pickerIndex -= pickerCols
	case "down", "j":
		m.pickerIndex += pickerCols
	case "[", "pgup":
		m.shiftPicker(-1)
	case "]", "pgdown":
		m.shiftPicker(1)
	case "enter":
		m.choosePicker()
		return m, nil
	}
	m.pickerIndex = max(0, min(n-1, m.pickerIndex))
	return m, nil
}

func (m *Model) shiftPicker(delta int) {
	if m.modalType == ModalMonthPicker {
		m.monthPicker = m.monthPicker.Shift(delta)
		return
	}
	m.yearPicker = m.yearPicker.Shift(delta)
}

// choosePicker moves the cursor of the month or year view to the
// highlighted option.
func (m *Model) choosePicker() {
	if m.modalType == ModalMonthPicker {
		cursor := m.monthPicker.Select(time.Month(m.pickerIndex + 1))
		m.dispatch("SetMonth", calendar.SetMonth(cursor.Year, cursor.Month))
		m.monthDay = clampDay(cursor.Year, cursor.Month, m.monthDay.Day())
		LogSelection(calendar.ViewMonth, m.monthDay, "picker")
	} else {
		year := m.yearPicker.Start + m.pickerIndex
		m.dispatch("SetYear", calendar.SetYear(year))
		m.yearDay = clampDay(year, m.yearDay.Month(), m.yearDay.Day())
		LogSelection(calendar.ViewYear, m.yearDay, "picker")
	}
	m.closeModal()
}

func (m Model) handleComposeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.hasOutput() {
		switch msg.String() {
		case "esc", "q":
			m.closeModal()
		case "c":
			return m, commands.Copy(m.form.output.JSON, " JSON")
		case "e":
			m.form = m.form.edit()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "tab", "down":
		m.form = m.form.move(1)
		return m, textinput.Blink
	case "shift+tab", "up":
		m.form = m.form.move(-1)
		return m, textinput.Blink
	case "enter":
		m.form = m.form.submit(m.composer)
		if m.form.err != "" {
			LogError("compose", errors.New(m.form.err))
		}
		return m, nil
	}

	if m.form.row().kind != rowInput {
		switch msg.String() {
		case "left", "h":
			m.form = m.form.moveChoice(-1)
		case "right", "l":
			m.form = m.form.moveChoice(1)
		case " ", "x":
			m.form = m.form.toggle()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m *Model) showView(v calendar.View) {
	m.dispatch("Show", calendar.Show(v))
	if v == calendar.ViewList {
		m.syncList()
	}
}

func (m *Model) shiftMonth(delta int) {
	m.dispatch("ShiftMonth", calendar.ShiftMonth(delta))
	cursor := m.state.MonthCursor()
	m.monthDay = clampDay(cursor.Year, cursor.Month, m.monthDay.Day())
	LogSelection(calendar.ViewMonth, m.monthDay, "shift")
}

// moveMonthDay moves the selected day; leaving the shown month moves the
// month cursor along.
func (m *Model) moveMonthDay(days int) {
	m.monthDay = m.monthDay.AddDate(0, 0, days)
	cursor := m.state.MonthCursor()
	if m.monthDay.Year() != cursor.Year || m.monthDay.Month() != cursor.Month {
		m.dispatch("SetMonth", calendar.SetMonth(m.monthDay.Year(), m.monthDay.Month()))
	}
	LogSelection(calendar.ViewMonth, m.monthDay, "move")
}

func (m *Model) shiftYear(delta int) {
	m.dispatch("ShiftYear", calendar.ShiftYear(delta))
	m.yearDay = clampDay(m.state.YearCursor(), m.yearDay.Month(), m.yearDay.Day())
	LogSelection(calendar.ViewYear, m.yearDay, "shift")
}

func (m *Model) moveYearDay(days int) {
	m.yearDay = m.yearDay.AddDate(0, 0, days)
	if m.yearDay.Year() != m.state.YearCursor() {
		m.dispatch("SetYear", calendar.SetYear(m.yearDay.Year()))
	}
	LogSelection(calendar.ViewYear, m.yearDay, "move")
}

// clampDay returns day d of the month, or its last day when d is past it.
func clampDay(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, min(d, dateutil.DaysIn(year, month)), 0, 0, 0, 0, time.UTC)
}

// openSelection opens what choosing a day yields: nothing, the detail of
// its only event, or the picklist of several.
func (m *Model) openSelection(sel calendar.DaySelection) tea.Cmd {
	switch sel.Kind {
	case calendar.SelectDetail:
		m.openDetail(sel.EventID, false)
	case calendar.SelectPicklist:
		m.picklist = sel
		m.pickIndex = 0
		m.openModal(ModalPicklist, sel.Title)
	default:
		return m.setStatus("這天沒有活動", false)
	}
	return nil
}

// openDetail shows the detail of id. Unknown ids are ignored.
func (m *Model) openDetail(id int, fromPicklist bool) {
	card, ok := m.state.Detail(id)
	if !ok {
		return
	}
	m.detailID = id
	m.detailBack = fromPicklist
	m.openModal(ModalDetail, card.Title)
}

func (m *Model) openModal(t ModalType, title string) {
	if m.mode != ModeModal {
		LogModeChange(m.mode, ModeModal, t.String())
	}
	m.mode = ModeModal
	m.modalType = t
	LogModalOpen(t, title)
}

func (m *Model) closeModal() {
	LogModeChange(m.mode, ModeNormal, "close_"+m.modalType.String())
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.detailBack = false
}

func (m *Model) copyShareQuery() tea.Cmd {
	query := m.views.query
	if query == "" {
		return m.setStatus("目前顯示全部活動，沒有篩選條件可分享", false)
	}
	return commands.Copy("?"+query, "分享連結")
}

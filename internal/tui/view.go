package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twdsco/hackertracker/internal/calendar"
	"github.com/twdsco/hackertracker/internal/tui/view"
)

const (
	appName      = "hackertracker"
	headerHeight = 2
	// listCardLines is a typical card height, used to page the list.
	listCardLines = 5
	// minMonthSlots is the fewest bar lines a month week shows.
	minMonthSlots = 2
)

var tabNames = []string{"列表", "月曆", "年曆"}

// View renders the TUI using a boxed, parent-controlled layout.
func (m Model) View() string {
	state := m.viewState()
	return view.Render(state)
}

func (m Model) viewState() view.ViewState {
	base := m.renderAppContent()
	showModal := m.mode == ModeModal && m.modalType != ModalNone
	modal := ""
	if showModal {
		modal = m.renderModal()
		m.overlay.active = true
		m.overlay.SetBackground(m.styles.ModalBackdropColor)
	} else {
		m.overlay.active = false
	}

	return view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      base,
		ModalContent:     modal,
		ShowModal:        showModal,
		Overlay:          m.overlay,
		EmptyPlaceholder: "載入中...",
	}
}

// bodySize returns the area between header and footer.
func (m Model) bodySize() (int, int) {
	frameW, frameH := m.styles.AppStyle.GetFrameSize()
	return m.width - frameW, m.height - frameH - headerHeight - view.FooterHeight
}

func (m Model) renderAppContent() string {
	innerW, bodyH := m.bodySize()
	if innerW <= 0 || bodyH <= 0 {
		return "終端機視窗太小"
	}

	screen := view.RenderScreen(view.ScreenState{
		InnerW:  innerW,
		HeaderH: headerHeight,
		BodyH:   bodyH,
		FooterH: view.FooterHeight,
		Header:  m.renderHeader(innerW),
		Body:    m.renderBody(innerW, bodyH),
		Footer:  m.renderFooter(innerW),
		Bg:      m.styles.colorBg,
	})
	app := m.styles.AppStyle.Render(screen)
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

func (m Model) renderHeader(width int) string {
	title := "活動列表"
	switch m.state.View() {
	case calendar.ViewMonth:
		title = m.views.month.Title
	case calendar.ViewYear:
		title = m.views.year.Title
	}

	meta := fmt.Sprintf("%d / %d 筆活動", m.views.list.Total, m.state.Events().Len())
	if m.loading {
		meta = "載入中..."
	}

	return view.RenderHeader(view.HeaderModel{
		AppName: appName,
		Tabs:    tabNames,
		Active:  int(m.state.View()),
		Title:   title,
		Meta:    meta,
		Width:   width,
	}, m.styles.Header)
}

func (m Model) renderBody(width, height int) string {
	switch m.state.View() {
	case calendar.ViewMonth:
		return m.renderMonth(width, height)
	case calendar.ViewYear:
		return m.renderYear(width, height)
	default:
		return m.list.View()
	}
}

func (m Model) renderMonth(width, height int) string {
	grid := view.BuildMonthGrid(view.MonthGridInput{
		View:     m.views.month,
		MaxSlots: monthSlots(height, len(m.views.month.Weeks)),
		ColW:     view.ColumnWidth(width, 7, 4),
		Today:    m.today(),
		Selected: m.monthDay,
	})
	return view.RenderMonth(grid, m.styles.Month)
}

// monthSlots returns how many bar lines per week fit in height. A week
// row also holds its day label and the "+k" line, and the table adds
// its borders and header.
func monthSlots(height, weeks int) int {
	if weeks <= 0 {
		return minMonthSlots
	}
	perWeek := (height - 4 - (weeks - 1)) / weeks
	return max(minMonthSlots, perWeek-2)
}

func (m Model) renderYear(width, height int) string {
	cols := view.YearColumns(width, m.styles.Year)
	content := view.RenderYear(view.YearInput{
		View:     m.views.year,
		Today:    m.today(),
		Selected: m.yearDay,
		Cols:     cols,
	}, m.styles.Year)

	// Scroll so the row holding the selected month stays visible
	lines := strings.Split(content, "\n")
	rows := (12 + cols - 1) / cols
	rowH := len(lines) / rows
	selectedRow := 0
	if m.yearDay.Year() == m.views.year.Year {
		selectedRow = (int(m.yearDay.Month()) - 1) / cols
	}
	offset := max(0, (selectedRow+1)*rowH-height)
	return strings.Join(lines[min(offset, len(lines)):], "\n")
}

func (m Model) renderFooter(width int) string {
	filter := "篩選：全部活動"
	if active := m.state.Filter().Active(); len(active) > 0 {
		filter = "篩選：" + strings.Join(active, "、") + "  ?" + m.views.query
	}

	status, statusStyle := m.statusMsg, m.styles.StatusStyle
	if m.statusErr {
		statusStyle = m.styles.ErrorStyle
	}
	if m.loading && status == "" {
		status = "載入中..."
	}

	return view.RenderFooter(view.FooterModel{
		InnerW:      width,
		FilterText:  filter,
		StatusText:  status,
		HelpText:    m.help.ShortHelpView(m.keys.shortHelp(m.state.View())),
		FilterStyle: m.styles.FilterStyle,
		StatusStyle: statusStyle,
		HelpStyle:   m.styles.HelpStyle,
	})
}

// listCards returns the cards of the list view in display order.
func (m Model) listCards() []calendar.EventCard {
	var cards []calendar.EventCard
	for _, g := range m.views.list.Groups {
		cards = append(cards, g.Cards...)
	}
	return cards
}

func (m *Model) clampListIndex() {
	n := m.views.list.Total
	m.listIndex = max(0, min(m.listIndex, n-1))
}

// syncList re-renders the list into the viewport and scrolls the
// selected card into view.
func (m *Model) syncList() {
	if m.list.Width <= 0 || m.list.Height <= 0 {
		return
	}
	content := view.RenderList(m.views.list, m.listIndex, m.list.Width, m.styles.List)
	m.list.SetContent(strings.Join(content.Lines, "\n"))
	if m.listIndex >= len(content.CardLines) {
		m.list.GotoTop()
		return
	}

	start := content.CardLines[m.listIndex]
	end := len(content.Lines) - 1
	if m.listIndex+1 < len(content.CardLines) {
		end = content.CardLines[m.listIndex+1] - 1
	}
	if end >= m.list.YOffset+m.list.Height {
		m.list.SetYOffset(end - m.list.Height + 1)
	}
	if start < m.list.YOffset {
		m.list.SetYOffset(start)
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	innerW, bodyH := m.bodySize()
	m.list.Width = max(0, innerW)
	m.list.Height = max(0, bodyH)
	m.list.Style = lipgloss.NewStyle().Background(m.styles.colorBg)
	m.help.Width = max(0, innerW)
	m.syncList()
}

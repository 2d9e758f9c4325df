package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twdsco/hackertracker/internal/calendar"
	"github.com/twdsco/hackertracker/internal/compose"
	"github.com/twdsco/hackertracker/internal/config"
	"github.com/twdsco/hackertracker/internal/dateutil"
	"github.com/twdsco/hackertracker/internal/event"
	"github.com/twdsco/hackertracker/internal/tagfilter"
	"github.com/twdsco/hackertracker/internal/tui/commands"
	"github.com/twdsco/hackertracker/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeModal
)

func (m Mode) String() string {
	if m == ModeModal {
		return "modal"
	}
	return "normal"
}

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalDetail
	ModalPicklist // Several events on one day
	ModalFilter
	ModalMonthPicker
	ModalYearPicker
	ModalCompose
	ModalHelp
)

var modalNames = [...]string{"none", "detail", "picklist", "filter", "month_picker", "year_picker", "compose", "help"}

// String returns the modal name used in debug logs.
func (t ModalType) String() string {
	if int(t) < len(modalNames) {
		return modalNames[t]
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// pickerCols is the number of columns of the month and year pickers.
const pickerCols = 4

// Model is the main TUI model.
type Model struct {
	// Dependencies
	config   *config.Config
	load     commands.LoadFunc
	timeout  time.Duration
	composer *compose.Composer
	now      func() time.Time

	// Theme and styles
	theme  *theme.Theme
	styles *Styles
	keys   keyMap
	help   help.Model

	// Calendar state; views is rebuilt by an observer on every dispatch
	state *calendar.State
	views *viewCache

	mode    Mode
	loading bool

	// Selection per view
	listIndex int
	list      viewport.Model
	monthDay  time.Time
	yearDay   time.Time

	// Modal state
	modalType   ModalType
	detailID    int
	detailBack  bool // Esc returns to the picklist
	picklist    calendar.DaySelection
	pickIndex   int
	filterIndex int
	monthPicker calendar.MonthPicker
	yearPicker  calendar.YearPicker
	pickerIndex int
	form        composeForm

	// Overlay state
	overlay OverlayModel

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time

	// Startup settings, consumed by New
	initialTags []string
	initialView calendar.View
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock sets the clock used for "today".
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// WithTags sets the initially active filter tags.
func WithTags(tags []string) ModelOption {
	return func(m *Model) { m.initialTags = tags }
}

// WithInitialView sets the tab shown at startup.
func WithInitialView(v calendar.View) ModelOption {
	return func(m *Model) { m.initialView = v }
}

// New creates a new TUI model that reads events through load.
func New(cfg *config.Config, load commands.LoadFunc, opts ...ModelOption) (*Model, error) {
	weekStart, err := cfg.WeekStart()
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	vocab := cfg.Vocabulary()
	composer, err := compose.New(vocab, cfg.Calendar.TimezoneOffset,
		compose.WithAudience(cfg.Tags.Audience),
		compose.WithOnlineLocation(cfg.Tags.OnlineLocation),
	)
	if err != nil {
		return nil, err
	}

	// Unknown theme names already fall back to the default
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		return nil, err
	}
	styles := NewStyles(t)

	m := &Model{
		config:   cfg,
		load:     load,
		timeout:  timeout,
		composer: composer,
		now:      time.Now,
		theme:    t,
		styles:   styles,
		keys:     newKeyMap(),
		help:     help.New(),
		mode:     ModeNormal,
		loading:  true,
		list:     viewport.New(0, 0),
		overlay:  NewOverlayModel(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.help.Styles.ShortKey = styles.HelpStyle.Bold(true)
	m.help.Styles.ShortDesc = styles.HelpStyle
	m.help.Styles.ShortSeparator = styles.HelpStyle

	m.state = calendar.NewState(event.Empty(), tagfilter.New(vocab, nil),
		calendar.WithClock(m.now),
		calendar.WithWeekStart(weekStart),
		calendar.WithView(m.initialView),
	)
	m.views = newViewCache(m.state)
	m.state.Subscribe(m.views.rebuild)
	if len(m.initialTags) > 0 {
		m.dispatch("SetTags", calendar.SetTags(m.initialTags))
	}
	m.resetSelection()

	return m, nil
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	if m.load == nil {
		return nil
	}
	return commands.LoadEvents(m.load, m.timeout, true)
}

func (m Model) today() time.Time {
	return dateutil.Day(m.now())
}

// resetSelection puts the day selections on today when it is inside the
// shown month or year, else on the first day.
func (m *Model) resetSelection() {
	today := m.today()
	cursor := m.state.MonthCursor()
	m.monthDay = dateutil.FirstOfMonth(cursor.Year, cursor.Month)
	if today.Year() == cursor.Year && today.Month() == cursor.Month {
		m.monthDay = today
	}
	year := m.state.YearCursor()
	m.yearDay = dateutil.FirstOfMonth(year, time.January)
	if today.Year() == year {
		m.yearDay = today
	}
}

// dispatch applies an action to the calendar state.
func (m *Model) dispatch(name string, a calendar.Action) calendar.Change {
	change := m.state.Dispatch(a)
	LogDispatch(name, change, m.state)
	if change.Has(calendar.ChangeList) {
		m.clampListIndex()
	}
	return change
}

// Run starts the TUI.
func Run(cfg *config.Config, load commands.LoadFunc, opts ...ModelOption) error {
	return RunWithDebug(cfg, load, false, opts...)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(cfg *config.Config, load commands.LoadFunc, debug bool, opts ...ModelOption) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model, err := New(cfg, load, opts...)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

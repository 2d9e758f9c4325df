package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/twdsco/hackertracker/internal/calendar"
)

// DebugLogger traces keystrokes, dispatched actions and loads as JSON lines.
type DebugLogger struct {
	z    *zap.Logger
	file *os.File
	seq  atomic.Int64
}

// Global debug logger instance; nil when --debug is off.
var debugLog *DebugLogger

// DebugLogName is the file name of the key-press log in the temp dir.
const DebugLogName = "hackertracker-debug.log"

// DebugLogPath returns where InitDebugLogger writes.
func DebugLogPath() string {
	return filepath.Join(os.TempDir(), DebugLogName)
}

// InitDebugLogger truncates the trace file and starts logging to it. With
// enabled false every Log* call is a no-op.
func InitDebugLogger(enabled bool) error {
	debugLog = nil
	if !enabled {
		return nil
	}

	logPath := DebugLogPath()
	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = newDebugLogger(f)
	debugLog.log("DEBUG_START", zap.String("log_file", logPath))
	return nil
}

func newDebugLogger(f *os.File) *DebugLogger {
	enc := zapcore.EncoderConfig{
		TimeKey:    "ts",
		MessageKey: "event",
		EncodeTime: zapcore.TimeEncoderOfLayout("15:04:05.000"),
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(f), zapcore.DebugLevel)
	return &DebugLogger{z: zap.New(core), file: f}
}

// CloseDebugLogger flushes and closes the trace file.
func CloseDebugLogger() {
	if debugLog == nil {
		return
	}
	debugLog.log("DEBUG_END", zap.Time("at", time.Now()))
	_ = debugLog.z.Sync()
	_ = debugLog.file.Close()
	debugLog = nil
}

func (d *DebugLogger) log(event string, fields ...zap.Field) {
	if d == nil {
		return
	}
	d.z.Debug(event, append([]zap.Field{zap.Int64("seq", d.seq.Add(1))}, fields...)...)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg, mode Mode, modal ModalType) {
	debugLog.log("KEY_PRESS",
		zap.String("key", msg.String()),
		zap.Stringer("mode", mode),
		zap.Stringer("modal", modal),
	)
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	debugLog.log("MODE_CHANGE",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.String("reason", reason),
	)
}

// LogModalOpen logs a modal being opened.
func LogModalOpen(modal ModalType, title string) {
	debugLog.log("MODAL_OPEN",
		zap.Stringer("modal", modal),
		zap.String("title", truncateStr(title, 30)),
	)
}

// LogDispatch logs an action dispatched to the calendar state and the
// views it invalidated.
func LogDispatch(action string, change calendar.Change, s *calendar.State) {
	if debugLog == nil {
		return
	}
	cursor := s.MonthCursor()
	debugLog.log("DISPATCH",
		zap.String("action", action),
		zap.String("change", fmt.Sprintf("%05b", uint8(change))),
		zap.Stringer("view", s.View()),
		zap.String("month", fmt.Sprintf("%d-%02d", cursor.Year, cursor.Month)),
		zap.Int("year", s.YearCursor()),
		zap.String("query", s.Query()),
	)
}

// LogSelection logs the selected day of the month or year grid.
func LogSelection(view calendar.View, day time.Time, reason string) {
	debugLog.log("SELECTION",
		zap.Stringer("view", view),
		zap.String("day", day.Format("2006-01-02")),
		zap.String("reason", reason),
	)
}

// LogLoad logs the outcome of an events load.
func LogLoad(count int, initial bool, err error) {
	fields := []zap.Field{zap.Int("count", count), zap.Bool("initial", initial)}
	if err != nil {
		fields = append(fields, zap.String("error", err.Error()))
	}
	debugLog.log("LOAD", fields...)
}

// LogError logs an error.
func LogError(context string, err error) {
	debugLog.log("ERROR", zap.String("context", context), zap.String("error", err.Error()))
}

// truncateStr truncates a string to max runes.
func truncateStr(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

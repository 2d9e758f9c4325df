// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twdsco/hackertracker/internal/event"
)

// LoadFunc loads the event collection from wherever the program reads it.
type LoadFunc func(ctx context.Context) (*event.Collection, error)

// ErrNothingToCopy is returned by Copy for empty text.
var ErrNothingToCopy = errors.New("nothing to copy")

// EventsLoadedMsg is sent when a load finished. Events is never nil; on
// failure it is empty and Err is set.
type EventsLoadedMsg struct {
	Events  *event.Collection
	Err     error
	Initial bool
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// CopiedMsg is sent after text was written to the clipboard.
type CopiedMsg struct {
	What string
}

// LoadEvents runs load with timeout. A failed load still yields a message
// with an empty collection so the views can render.
func LoadEvents(load LoadFunc, timeout time.Duration, initial bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		events, err := load(ctx)
		if events == nil {
			events = event.Empty()
		}
		return EventsLoadedMsg{Events: events, Err: err, Initial: initial}
	}
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// Copy writes text to the system clipboard.
func Copy(text, what string) tea.Cmd {
	return func() tea.Msg {
		if text == "" {
			return ErrMsg{Err: ErrNothingToCopy}
		}
		if err := writeClipboard(text); err != nil {
			return ErrMsg{Err: err}
		}
		return CopiedMsg{What: what}
	}
}

// Status returns a command emitting a status message.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

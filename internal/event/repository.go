package event

import (
	"context"
	"time"
)

// Snapshot describes the last import into a repository.
type Snapshot struct {
	Source     string
	ImportedAt time.Time
	Count      int
}

// Repository defines the storage interface for event snapshots.
type Repository interface {
	// ReplaceEvents atomically replaces the stored events with events.
	ReplaceEvents(ctx context.Context, events []Event, source string) error

	// ListEvents returns every stored event in id order.
	ListEvents(ctx context.Context) ([]Event, error)

	// ListEventsByDateRange returns the events whose days overlap the range (inclusive).
	ListEventsByDateRange(ctx context.Context, start, end time.Time) ([]Event, error)

	// GetEvent retrieves an event by ID.
	// Returns ErrEventNotFound when no event has that ID.
	GetEvent(ctx context.Context, id int) (*Event, error)

	// Snapshot returns metadata about the last import.
	Snapshot(ctx context.Context) (Snapshot, error)

	// Close releases any resources held by the repository.
	Close() error
}

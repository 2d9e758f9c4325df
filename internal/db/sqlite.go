// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/twdsco/hackertracker/internal/dateutil"
	"github.com/twdsco/hackertracker/internal/event"
)

// Meta keys.
const (
	metaSource     = "source"
	metaImportedAt = "imported_at"
	metaCount      = "count"
)

const selectEvents = `
	SELECT id, title, starts_at, ends_at, location, organizer, contact, url, status, tags
	FROM events
`

// SQLite implements event.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	loc *time.Location
	now func() time.Time
}

// Option configures a SQLite repository.
type Option func(*SQLite)

// WithLocation sets the zone used to parse stored timestamps without an offset.
func WithLocation(loc *time.Location) Option {
	return func(s *SQLite) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the clock used to stamp imports.
func WithClock(now func() time.Time) Option {
	return func(s *SQLite) { s.now = now }
}

// New creates a new SQLite repository and runs migrations.
func New(path string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, loc: time.UTC, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// ReplaceEvents atomically replaces the stored events and records the import.
func (s *SQLite) ReplaceEvents(ctx context.Context, events []event.Event, source string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return fmt.Errorf("clearing events: %w", err)
	}

	query := `
		INSERT INTO events (
			id, title, starts_at, ends_at, start_date, end_date,
			location, organizer, contact, url, status, tags
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, ev := range events {
		tags, err := json.Marshal(nonNil(ev.Tags))
		if err != nil {
			return fmt.Errorf("encoding tags of event %d: %w", ev.ID, err)
		}
		_, err = stmt.ExecContext(ctx,
			ev.ID,
			ev.Title,
			ev.Start,
			ev.End,
			dayColumn(ev.Start),
			dayColumn(ev.End),
			ev.Location,
			ev.Organizer,
			ev.Contact,
			ev.URL,
			string(ev.Status),
			string(tags),
		)
		if err != nil {
			return fmt.Errorf("inserting event %d %q: %w", ev.ID, ev.Title, err)
		}
	}

	meta := map[string]string{
		metaSource:     source,
		metaImportedAt: s.now().UTC().Format(time.RFC3339),
		metaCount:      strconv.Itoa(len(events)),
	}
	for key, value := range meta {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO meta (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value,
		)
		if err != nil {
			return fmt.Errorf("writing meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ListEvents returns every stored event in id order.
func (s *SQLite) ListEvents(ctx context.Context) ([]event.Event, error) {
	rows, err := s.db.QueryContext(ctx, selectEvents+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	return s.scanEvents(rows)
}

// ListEventsByDateRange returns the events whose days overlap the range
// (inclusive), ordered by start date then id. Events with an unparsable
// date are never returned.
func (s *SQLite) ListEventsByDateRange(ctx context.Context, start, end time.Time) ([]event.Event, error) {
	query := selectEvents + `
		WHERE start_date != '' AND end_date != ''
		  AND start_date <= ? AND end_date >= ?
		ORDER BY start_date, id
	`

	rows, err := s.db.QueryContext(ctx, query, dateutil.FormatDay(end), dateutil.FormatDay(start))
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	return s.scanEvents(rows)
}

// GetEvent retrieves an event by ID.
func (s *SQLite) GetEvent(ctx context.Context, id int) (*event.Event, error) {
	row := s.db.QueryRowContext(ctx, selectEvents+` WHERE id = ?`, id)

	ev, err := s.scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", event.ErrEventNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	return &ev, nil
}

// Snapshot returns metadata about the last import. The zero Snapshot is
// returned when nothing was imported yet.
func (s *SQLite) Snapshot(ctx context.Context) (event.Snapshot, error) {
	var snap event.Snapshot

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM meta`)
	if err != nil {
		return snap, fmt.Errorf("querying meta: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return snap, fmt.Errorf("scanning meta: %w", err)
		}
		switch key {
		case metaSource:
			snap.Source = value
		case metaImportedAt:
			snap.ImportedAt, err = time.Parse(time.RFC3339, value)
			if err != nil {
				return snap, fmt.Errorf("parsing imported at: %w", err)
			}
		case metaCount:
			snap.Count, _ = strconv.Atoi(value)
		}
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterating meta: %w", err)
	}

	return snap, nil
}

// Collection loads every stored event as a collection.
func (s *SQLite) Collection(ctx context.Context) (*event.Collection, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return event.NewCollection(events), nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLite) scanEvent(row scanner) (event.Event, error) {
	var (
		ev     event.Event
		status string
		tags   string
	)

	err := row.Scan(
		&ev.ID,
		&ev.Title,
		&ev.Start,
		&ev.End,
		&ev.Location,
		&ev.Organizer,
		&ev.Contact,
		&ev.URL,
		&status,
		&tags,
	)
	if err != nil {
		return ev, err
	}

	ev.Status = event.Status(status)
	if err := json.Unmarshal([]byte(tags), &ev.Tags); err != nil {
		return ev, fmt.Errorf("decoding tags of event %d: %w", ev.ID, err)
	}
	ev.Tags = nonNil(ev.Tags)
	ev.StartTime, _ = event.ParseTimestamp(ev.Start, s.loc)
	ev.EndTime, _ = event.ParseTimestamp(ev.End, s.loc)

	return ev, nil
}

func (s *SQLite) scanEvents(rows *sql.Rows) ([]event.Event, error) {
	defer func() { _ = rows.Close() }()

	var events []event.Event
	for rows.Next() {
		ev, err := s.scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return events, nil
}

// dayColumn returns the wall-clock date of a timestamp, empty when unparsable.
func dayColumn(timestamp string) string {
	day, err := dateutil.ParseDay(timestamp)
	if err != nil {
		return ""
	}
	return dateutil.FormatDay(day)
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

var _ event.Repository = (*SQLite)(nil)

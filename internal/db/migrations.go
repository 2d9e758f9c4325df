package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id         INTEGER PRIMARY KEY,
			title      TEXT NOT NULL DEFAULT '',
			starts_at  TEXT NOT NULL DEFAULT '',
			ends_at    TEXT NOT NULL DEFAULT '',
			start_date TEXT NOT NULL DEFAULT '',
			end_date   TEXT NOT NULL DEFAULT '',
			location   TEXT NOT NULL DEFAULT '',
			organizer  TEXT NOT NULL DEFAULT '',
			contact    TEXT NOT NULL DEFAULT '',
			url        TEXT NOT NULL DEFAULT '',
			status     TEXT NOT NULL DEFAULT '',
			tags       TEXT NOT NULL DEFAULT '[]'
		);

		CREATE INDEX IF NOT EXISTS idx_events_dates ON events(start_date, end_date);
		CREATE INDEX IF NOT EXISTS idx_events_status ON events(status);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	return nil
}

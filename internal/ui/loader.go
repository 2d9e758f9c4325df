package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/twdsco/hackertracker/internal/compose"
	"github.com/twdsco/hackertracker/internal/db"
	"github.com/twdsco/hackertracker/internal/event"
	"github.com/twdsco/hackertracker/internal/log"
	"github.com/twdsco/hackertracker/internal/source"
	"github.com/twdsco/hackertracker/internal/tagfilter"
	"github.com/twdsco/hackertracker/internal/tui/commands"
)

// newLoader builds the data source loader from the configuration.
func (a *App) newLoader() (*source.Loader, error) {
	loc, err := a.config.Location()
	if err != nil {
		return nil, err
	}
	timeout, err := a.config.Timeout()
	if err != nil {
		return nil, err
	}
	return source.New(a.config.Data.AllPath, a.config.Vocabulary(),
		source.WithCacheBusting(a.config.Data.CacheBusting),
		source.WithTimeout(timeout),
		source.WithLocation(loc),
	), nil
}

// openRepo opens the snapshot database once per run.
func (a *App) openRepo() (*db.SQLite, error) {
	if a.repo != nil {
		return a.repo, nil
	}
	loc, err := a.config.Location()
	if err != nil {
		return nil, err
	}

	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	repo, err := db.New(path, db.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return repo, nil
}

// loadFunc returns the loader of the configured origin: the snapshot
// database with --from-db, else the data source.
func (a *App) loadFunc() commands.LoadFunc {
	if a.fromDB {
		return func(ctx context.Context) (*event.Collection, error) {
			repo, err := a.openRepo()
			if err != nil {
				return nil, err
			}
			return repo.Collection(ctx)
		}
	}
	return func(ctx context.Context) (*event.Collection, error) {
		loader, err := a.newLoader()
		if err != nil {
			return nil, err
		}
		return loader.Load(ctx)
	}
}

// loadEvents loads the events for a printing command. A failed load is
// reported and treated as an empty event list.
func (a *App) loadEvents(ctx context.Context) *event.Collection {
	events, err := a.loadOrEmpty(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, formatFail("無法載入活動資料："+err.Error()))
	}
	return events
}

func (a *App) loadOrEmpty(ctx context.Context) (*event.Collection, error) {
	if a.fromDB {
		events, err := a.loadFunc()(ctx)
		if err != nil {
			log.Error("failed to load events", err, "from_db", true)
			return event.Empty(), err
		}
		return events, nil
	}
	loader, err := a.newLoader()
	if err != nil {
		return event.Empty(), err
	}
	return loader.LoadOrEmpty(ctx)
}

// initialTags merges --tags and --query into one sanitized tag list.
func (a *App) initialTags() []string {
	vocab := a.config.Vocabulary()
	tags := tagfilter.ParseValue(a.tags, vocab)
	if a.query != "" {
		tags = vocab.Sanitize(append(tags, tagfilter.Parse(a.query, vocab)...))
	}
	return tags
}

// newFilter returns a filter holding the tags given on the command line.
func (a *App) newFilter() *tagfilter.Filter {
	return tagfilter.New(a.config.Vocabulary(), a.initialTags())
}

func (a *App) newComposer() (*compose.Composer, error) {
	return compose.New(a.config.Vocabulary(), a.config.Calendar.TimezoneOffset,
		compose.WithAudience(a.config.Tags.Audience),
		compose.WithOnlineLocation(a.config.Tags.OnlineLocation),
	)
}

// Package web publishes the event calendar over HTTP as JSON view models
// and iCalendar feeds.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/twdsco/hackertracker/internal/compose"
	"github.com/twdsco/hackertracker/internal/event"
	"github.com/twdsco/hackertracker/internal/ics"
	"github.com/twdsco/hackertracker/internal/log"
)

const shutdownTimeout = 5 * time.Second

// LoadFunc produces the current event collection.
type LoadFunc func(ctx context.Context) (*event.Collection, error)

// Config is the dependency bag passed to New().
type Config struct {
	Listen string
	Mode   string
	// Refresh is the cron spec of the periodic reload. Empty disables it.
	Refresh string
	// RateLimit is the allowed requests per second per client. Zero disables it.
	RateLimit    float64
	ICSCacheSize int
	ICSCacheTTL  time.Duration
	WeekStart    time.Weekday

	Vocabulary event.Vocabulary
	Composer   *compose.Composer
	Encoder    *ics.Encoder
	Load       LoadFunc
}

// Server holds all dependencies for the HTTP server.
type Server struct {
	gin     *gin.Engine
	cfg     Config
	data    *snapshot
	feeds   *feedCache
	limiter *rateLimiter

	reloadMu sync.Mutex
}

// New creates a new Server instance.
func New(cfg Config) (*Server, error) {
	srv := &Server{cfg: cfg, data: &snapshot{events: event.Empty()}}
	if err := srv.validate(); err != nil {
		return nil, err
	}

	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	srv.gin = gin.New()
	srv.feeds = newFeedCache(cfg.ICSCacheSize, cfg.ICSCacheTTL)
	if cfg.RateLimit > 0 {
		srv.limiter = newRateLimiter(cfg.RateLimit)
	}
	srv.mapHandlers()

	return srv, nil
}

func (srv *Server) validate() error {
	if srv.cfg.Load == nil {
		return errors.New("load func is required")
	}
	if srv.cfg.Composer == nil {
		return errors.New("composer is required")
	}
	if srv.cfg.Encoder == nil {
		return errors.New("ics encoder is required")
	}
	if srv.cfg.Vocabulary.Len() == 0 {
		return errors.New("tag vocabulary is required")
	}
	if srv.cfg.ICSCacheSize <= 0 {
		return errors.New("ics cache size must be positive")
	}
	if srv.cfg.ICSCacheTTL <= 0 {
		return errors.New("ics cache ttl must be positive")
	}
	return nil
}

// Handler returns the router.
func (srv *Server) Handler() http.Handler {
	return srv.gin
}

// Reload replaces the served events. On failure the previous events keep
// being served.
func (srv *Server) Reload(ctx context.Context) error {
	srv.reloadMu.Lock()
	defer srv.reloadMu.Unlock()

	events, err := srv.cfg.Load(ctx)
	if err != nil {
		log.Error("reload failed, serving previous events", err, "events", srv.data.collection().Len())
		return err
	}
	srv.data.replace(events, time.Now())
	srv.feeds.purge()
	log.Info("events reloaded", "events", events.Len())
	return nil
}

// Run loads the events, schedules periodic reloads and serves until ctx
// is cancelled.
func (srv *Server) Run(ctx context.Context) error {
	_ = srv.Reload(ctx)

	if srv.cfg.Refresh != "" {
		c := cron.New()
		_, err := c.AddFunc(srv.cfg.Refresh, func() {
			rctx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			_ = srv.Reload(rctx)
		})
		if err != nil {
			return fmt.Errorf("scheduling refresh %q: %w", srv.cfg.Refresh, err)
		}
		c.Start()
		defer c.Stop()
		log.Info("refresh scheduled", "spec", srv.cfg.Refresh)
	}

	httpSrv := &http.Server{
		Addr:              srv.cfg.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "listen", "http://"+srv.cfg.Listen)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down HTTP server")
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

// snapshot is the currently served event set.
type snapshot struct {
	mu       sync.RWMutex
	events   *event.Collection
	loadedAt time.Time
	version  uint64
}

func (s *snapshot) collection() *event.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events
}

func (s *snapshot) get() (*event.Collection, time.Time, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events, s.loadedAt, s.version
}

func (s *snapshot) replace(events *event.Collection, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = events
	s.loadedAt = at
	s.version++
}

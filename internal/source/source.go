// Package source loads the published event list from a local file or an
// http(s) URL.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/twdsco/hackertracker/internal/event"
	"github.com/twdsco/hackertracker/internal/log"
)

// CacheBusterParam is the query parameter appended when cache busting is on.
const CacheBusterParam = "ts"

// DefaultTimeout bounds a remote fetch.
const DefaultTimeout = 15 * time.Second

// maxBodySize caps how much of a remote response is read.
const maxBodySize = 32 << 20

// ErrTooLarge is returned when a remote response exceeds maxBodySize.
var ErrTooLarge = errors.New("response too large")

// Loader fetches and normalizes the event list.
type Loader struct {
	path         string
	cacheBusting bool
	client       *http.Client
	vocab        event.Vocabulary
	loc          *time.Location
	now          func() time.Time
	maxBody      int64
}

// Option configures a Loader.
type Option func(*Loader)

// WithCacheBusting appends ts=<unix millis> to remote requests.
func WithCacheBusting(on bool) Option {
	return func(l *Loader) { l.cacheBusting = on }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithLocation sets the zone applied to timestamps without an offset.
func WithLocation(loc *time.Location) Option {
	return func(l *Loader) { l.loc = loc }
}

// WithClock overrides the clock used for the cache buster.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// New creates a Loader for path, which may be a file path or an http(s) URL.
func New(path string, vocab event.Vocabulary, opts ...Option) *Loader {
	l := &Loader{
		path:    path,
		client:  &http.Client{Timeout: DefaultTimeout},
		vocab:   vocab,
		now:     time.Now,
		maxBody: maxBodySize,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the configured source.
func (l *Loader) Path() string {
	return l.path
}

// IsRemote reports whether the source is fetched over HTTP.
func (l *Loader) IsRemote() bool {
	return IsRemote(l.path)
}

// IsRemote reports whether path is an http(s) URL.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Fetch returns the raw bytes of the source.
func (l *Loader) Fetch(ctx context.Context) ([]byte, error) {
	if l.path == "" {
		return nil, errors.New("source path is empty")
	}
	if !l.IsRemote() {
		data, err := os.ReadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", l.path, err)
		}
		return data, nil
	}

	target, err := l.requestURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", redact(l.path), err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		// The *url.Error text carries the full request URL.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("fetching %s: %w", redact(l.path), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status: %s", redact(l.path), resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", redact(l.path), err)
	}
	if int64(len(data)) > l.maxBody {
		return nil, fmt.Errorf("fetching %s: %w (over %d bytes)", redact(l.path), ErrTooLarge, l.maxBody)
	}
	return data, nil
}

// requestURL appends the cache buster to the source URL when enabled.
func (l *Loader) requestURL() (string, error) {
	if !l.cacheBusting {
		return l.path, nil
	}
	u, err := url.Parse(l.path)
	if err != nil {
		return "", fmt.Errorf("parsing source url: %w", err)
	}
	q := u.Query()
	q.Set(CacheBusterParam, strconv.FormatInt(l.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Load fetches and parses the source.
func (l *Loader) Load(ctx context.Context) (*event.Collection, error) {
	data, err := l.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	c, err := event.Parse(data, l.vocab, l.loc)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", redact(l.path), err)
	}
	return c, nil
}

// LoadOrEmpty is Load with failures logged and replaced by an empty
// collection. The returned error is informational only.
func (l *Loader) LoadOrEmpty(ctx context.Context) (*event.Collection, error) {
	start := time.Now()
	c, err := l.Load(ctx)
	if err != nil {
		log.Error("failed to load events", err, "source", redact(l.path))
		return event.Empty(), err
	}
	log.Info("events loaded", "source", redact(l.path), "count", c.Len(), "elapsed", time.Since(start))
	return c, nil
}

// redact drops the query string and credentials of remote sources for logging.
func redact(path string) string {
	if !IsRemote(path) {
		return path
	}
	u, err := url.Parse(path)
	if err != nil {
		return "(unparsable url)"
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

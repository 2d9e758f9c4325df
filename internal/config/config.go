// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/twdsco/hackertracker/internal/compose"
	"github.com/twdsco/hackertracker/internal/dateutil"
	"github.com/twdsco/hackertracker/internal/event"
	"github.com/twdsco/hackertracker/internal/log"
	"github.com/twdsco/hackertracker/internal/tui/theme"
)

// Config holds the application configuration.
type Config struct {
	Data     DataConfig     `toml:"data" yaml:"data"`
	Tags     TagsConfig     `toml:"tags" yaml:"tags"`
	Calendar CalendarConfig `toml:"calendar" yaml:"calendar"`
	Storage  StorageConfig  `toml:"storage" yaml:"storage"`
	Server   ServerConfig   `toml:"server" yaml:"server"`
	UI       UIConfig       `toml:"ui" yaml:"ui"`
	Site     SiteConfig     `toml:"site" yaml:"site"`
}

// DataConfig locates the event data.
type DataConfig struct {
	AllPath      string `toml:"all_path" yaml:"all_path"`       // file path or http(s) URL of all.json
	IndexPath    string `toml:"index_path" yaml:"index_path"`   // index.json listing event files
	EventsDir    string `toml:"events_dir" yaml:"events_dir"`   // directory holding event files
	CacheBusting bool   `toml:"cache_busting" yaml:"cache_busting"`
	Timeout      string `toml:"timeout" yaml:"timeout"` // e.g., "15s"
}

// TagsConfig holds the tag vocabulary.
type TagsConfig struct {
	Supported      []string `toml:"supported" yaml:"supported"`
	Audience       []string `toml:"audience" yaml:"audience"` // at least one is required when composing
	OnlineLocation string   `toml:"online_location" yaml:"online_location"`
}

// CalendarConfig holds calendar display settings.
type CalendarConfig struct {
	TimezoneOffset string `toml:"timezone_offset" yaml:"timezone_offset"` // e.g., "+08:00"
	WeekStart      string `toml:"week_start" yaml:"week_start"`           // "sunday" or "monday"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path" yaml:"db_path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Listen       string  `toml:"listen" yaml:"listen"`
	Mode         string  `toml:"mode" yaml:"mode"`       // gin mode: "release", "debug", "test"
	Refresh      string  `toml:"refresh" yaml:"refresh"` // cron spec, e.g., "@every 15m"
	RateLimit    float64 `toml:"rate_limit" yaml:"rate_limit"`
	ICSCacheSize int     `toml:"ics_cache_size" yaml:"ics_cache_size"`
	ICSCacheTTL  string  `toml:"ics_cache_ttl" yaml:"ics_cache_ttl"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme    string `toml:"theme" yaml:"theme"` // "hacker", "mocha", "latte"
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// SiteConfig holds publication metadata.
type SiteConfig struct {
	RepoURL   string `toml:"repo_url" yaml:"repo_url"`
	ICSDomain string `toml:"ics_domain" yaml:"ics_domain"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			AllPath:      filepath.Join("data", "all.json"),
			IndexPath:    filepath.Join("data", "index.json"),
			EventsDir:    "data",
			CacheBusting: true,
			Timeout:      "15s",
		},
		Tags: TagsConfig{
			Supported:      append([]string(nil), event.DefaultTags...),
			Audience:       []string{event.TagInPerson, event.TagOnline},
			OnlineLocation: compose.DefaultOnlineLocation,
		},
		Calendar: CalendarConfig{
			TimezoneOffset: "+08:00",
			WeekStart:      "sunday",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Server: ServerConfig{
			Listen:       "127.0.0.1:8080",
			Mode:         "release",
			Refresh:      "@every 15m",
			RateLimit:    10,
			ICSCacheSize: 32,
			ICSCacheTTL:  "5m",
		},
		UI: UIConfig{
			Theme:    "hacker",
			LogLevel: "info",
		},
		Site: SiteConfig{
			RepoURL:   "https://github.com/twdsco/hacker-tracker.tw",
			ICSDomain: "hacker-tracker.tw",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hackertracker.db"
	}
	return filepath.Join(home, ".local", "share", "hackertracker", "events.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "hackertracker", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	if !isURL(cfg.Data.AllPath) {
		cfg.Data.AllPath = expandPath(cfg.Data.AllPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if isYAML(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
		return nil
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HACKERTRACKER_ALL_PATH"); v != "" {
		cfg.Data.AllPath = v
	}
	if v := os.Getenv("HACKERTRACKER_CACHE_BUSTING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Data.CacheBusting = b
		}
	}
	if v := os.Getenv("HACKERTRACKER_SUPPORTED_TAGS"); v != "" {
		cfg.Tags.Supported = strings.Split(v, ",")
	}
	if v := os.Getenv("HACKERTRACKER_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("HACKERTRACKER_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("HACKERTRACKER_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("HACKERTRACKER_LOG_LEVEL"); v != "" {
		cfg.UI.LogLevel = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Data.AllPath == "" {
		return errors.New("all_path must be set")
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}

	for _, tag := range c.Tags.Supported {
		if strings.Contains(tag, ",") {
			return fmt.Errorf("supported tag %q cannot contain a comma", tag)
		}
	}
	vocab := c.Vocabulary()
	if vocab.Len() == 0 {
		return errors.New("at least one supported tag must be configured")
	}
	if len(c.Tags.Audience) == 0 {
		return errors.New("at least one audience tag must be configured")
	}
	for _, tag := range c.Tags.Audience {
		if !vocab.Contains(strings.TrimSpace(tag)) {
			return fmt.Errorf("audience tag %q is not a supported tag", tag)
		}
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.WeekStart(); err != nil {
		return err
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}

	if c.Server.Listen == "" {
		return errors.New("listen must be set")
	}
	if _, err := cron.ParseStandard(c.Server.Refresh); err != nil {
		return fmt.Errorf("refresh must be a cron spec, got %q: %w", c.Server.Refresh, err)
	}
	if c.Server.RateLimit < 0 {
		return errors.New("rate_limit cannot be negative")
	}
	if c.Server.ICSCacheSize <= 0 {
		return errors.New("ics_cache_size must be positive")
	}
	if _, err := c.ICSCacheTTL(); err != nil {
		return err
	}

	if !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("unknown theme %q, available: %s", c.UI.Theme, strings.Join(theme.Available(), ", "))
	}
	if _, err := log.ParseLevel(c.UI.LogLevel); err != nil {
		return err
	}
	return nil
}

// Vocabulary returns the supported tag vocabulary.
func (c *Config) Vocabulary() event.Vocabulary {
	return event.NewVocabulary(c.Tags.Supported)
}

// Location returns the fixed zone for offset-less timestamps.
func (c *Config) Location() (*time.Location, error) {
	loc, err := dateutil.ParseOffset(c.Calendar.TimezoneOffset)
	if err != nil {
		return nil, fmt.Errorf("timezone_offset: %w", err)
	}
	return loc, nil
}

// WeekStart returns the first weekday of the calendar grids.
func (c *Config) WeekStart() (time.Weekday, error) {
	day, err := dateutil.ParseWeekStart(c.Calendar.WeekStart)
	if err != nil {
		return time.Sunday, fmt.Errorf("week_start: %w", err)
	}
	return day, nil
}

// Timeout returns the data fetch timeout.
func (c *Config) Timeout() (time.Duration, error) {
	return positiveDuration("timeout", c.Data.Timeout)
}

// ICSCacheTTL returns how long rendered feeds stay cached.
func (c *Config) ICSCacheTTL() (time.Duration, error) {
	return positiveDuration("ics_cache_ttl", c.Server.ICSCacheTTL)
}

func positiveDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", field, value)
	}
	return d, nil
}

// IsRemote returns true if the event data is fetched over HTTP.
func (c *Config) IsRemote() bool {
	return isURL(c.Data.AllPath)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = toml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

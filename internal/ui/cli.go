package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twdsco/hackertracker/internal/config"
	"github.com/twdsco/hackertracker/internal/db"
	"github.com/twdsco/hackertracker/internal/log"
	"github.com/twdsco/hackertracker/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	repo   *db.SQLite // opened lazily by openRepo
	root   *cobra.Command

	configPath string
	debug      bool // Enable debug logging
	logFile    string
	tags       string
	query      string
	fromDB     bool
	allPath    string
	noColor    bool
}

// NewApp creates a new CLI application. Configuration is loaded from
// configPath (or the --config flag) before any command runs.
func NewApp(configPath string) *App {
	a := &App{configPath: configPath}

	a.root = &cobra.Command{
		Use:   "hackertracker",
		Short: "Browse the Taiwan hacker community event calendar",
		Long: `hackertracker shows the community event list as a filterable list,
a month calendar and a year overview.

Without a subcommand it starts the interactive terminal UI. The
subcommands print the same views, maintain the event data directory
and publish it as JSON and iCalendar.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.config, a.loadFunc(), a.debug, tui.WithTags(a.initialTags()))
		},
	}

	flags := a.root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", a.configPath, "Config file (.toml, .yaml or .yml)")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")
	flags.StringVar(&a.logFile, "log-file", "", "Write log lines to this file")
	flags.StringVar(&a.tags, "tags", "", "Show only events carrying any of these tags (comma separated)")
	flags.StringVar(&a.query, "query", "", `Share query to apply, e.g. "tags=CTF,線上"`)
	flags.BoolVar(&a.fromDB, "from-db", false, "Read the imported snapshot instead of the data source")
	flags.StringVar(&a.allPath, "all-path", "", "Override the all.json path or URL")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.monthCmd())
	a.root.AddCommand(a.yearCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.composeCmd())
	a.root.AddCommand(a.validateCmd())
	a.root.AddCommand(a.buildCmd())
	a.root.AddCommand(a.syncIndexCmd())
	a.root.AddCommand(a.icsCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

// setup loads the configuration and points the logger at its destination.
func (a *App) setup(cmd *cobra.Command) error {
	if a.noColor {
		DisableColor()
	}

	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.allPath != "" {
		cfg.Data.AllPath = a.allPath
	}
	a.config = cfg

	level, err := log.ParseLevel(cfg.UI.LogLevel)
	if err != nil {
		return err
	}
	if a.debug {
		level = log.LevelDebug
	}
	log.SetLevel(level)

	logFile := a.logFile
	// The terminal UI owns the screen; its log lines go to a file or nowhere.
	if cmd == a.root && logFile == "" {
		if !a.debug {
			log.Discard()
			return nil
		}
		logFile = filepath.Join(os.TempDir(), "hackertracker.log")
	}
	if logFile != "" {
		if err := log.SetOutput(logFile); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		// No config needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "hackertracker %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the snapshot database if a command opened it and flushes
// the logger.
func (a *App) Close() error {
	defer log.Sync()
	if a.repo == nil {
		return nil
	}
	err := a.repo.Close()
	a.repo = nil
	return err
}

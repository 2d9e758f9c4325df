package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twdsco/hackertracker/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	var initFile bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the config file and
HACKERTRACKER_* environment overrides are applied.

With --init, writes the defaults to the config file if it does not
exist yet.

Example:
  hackertracker config
  hackertracker config --init --config ./hackertracker.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Config file: %s\n\n", a.configPath)

			if initFile {
				created, err := initConfig(a.configPath)
				if err != nil {
					return err
				}
				if created {
					_, _ = fmt.Fprintf(out, "Created %s\n\n", a.configPath)
				} else {
					_, _ = fmt.Fprintf(out, "%s already exists, left unchanged\n\n", a.configPath)
				}
			}

			printConfig(out, a.config)
			return nil
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Write the default configuration if the file is missing")
	return cmd
}

// initConfig writes the defaults to path unless a file is already there.
func initConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking config file: %w", err)
	}
	if err := config.Default().SaveTo(path); err != nil {
		return false, fmt.Errorf("saving config: %w", err)
	}
	return true, nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	p := func(format string, args ...any) { _, _ = fmt.Fprintf(w, format, args...) }

	p("Current configuration:\n")
	p("──────────────────────\n")
	p("[data]\n")
	p("  all_path        = %s\n", cfg.Data.AllPath)
	p("  index_path      = %s\n", cfg.Data.IndexPath)
	p("  events_dir      = %s\n", cfg.Data.EventsDir)
	p("  cache_busting   = %t\n", cfg.Data.CacheBusting)
	p("  timeout         = %s\n", cfg.Data.Timeout)
	p("\n[tags]\n")
	p("  supported       = %s\n", strings.Join(cfg.Tags.Supported, ", "))
	p("  audience        = %s\n", strings.Join(cfg.Tags.Audience, ", "))
	p("  online_location = %s\n", cfg.Tags.OnlineLocation)
	p("\n[calendar]\n")
	p("  timezone_offset = %s\n", cfg.Calendar.TimezoneOffset)
	p("  week_start      = %s\n", cfg.Calendar.WeekStart)
	p("\n[storage]\n")
	p("  db_path         = %s\n", cfg.Storage.DBPath)
	p("\n[server]\n")
	p("  listen          = %s\n", cfg.Server.Listen)
	p("  mode            = %s\n", cfg.Server.Mode)
	p("  refresh         = %s\n", cfg.Server.Refresh)
	p("  rate_limit      = %g\n", cfg.Server.RateLimit)
	p("  ics_cache_size  = %d\n", cfg.Server.ICSCacheSize)
	p("  ics_cache_ttl   = %s\n", cfg.Server.ICSCacheTTL)
	p("\n[ui]\n")
	p("  theme           = %s\n", cfg.UI.Theme)
	p("  log_level       = %s\n", cfg.UI.LogLevel)
	p("\n[site]\n")
	p("  repo_url        = %s\n", cfg.Site.RepoURL)
	p("  ics_domain      = %s\n", cfg.Site.ICSDomain)
}

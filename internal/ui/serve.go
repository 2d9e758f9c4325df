package ui

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/twdsco/hackertracker/internal/ics"
	"github.com/twdsco/hackertracker/internal/web"
)

func (a *App) serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Publish the events over HTTP",
		Long: `Serve the events as JSON view models and iCalendar feeds.

The data is loaded at start and reloaded on the configured refresh
schedule; a failed reload keeps serving the previous events.

Endpoints:
  GET  /health
  GET  /api/events?tags=a,b
  GET  /api/events/:id
  GET  /api/month/:year/:month
  GET  /api/year/:year
  GET  /api/day/:date
  GET  /calendar.ics, /confirmed.ics, /tentative.ics
  POST /api/compose`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			srv, err := a.newServer(listen)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default from config)")
	return cmd
}

func (a *App) newServer(listen string) (*web.Server, error) {
	weekStart, err := a.config.WeekStart()
	if err != nil {
		return nil, err
	}
	ttl, err := a.config.ICSCacheTTL()
	if err != nil {
		return nil, err
	}
	composer, err := a.newComposer()
	if err != nil {
		return nil, err
	}
	if listen == "" {
		listen = a.config.Server.Listen
	}
	// Reloads run on the cron goroutine; open the snapshot up front.
	if a.fromDB {
		if _, err := a.openRepo(); err != nil {
			return nil, err
		}
	}

	return web.New(web.Config{
		Listen:       listen,
		Mode:         a.config.Server.Mode,
		Refresh:      a.config.Server.Refresh,
		RateLimit:    a.config.Server.RateLimit,
		ICSCacheSize: a.config.Server.ICSCacheSize,
		ICSCacheTTL:  ttl,
		WeekStart:    weekStart,
		Vocabulary:   a.config.Vocabulary(),
		Composer:     composer,
		Encoder:      ics.NewEncoder(a.config.Site.ICSDomain),
		Load:         web.LoadFunc(a.loadFunc()),
	})
}

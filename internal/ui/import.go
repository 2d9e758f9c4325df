package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twdsco/hackertracker/internal/event"
	"github.com/twdsco/hackertracker/internal/ics"
	"github.com/twdsco/hackertracker/internal/source"
)

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Store the current events in the snapshot database",
		Long: `Load the events from the data source and replace the snapshot
database with them. Use --from-db afterwards to browse offline.

Example:
  hackertracker import
  hackertracker --from-db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader, err := a.newLoader()
			if err != nil {
				return err
			}
			repo, err := a.openRepo()
			if err != nil {
				return err
			}

			count, err := importEvents(context.Background(), repo, loader)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d events from %s into %s\n",
				count, loader.Path(), a.config.Storage.DBPath)
			return nil
		},
	}
}

// importEvents replaces the stored snapshot with the source's events. A
// failed load leaves the snapshot untouched.
func importEvents(ctx context.Context, dest event.Repository, loader *source.Loader) (int, error) {
	events, err := loader.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading events: %w", err)
	}
	if err := dest.ReplaceEvents(ctx, events.All(), loader.Path()); err != nil {
		return 0, fmt.Errorf("storing events: %w", err)
	}
	return events.Len(), nil
}

func (a *App) icsCmd() *cobra.Command {
	var (
		outDir   string
		feedName string
	)

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Write the iCalendar feeds",
		Long: `Write allevents.ics, confirmed.ics and tentative.ics for the current
events, or only the feed named by --feed. Events without a title or with
unusable times are skipped.`,
		Example: `  hackertracker ics --out-dir public
  hackertracker ics --feed confirmed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			feeds := ics.Feeds()
			if feedName != "" {
				feed, err := ics.ParseFeed(feedName)
				if err != nil {
					return err
				}
				feeds = []ics.Feed{feed}
			}

			events := a.loadEvents(context.Background())
			visible := a.newFilter().Apply(events.All())

			enc := ics.NewEncoder(a.config.Site.ICSDomain)
			counts, err := enc.WriteFeeds(outDir, visible, feeds...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, feed := range feeds {
				_, _ = fmt.Fprintf(out, "%s %s (%d events)\n", formatOK("✓"), feed.FileName(), counts[feed])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory to write the feeds into")
	cmd.Flags().StringVar(&feedName, "feed", "", "Write only this feed: all, confirmed or tentative")
	return cmd
}

package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twdsco/hackertracker/internal/calendar"
	"github.com/twdsco/hackertracker/internal/dateutil"
	"github.com/twdsco/hackertracker/internal/event"
)

func (a *App) listCmd() *cobra.Command {
	var (
		verbose bool
		from    string
		to      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events by month",
		Long: `List every event in start order, grouped by the month it starts in.
Events without a readable start date are listed last.

Use --tags or --query to show only events carrying any of the given tags.
--from and --to keep the events sharing a day with the range; --from alone
selects a single day and --to alone starts today.`,
		Example: `  hackertracker list
  hackertracker list --tags CTF,線上
  hackertracker list --query "tags=實體" -v
  hackertracker list --from 2026-08-01 --to 2026-08-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			events := a.loadEvents(ctx)
			shown := events.All()
			if from != "" || to != "" {
				r, err := dateutil.NewDateRange(from, to)
				if err != nil {
					return fmt.Errorf("invalid date range: %w", err)
				}
				if shown, err = a.eventsBetween(ctx, shown, *r); err != nil {
					return err
				}
			}

			filter := a.newFilter()
			lv := calendar.BuildList(shown, filter)

			out := cmd.OutOrStdout()
			if lv.Total == 0 {
				_, _ = fmt.Fprintln(out, calendar.LabelEmptyList)
				return nil
			}

			PrintList(out, lv, PrintOpts{Verbose: verbose})
			_, _ = fmt.Fprintf(out, "\n%s\n", formatMuted(fmt.Sprintf("%d / %d 筆活動", lv.Total, events.Len())))
			if q := filter.Query(); q != "" {
				_, _ = fmt.Fprintf(out, "%s\n", formatMuted("分享連結：?"+q))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show every detail line")
	cmd.Flags().StringVar(&from, "from", "", "First day of the range (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&to, "to", "", "Last day of the range (YYYY-MM-DD, default --from)")
	return cmd
}

// eventsBetween keeps the events sharing a day with r. With --from-db the
// snapshot database answers the query.
func (a *App) eventsBetween(ctx context.Context, events []event.Event, r dateutil.DateRange) ([]event.Event, error) {
	if a.fromDB {
		repo, err := a.openRepo()
		if err != nil {
			return nil, err
		}
		return repo.ListEventsByDateRange(ctx, r.Start, r.End)
	}
	out := make([]event.Event, 0, len(events))
	for _, ev := range events {
		if ev.Overlaps(r.Start, r.End) {
			out = append(out, ev)
		}
	}
	return out, nil
}

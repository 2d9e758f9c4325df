package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/twdsco/hackertracker/internal/calendar"
	"github.com/twdsco/hackertracker/internal/dateutil"
)

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of one event",
		Long: `Display every field of one event. Ids follow the order of the data
source, starting at 1, as printed by 'hackertracker list'.`,
		Example: `  hackertracker show 3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}

			events := a.loadEvents(context.Background())
			card, ok := calendar.BuildDetail(events, id)
			if !ok {
				return fmt.Errorf("event %d not found", id)
			}
			PrintDetail(cmd.OutOrStdout(), card)
			return nil
		},
	}
}

func (a *App) monthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Print a month calendar",
		Long: `Print the month grid with the events covering each day. Defaults to
the current month. Tentative events are prefixed with "?".`,
		Example: `  hackertracker month
  hackertracker month 2026-08 --tags CTF`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			cursor := calendar.Cursor{Year: now.Year(), Month: now.Month()}
			if len(args) == 1 {
				year, month, err := dateutil.ParseYearMonth(args[0])
				if err != nil {
					return fmt.Errorf("invalid month %q: %w", args[0], err)
				}
				cursor = calendar.Cursor{Year: year, Month: month}
			}
			weekStart, err := a.config.WeekStart()
			if err != nil {
				return err
			}

			events := a.loadEvents(context.Background())
			mv := calendar.BuildMonth(events.All(), a.newFilter(), cursor, weekStart)

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "=== %s ===\n", formatHeader(mv.Title))
			_, _ = fmt.Fprintln(out, RenderMonthTable(mv, termWidth()))
			return nil
		},
	}
}

func (a *App) yearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "year [YYYY]",
		Short: "Print the days with events of a year",
		Long: `Print the twelve months of a year with the days covered by events.
Days with a confirmed event are bold, days with only tentative events
are yellow. Defaults to the current year.`,
		Example: `  hackertracker year 2026`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := time.Now().Year()
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				year = y
			}
			weekStart, err := a.config.WeekStart()
			if err != nil {
				return err
			}

			events := a.loadEvents(context.Background())
			PrintYear(cmd.OutOrStdout(), calendar.BuildYear(events.All(), a.newFilter(), year, weekStart))
			return nil
		},
	}
}

package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/twdsco/hackertracker/internal/compose"
)

func (a *App) composeCmd() *cobra.Command {
	var (
		draft  compose.Draft
		tags   string
		outDir string
		copyIt bool
	)

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Build the JSON file of a new event",
		Long: `Validate a candidate event and print its JSON record, ready to be
added to the data directory with the printed file name.

Times are optional but must be given together; dates and times are
combined with the configured timezone offset. At least one audience
tag (實體 or 線上 by default) is required.`,
		Example: `  hackertracker compose --title "HITCON 2026" --start-date 2026-08-20 \
    --end-date 2026-08-21 --tags 實體,Conf --organizer HITCON
  hackertracker compose --title "Online CTF" --start-date 2026-06-12 --start-time 10:00 \
    --end-date 2026-06-14 --end-time 10:00 --online --tags 線上,CTF --status tentative --out-dir data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			composer, err := a.newComposer()
			if err != nil {
				return err
			}
			if tags != "" {
				draft.Tags = strings.Split(tags, ",")
			}

			out, err := composer.Build(draft)
			if err != nil {
				return fmt.Errorf("%s: %w", compose.Message(err), err)
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, out.JSON)
			_, _ = fmt.Fprintf(w, "%s %s\n", formatMuted("檔名："), out.FileName)

			if outDir != "" {
				path := filepath.Join(outDir, out.FileName)
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("creating output directory: %w", err)
				}
				if err := os.WriteFile(path, []byte(out.JSON+"\n"), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				_, _ = fmt.Fprintf(w, "%s %s\n", formatOK("已寫入"), path)
			}
			if copyIt {
				if err := clipboard.WriteAll(out.JSON); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				_, _ = fmt.Fprintln(w, formatOK("已複製 JSON"))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&draft.Title, "title", "", "Event title")
	f.StringVar(&draft.StartDate, "start-date", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&draft.StartTime, "start-time", "", "Start time (HH:MM, optional)")
	f.StringVar(&draft.EndDate, "end-date", "", "End date (YYYY-MM-DD)")
	f.StringVar(&draft.EndTime, "end-time", "", "End time (HH:MM, optional)")
	f.StringVar(&draft.Location, "location", "", "Location")
	f.StringVar(&draft.Organizer, "organizer", "", "Organizer")
	f.StringVar(&draft.Contact, "contact", "", "Contact (email or social link)")
	f.StringVar(&draft.URL, "url", "", "Event URL")
	f.StringVar(&draft.Status, "status", "confirmed", "Status (confirmed or tentative)")
	f.StringVar(&tags, "tags", "", "Tags (comma separated)")
	f.BoolVar(&draft.Online, "online", false, "Online event; sets the location to the online placeholder")
	f.StringVar(&outDir, "out-dir", "", "Also write the JSON file into this directory")
	f.BoolVar(&copyIt, "copy", false, "Copy the JSON to the clipboard")
	return cmd
}

package ui

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twdsco/hackertracker/internal/dataset"
)

func (a *App) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate event files",
		Long: `Check event files before they are added to the data directory:
required fields, status, URL, date formats and audience tags.`,
		Example: `  hackertracker validate data/2026-hitcon.json
  hackertracker validate data/*.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				if err := dataset.ValidateFile(path, a.config.Tags.Audience); err != nil {
					failed++
					_, _ = fmt.Fprintf(out, "%s %s: %v\n", formatFail("✗"), path, err)
					continue
				}
				_, _ = fmt.Fprintf(out, "%s %s\n", formatOK("✓"), path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(args))
			}
			return nil
		},
	}
}

// dataPaths returns the index, events directory and all.json paths. The
// merged file must be local to be written.
func (a *App) dataPaths() (index, dir, all string, err error) {
	if a.config.IsRemote() {
		return "", "", "", errors.New("all_path is a URL; set a local path with --all-path")
	}
	return a.config.Data.IndexPath, a.config.Data.EventsDir, a.config.Data.AllPath, nil
}

func (a *App) buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Merge the event files listed in index.json into all.json",
		Long: `Read index.json, concatenate every event file it lists into all.json.
Missing files are reported and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			index, dir, all, err := a.dataPaths()
			if err != nil {
				return err
			}
			res, err := dataset.BuildAll(index, dir, all)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range res.Missing {
				_, _ = fmt.Fprintf(out, "%s %s\n", formatTentative("missing"), name)
			}
			_, _ = fmt.Fprintf(out, "%s %d events -> %s\n", formatOK("✓"), res.Count, all)
			return nil
		},
	}
}

func (a *App) syncIndexCmd() *cobra.Command {
	var opts dataset.SyncOptions

	cmd := &cobra.Command{
		Use:   "sync-index",
		Short: "Rebuild index.json from the event files",
		Long: `Rewrite index.json so that it lists the event files that still exist
plus the newly created ones, de-duplicated and sorted.`,
		Example: `  hackertracker sync-index --created 2026-hitcon.json
  hackertracker sync-index --scan`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			index, dir := a.config.Data.IndexPath, a.config.Data.EventsDir
			names, err := dataset.SyncIndex(index, dir, opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d files -> %s\n",
				formatOK("✓"), len(names), filepath.Clean(index))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&opts.Created, "created", nil, "Newly created event files")
	cmd.Flags().BoolVar(&opts.Scan, "scan", false, "Add every event file found in the events directory")
	return cmd
}

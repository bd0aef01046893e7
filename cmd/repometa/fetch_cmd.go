package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/repometa/internal/output"
	"github.com/raphi011/repometa/internal/ui/styles"
)

func newFetchCmd() *cobra.Command {
	var (
		csvPath string
		column  string
		destDir string
	)

	cmd := &cobra.Command{
		Use:     "fetch",
		Short:   "Clone every repository listed in the CSV",
		GroupID: GroupPipeline,
		Args:    cobra.NoArgs,
		Long: `Clone every GitHub repository listed in the configured CSV column
into the destination directory.

Each URL is normalized to an owner/repo slug; the clone is placed in a
directory named after the slug with "/" replaced by "__". Repositories
that already have a destination directory are skipped, so re-running
fetch is cheap. A failing clone is logged and the batch continues.`,
		Example: `  repometa fetch --csv winners.csv
  repometa fetch --csv winners.csv --column Repository --dir /data/repos`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if csvPath == "" {
				csvPath = cfg.CSVPath
			}
			if csvPath == "" {
				return fmt.Errorf("no CSV file: pass --csv or set csv_path in the config")
			}
			if column == "" {
				column = cfg.URLColumn
			}
			if destDir == "" {
				destDir = cfg.RepoDir
			}

			outcomes, err := runFetch(ctx, fetchParams{
				csvPath:      csvPath,
				column:       column,
				destDir:      destDir,
				showProgress: !quiet && isatty.IsTerminal(os.Stderr.Fd()),
			})
			if err != nil {
				return err
			}

			printFetchSummary(ctx, outcomes)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file listing repositories")
	cmd.Flags().StringVarP(&column, "column", "c", "", "header name of the URL column (default \"Github\")")
	cmd.Flags().StringVarP(&destDir, "dir", "d", "", "destination directory for clones (default \"repos\")")

	return cmd
}

// printFetchSummary writes the per-run tally to stdout. Individual
// failures were already logged as they happened.
func printFetchSummary(ctx context.Context, outcomes []fetchOutcome) {
	p := output.FromContext(ctx)
	cloned, skipped, invalid, failed := countOutcomes(outcomes)

	if isatty.IsTerminal(os.Stdout.Fd()) {
		p.Printf("%s %d cloned  %s %d skipped  %s %d failed  (%d invalid urls)\n",
			styles.SuccessStyle.Render("✓"), cloned,
			styles.MutedStyle.Render("→"), skipped,
			styles.ErrorStyle.Render("✗"), failed,
			invalid)
		return
	}
	p.Printf("%d cloned, %d skipped, %d failed, %d invalid\n", cloned, skipped, failed, invalid)
}

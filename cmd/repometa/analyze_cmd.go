package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/repometa/internal/log"
	"github.com/raphi011/repometa/internal/report"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		csvPath    string
		column     string
		outputPath string
		keep       bool
		noCloc     bool
	)

	cmd := &cobra.Command{
		Use:     "analyze",
		Short:   "Clone and measure every CSV repository in one pass",
		GroupID: GroupPipeline,
		Args:    cobra.NoArgs,
		Long: `Run the whole pipeline per repository against ephemeral clones:
each URL is cloned into a temporary work directory, measured, and the
clone discarded. The result is a CSV report with the full column set,
including the source URL, average lines changed per commit, and a
clone_status column recording which URLs could not be processed.

Use fetch + collect instead when you want to keep the clones around.`,
		Example: `  repometa analyze --csv winners.csv -o analysis.csv
  repometa analyze --csv winners.csv --keep`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			if csvPath == "" {
				csvPath = cfg.CSVPath
			}
			if csvPath == "" {
				return fmt.Errorf("no CSV file: pass --csv or set csv_path in the config")
			}
			if column == "" {
				column = cfg.URLColumn
			}

			rows, err := runAnalyze(ctx, analyzeParams{
				csvPath:      csvPath,
				column:       column,
				output:       outputPath,
				keepWorkDir:  keep,
				useCloc:      !noCloc,
				showProgress: !quiet && isatty.IsTerminal(os.Stderr.Fd()),
			})
			if err != nil {
				return err
			}

			ok := 0
			for _, r := range rows {
				if r.CloneStatus == report.CloneOK {
					ok++
				}
			}
			l.Printf("analyzed %d/%d repositories, wrote %s\n", ok, len(rows), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file listing repositories")
	cmd.Flags().StringVarP(&column, "column", "c", "", "header name of the URL column (default \"Github\")")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "analysis.csv", "report file to write")
	cmd.Flags().BoolVar(&keep, "keep", false, "keep the temporary work directory")
	cmd.Flags().BoolVar(&noCloc, "no-cloc", false, "never use cloc, always count newlines of tracked files")

	return cmd
}

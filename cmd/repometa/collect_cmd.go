package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/repometa/internal/log"
	"github.com/raphi011/repometa/internal/output"
	"github.com/raphi011/repometa/internal/report"
	"github.com/raphi011/repometa/internal/ui/static"
)

func newCollectCmd() *cobra.Command {
	var (
		destDir    string
		outputPath string
		noCloc     bool
		table      bool
	)

	cmd := &cobra.Command{
		Use:     "collect",
		Short:   "Collect metadata for cloned repositories into a TSV report",
		GroupID: GroupPipeline,
		Args:    cobra.NoArgs,
		Long: `Collect git and filesystem metadata for every cloned repository in
the destination directory and rebuild the tab-separated report.

Per repository: checked-out branch, commit count, first and last commit
timestamp, distinct contributors, size on disk in whole megabytes, and
an approximate line count over tracked non-binary files (cloc is used
when installed unless --no-cloc is given).

The report is rebuilt from scratch on every run. A repository whose
queries fail still produces a row with zeroed fields.`,
		Example: `  repometa collect
  repometa collect --dir /data/repos -o /data/meta.tsv
  repometa collect --table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			if outputPath == "" {
				outputPath = cfg.Output
			}

			records, err := runCollect(ctx, collectParams{
				destDir:      resolveDestDir(destDir),
				output:       outputPath,
				useCloc:      !noCloc,
				showProgress: !quiet && isatty.IsTerminal(os.Stderr.Fd()),
			})
			if err != nil {
				return err
			}

			l.Printf("wrote %d rows to %s\n", len(records), outputPath)

			if table || isatty.IsTerminal(os.Stdout.Fd()) {
				p := output.FromContext(ctx)
				p.Print(static.RenderTable(report.TSVHeader, report.Rows(records)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&destDir, "dir", "d", "", "directory of cloned repositories (default \"repos\")")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "report file to write (default \"repometa.tsv\")")
	cmd.Flags().BoolVar(&noCloc, "no-cloc", false, "never use cloc, always count newlines of tracked files")
	cmd.Flags().BoolVar(&table, "table", false, "also render the report as a table on stdout")

	return cmd
}

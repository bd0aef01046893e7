// Package report serializes collected metadata. The collect command
// writes a tab-separated report, the analyze command a CSV with the
// full per-URL column set. Reports are rebuilt from scratch on every
// run; there is no merging with previous output.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/raphi011/repometa/internal/metrics"
)

// TSVHeader is the fixed column set of the collect report.
var TSVHeader = []string{
	"repo_slug",
	"default_branch",
	"commits_count",
	"first_commit_iso",
	"last_commit_iso",
	"contributors_count",
	"size_on_disk_mb",
	"lines_of_code",
}

// WriteTSV writes the header and one row per record, tab-separated.
func WriteTSV(w io.Writer, records []metrics.Record) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(TSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Slug,
			r.DefaultBranch,
			strconv.Itoa(r.Commits),
			r.FirstCommit,
			r.LastCommit,
			strconv.Itoa(r.Contributors),
			strconv.Itoa(r.SizeMB),
			strconv.Itoa(r.Lines),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTSVFile rebuilds the report file at path, creating parent
// directories as needed.
func WriteTSVFile(path string, records []metrics.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WriteTSV(f, records); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

// Rows converts records to string rows for table rendering, in header
// order.
func Rows(records []metrics.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Slug,
			r.DefaultBranch,
			strconv.Itoa(r.Commits),
			r.FirstCommit,
			r.LastCommit,
			strconv.Itoa(r.Contributors),
			strconv.Itoa(r.SizeMB),
			strconv.Itoa(r.Lines),
		})
	}
	return rows
}

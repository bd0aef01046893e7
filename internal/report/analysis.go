package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// CloneOK is the clone_status value of a successful analysis.
const CloneOK = "OK"

// Analysis is one row of the analyze report: everything a Record holds
// plus the source URL, change-rate average, and clone outcome.
type Analysis struct {
	RepoURL         string
	Slug            string
	Contributors    int
	Commits         int
	FirstCommit     string
	LastCommit      string
	TotalLines      int
	AvgLinesChanged float64 // added+deleted lines per commit
	DefaultBranch   string
	SizeMB          float64
	CloneStatus     string // CloneOK or "ERROR: ..."
}

// AnalysisHeader is the fixed column order of the analyze report.
var AnalysisHeader = []string{
	"repo_url",
	"repo_slug",
	"contributors_count",
	"commits_count",
	"first_commit_iso",
	"last_commit_iso",
	"total_lines",
	"avg_lines_changed_per_commit",
	"default_branch",
	"size_on_disk_mb",
	"clone_status",
}

// WriteAnalysisCSV writes the header and one row per analysis.
// Rows whose clone failed carry only the URL, slug, and status; the
// metric columns are left empty.
func WriteAnalysisCSV(w io.Writer, rows []Analysis) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(AnalysisHeader); err != nil {
		return err
	}
	for _, a := range rows {
		var row []string
		if a.CloneStatus == CloneOK {
			row = []string{
				a.RepoURL,
				a.Slug,
				strconv.Itoa(a.Contributors),
				strconv.Itoa(a.Commits),
				a.FirstCommit,
				a.LastCommit,
				strconv.Itoa(a.TotalLines),
				strconv.FormatFloat(a.AvgLinesChanged, 'f', 2, 64),
				a.DefaultBranch,
				strconv.FormatFloat(a.SizeMB, 'f', 2, 64),
				a.CloneStatus,
			}
		} else {
			row = []string{a.RepoURL, a.Slug, "", "", "", "", "", "", "", "", a.CloneStatus}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAnalysisFile rebuilds the analyze report at path.
func WriteAnalysisFile(path string, rows []Analysis) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WriteAnalysisCSV(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

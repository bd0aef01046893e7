package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/repometa/internal/metrics"
)

var sample = metrics.Record{
	Slug:          "acme/widget",
	DefaultBranch: "main",
	Commits:       3,
	FirstCommit:   "2023-01-01T10:00:00+00:00",
	LastCommit:    "2023-06-01T10:00:00+00:00",
	Contributors:  2,
	SizeMB:        1,
	Lines:         10,
}

func TestWriteTSV(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := WriteTSV(&buf, []metrics.Record{sample}); err != nil {
		t.Fatalf("WriteTSV() = %v, want nil", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("WriteTSV() wrote %d lines, want 2", len(lines))
	}

	wantHeader := strings.Join(TSVHeader, "\t")
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}

	wantRow := "acme/widget\tmain\t3\t2023-01-01T10:00:00+00:00\t2023-06-01T10:00:00+00:00\t2\t1\t10"
	if lines[1] != wantRow {
		t.Errorf("row = %q, want %q", lines[1], wantRow)
	}
}

func TestWriteTSV_EmptyHistoryFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	rec := metrics.Record{Slug: "acme/empty", DefaultBranch: "main"}
	if err := WriteTSV(&buf, []metrics.Record{rec}); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[1] != "acme/empty\tmain\t0\t\t\t0\t0\t0" {
		t.Errorf("row = %q, want empty timestamp fields and zero counts", lines[1])
	}
}

func TestWriteTSVFile_Overwrites(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out", "meta.tsv")

	if err := WriteTSVFile(path, []metrics.Record{sample, sample}); err != nil {
		t.Fatalf("WriteTSVFile() = %v, want nil", err)
	}
	if err := WriteTSVFile(path, []metrics.Record{sample}); err != nil {
		t.Fatalf("WriteTSVFile() second run = %v, want nil", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("second run left %d lines, want 2 (header + 1 row, no append)", len(lines))
	}
}

func TestWriteAnalysisCSV(t *testing.T) {
	t.Parallel()
	rows := []Analysis{
		{
			RepoURL:         "https://github.com/acme/widget",
			Slug:            "acme/widget",
			Contributors:    2,
			Commits:         3,
			FirstCommit:     "2023-01-01T10:00:00+00:00",
			LastCommit:      "2023-06-01T10:00:00+00:00",
			TotalLines:      10,
			AvgLinesChanged: 4.33,
			DefaultBranch:   "main",
			SizeMB:          0.25,
			CloneStatus:     CloneOK,
		},
		{
			RepoURL:     "https://github.com/acme/gone",
			Slug:        "acme/gone",
			CloneStatus: "ERROR: repository not found",
		},
	}

	var buf bytes.Buffer
	if err := WriteAnalysisCSV(&buf, rows); err != nil {
		t.Fatalf("WriteAnalysisCSV() = %v, want nil", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("WriteAnalysisCSV() wrote %d lines, want 3", len(lines))
	}
	if lines[0] != strings.Join(AnalysisHeader, ",") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "4.33") || !strings.Contains(lines[1], "0.25") {
		t.Errorf("ok row = %q, want formatted averages", lines[1])
	}
	if !strings.Contains(lines[2], ",,,,,,,,") {
		t.Errorf("error row = %q, want empty metric columns", lines[2])
	}
	if !strings.Contains(lines[2], "ERROR: repository not found") {
		t.Errorf("error row = %q, want clone status", lines[2])
	}
}

func TestRows(t *testing.T) {
	t.Parallel()
	rows := Rows([]metrics.Record{sample})
	if len(rows) != 1 {
		t.Fatalf("Rows() = %d rows, want 1", len(rows))
	}
	if len(rows[0]) != len(TSVHeader) {
		t.Errorf("row has %d columns, want %d", len(rows[0]), len(TSVHeader))
	}
	if rows[0][0] != "acme/widget" {
		t.Errorf("rows[0][0] = %q, want slug", rows[0][0])
	}
}

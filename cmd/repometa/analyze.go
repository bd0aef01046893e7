package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/raphi011/repometa/internal/git"
	"github.com/raphi011/repometa/internal/log"
	"github.com/raphi011/repometa/internal/metrics"
	"github.com/raphi011/repometa/internal/repolist"
	"github.com/raphi011/repometa/internal/report"
	"github.com/raphi011/repometa/internal/slug"
	"github.com/raphi011/repometa/internal/ui/progress"
)

// analyzeParams holds parameters for an analyze run.
type analyzeParams struct {
	csvPath      string
	column       string
	output       string
	keepWorkDir  bool
	useCloc      bool
	showProgress bool
}

// maxErrorLen bounds the clone error text stored in the report.
const maxErrorLen = 240

// runAnalyze clones each URL into an ephemeral work directory, gathers
// the full metric set, and writes the combined CSV report. Clones are
// removed as soon as their repository has been measured unless the
// work directory is kept.
func runAnalyze(ctx context.Context, p analyzeParams) ([]report.Analysis, error) {
	l := log.FromContext(ctx)

	urls, err := repolist.ReadURLs(p.csvPath, p.column)
	if err != nil {
		return nil, err
	}

	workRoot, err := os.MkdirTemp("", "repometa-*")
	if err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}
	if p.keepWorkDir {
		l.Printf("keeping work directory %s\n", workRoot)
	} else {
		defer os.RemoveAll(workRoot)
	}

	var bar *progress.Bar
	if p.showProgress && len(urls) > 0 {
		bar = progress.Start(len(urls), "Analyzing repositories")
		defer bar.Stop()
	}

	collector := metrics.NewCollector(metrics.NewLineCounter(p.useCloc))

	rows := make([]report.Analysis, 0, len(urls))
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return rows, err
		}
		if bar != nil {
			bar.Set(i+1, url)
		}
		rows = append(rows, analyzeOne(ctx, collector, workRoot, url, p.keepWorkDir))
	}

	if err := report.WriteAnalysisFile(p.output, rows); err != nil {
		return rows, err
	}
	return rows, nil
}

// analyzeOne processes a single URL end to end. Any failure is
// captured in the clone_status column; the batch never aborts.
func analyzeOne(ctx context.Context, c *metrics.Collector, workRoot, url string, keep bool) report.Analysis {
	l := log.FromContext(ctx)
	a := report.Analysis{RepoURL: url}

	s, err := slug.Parse(url)
	if err != nil {
		a.CloneStatus = "ERROR: invalid GitHub URL"
		l.Printf("skipping %s: not a GitHub repository URL\n", url)
		return a
	}
	a.Slug = s

	dest := filepath.Join(workRoot, slug.Encode(s))
	if err := cloneRepo(ctx, url, dest); err != nil {
		a.CloneStatus = "ERROR: " + truncate(err.Error(), maxErrorLen)
		l.Printf("clone %s failed: %v\n", s, err)
		return a
	}
	if !keep {
		defer os.RemoveAll(dest)
	}

	rec := c.Collect(ctx, dest, s)
	a.Contributors = rec.Contributors
	a.Commits = rec.Commits
	a.FirstCommit = rec.FirstCommit
	a.LastCommit = rec.LastCommit
	a.TotalLines = rec.Lines
	a.DefaultBranch = rec.DefaultBranch
	a.SizeMB = metrics.DirSizeMB(dest)

	if changed, err := git.LinesChanged(ctx, dest); err == nil && rec.Commits > 0 {
		a.AvgLinesChanged = round2(float64(changed) / float64(rec.Commits))
	}

	a.CloneStatus = report.CloneOK
	return a
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

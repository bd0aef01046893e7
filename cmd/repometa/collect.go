package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/repometa/internal/git"
	"github.com/raphi011/repometa/internal/history"
	"github.com/raphi011/repometa/internal/lock"
	"github.com/raphi011/repometa/internal/metrics"
	"github.com/raphi011/repometa/internal/report"
	"github.com/raphi011/repometa/internal/slug"
	"github.com/raphi011/repometa/internal/ui/progress"
)

// collectParams holds parameters for a collect run.
type collectParams struct {
	destDir      string
	output       string
	useCloc      bool
	showProgress bool
}

// runCollect walks the destination directory and gathers one metadata
// record per subdirectory holding a git control directory, then
// rebuilds the report file. Rows are emitted in directory enumeration
// order (lexicographic).
func runCollect(ctx context.Context, p collectParams) ([]metrics.Record, error) {
	entries, err := os.ReadDir(p.destDir)
	if err != nil {
		return nil, fmt.Errorf("read destination: %w", err)
	}

	lk := lock.New(lock.PathFor(p.destDir))
	if err := lk.Lock(); err != nil {
		return nil, fmt.Errorf("lock destination: %w", err)
	}
	defer lk.Unlock()

	var bar *progress.Bar
	if p.showProgress && len(entries) > 0 {
		bar = progress.Start(len(entries), "Collecting metadata")
		defer bar.Stop()
	}

	collector := metrics.NewCollector(metrics.NewLineCounter(p.useCloc))

	var records []metrics.Record
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		if bar != nil {
			bar.Set(i+1, entry.Name())
		}
		if !entry.IsDir() {
			continue
		}

		path := filepath.Join(p.destDir, entry.Name())
		if !git.IsRepo(path) {
			continue
		}

		records = append(records, collector.Collect(ctx, path, slug.Decode(entry.Name())))
	}

	if err := report.WriteTSVFile(p.output, records); err != nil {
		return records, err
	}
	return records, nil
}

// resolveDestDir picks the directory to collect from: the flag wins,
// then an existing configured directory, then the destination of the
// most recent fetch.
func resolveDestDir(flagDir string) string {
	if flagDir != "" {
		return flagDir
	}
	if _, err := os.Stat(cfg.RepoDir); err == nil {
		return cfg.RepoDir
	}
	if h, err := history.Load(); err == nil && h.LastFetchDir != "" {
		if _, err := os.Stat(h.LastFetchDir); err == nil {
			return h.LastFetchDir
		}
	}
	return cfg.RepoDir
}

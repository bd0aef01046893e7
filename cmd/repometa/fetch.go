package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/repometa/internal/git"
	"github.com/raphi011/repometa/internal/history"
	"github.com/raphi011/repometa/internal/lock"
	"github.com/raphi011/repometa/internal/log"
	"github.com/raphi011/repometa/internal/repolist"
	"github.com/raphi011/repometa/internal/slug"
	"github.com/raphi011/repometa/internal/ui/progress"
)

// fetchStatus classifies the outcome of one CSV row.
type fetchStatus int

const (
	fetchCloned fetchStatus = iota
	fetchSkipped
	fetchInvalid
	fetchFailed
)

// fetchOutcome is the per-row result. Rows never abort the batch; the
// outcomes are aggregated into a summary at the end.
type fetchOutcome struct {
	URL    string
	Slug   string
	Status fetchStatus
	Err    error
}

// fetchParams holds parameters for a fetch run.
type fetchParams struct {
	csvPath      string
	column       string
	destDir      string
	showProgress bool
}

// cloneRepo is a variable so the clone step can be stubbed in tests.
var cloneRepo = git.Clone

// runFetch ensures a local clone exists for every URL in the CSV
// column. Only configuration problems (unreadable CSV, missing column,
// unusable destination) return an error; clone failures and invalid
// URLs are reported in the outcomes.
func runFetch(ctx context.Context, p fetchParams) ([]fetchOutcome, error) {
	l := log.FromContext(ctx)

	urls, err := repolist.ReadURLs(p.csvPath, p.column)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(p.destDir, 0755); err != nil {
		return nil, fmt.Errorf("create destination: %w", err)
	}

	lk := lock.New(lock.PathFor(p.destDir))
	if err := lk.Lock(); err != nil {
		return nil, fmt.Errorf("lock destination: %w", err)
	}
	defer lk.Unlock()

	var bar *progress.Bar
	if p.showProgress && len(urls) > 0 {
		bar = progress.Start(len(urls), "Cloning repositories")
		defer bar.Stop()
	}

	outcomes := make([]fetchOutcome, 0, len(urls))
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		out := fetchOne(ctx, p.destDir, url)
		outcomes = append(outcomes, out)
		if bar != nil {
			label := out.Slug
			if label == "" {
				label = out.URL
			}
			bar.Set(i+1, label)
		}
	}

	if err := history.RecordFetch(p.destDir); err != nil {
		l.Printf("Warning: failed to record fetch destination: %v\n", err)
	}

	return outcomes, nil
}

// fetchOne processes a single URL: derive the slug, skip existing
// clones, otherwise clone.
func fetchOne(ctx context.Context, destDir, url string) fetchOutcome {
	l := log.FromContext(ctx)
	out := fetchOutcome{URL: url}

	s, err := slug.Parse(url)
	if err != nil {
		out.Status = fetchInvalid
		out.Err = err
		l.Printf("skipping %s: not a GitHub repository URL\n", url)
		return out
	}
	out.Slug = s

	dest := filepath.Join(destDir, slug.Encode(s))
	if _, err := os.Stat(dest); err == nil {
		out.Status = fetchSkipped
		l.Printf("%s exists, skipping\n", s)
		return out
	}

	if err := cloneRepo(ctx, url, dest); err != nil {
		out.Status = fetchFailed
		out.Err = err
		l.Printf("clone %s failed: %v\n", s, err)
		return out
	}

	out.Status = fetchCloned
	l.Printf("cloned %s\n", s)
	return out
}

// countOutcomes tallies outcomes by status.
func countOutcomes(outcomes []fetchOutcome) (cloned, skipped, invalid, failed int) {
	for _, o := range outcomes {
		switch o.Status {
		case fetchCloned:
			cloned++
		case fetchSkipped:
			skipped++
		case fetchInvalid:
			invalid++
		case fetchFailed:
			failed++
		}
	}
	return
}

// Package metrics gathers per-repository metadata from cloned working
// copies. Collection is best-effort: a failing git query degrades the
// affected field to its zero value instead of failing the repository.
package metrics

import (
	"context"

	"github.com/raphi011/repometa/internal/git"
	"github.com/raphi011/repometa/internal/log"
)

// Record is one row of the metadata report.
type Record struct {
	Slug          string
	DefaultBranch string
	Commits       int
	FirstCommit   string // ISO-8601 author date, empty for empty history
	LastCommit    string
	Contributors  int
	SizeMB        int // whole megabytes, truncated
	Lines         int
}

// Collector gathers records from cloned repositories.
type Collector struct {
	counter *LineCounter
}

// NewCollector creates a collector using the given line counter.
func NewCollector(counter *LineCounter) *Collector {
	return &Collector{counter: counter}
}

// Collect gathers a record for the repository at path. Individual query
// failures are logged in verbose mode and leave the field zeroed; the
// returned record is always usable.
func (c *Collector) Collect(ctx context.Context, path, slug string) Record {
	l := log.FromContext(ctx)
	rec := Record{Slug: slug}

	branch, err := git.CurrentBranch(ctx, path)
	if err != nil {
		c.degrade(l, slug, err)
	} else {
		rec.DefaultBranch = branch
	}

	commits, err := git.CommitCount(ctx, path)
	if err != nil {
		c.degrade(l, slug, err)
	} else {
		rec.Commits = commits
	}

	first, last, err := git.CommitTimes(ctx, path)
	if err != nil {
		c.degrade(l, slug, err)
	} else {
		rec.FirstCommit = first
		rec.LastCommit = last
	}

	contributors, err := git.ContributorCount(ctx, path)
	if err != nil {
		c.degrade(l, slug, err)
	} else {
		rec.Contributors = contributors
	}

	rec.SizeMB = int(DirSizeBytes(path) / 1024 / 1024)

	lines, err := c.counter.Count(ctx, path)
	if err != nil {
		c.degrade(l, slug, err)
	} else {
		rec.Lines = lines
	}

	return rec
}

func (c *Collector) degrade(l *log.Logger, slug string, err error) {
	if l.Verbose() {
		l.Printf("%s: %v\n", slug, err)
	}
}

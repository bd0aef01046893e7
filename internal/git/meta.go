// Package git wraps the git binary for the metadata queries repometa
// needs. Every function takes the repository path explicitly.
package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// CurrentBranch returns the branch currently checked out at path.
// A detached HEAD reports "HEAD".
func CurrentBranch(ctx context.Context, path string) (string, error) {
	out, err := outputGit(ctx, path, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolve branch: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CommitCount returns the number of commits reachable from HEAD.
func CommitCount(ctx context.Context, path string) (int, error) {
	out, err := outputGit(ctx, path, "rev-list", "--count", "HEAD")
	if err != nil {
		return 0, fmt.Errorf("count commits: %w", err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, fmt.Errorf("parse commit count: %w", err)
	}
	return count, nil
}

// CommitTimes returns the first and last commit author timestamps in
// strict ISO-8601 format. Both are empty for an empty history.
func CommitTimes(ctx context.Context, path string) (first, last string, err error) {
	out, err := outputGit(ctx, path, "log", "--reverse", "--format=%aI")
	if err != nil {
		return "", "", fmt.Errorf("list commit times: %w", err)
	}

	var times []string
	for _, line := range strings.Split(string(out), "\n") {
		if t := strings.TrimSpace(line); t != "" {
			times = append(times, t)
		}
	}
	if len(times) == 0 {
		return "", "", nil
	}
	return times[0], times[len(times)-1], nil
}

// ContributorCount returns the number of distinct (author name, email)
// pairs in the history reachable from HEAD.
func ContributorCount(ctx context.Context, path string) (int, error) {
	// shortlog -sne prints one summary line per author identity
	out, err := outputGit(ctx, path, "shortlog", "-sne", "HEAD")
	if err != nil {
		return 0, fmt.Errorf("count contributors: %w", err)
	}

	count := 0
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count, nil
}

// LinesChanged returns the total number of added plus deleted lines
// across the whole history, from --numstat output. Binary file entries
// ("-" columns) contribute zero.
func LinesChanged(ctx context.Context, path string) (int, error) {
	out, err := outputGit(ctx, path, "log", "--pretty=tformat:", "--numstat")
	if err != nil {
		return 0, fmt.Errorf("sum line changes: %w", err)
	}

	total := 0
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Split(strings.TrimSpace(line), "\t")
		if len(fields) < 3 {
			continue
		}
		if added, err := strconv.Atoi(fields[0]); err == nil {
			total += added
		}
		if deleted, err := strconv.Atoi(fields[1]); err == nil {
			total += deleted
		}
	}
	return total, nil
}

// LsFiles returns the paths of all files tracked at HEAD, relative to
// the repository root.
func LsFiles(ctx context.Context, path string) ([]string, error) {
	out, err := outputGit(ctx, path, "ls-files", "-z")
	if err != nil {
		return nil, fmt.Errorf("list tracked files: %w", err)
	}

	var files []string
	for _, f := range strings.Split(string(out), "\x00") {
		if f != "" {
			files = append(files, f)
		}
	}
	return files, nil
}

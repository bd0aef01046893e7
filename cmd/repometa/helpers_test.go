package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/raphi011/repometa/internal/log"
)

// logCtx returns a context with a buffered logger attached.
func logCtx() context.Context {
	l := log.New(&bytes.Buffer{}, false, false)
	return log.WithLogger(context.Background(), l)
}

// gitRun executes git in dir, failing the test on error.
func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

// initRepoAt creates a git repository with a single commit at path.
func initRepoAt(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
	gitRun(t, path, "init", "-b", "main")
	gitRun(t, path, "config", "user.name", "Alice")
	gitRun(t, path, "config", "user.email", "alice@test.com")
	gitRun(t, path, "config", "commit.gpgsign", "false")

	if err := os.WriteFile(filepath.Join(path, "README.md"), []byte("# repo\n"), 0644); err != nil {
		t.Fatal(err)
	}
	gitRun(t, path, "add", "README.md")
	gitRun(t, path, "commit", "-m", "Initial commit")
}

// writeCSV writes a CSV file into a temp dir and returns its path.
func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// stubClone replaces cloneRepo for the duration of the test. The stub
// records cloned URLs and creates a git repository at the destination,
// or fails for URLs in failFor.
func stubClone(t *testing.T, calls *[]string, failFor map[string]bool) {
	t.Helper()
	orig := cloneRepo
	cloneRepo = func(ctx context.Context, url, dest string) error {
		if failFor[url] {
			return os.ErrPermission
		}
		*calls = append(*calls, url)
		initRepoAt(t, dest)
		return nil
	}
	t.Cleanup(func() { cloneRepo = orig })
}

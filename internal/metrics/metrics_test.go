package metrics

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// gitRun executes git in dir, failing the test on error.
func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

// setupRepo creates a repo matching the reference scenario: three
// commits by two authors on main, tracking a.txt (10 lines) and a
// binary logo.png.
func setupRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo := filepath.Join(dir, "acme__widget")
	if err := os.MkdirAll(repo, 0755); err != nil {
		t.Fatal(err)
	}

	gitRun(t, dir, "init", "-b", "main", repo)
	gitRun(t, repo, "config", "user.name", "Alice")
	gitRun(t, repo, "config", "user.email", "alice@test.com")
	gitRun(t, repo, "config", "commit.gpgsign", "false")

	tenLines := strings.Repeat("line\n", 10)
	if err := os.WriteFile(filepath.Join(repo, "a.txt"), []byte(tenLines), 0644); err != nil {
		t.Fatal(err)
	}
	gitRun(t, repo, "add", "a.txt")
	gitRun(t, repo, "commit", "-m", "Add a.txt")

	// PNG header bytes; content is irrelevant, the extension excludes it
	if err := os.WriteFile(filepath.Join(repo, "logo.png"), []byte("\x89PNG\r\n\x1a\n\x00\x01"), 0644); err != nil {
		t.Fatal(err)
	}
	gitRun(t, repo, "add", "logo.png")
	gitRun(t, repo, "-c", "user.name=Bob", "-c", "user.email=bob@test.com",
		"commit", "-m", "Add logo")

	if err := os.WriteFile(filepath.Join(repo, "a.txt"), []byte(tenLines), 0644); err != nil {
		t.Fatal(err)
	}
	gitRun(t, repo, "commit", "--allow-empty", "-m", "Third commit")

	return repo
}

func TestCollect(t *testing.T) {
	t.Parallel()
	repo := setupRepo(t)

	c := NewCollector(&LineCounter{})
	rec := c.Collect(context.Background(), repo, "acme/widget")

	if rec.Slug != "acme/widget" {
		t.Errorf("Slug = %q, want %q", rec.Slug, "acme/widget")
	}
	if rec.DefaultBranch != "main" {
		t.Errorf("DefaultBranch = %q, want %q", rec.DefaultBranch, "main")
	}
	if rec.Commits != 3 {
		t.Errorf("Commits = %d, want 3", rec.Commits)
	}
	if rec.Contributors != 2 {
		t.Errorf("Contributors = %d, want 2", rec.Contributors)
	}
	if rec.Lines != 10 {
		t.Errorf("Lines = %d, want 10 (logo.png excluded)", rec.Lines)
	}
	if rec.FirstCommit == "" || rec.LastCommit == "" {
		t.Errorf("commit times empty: first=%q last=%q", rec.FirstCommit, rec.LastCommit)
	}
	if rec.SizeMB < 0 {
		t.Errorf("SizeMB = %d, want >= 0", rec.SizeMB)
	}
}

func TestCollect_EmptyHistory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	repo := filepath.Join(dir, "empty")
	gitRun(t, dir, "init", "-b", "main", repo)

	c := NewCollector(&LineCounter{})
	rec := c.Collect(context.Background(), repo, "acme/empty")

	if rec.Commits != 0 {
		t.Errorf("Commits = %d, want 0", rec.Commits)
	}
	if rec.FirstCommit != "" || rec.LastCommit != "" {
		t.Errorf("commit times = (%q, %q), want empty", rec.FirstCommit, rec.LastCommit)
	}
	if rec.Contributors != 0 {
		t.Errorf("Contributors = %d, want 0", rec.Contributors)
	}
}

func TestDirSizeBytes(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "f"), make([]byte, 2048), 0644); err != nil {
		t.Fatal(err)
	}
	if got := DirSizeBytes(dir); got != 2048 {
		t.Errorf("DirSizeBytes = %d, want 2048", got)
	}
}

func TestDirSizeMB(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	// 1.5 MiB file
	if err := os.WriteFile(filepath.Join(dir, "f"), make([]byte, 3*512*1024), 0644); err != nil {
		t.Fatal(err)
	}
	if got := DirSizeMB(dir); got != 1.5 {
		t.Errorf("DirSizeMB = %v, want 1.5", got)
	}
}

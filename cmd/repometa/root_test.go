package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runRoot executes the root command with args, capturing stderr.
// Flag state on the shared rootCmd is reset afterwards.
func runRoot(t *testing.T, args ...string) (stderr string, err error) {
	t.Helper()

	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatal(pipeErr)
	}
	origStderr := os.Stderr
	os.Stderr = w

	t.Cleanup(func() {
		verbose = false
		quiet = false
		rootCmd.PersistentFlags().Lookup("verbose").Changed = false
		rootCmd.PersistentFlags().Lookup("quiet").Changed = false
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetContext(context.Background())
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()

	w.Close()
	os.Stderr = origStderr
	captured, readErr := io.ReadAll(r)
	r.Close()
	if readErr != nil {
		t.Fatal(readErr)
	}
	return string(captured), err
}

func TestVerboseFlagEchoesCommands(t *testing.T) {
	destDir := t.TempDir()
	initRepoAt(t, filepath.Join(destDir, "acme__widget"))

	stderr, err := runRoot(t, "collect", "--verbose", "--no-cloc",
		"--dir", destDir, "-o", filepath.Join(t.TempDir(), "out.tsv"))
	if err != nil {
		t.Fatalf("collect failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stderr, "$ git") {
		t.Errorf("expected git invocations echoed on stderr, got:\n%s", stderr)
	}
}

func TestQuietFlagSuppressesDiagnostics(t *testing.T) {
	stderr, err := runRoot(t, "slug", "--quiet", "not-a-repository-url")
	if err == nil {
		t.Fatal("expected an error for the invalid url")
	}
	if stderr != "" {
		t.Errorf("expected no stderr output with --quiet, got:\n%s", stderr)
	}
}

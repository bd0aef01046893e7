package metrics

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/raphi011/repometa/internal/cmd"
	"github.com/raphi011/repometa/internal/git"
)

// binaryExts lists file extensions excluded from line counting:
// images, video, audio, fonts, archives, executables, vector graphics.
var binaryExts = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {}, ".svg": {},
	".pdf": {}, ".zip": {}, ".gz": {}, ".tar": {}, ".7z": {},
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {}, ".bin": {},
	".mp4": {}, ".mov": {}, ".avi": {}, ".mkv": {},
	".ogg": {}, ".mp3": {}, ".wav": {}, ".flac": {},
	".ico": {}, ".ttf": {}, ".otf": {},
}

// LineCounter counts lines of code in a repository. When cloc is
// installed and enabled it is preferred; otherwise (or when cloc fails)
// lines are the newline counts of tracked non-binary files.
type LineCounter struct {
	useCloc bool
}

// NewLineCounter creates a line counter. cloc is only used when enabled
// here and present in PATH.
func NewLineCounter(allowCloc bool) *LineCounter {
	return &LineCounter{useCloc: allowCloc && HasCloc()}
}

// HasCloc reports whether the cloc binary is available.
func HasCloc() bool {
	_, err := exec.LookPath("cloc")
	return err == nil
}

// Count returns the line count for the repository at path.
func (c *LineCounter) Count(ctx context.Context, path string) (int, error) {
	if c.useCloc {
		if n, err := countWithCloc(ctx, path); err == nil {
			return n, nil
		}
		// cloc chokes on some repos; the naive count still works
	}
	return countTracked(ctx, path)
}

// countWithCloc runs cloc over the files known to git and returns the
// SUM.code total.
func countWithCloc(ctx context.Context, path string) (int, error) {
	out, err := cmd.OutputContext(ctx, path, "cloc", "--json", "--quiet", "--git", ".")
	if err != nil {
		return 0, err
	}

	var report struct {
		Sum struct {
			Code int `json:"code"`
		} `json:"SUM"`
	}
	if err := json.Unmarshal(out, &report); err != nil {
		return 0, err
	}
	return report.Sum.Code, nil
}

// countTracked sums newline counts over all tracked files whose
// extension is not in the binary/media exclusion set. Unreadable files
// contribute zero.
func countTracked(ctx context.Context, path string) (int, error) {
	files, err := git.LsFiles(ctx, path)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, rel := range files {
		ext := strings.ToLower(filepath.Ext(rel))
		if _, skip := binaryExts[ext]; skip {
			continue
		}
		total += countNewlines(filepath.Join(path, rel))
	}
	return total, nil
}

// countNewlines counts '\n' bytes in the file, matching wc -l.
func countNewlines(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	count := 0
	buf := make([]byte, 32*1024)
	for {
		n, err := f.Read(buf)
		for _, b := range buf[:n] {
			if b == '\n' {
				count++
			}
		}
		if err == io.EOF {
			return count
		}
		if err != nil {
			return count
		}
	}
}

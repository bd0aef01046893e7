package metrics

import (
	"io/fs"
	"path/filepath"
)

// DirSizeBytes sums the sizes of all regular files under path,
// including the .git directory. Files that cannot be inspected are
// skipped.
func DirSizeBytes(path string) int64 {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total
}

// DirSizeMB returns the directory size in megabytes with two-decimal
// precision, as reported by the analyze command.
func DirSizeMB(path string) float64 {
	mb := float64(DirSizeBytes(path)) / (1024 * 1024)
	return float64(int64(mb*100+0.5)) / 100
}

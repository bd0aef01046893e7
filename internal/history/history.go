// Package history remembers where the last fetch put its clones.
// This lets `repometa collect` run without flags right after a fetch
// that used a non-default destination.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// History stores the destination directory of the most recent fetch.
type History struct {
	LastFetchDir string `json:"last_fetch_dir"`
}

// Path returns the path to the history file.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".repometa", "history.json")
}

// Load reads the history from disk.
func Load() (*History, error) {
	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &History{}, nil
		}
		return nil, err
	}

	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		// Corrupted - start fresh
		return &History{}, nil
	}
	return &h, nil
}

// Save writes the history to disk atomically.
func (h *History) Save() error {
	historyPath := Path()

	if err := os.MkdirAll(filepath.Dir(historyPath), 0o755); err != nil {
		return err
	}

	tempPath := historyPath + ".tmp"

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tempPath, historyPath)
}

// RecordFetch saves dir as the most recent fetch destination.
func RecordFetch(dir string) error {
	h := &History{LastFetchDir: dir}
	return h.Save()
}

// Package config loads the repometa configuration file.
//
// Configuration lives at ~/.config/repometa/config.toml. Every value
// has a working default and every value can be overridden per run by a
// command-line flag; flags win over the file, the file wins over
// defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the repometa configuration.
type Config struct {
	CSVPath   string `toml:"csv_path"`   // source CSV of project URLs
	URLColumn string `toml:"url_column"` // header name of the URL column
	RepoDir   string `toml:"repo_dir"`   // destination for clones
	Output    string `toml:"output"`     // metadata report path
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		URLColumn: "Github",
		RepoDir:   "repos",
		Output:    "repometa.tsv",
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "repometa", "config.toml"), nil
}

// Load reads the config file, applying defaults for unset values.
// A missing file is not an error; it returns the defaults.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), fmt.Errorf("locate config: %w", err)
	}
	return loadFrom(path)
}

func loadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}

	for _, p := range []*string{&cfg.CSVPath, &cfg.RepoDir, &cfg.Output} {
		expanded, err := expandPath(*p)
		if err != nil {
			return cfg, err
		}
		*p = expanded
	}
	if cfg.URLColumn == "" {
		cfg.URLColumn = Default().URLColumn
	}
	return cfg, nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// defaultFileContent is written by `repometa config init`.
const defaultFileContent = `# repometa configuration
# Flags override these values; unset values fall back to defaults.

# Source CSV listing project repositories.
#csv_path = "projects.csv"

# Header name of the column holding repository URLs.
url_column = "Github"

# Destination directory for cloned repositories.
repo_dir = "repos"

# Metadata report written by repometa collect.
output = "repometa.tsv"
`

// WriteDefault writes a commented default config file at path.
// Fails if the file already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(defaultFileContent), 0644)
}

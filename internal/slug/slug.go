// Package slug derives owner/repo identifiers from GitHub URLs and
// encodes them into filesystem-safe directory names.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

// githubURL matches GitHub repository URLs: optional scheme, optional
// www. prefix, owner and repo segments, optional .git suffix, and any
// trailing path (subdirectory links, tree/blob views) which is ignored.
var githubURL = regexp.MustCompile(`^(?i)(?:https?://)?(?:www\.)?github\.com/([^/]+)/([^/]+?)(?:\.git)?(?:[/?#].*)?$`)

// Parse derives the owner/repo slug from a GitHub URL.
// Returns an error for URLs that do not point at a GitHub repository.
func Parse(rawURL string) (string, error) {
	m := githubURL.FindStringSubmatch(strings.TrimSpace(rawURL))
	if m == nil {
		return "", fmt.Errorf("not a GitHub repository URL: %q", rawURL)
	}
	return m[1] + "/" + m[2], nil
}

// Encode converts a slug to its filesystem-safe directory name by
// replacing the separator with a double underscore. The mapping is
// injective for valid owner/repo pairs: GitHub owner names cannot
// contain underscores, so the first "__" is always the separator.
func Encode(s string) string {
	return strings.ReplaceAll(s, "/", "__")
}

// Decode converts a directory name produced by Encode back to a slug.
func Decode(dir string) string {
	return strings.Replace(dir, "__", "/", 1)
}

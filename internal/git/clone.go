package git

import (
	"context"
	"fmt"
)

// Clone clones url into dest. Tags are skipped since only commit history
// is inspected afterwards, and protocol v2 is forced for faster ref
// advertisement on large hosts.
func Clone(ctx context.Context, url, dest string) error {
	if url == "" {
		return fmt.Errorf("clone: empty url")
	}
	return runGit(ctx, "", "-c", "protocol.version=2", "clone", "--no-tags", url, dest)
}

package static

import (
	"strings"
	"testing"
)

func TestRenderTable_Empty(t *testing.T) {
	t.Parallel()
	if got := RenderTable([]string{"repo_slug", "commits_count"}, nil); got != "" {
		t.Errorf("RenderTable with no rows = %q, want empty", got)
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()
	out := RenderTable(
		[]string{"repo_slug", "commits_count"},
		[][]string{
			{"acme/widget", "3"},
			{"globex/tool", "12"},
		},
	)

	for _, want := range []string{"repo_slug", "acme/widget", "globex/tool", "12"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderTable output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("RenderTable output does not end with newline")
	}
}

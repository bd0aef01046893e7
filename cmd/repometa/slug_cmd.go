package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/repometa/internal/log"
	"github.com/raphi011/repometa/internal/output"
	"github.com/raphi011/repometa/internal/slug"
)

func newSlugCmd() *cobra.Command {
	var encoded bool

	cmd := &cobra.Command{
		Use:     "slug <url>...",
		Short:   "Print the owner/repo slug for GitHub URLs",
		GroupID: GroupUtility,
		Args:    cobra.MinimumNArgs(1),
		Long: `Print the normalized owner/repo slug for each URL, one per line.
With --encoded the filesystem-safe directory name is printed instead,
matching the clone directories created by fetch.`,
		Example: `  repometa slug https://github.com/acme/widget.git
  repometa slug --encoded https://www.github.com/acme/widget/tree/main`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := output.FromContext(ctx)
			l := log.FromContext(ctx)

			var firstErr error
			for _, arg := range args {
				s, err := slug.Parse(arg)
				if err != nil {
					l.Printf("%v\n", err)
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				if encoded {
					s = slug.Encode(s)
				}
				p.Println(s)
			}
			return firstErr
		},
	}

	cmd.Flags().BoolVar(&encoded, "encoded", false, "print the filesystem-safe directory name")

	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/repometa/internal/config"
	"github.com/raphi011/repometa/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show the resolved configuration",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := output.FromContext(cmd.Context())

			path, err := config.Path()
			if err != nil {
				return err
			}

			p.Printf("config file: %s\n", path)
			p.Printf("csv_path:    %s\n", orUnset(cfg.CSVPath))
			p.Printf("url_column:  %s\n", cfg.URLColumn)
			p.Printf("repo_dir:    %s\n", cfg.RepoDir)
			p.Printf("output:      %s\n", cfg.Output)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := output.FromContext(cmd.Context())

			path, err := config.Path()
			if err != nil {
				return err
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			p.Println(path)
			return nil
		},
	})

	return cmd
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

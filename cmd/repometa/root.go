package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/repometa/internal/config"
	"github.com/raphi011/repometa/internal/git"
	"github.com/raphi011/repometa/internal/log"
	"github.com/raphi011/repometa/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Shared state injected into commands
	cfg config.Config
)

// Command group IDs for organizing help output
const (
	GroupPipeline = "pipeline"
	GroupUtility  = "utility"
	GroupConfig   = "config"
)

// commands that run without a git binary
var noGitCommands = map[string]bool{
	"completion": true,
	"__complete": true,
	"help":       true,
	"slug":       true,
	"config":     true,
	"init":       true,
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "repometa",
	Short: "Bulk-clone GitHub repositories from a CSV and collect their metadata",
	Long: `repometa clones every GitHub repository listed in a CSV column and
collects git and filesystem metadata (commit counts, contributors,
size, lines of code) for the clones into a tab-separated report.

The pipeline is two sequential steps sharing a repos/ directory:

  repometa fetch    # CSV -> cloned repositories
  repometa collect  # cloned repositories -> TSV report

repometa analyze runs both steps per repository against ephemeral
clones and writes a combined CSV report instead.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags are parsed at this point; the logger must be built here
		// so --verbose and --quiet take effect.
		ctx := cmd.Context()

		logger := log.New(os.Stderr, verbose, quiet)
		ctx = log.WithLogger(ctx, logger)

		// Add output printer (stdout for primary data)
		ctx = output.WithPrinter(ctx, os.Stdout)

		cmd.SetContext(ctx)

		if noGitCommands[cmd.Name()] {
			return nil
		}
		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = loadedCfg

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Store context for commands to use; the logger and printer are
	// attached in PersistentPreRunE once flags have been parsed
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupPipeline, Title: "Pipeline Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Pipeline commands
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newCollectCmd())
	rootCmd.AddCommand(newAnalyzeCmd())

	// Utility commands
	rootCmd.AddCommand(newSlugCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
}

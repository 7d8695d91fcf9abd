// Package cli implements the command-line interface for auditor.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

var rootCmd = &cobra.Command{
	Use:   "auditor",
	Short: "Terminal client for the document-audit service",
	Long: `Auditor uploads a document to the audit backend, runs it against a
compliance checklist category, and renders the resulting report: an overall
score, per-section check results, and improvement suggestions.

AI-provider connections used by the backend are managed with the
"connections" subcommands; exactly one connection is active at a time.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var (
	flagBaseURL string
	flagTimeout int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Backend API base URL (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "Request timeout in seconds (overrides config)")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(connectionsCmd)
	rootCmd.AddCommand(configCmd)
}

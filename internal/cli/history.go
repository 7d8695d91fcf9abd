package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coderite/auditor/internal/dirs"
	"github.com/coderite/auditor/internal/history"
	"github.com/coderite/auditor/internal/review"
)

var (
	historyFilter   string
	historyShowJSON bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved audit reports",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runHistoryList()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved audit report",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runHistoryShow(args[0])
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyFilter, "file", "f", "", "only show reports for documents matching this filename")
	historyShowCmd.Flags().BoolVar(&historyShowJSON, "json", false, "print the raw report as JSON")
	historyCmd.AddCommand(historyShowCmd)
}

func runHistoryList() error {
	entries, err := history.List(dirs.ReportsDir(), historyFilter)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No saved reports.")
		return nil
	}

	tty := stdoutIsTTY()
	for _, e := range entries {
		tier := review.ScoreTier(e.Score)
		fmt.Printf("%s  %s  %s  %s\n",
			maybeDim(tty, e.SavedAt.Format("2006-01-02 15:04")),
			maybeFgBold(tty, tierColor(tier), fmt.Sprintf("%3d", e.Score)),
			e.Filename,
			maybeDim(tty, e.ID))
	}
	return nil
}

func runHistoryShow(id string) error {
	report, err := history.Load(dirs.ReportsDir(), id)
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}

	if historyShowJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	writer := NewWriter(os.Stdout, stdoutIsTTY(), terminalWidth())
	writer.WriteReport(report.Filename, &report.Review)
	return nil
}

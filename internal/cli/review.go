package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coderite/auditor/internal/api"
	"github.com/coderite/auditor/internal/dirs"
	"github.com/coderite/auditor/internal/event"
	"github.com/coderite/auditor/internal/history"
	"github.com/coderite/auditor/internal/workflow"
)

var (
	flagCategory string
	flagJSON     bool
	flagNoSave   bool
)

var reviewCmd = &cobra.Command{
	Use:   "review <file>",
	Short: "Upload a document and run a compliance audit",
	Long: `Uploads a document to the backend for text extraction, then runs it
through the audit checklist of the active LLM connection.

The report is printed to stdout and saved under the local report history
unless --no-save is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReview(args[0])
	},
}

func init() {
	reviewCmd.Flags().StringVarP(&flagCategory, "category", "c", "", "document category for checklist selection")
	reviewCmd.Flags().BoolVar(&flagJSON, "json", false, "print the raw review response as JSON")
	reviewCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "do not save the report to history")
}

func runReview(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	category := flagCategory
	if category == "" {
		category = cfg.DefaultCategory
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	isTTY := stdoutIsTTY()
	writer := NewWriter(os.Stdout, isTTY && !flagJSON, terminalWidth())

	var handler event.Handler
	if !flagJSON {
		handler = writer.WriteEvent
	}

	// Analysis can take minutes on slow models, so the controller gets a
	// client with the longer analyze timeout.
	analyzeClient := api.NewHTTPClient(cfg.BaseURL, cfg.AnalysisTimeout())
	ctrl := workflow.NewController(analyzeClient, handler)

	res, err := ctrl.Submit(context.Background(), filepath.Base(path), f, category)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	} else {
		writer.WriteReport(filepath.Base(path), res)
	}

	if !flagNoSave {
		state := ctrl.State()
		id, err := history.Save(dirs.ReportsDir(), *state.Document, category, *res)
		if err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		if !flagJSON {
			writer.WriteEvent(event.Info("saved report " + id))
		}
	}

	return nil
}

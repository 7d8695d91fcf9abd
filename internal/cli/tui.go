package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coderite/auditor/internal/api"
	"github.com/coderite/auditor/internal/connection"
	"github.com/coderite/auditor/internal/dirs"
	"github.com/coderite/auditor/internal/domain"
	"github.com/coderite/auditor/internal/history"
	"github.com/coderite/auditor/internal/tui"
)

var (
	tuiCategory string
	tuiNoSave   bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui <file>",
	Short: "Audit a document in an interactive dashboard",
	Long: `Audit a document with a live terminal dashboard showing upload and
analysis progress, then the full report.

Controls:
  ↑/↓ - Scroll the report
  q   - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runTUI(args[0])
	},
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiCategory, "category", "c", "", "document category for checklist selection")
	tuiCmd.Flags().BoolVar(&tuiNoSave, "no-save", false, "do not save the report to history")
}

func runTUI(path string) error {
	cfg, client, err := loadClient()
	if err != nil {
		return err
	}

	category := tuiCategory
	if category == "" {
		category = cfg.DefaultCategory
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	ctx := context.Background()

	connLabel := ""
	mgr := connection.NewManager(client)
	if err := mgr.Refresh(ctx); err == nil {
		if active := mgr.Active(); active != nil {
			connLabel = fmt.Sprintf("%s (%s/%s)", active.Name, providerLabel(active.Provider), active.ModelName)
		}
	}

	filename := filepath.Base(path)
	analyzeClient := api.NewHTTPClient(cfg.BaseURL, cfg.AnalysisTimeout())

	t := tui.New(analyzeClient, filename, category, connLabel, cfg.BaseURL)
	res, err := t.Run(ctx, f)
	if err != nil {
		return err
	}
	if res == nil {
		// user quit before the analysis finished
		return nil
	}

	if !tuiNoSave {
		doc := domain.Document{Filename: filename}
		if state := t.State(); state.Document != nil {
			doc = *state.Document
		}
		if _, err := history.Save(dirs.ReportsDir(), doc, category, *res); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
	}

	return nil
}

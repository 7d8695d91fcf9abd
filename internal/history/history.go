// Package history persists completed audit reports to the local state
// directory so past results can be listed and re-rendered. One JSON file per
// report, named YYYYMMDD-HHMMSS-<filename>.json.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/coderite/auditor/internal/dirs"
	"github.com/coderite/auditor/internal/domain"
)

// Report is a saved audit result.
type Report struct {
	SavedAt  time.Time             `json:"saved_at"`
	Filename string                `json:"filename"`
	Category string                `json:"category,omitempty"`
	Review   domain.ReviewResponse `json:"review"`
}

// Entry is a directory listing item for a saved report. The full Report is
// loaded separately via Load.
type Entry struct {
	ID       string // filename without .json, also the argument to Load
	Path     string
	SavedAt  time.Time
	Filename string
	Category string
	Score    int
}

// Save writes a completed audit to reportsDir (dirs.ReportsDir when empty)
// and returns the entry ID.
func Save(reportsDir string, doc domain.Document, category string, review domain.ReviewResponse) (string, error) {
	if reportsDir == "" {
		reportsDir = dirs.ReportsDir()
	}
	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	report := Report{
		SavedAt:  time.Now(),
		Filename: doc.Filename,
		Category: category,
		Review:   review,
	}

	id := fmt.Sprintf("%s-%s", report.SavedAt.Format("20060102-150405"), sanitizeFilename(doc.Filename))
	path := filepath.Join(reportsDir, id+".json")

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return id, nil
}

// List returns the saved reports in reportsDir, newest first. An optional
// filename filter matches case-insensitively against the audited file name.
// Corrupt files are skipped rather than failing the whole listing.
func List(reportsDir, filenameFilter string) ([]Entry, error) {
	if reportsDir == "" {
		reportsDir = dirs.ReportsDir()
	}

	files, err := os.ReadDir(reportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no reports yet
		}
		return nil, err
	}

	var entries []Entry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}

		path := filepath.Join(reportsDir, f.Name())
		entry, ok := scanEntry(path, f.Name())
		if !ok {
			continue
		}

		if filenameFilter != "" && !strings.Contains(strings.ToLower(entry.Filename), strings.ToLower(filenameFilter)) {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SavedAt.After(entries[j].SavedAt)
	})
	return entries, nil
}

// Load reads one saved report by entry ID.
func Load(reportsDir, id string) (*Report, error) {
	if reportsDir == "" {
		reportsDir = dirs.ReportsDir()
	}

	data, err := os.ReadFile(filepath.Join(reportsDir, id+".json")) //nolint:gosec // user's own state dir
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", id, err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", id, err)
	}
	return &report, nil
}

// scanEntry extracts listing fields from a report file without unmarshalling
// the full review payload.
func scanEntry(path, name string) (Entry, bool) {
	data, err := os.ReadFile(path) //nolint:gosec // scanning our own state dir
	if err != nil || !gjson.ValidBytes(data) {
		return Entry{}, false
	}

	savedAt, err := time.Parse(time.RFC3339, gjson.GetBytes(data, "saved_at").String())
	if err != nil {
		return Entry{}, false
	}

	return Entry{
		ID:       strings.TrimSuffix(name, ".json"),
		Path:     path,
		SavedAt:  savedAt,
		Filename: gjson.GetBytes(data, "filename").String(),
		Category: gjson.GetBytes(data, "category").String(),
		Score:    int(gjson.GetBytes(data, "review.score").Int()),
	}, true
}

// sanitizeFilename replaces characters that are unsafe in filenames.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")
	return replacer.Replace(name)
}

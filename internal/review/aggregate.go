// Package review transforms a flat audit checklist into display groups and
// classifies the overall score. Everything here is pure: no I/O, no state.
package review

import "github.com/coderite/auditor/internal/domain"

// DefaultSection is the grouping label for items without a section.
const DefaultSection = "General"

// Section is one display group of checklist items.
type Section struct {
	Name  string
	Items []domain.ChecklistItem
}

// Group partitions the checklist into sections. Section order is the
// first-occurrence order of section labels in the input; item order within a
// section is preserved. Items without a section land in DefaultSection.
// Nothing is dropped or deduplicated.
func Group(items []domain.ChecklistItem) []Section {
	var sections []Section
	index := make(map[string]int)

	for _, item := range items {
		name := item.Section
		if name == "" {
			name = DefaultSection
		}
		i, ok := index[name]
		if !ok {
			i = len(sections)
			index[name] = i
			sections = append(sections, Section{Name: name})
		}
		sections[i].Items = append(sections[i].Items, item)
	}

	return sections
}

// Tier is the severity bucket of a compliance score.
type Tier int

const (
	// TierLow is a failing score (< 50).
	TierLow Tier = iota
	// TierMid is a marginal score (50–79).
	TierMid
	// TierHigh is a passing score (>= 80).
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMid:
		return "mid"
	default:
		return "low"
	}
}

// ScoreTier classifies a score into a tier. Scores outside [0,100] are not
// clamped; anything >= 80 is high, anything < 50 is low.
func ScoreTier(score int) Tier {
	switch {
	case score >= 80:
		return TierHigh
	case score >= 50:
		return TierMid
	default:
		return TierLow
	}
}

// Tally counts checklist verdicts for the report header.
type Tally struct {
	Pass    int
	Fail    int
	Warning int
}

// Count tallies the verdicts in the checklist. Unknown status values are
// ignored rather than rejected; the backend contract promises a closed set
// but the client stays permissive.
func Count(items []domain.ChecklistItem) Tally {
	var t Tally
	for _, item := range items {
		switch item.Status {
		case domain.StatusPass:
			t.Pass++
		case domain.StatusFail:
			t.Fail++
		case domain.StatusWarning:
			t.Warning++
		}
	}
	return t
}

package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coderite/auditor/internal/domain"
)

func item(section, name string, status domain.CheckStatus) domain.ChecklistItem {
	return domain.ChecklistItem{Section: section, Item: name, Status: status}
}

func TestGroupFirstOccurrenceOrder(t *testing.T) {
	items := []domain.ChecklistItem{
		item("B", "b1", domain.StatusPass),
		item("A", "a1", domain.StatusFail),
		item("B", "b2", domain.StatusWarning),
		item("C", "c1", domain.StatusPass),
	}

	sections := Group(items)
	require.Len(t, sections, 3)
	assert.Equal(t, "B", sections[0].Name)
	assert.Equal(t, "A", sections[1].Name)
	assert.Equal(t, "C", sections[2].Name)

	// Item order within a section follows input order.
	require.Len(t, sections[0].Items, 2)
	assert.Equal(t, "b1", sections[0].Items[0].Item)
	assert.Equal(t, "b2", sections[0].Items[1].Item)
}

func TestGroupIsPartition(t *testing.T) {
	items := []domain.ChecklistItem{
		item("X", "x1", domain.StatusPass),
		item("", "g1", domain.StatusFail),
		item("X", "x2", domain.StatusPass),
		item("", "g1", domain.StatusFail), // duplicate stays
		item("Y", "y1", domain.StatusWarning),
	}

	sections := Group(items)

	var total int
	for _, s := range sections {
		total += len(s.Items)
	}
	assert.Equal(t, len(items), total, "no item dropped or deduplicated")
}

func TestGroupDefaultSection(t *testing.T) {
	sections := Group([]domain.ChecklistItem{item("", "orphan", domain.StatusPass)})
	require.Len(t, sections, 1)
	assert.Equal(t, DefaultSection, sections[0].Name)
}

func TestGroupEmpty(t *testing.T) {
	assert.Empty(t, Group(nil))
	assert.Empty(t, Group([]domain.ChecklistItem{}))
}

func TestScoreTier(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{100, TierHigh},
		{80, TierHigh},
		{79, TierMid},
		{50, TierMid},
		{49, TierLow},
		{0, TierLow},
		// Out-of-range values are classified permissively, not rejected.
		{150, TierHigh},
		{-10, TierLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreTier(tt.score), "score=%d", tt.score)
	}
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "high", TierHigh.String())
	assert.Equal(t, "mid", TierMid.String())
	assert.Equal(t, "low", TierLow.String())
}

func TestCount(t *testing.T) {
	items := []domain.ChecklistItem{
		item("A", "1", domain.StatusPass),
		item("A", "2", domain.StatusFail),
		item("A", "3", domain.StatusPass),
		item("B", "4", domain.StatusWarning),
		item("B", "5", domain.CheckStatus("Unknown")),
	}

	tally := Count(items)
	assert.Equal(t, Tally{Pass: 2, Fail: 1, Warning: 1}, tally)
}

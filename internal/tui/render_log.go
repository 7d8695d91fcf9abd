package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/coderite/auditor/internal/domain"
	"github.com/coderite/auditor/internal/event"
	"github.com/coderite/auditor/internal/review"
)

// renderLog builds the main panel content: the event log while the audit is
// running, followed by the rendered report once it is done.
func (m Model) renderLog() string {
	var b strings.Builder

	for _, ev := range m.events {
		b.WriteString(m.renderEvent(ev))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(failedStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	if m.result != nil {
		b.WriteString("\n")
		b.WriteString(m.renderReport(m.result))
	}

	return b.String()
}

func (m Model) renderEvent(ev event.Event) string {
	prefix := eventPrefixStyle.Render("▶ ")
	switch ev.Kind {
	case event.KindUploadStarted:
		return prefix + labelStyle.Render("uploading ") + valueStyle.Render(ev.Text)
	case event.KindUploadDone:
		return prefix + labelStyle.Render("extracted ") + valueStyle.Render(ev.Text)
	case event.KindAnalyzeStarted:
		if ev.Text == "" {
			return prefix + labelStyle.Render("analyzing document")
		}
		return prefix + labelStyle.Render("analyzing against ") + valueStyle.Render(ev.Text)
	case event.KindAnalyzeDone:
		return prefix + labelStyle.Render("analysis complete ") + valueStyle.Render("("+ev.Text+")")
	case event.KindFailure:
		return failedStyle.Render("✗ ") + valueStyle.Render(ev.Text)
	case event.KindMarkdown:
		return m.renderMarkdown(ev.Text)
	default:
		return prefix + valueStyle.Render(ev.Text)
	}
}

func (m Model) renderReport(res *domain.ReviewResponse) string {
	var b strings.Builder

	for _, section := range review.Group(res.Checklist) {
		b.WriteString(phaseStyle.Render(section.Name))
		b.WriteString("\n")
		for _, item := range section.Items {
			b.WriteString("  ")
			b.WriteString(statusMark(item.Status))
			b.WriteString(" ")
			b.WriteString(valueStyle.Render(item.Item))
			b.WriteString("\n")
			if item.Comment != "" {
				b.WriteString(labelStyle.Render("      " + item.Comment))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	if len(res.Suggestions) > 0 {
		b.WriteString(phaseStyle.Render("Suggestions"))
		b.WriteString("\n")
		for i, s := range res.Suggestions {
			b.WriteString(labelStyle.Render(fmt.Sprintf("  %d. ", i+1)))
			b.WriteString(valueStyle.Render(s))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if res.RewrittenContent != "" {
		b.WriteString(phaseStyle.Render("Rewritten Document"))
		b.WriteString("\n")
		b.WriteString(m.renderMarkdown(res.RewrittenContent))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderMarkdown(text string) string {
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(text); err == nil {
			return strings.TrimRight(rendered, "\n")
		}
	}
	return text
}

func statusMark(status domain.CheckStatus) string {
	switch status {
	case domain.StatusPass:
		return passStyle.Render("✓")
	case domain.StatusFail:
		return failStyle.Render("✗")
	case domain.StatusWarning:
		return warnStyle.Render("!")
	default:
		return labelStyle.Render("?")
	}
}

func scoreStyleFor(score int) lipgloss.Style {
	switch review.ScoreTier(score) {
	case review.TierHigh:
		return scoreHighStyle
	case review.TierMid:
		return scoreMidStyle
	default:
		return scoreLowStyle
	}
}

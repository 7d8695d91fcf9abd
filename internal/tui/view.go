package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/coderite/auditor/internal/review"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	sidebarWidth := max(40, min(55, m.width*35/100))
	mainWidth := m.width - sidebarWidth - 4
	contentHeight := m.height - 3

	sidebar := m.renderSidebar(sidebarWidth - 4)
	sidebarBox := statusBoxStyle.Width(sidebarWidth).Height(contentHeight).Render(sidebar)

	logHeader := "Audit log"
	if m.logViewport.TotalLineCount() > 0 {
		logHeader = fmt.Sprintf("Audit log (%d lines, %d%%)", m.logViewport.TotalLineCount(), int(m.logViewport.ScrollPercent()*100))
	}

	logsContent := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render(logHeader) + "\n" + m.logViewport.View()

	logsBox := logBoxStyle.Width(mainWidth).Height(contentHeight).Render(logsContent)

	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebarBox, logsBox)
	return main + "\n" + m.renderHelp()
}

func (m Model) renderSidebar(width int) string {
	var b strings.Builder

	b.WriteString(m.renderSidebarHeader(width))
	b.WriteString(m.renderSidebarDocument(width))
	b.WriteString(m.renderSidebarBackend(width))
	b.WriteString(m.renderSidebarResult(width))

	return b.String()
}

func (m Model) renderSidebarHeader(width int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("⚡ AUDITOR"))
	b.WriteString("\n\n")

	stateIndicator := m.getStateIndicator()
	elapsed := formatDuration(time.Since(m.startTime))
	padding := width - lipgloss.Width(stateIndicator) - len(elapsed) - 2
	if padding > 0 {
		b.WriteString(stateIndicator)
		b.WriteString(strings.Repeat(" ", padding))
		b.WriteString(valueStyle.Render(elapsed))
	} else {
		b.WriteString(stateIndicator)
		b.WriteString("  ")
		b.WriteString(valueStyle.Render(elapsed))
	}
	b.WriteString("\n\n")

	return b.String()
}

func (m Model) getStateIndicator() string {
	switch m.runState {
	case stateRunning:
		return runningStyle.Render(m.spinner.View() + " Auditing")
	case stateFailed:
		return failedStyle.Render("✗ FAILED")
	case stateComplete:
		return runningStyle.Render("✓ COMPLETE")
	default:
		return ""
	}
}

func (m Model) renderSidebarDocument(width int) string {
	var b strings.Builder

	b.WriteString(sectionHeader("Document", width))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(wrapText(m.filename, width, "  ", 2)))
	b.WriteString("\n")
	if m.category != "" {
		b.WriteString(labelStyle.Render("Category: "))
		b.WriteString(valueStyle.Render(m.category))
	} else {
		b.WriteString(labelStyle.Render("Category: "))
		b.WriteString(valueStyle.Render("general"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderSidebarBackend(width int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(sectionHeader("Backend", width))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("URL: "))
	b.WriteString(valueStyle.Render(wrapText(m.baseURL, width-5, "  ", 2)))
	b.WriteString("\n")
	if m.connection != "" {
		b.WriteString(labelStyle.Render("Via: "))
		b.WriteString(valueStyle.Render(wrapText(m.connection, width-5, "  ", 2)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderSidebarResult(width int) string {
	if m.result == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(sectionHeader("Result", width))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Score:   "))
	b.WriteString(scoreStyleFor(m.result.Score).Render(fmt.Sprintf("%d / 100", m.result.Score)))
	b.WriteString("\n")

	tally := review.Count(m.result.Checklist)
	b.WriteString(labelStyle.Render("Checks:  "))
	b.WriteString(passStyle.Render(fmt.Sprintf("%d✓", tally.Pass)))
	b.WriteString(" ")
	b.WriteString(failStyle.Render(fmt.Sprintf("%d✗", tally.Fail)))
	b.WriteString(" ")
	b.WriteString(warnStyle.Render(fmt.Sprintf("%d!", tally.Warning)))
	b.WriteString("\n")

	if m.runState == stateComplete {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press q to quit"))
	}

	return b.String()
}

func (m Model) renderHelp() string {
	parts := []string{"↑/↓: scroll", "q: quit"}
	return helpStyle.Render(strings.Join(parts, " • "))
}

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/coderite/auditor/internal/domain"
	"github.com/coderite/auditor/internal/event"
)

type runState int

const (
	stateRunning runState = iota
	stateComplete
	stateFailed
)

// Model is the bubbletea model for the audit TUI.
type Model struct {
	filename    string
	category    string
	connection  string
	baseURL     string
	events      []event.Event
	result      *domain.ReviewResponse
	err         error
	logViewport viewport.Model
	spinner     spinner.Model
	width       int
	height      int
	runState    runState
	ready       bool
	renderer    *glamour.TermRenderer
	startTime   time.Time
}

// NewModel creates a new Model for auditing the given document.
func NewModel(filename, category, connection, baseURL string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		filename:   filename,
		category:   category,
		connection: connection,
		baseURL:    baseURL,
		spinner:    s,
		runState:   stateRunning,
		startTime:  time.Now(),
	}
}

// EventMsg carries a typed workflow event from the audit session.
type EventMsg struct {
	Event event.Event
}

// AuditDoneMsg signals the upload+analyze sequence has finished.
type AuditDoneMsg struct {
	Result *domain.ReviewResponse
	Err    error
}

type rendererReadyMsg struct {
	renderer *glamour.TermRenderer
}

// Package tui implements the interactive audit dashboard using bubbletea.
package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/coderite/auditor/internal/domain"
	"github.com/coderite/auditor/internal/event"
	"github.com/coderite/auditor/internal/workflow"
)

// TUI owns the bubbletea program and the audit session behind it.
type TUI struct {
	program *tea.Program
	model   Model
	gw      workflow.Gateway
	ctrl    *workflow.Controller
}

// New creates a TUI for auditing one document through the given gateway.
func New(gw workflow.Gateway, filename, category, connection, baseURL string) *TUI {
	return &TUI{
		model: NewModel(filename, category, connection, baseURL),
		gw:    gw,
	}
}

// Run starts the audit and blocks until the user quits. The document content
// is consumed once; quitting early cancels the in-flight request.
func (t *TUI) Run(ctx context.Context, content io.Reader) (*domain.ReviewResponse, error) {
	eventChan := make(chan EventMsg, 100)
	doneChan := make(chan AuditDoneMsg, 1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.ctrl = workflow.NewController(t.gw, func(ev event.Event) {
		select {
		case eventChan <- EventMsg{Event: ev}:
		default:
		}
	})

	t.program = tea.NewProgram(t.model, tea.WithAltScreen())

	go func() {
		result, err := t.ctrl.Submit(ctx, t.model.filename, content, t.model.category)
		doneChan <- AuditDoneMsg{Result: result, Err: err}
	}()

	go func() {
		for {
			select {
			case ev := <-eventChan:
				t.program.Send(ev)
			case done := <-doneChan:
				t.program.Send(done)
				return
			}
		}
	}()

	finalModel, err := t.program.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(Model)
	if m.err != nil {
		return m.result, m.err
	}
	return m.result, nil
}

// State returns a snapshot of the audit session. After a successful Run it
// carries the extracted document alongside the result.
func (t *TUI) State() workflow.State {
	if t.ctrl == nil {
		return workflow.State{}
	}
	return t.ctrl.State()
}

package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/coderite/auditor/internal/debug"
)

func createRendererCmd(width int) tea.Cmd {
	return func() tea.Msg {
		viewportWidth := max(width-6, 40)
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(viewportWidth),
		)
		if err != nil {
			debug.Logf("tui: failed to create glamour renderer: %v", err)
		}
		return rendererReadyMsg{renderer: renderer}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.WindowSize())
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k", "down", "j", "pgup", "ctrl+u", "pgdown", "ctrl+d":
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		sidebarWidth := max(40, min(55, m.width*35/100))
		mainWidth := m.width - sidebarWidth - 4
		contentHeight := m.height - 3

		viewportWidth := mainWidth - 4
		logHeight := contentHeight - 4

		if !m.ready {
			m.logViewport = viewport.New(viewportWidth, logHeight)
			m.logViewport.SetContent(m.renderLog())
			m.ready = true
			cmds = append(cmds, createRendererCmd(mainWidth))
		} else {
			m.logViewport.Width = viewportWidth
			m.logViewport.Height = logHeight
			m.logViewport.SetContent(m.renderLog())
		}

	case rendererReadyMsg:
		m.renderer = msg.renderer
		m.logViewport.SetContent(m.renderLog())

	case EventMsg:
		m.events = append(m.events, msg.Event)
		atBottom := m.logViewport.AtBottom()
		m.logViewport.SetContent(m.renderLog())
		if atBottom {
			m.logViewport.GotoBottom()
		}

	case AuditDoneMsg:
		m.result = msg.Result
		m.err = msg.Err
		if msg.Err != nil {
			m.runState = stateFailed
		} else {
			m.runState = stateComplete
		}
		m.logViewport.SetContent(m.renderLog())
		m.logViewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// Package tui is the terminal compose screen: a Bubble Tea model driving an entry.Controller.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/jot/pkg/entry"
)

// Model renders the controller state and translates key presses into controller calls.
type Model struct {
	ctx      context.Context
	ctrl     *entry.Controller
	bridge   *Bridge
	textarea textarea.Model

	state  entry.State
	notice *entry.Notice
	width  int
	quit   bool
}

// New builds the compose screen. The bridge must be the one wired into ctrl.
func New(ctx context.Context, ctrl *entry.Controller, bridge *Bridge) Model {
	ta := textarea.New()
	ta.Placeholder = "Escreva sua nota..."
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(6)

	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		bridge:   bridge,
		textarea: ta,
	}
	m.sync()
	return m
}

// Init starts listening for engine-driven updates.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.bridge.waitForChange(),
		m.bridge.waitForNotice(),
	)
}

// State returns the controller snapshot the model last rendered.
func (m Model) State() entry.State { return m.state }

// Notice returns the most recent notice, if any.
func (m Model) Notice() (entry.Notice, bool) {
	if m.notice == nil {
		return entry.Notice{}, false
	}
	return *m.notice, true
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 8 {
			m.textarea.SetWidth(msg.Width - 6)
		}
		return m, nil

	case changedMsg:
		m.sync()
		return m, m.bridge.waitForChange()

	case noticeMsg:
		n := entry.Notice(msg)
		m.notice = &n
		m.sync()
		return m, m.bridge.waitForNotice()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state.Phase == entry.PhaseEditing {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return m.exit()
	}

	switch m.state.Phase {
	case entry.PhaseOnboarding:
		switch {
		case key.Matches(msg, keys.Quit):
			return m.exit()
		case key.Matches(msg, keys.Record):
			_ = m.ctrl.StartRecording(m.ctx)
		case key.Matches(msg, keys.Type):
			m.ctrl.StartEditing()
		}

	case entry.PhaseEditing:
		switch {
		case key.Matches(msg, keys.Submit):
			_ = m.ctrl.Submit()
		case key.Matches(msg, keys.Cancel):
			m.ctrl.Cancel()
		case key.Matches(msg, keys.Stop):
			// Nothing to stop. Dictation never starts over a typed draft.
		default:
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			m.ctrl.SetContent(m.textarea.Value())
			m.sync()
			return m, cmd
		}

	case entry.PhaseRecording:
		switch {
		case key.Matches(msg, keys.Stop):
			m.ctrl.StopRecording()
		case key.Matches(msg, keys.Submit):
			_ = m.ctrl.Submit()
		case key.Matches(msg, keys.Cancel):
			m.ctrl.Cancel()
		}
	}

	m.sync()
	return m, nil
}

func (m Model) exit() (tea.Model, tea.Cmd) {
	m.ctrl.Close()
	m.quit = true
	return m, tea.Quit
}

// sync pulls the controller snapshot into the view. The editor only owns its
// text while editing; in every other phase the draft is authoritative.
func (m *Model) sync() {
	m.state = m.ctrl.Snapshot()
	if m.state.Phase == entry.PhaseEditing {
		if m.textarea.Value() != m.state.Draft.Content {
			m.textarea.SetValue(m.state.Draft.Content)
		}
		if !m.textarea.Focused() {
			m.textarea.Focus()
		}
		return
	}
	m.textarea.Blur()
	if m.textarea.Value() != m.state.Draft.Content {
		m.textarea.SetValue(m.state.Draft.Content)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder
	badge := phaseStyle.Render(phaseLabel(m.state.Phase))
	if m.state.Phase == entry.PhaseRecording {
		badge = recordingStyle.Render(phaseLabel(m.state.Phase))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, titleStyle.Render("jot"), "  ", badge))
	b.WriteString("\n\n")

	switch m.state.Phase {
	case entry.PhaseOnboarding:
		b.WriteString(bodyStyle.Render("Comece gravando uma nota em áudio ou, se preferir, utilize apenas texto."))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(helpLine(keys.Record, keys.Type, keys.Quit)))
	case entry.PhaseEditing:
		b.WriteString(bodyStyle.Render(m.textarea.View()))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(helpLine(keys.Submit, keys.Cancel)))
	case entry.PhaseRecording:
		transcript := m.state.Draft.Content
		if transcript == "" {
			transcript = helpStyle.Render("Ouvindo...")
		}
		b.WriteString(bodyStyle.Render(transcript))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(helpLine(keys.Stop, keys.Submit, keys.Cancel)))
	}

	if m.notice != nil {
		style, ok := noticeStyles[string(m.notice.Level)]
		if !ok {
			style = helpStyle
		}
		b.WriteString("\n\n")
		b.WriteString(style.Render(m.notice.Message))
	}
	b.WriteString("\n")
	return b.String()
}

func phaseLabel(p entry.Phase) string {
	switch p {
	case entry.PhaseEditing:
		return "texto"
	case entry.PhaseRecording:
		return "● gravando"
	default:
		return "nova nota"
	}
}

// Run starts the compose screen on the terminal and blocks until the user quits.
func Run(ctx context.Context, ctrl *entry.Controller, bridge *Bridge, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(ctx, ctrl, bridge), opts...).Run()
	return err
}

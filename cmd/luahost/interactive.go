package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/lua-runtime/engine"
	"github.com/wippyai/lua-runtime/resource"
	"github.com/wippyai/lua-runtime/runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#000080")).
			Padding(0, 1)

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	stackStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Width(36)
)

// historyLimit bounds the command log shown on screen.
const historyLimit = 12

type logEntry struct {
	err     error
	command string
	output  string
}

type interactiveModel struct {
	rt      *runtime.Runtime
	handle  resource.Handle
	shell   shell
	input   textinput.Model
	history []logEntry
	stack   string
	busy    bool
}

type execResultMsg struct {
	entry logEntry
	stack string
}

func newInteractiveModel(rt *runtime.Runtime, h resource.Handle) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "doString print('hello')"
	ti.Prompt = "lua> "
	ti.Width = 60
	ti.Focus()
	return &interactiveModel{rt: rt, handle: h, input: ti, stack: "(empty)"}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			if line == "" || m.busy {
				return m, nil
			}
			m.input.SetValue("")
			m.busy = true
			return m, m.execute(line)
		}

	case execResultMsg:
		m.busy = false
		m.history = append(m.history, msg.entry)
		if len(m.history) > historyLimit {
			m.history = m.history[len(m.history)-historyLimit:]
		}
		if msg.stack != "" {
			m.stack = msg.stack
		}
		m.input.Prompt = m.shell.prompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// execute runs line on the state's session. The stack snapshot is taken in
// the same job so it matches the result.
func (m *interactiveModel) execute(line string) tea.Cmd {
	return func() tea.Msg {
		entry := logEntry{command: line}
		var stack string
		err := m.rt.Do(context.Background(), m.handle, func(s *engine.State) error {
			out, err := m.shell.exec(s, line)
			entry.output = out
			target := s
			if m.shell.thread != nil {
				target = m.shell.thread
			}
			stack = dumpStack(target)
			return err
		})
		entry.err = err
		return execResultMsg{entry: entry, stack: stack}
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Lua Host"))
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf("state #%d", m.handle))
	b.WriteString("\n\n")

	var log strings.Builder
	for _, e := range m.history {
		log.WriteString(commandStyle.Render("> " + e.command))
		log.WriteString("\n")
		switch {
		case e.err != nil:
			log.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", e.err)))
			log.WriteString("\n")
		case e.output != "":
			log.WriteString(resultStyle.Render(e.output))
			log.WriteString("\n")
		}
	}

	stack := stackStyle.Render("stack (top first)\n\n" + m.stack)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(64).Render(log.String()), stack))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter run • help lists commands • esc quit"))

	return b.String()
}

func runInteractive(rt *runtime.Runtime, h resource.Handle) error {
	p := tea.NewProgram(newInteractiveModel(rt, h), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

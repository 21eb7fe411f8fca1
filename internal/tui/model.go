// Package tui is an interactive terminal version of the explorer form.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vilaca/api-explorer/internal/domain"
	"github.com/vilaca/api-explorer/internal/explorer"
	"github.com/vilaca/api-explorer/internal/terminal"
)

// actionDoneMsg reports that a session action finished.
type actionDoneMsg struct {
	err error
}

// Model is the bubbletea model driving an explorer.Session.
type Model struct {
	ctx      context.Context
	timeout  time.Duration
	session  *explorer.Session
	renderer *terminal.Renderer
	styles   terminal.Styles

	input   textinput.Model
	spinner spinner.Model
	busy    bool
	width   int
}

// New creates a model bound to session. Actions run with ctx and timeout.
func New(ctx context.Context, session *explorer.Session, renderer *terminal.Renderer, timeout time.Duration) Model {
	styles := renderer.Styles()

	ti := textinput.New()
	ti.Placeholder = "Enter GitHub username"
	ti.Prompt = "│ "
	ti.CharLimit = 39
	ti.Width = 40
	ti.SetValue(session.View().Username)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Title

	return Model{
		ctx:      ctx,
		timeout:  timeout,
		session:  session,
		renderer: renderer,
		styles:   styles,
		input:    ti,
		spinner:  sp,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyLeft, tea.KeyRight:
			if m.busy {
				return m, nil
			}
			step := 1
			if msg.Type == tea.KeyLeft {
				step = -1
			}
			id := m.neighbourBackend(step)
			return m.start(func(ctx context.Context) error {
				return m.session.SelectBackend(ctx, id)
			})

		case tea.KeyTab:
			if m.busy {
				return m, nil
			}
			next := domain.EndpointAnalyze
			if m.session.View().Endpoint == domain.EndpointAnalyze {
				next = domain.EndpointGitHub
			}
			return m.start(func(ctx context.Context) error {
				return m.session.SelectEndpoint(ctx, next)
			})

		case tea.KeyEnter:
			if m.busy || strings.TrimSpace(m.input.Value()) == "" {
				return m, nil
			}
			return m.start(m.session.Submit)
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.session.SetUsername(m.input.Value())
		return m, cmd

	case actionDoneMsg:
		m.busy = false
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(10, msg.Width-6)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// start runs action off the UI goroutine and shows the spinner until it ends.
func (m Model) start(action func(ctx context.Context) error) (tea.Model, tea.Cmd) {
	m.busy = true
	ctx, timeout := m.ctx, m.timeout

	run := func() tea.Msg {
		actionCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return actionDoneMsg{err: action(actionCtx)}
	}
	return m, tea.Batch(run, m.spinner.Tick)
}

// neighbourBackend returns the id step positions away from the selected backend, wrapping.
func (m Model) neighbourBackend(step int) string {
	view := m.session.View()
	if len(view.Backends) == 0 {
		return ""
	}

	current := 0
	for i, b := range view.Backends {
		if b.ID == view.Backend.ID {
			current = i
			break
		}
	}
	n := len(view.Backends)
	return view.Backends[((current+step)%n+n)%n].ID
}

func (m Model) View() string {
	view := m.session.View()
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("API Explorer"))
	sb.WriteString("\n\n")

	chips := make([]string, 0, len(view.Backends))
	for _, b := range view.Backends {
		chips = append(chips, m.chip(b.Label, b.ID == view.Backend.ID))
	}
	sb.WriteString(strings.Join(chips, " "))
	sb.WriteString("\n\n")

	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")

	endpoints := make([]string, 0, len(view.Endpoints))
	for _, ep := range view.Endpoints {
		endpoints = append(endpoints, m.chip(ep.Label(), ep == view.Endpoint))
	}
	sb.WriteString(strings.Join(endpoints, " "))
	sb.WriteString("\n\n")

	if m.busy || view.Loading {
		sb.WriteString(m.spinner.View() + " Fetching...\n\n")
	}

	if out := m.renderer.RenderString(view); out != "" {
		sb.WriteString(out)
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Muted.Render("←/→ backend • tab endpoint • enter fetch • esc quit"))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) chip(label string, active bool) string {
	if active {
		return m.styles.Active.Render("[" + label + "]")
	}
	return m.styles.Chip.Render(" " + label + " ")
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, session *explorer.Session, renderer *terminal.Renderer, timeout time.Duration) error {
	p := tea.NewProgram(New(ctx, session, renderer, timeout), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

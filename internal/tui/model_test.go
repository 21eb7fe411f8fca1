package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilaca/api-explorer/internal/domain"
	"github.com/vilaca/api-explorer/internal/explorer"
	"github.com/vilaca/api-explorer/internal/terminal"
)

// recordingFetcher is a test double for explorer.Fetcher.
type recordingFetcher struct {
	mu    sync.Mutex
	calls []string
}

func (f *recordingFetcher) Fetch(ctx context.Context, backend domain.Backend, endpoint domain.Endpoint, username string) (*domain.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, backend.ID+"/"+string(endpoint)+"/"+username)
	f.mu.Unlock()

	if endpoint == domain.EndpointAnalyze {
		return &domain.Result{Endpoint: endpoint, Analysis: &domain.Analysis{Login: username, PublicRepos: 1}}, nil
	}
	return &domain.Result{Endpoint: endpoint, Raw: []byte(`{"login":"` + username + `"}`), GitHub: &domain.GitHubUser{Login: username}}, nil
}

func (f *recordingFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func newTestModel(t *testing.T) (Model, *explorer.Session, *recordingFetcher) {
	t.Helper()

	fetcher := &recordingFetcher{}
	session := explorer.NewSession(explorer.SessionConfig{
		Fetcher:  fetcher,
		Registry: explorer.NewRegistry(domain.DefaultBackends()),
	})
	renderer, err := terminal.NewRenderer(false, 80)
	require.NoError(t, err)

	return New(context.Background(), session, renderer, time.Second), session, fetcher
}

// send feeds msg to the model and runs any action it starts to completion.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, cmd := m.Update(msg)
	m = next.(Model)
	for _, done := range runCmd(cmd) {
		next, _ = m.Update(done)
		m = next.(Model)
	}
	return m
}

// runCmd executes cmd, expanding batches, and returns the action results.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	case actionDoneMsg:
		return []tea.Msg{msg}
	default:
		return nil
	}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		// Typing only returns cursor blink commands; they are not run.
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestModel_TypingUpdatesSession(t *testing.T) {
	m, session, fetcher := newTestModel(t)

	typeText(t, m, "octocat")

	assert.Equal(t, "octocat", session.View().Username)
	assert.Empty(t, fetcher.Calls())
}

func TestModel_EnterWithBlankUsernameIsNoop(t *testing.T) {
	m, _, fetcher := newTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.busy)
	assert.Empty(t, fetcher.Calls())
}

func TestModel_EnterFetches(t *testing.T) {
	m, session, fetcher := newTestModel(t)
	m = typeText(t, m, "octocat")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.busy)
	assert.Equal(t, []string{"node/github/octocat"}, fetcher.Calls())
	require.NotNil(t, session.View().Result)
	assert.Contains(t, m.View(), `"login": "octocat"`)
}

// TestModel_ArrowsCycleBackends tests that arrows move the selection and re-fetch.
func TestModel_ArrowsCycleBackends(t *testing.T) {
	m, session, fetcher := newTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, domain.BackendDeno, session.View().Backend.ID)
	assert.Empty(t, fetcher.Calls(), "no username, no fetch")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, domain.BackendNode, session.View().Backend.ID)

	m = typeText(t, m, "octocat")
	send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, domain.BackendFastAPI, session.View().Backend.ID)
	assert.Equal(t, []string{"fastapi/github/octocat"}, fetcher.Calls())
}

func TestModel_TabTogglesEndpoint(t *testing.T) {
	m, session, fetcher := newTestModel(t)
	m = typeText(t, m, "octocat")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.EndpointAnalyze, session.View().Endpoint)
	assert.Contains(t, m.View(), "Login: octocat")

	send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.EndpointGitHub, session.View().Endpoint)
	assert.Equal(t, []string{"node/analyze/octocat", "node/github/octocat"}, fetcher.Calls())
}

func TestModel_IgnoresSelectionWhileBusy(t *testing.T) {
	m, session, _ := newTestModel(t)
	m.busy = true

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})

	assert.Nil(t, cmd)
	assert.True(t, next.(Model).busy)
	assert.Equal(t, domain.BackendNode, session.View().Backend.ID)
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestModel_View(t *testing.T) {
	m, _, _ := newTestModel(t)

	out := m.View()

	assert.True(t, strings.HasPrefix(out, "API Explorer"))
	assert.Contains(t, out, "[Node.js]")
	assert.Contains(t, out, " Deno ")
	assert.Contains(t, out, "[GitHub Data]")
	assert.Contains(t, out, "esc quit")
	assert.NotContains(t, out, "Fetching...")
}

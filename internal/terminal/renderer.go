package terminal

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vilaca/api-explorer/internal/domain"
	"github.com/vilaca/api-explorer/internal/explorer"
)

// barWidth is the width of a 100% chart bar.
const barWidth = 40

// Renderer formats an explorer view as terminal text.
type Renderer struct {
	styled   bool
	styles   Styles
	markdown *glamour.TermRenderer
}

// NewRenderer creates a renderer. With styled false the output is plain text
// suitable for pipes and tests.
func NewRenderer(styled bool, wordWrap int) (*Renderer, error) {
	r := &Renderer{styled: styled, styles: PlainStyles()}
	if !styled {
		return r, nil
	}

	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	r.markdown = md
	r.styles = DefaultStyles()
	return r, nil
}

// Styles returns the styles in use.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Render writes the outcome part of view: error, cache status and result.
func (r *Renderer) Render(w io.Writer, view explorer.View) error {
	_, err := io.WriteString(w, r.RenderString(view))
	return err
}

// RenderString returns what Render writes.
func (r *Renderer) RenderString(view explorer.View) string {
	var sb strings.Builder

	if view.Error != "" {
		sb.WriteString(r.styles.Error.Render(view.Error))
		sb.WriteString("\n")
	}
	if view.CacheStatus != "" {
		sb.WriteString(r.styles.Cache.Render("Cache: " + view.CacheStatus))
		sb.WriteString("\n")
	}

	if view.Result == nil {
		return sb.String()
	}

	switch view.Result.Endpoint {
	case domain.EndpointGitHub:
		sb.WriteString(r.renderJSON(view.Result.PrettyJSON()))
	case domain.EndpointAnalyze:
		if view.Result.Analysis != nil {
			sb.WriteString(r.renderAnalysis(view.Result.Analysis, view.Chart))
		}
	}
	return sb.String()
}

// renderJSON highlights JSON through glamour when styled.
func (r *Renderer) renderJSON(pretty string) string {
	if r.markdown != nil {
		out, err := r.markdown.Render("```json\n" + pretty + "\n```\n")
		if err == nil {
			return out
		}
	}
	return pretty + "\n"
}

func (r *Renderer) renderAnalysis(a *domain.Analysis, chart *domain.PieChart) string {
	var sb strings.Builder

	sb.WriteString(r.styles.Label.Render(fmt.Sprintf("Login: %s", a.Login)))
	sb.WriteString("\n")
	sb.WriteString(r.styles.Label.Render(fmt.Sprintf("Public Repos: %d", a.PublicRepos)))
	sb.WriteString("\n")

	if chart == nil || len(chart.Labels) == 0 {
		return sb.String()
	}

	sb.WriteString("\n")
	labelWidth := 0
	for _, l := range chart.Labels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}

	for i, label := range chart.Labels {
		share := chart.Share(i)
		bar := strings.Repeat("█", int(math.Round(share*barWidth)))
		if r.styled {
			bar = lipgloss.NewStyle().Foreground(lipgloss.Color(chart.Colors[i])).Render(bar)
		}
		sb.WriteString(fmt.Sprintf("%-*s %s %d bytes (%.1f%%)\n", labelWidth, label, bar, chart.Values[i], share*100))
	}
	return sb.String()
}

// RenderStatuses writes one line per probed backend.
func (r *Renderer) RenderStatuses(w io.Writer, statuses []domain.BackendStatus) error {
	var sb strings.Builder
	for _, s := range statuses {
		state := r.styles.Error.Render("down")
		detail := s.Error
		if s.Reachable {
			state = r.styles.Success.Render("up")
			detail = fmt.Sprintf("HTTP %d in %s", s.StatusCode, s.Latency.Round(time.Millisecond))
		}
		sb.WriteString(fmt.Sprintf("%-10s %-10s %-26s %s  %s\n", s.Backend.ID, s.Backend.Label, s.Backend.URL, state, r.styles.Muted.Render(detail)))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderBackends writes the registry, marking the selected backend.
func (r *Renderer) RenderBackends(w io.Writer, backends []domain.Backend, selected string) error {
	var sb strings.Builder
	for _, b := range backends {
		marker := " "
		if b.ID == selected {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %-10s %-10s %s\n", marker, b.ID, b.Label, b.URL))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

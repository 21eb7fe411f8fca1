package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vilaca/api-explorer/internal/domain"
	"github.com/vilaca/api-explorer/internal/explorer"
)

// Renderer handles rendering responses to HTTP clients.
// This interface follows Interface Segregation Principle (SOLID-I).
type Renderer interface {
	RenderPage(w io.Writer, view explorer.View) error
	RenderHealth(w io.Writer) error
}

// HTMLRenderer implements Renderer for HTML responses.
type HTMLRenderer struct {
	// All HTML is embedded in methods, no external templates needed
}

// NewHTMLRenderer creates a new HTML renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

func (r *HTMLRenderer) RenderHealth(w io.Writer) error {
	_, err := w.Write([]byte(`{"status":"ok"}`))
	return err
}

// RenderPage renders the explorer form and the outcome of the last fetch.
func (r *HTMLRenderer) RenderPage(w io.Writer, view explorer.View) error {
	html, err := r.buildPageHTML(view)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(html))
	return err
}

// buildPageHTML constructs the page.
// Follows SLAP - operates at single level of abstraction.
func (r *HTMLRenderer) buildPageHTML(view explorer.View) (string, error) {
	var sb strings.Builder

	sb.WriteString(htmlHead("API Explorer", "", view.Loading))
	sb.WriteString(`
<body>
	<button class="theme-toggle" onclick="toggleTheme()" type="button">🌙 Dark Mode</button>
	<div class="container">
		<h1>API Explorer</h1>
`)
	sb.WriteString(r.buildFormHTML(view))
	sb.WriteString(loadingSpinner(view.Loading))
	sb.WriteString(r.buildStatusHTML(view))

	scripts := ""
	if view.Result != nil {
		resultHTML, chartJS, err := r.buildResultHTML(view)
		if err != nil {
			return "", err
		}
		sb.WriteString(resultHTML)
		scripts = chartJS
	}

	sb.WriteString(`
	</div>
`)
	sb.WriteString(htmlFooter(scripts))
	return sb.String(), nil
}

// buildFormHTML renders the controls as a single form. The username input and
// fetch button come first in document order so Enter submits a fetch; CSS
// moves the backend buttons above them.
func (r *HTMLRenderer) buildFormHTML(view explorer.View) string {
	var sb strings.Builder
	disabled := disabledAttr(view.Loading)

	sb.WriteString(`		<form id="explorer-form" class="explorer" method="post" action="/fetch">
			<div class="search">
`)
	sb.WriteString(fmt.Sprintf(`				<input type="text" name="username" value="%s" placeholder="Enter GitHub username" autocomplete="off" autofocus>
`, escapeHTML(view.Username)))

	label := "Fetch Data"
	if view.Loading {
		label = "Fetching..."
	}
	sb.WriteString(fmt.Sprintf(`				<button class="fetch" type="submit"%s>%s</button>
			</div>
`, disabled, label))

	sb.WriteString(`			<div class="backends">
`)
	for _, b := range view.Backends {
		sb.WriteString(fmt.Sprintf(`				<button class="%s" type="submit" formaction="/backend" name="backend" value="%s"%s>%s</button>
`, activeClass(b.ID == view.Backend.ID), escapeHTML(b.ID), disabled, escapeHTML(b.Label)))
	}
	sb.WriteString(`			</div>
			<div class="endpoints">
`)
	for _, ep := range view.Endpoints {
		sb.WriteString(fmt.Sprintf(`				<button class="%s" type="submit" formaction="/endpoint" name="endpoint" value="%s"%s>%s</button>
`, activeClass(ep == view.Endpoint), escapeHTML(string(ep)), disabled, escapeHTML(ep.Label())))
	}
	sb.WriteString(`			</div>
		</form>
`)
	return sb.String()
}

// buildStatusHTML renders the error and cache status lines.
func (r *HTMLRenderer) buildStatusHTML(view explorer.View) string {
	var sb strings.Builder
	if view.Error != "" {
		sb.WriteString(fmt.Sprintf(`		<p class="error">%s</p>
`, escapeHTML(view.Error)))
	}
	if view.CacheStatus != "" {
		sb.WriteString(fmt.Sprintf(`		<p class="cache">Cache: %s</p>
`, escapeHTML(view.CacheStatus)))
	}
	return sb.String()
}

// buildResultHTML renders the JSON dump or the analysis summary, and returns
// the chart script when there is a chart to draw.
func (r *HTMLRenderer) buildResultHTML(view explorer.View) (string, string, error) {
	result := view.Result

	if result.Endpoint == domain.EndpointGitHub {
		return fmt.Sprintf(`		<pre class="json">%s</pre>
`, escapeHTML(result.PrettyJSON())), "", nil
	}

	if result.Analysis == nil {
		return "", "", nil
	}

	var sb strings.Builder
	sb.WriteString(`		<div class="analysis">
`)
	sb.WriteString(fmt.Sprintf(`			<p>Login: %s</p>
			<p>Public Repos: %d</p>
`, escapeHTML(result.Analysis.Login), result.Analysis.PublicRepos))

	script := ""
	if view.Chart != nil && len(view.Chart.Labels) > 0 {
		chartJSON, err := json.Marshal(view.Chart)
		if err != nil {
			return "", "", fmt.Errorf("failed to encode chart: %w", err)
		}
		sb.WriteString(`			<div class="chart"><canvas id="languages-chart"></canvas></div>
`)
		script = chartScript(string(chartJSON))
	}
	sb.WriteString(`		</div>
`)
	return sb.String(), script, nil
}

package dashboard

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilaca/api-explorer/internal/domain"
	"github.com/vilaca/api-explorer/internal/explorer"
)

func baseView() explorer.View {
	backends := domain.DefaultBackends()
	return explorer.View{
		Backends:  backends,
		Backend:   backends[0],
		Endpoints: domain.Endpoints(),
		Endpoint:  domain.EndpointGitHub,
	}
}

// TestHTMLRenderer_RenderHealth tests the health check rendering.
// Follows AAA (Arrange, Act, Assert) pattern.
func TestHTMLRenderer_RenderHealth(t *testing.T) {
	// Arrange
	renderer := NewHTMLRenderer()
	buf := &bytes.Buffer{}

	// Act
	err := renderer.RenderHealth(buf)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := `{"status":"ok"}`
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

// TestHTMLRenderer_RenderPage_Empty tests the initial form.
func TestHTMLRenderer_RenderPage_Empty(t *testing.T) {
	// Arrange
	renderer := NewHTMLRenderer()
	buf := &bytes.Buffer{}

	// Act
	err := renderer.RenderPage(buf, baseView())

	// Assert
	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "<!DOCTYPE html>")
	assert.Contains(t, output, "<h1>API Explorer</h1>")
	assert.Contains(t, output, `placeholder="Enter GitHub username"`)
	assert.Contains(t, output, `<button class="chip active" type="submit" formaction="/backend" name="backend" value="node">Node.js</button>`)
	assert.Contains(t, output, `value="deno">Deno</button>`)
	assert.Contains(t, output, `value="github">GitHub Data</button>`)
	assert.Contains(t, output, `value="analyze">Profile Analysis</button>`)
	assert.Contains(t, output, ">Fetch Data</button>")
	assert.NotContains(t, output, `class="error"`)
	assert.NotContains(t, output, "Cache:")
	assert.NotContains(t, output, " disabled>")
	assert.NotContains(t, output, "chart.umd")
}

// TestHTMLRenderer_RenderPage_FetchButtonFirst tests that Enter in the input submits a fetch.
func TestHTMLRenderer_RenderPage_FetchButtonFirst(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewHTMLRenderer().RenderPage(buf, baseView()))

	output := buf.String()
	fetchAt := strings.Index(output, `class="fetch"`)
	backendAt := strings.Index(output, `formaction="/backend"`)
	assert.True(t, fetchAt >= 0 && fetchAt < backendAt, "fetch button must precede backend buttons")
}

func TestHTMLRenderer_RenderPage_Loading(t *testing.T) {
	view := baseView()
	view.Loading = true
	view.Username = "octocat"
	buf := &bytes.Buffer{}

	require.NoError(t, NewHTMLRenderer().RenderPage(buf, view))

	output := buf.String()
	assert.Contains(t, output, ">Fetching...</button>")
	assert.Contains(t, output, `class="spinner-wrap visible"`)
	assert.Contains(t, output, `http-equiv="refresh"`)
	assert.Equal(t, 1+len(view.Backends)+len(view.Endpoints), strings.Count(output, " disabled>"))
}

func TestHTMLRenderer_RenderPage_ErrorAndCache(t *testing.T) {
	view := baseView()
	view.Error = `<script>alert("x")</script>`
	view.CacheStatus = "HIT"
	buf := &bytes.Buffer{}

	require.NoError(t, NewHTMLRenderer().RenderPage(buf, view))

	output := buf.String()
	assert.Contains(t, output, `<p class="error">&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;</p>`)
	assert.Contains(t, output, `<p class="cache">Cache: HIT</p>`)
}

func TestHTMLRenderer_RenderPage_GitHubJSON(t *testing.T) {
	view := baseView()
	view.Result = &domain.Result{
		Endpoint: domain.EndpointGitHub,
		Raw:      json.RawMessage(`{"login":"octocat","bio":"<b>hi</b>"}`),
		GitHub:   &domain.GitHubUser{Login: "octocat"},
	}
	buf := &bytes.Buffer{}

	require.NoError(t, NewHTMLRenderer().RenderPage(buf, view))

	output := buf.String()
	assert.Contains(t, output, `<pre class="json">{
  &quot;login&quot;: &quot;octocat&quot;,
  &quot;bio&quot;: &quot;&lt;b&gt;hi&lt;/b&gt;&quot;
}</pre>`)
	assert.NotContains(t, output, "languages-chart")
}

func TestHTMLRenderer_RenderPage_GitHubJSONWithoutTypedUser(t *testing.T) {
	view := baseView()
	view.Result = &domain.Result{
		Endpoint: domain.EndpointGitHub,
		Raw:      json.RawMessage(`{"login":"octocat","id":"583231"}`),
	}
	buf := &bytes.Buffer{}

	require.NoError(t, NewHTMLRenderer().RenderPage(buf, view))

	assert.Contains(t, buf.String(), `&quot;id&quot;: &quot;583231&quot;`)
}

func TestHTMLRenderer_RenderPage_Analysis(t *testing.T) {
	view := baseView()
	view.Endpoint = domain.EndpointAnalyze
	analysis := &domain.Analysis{
		Login:       "octocat",
		PublicRepos: 8,
		TopLanguages: []domain.LanguageBytes{
			{Lang: "Ruby", Bytes: 3000},
			{Lang: "</script>", Bytes: 1},
		},
	}
	view.Result = &domain.Result{Endpoint: domain.EndpointAnalyze, Analysis: analysis}
	view.Chart = domain.NewPieChart(analysis)
	buf := &bytes.Buffer{}

	require.NoError(t, NewHTMLRenderer().RenderPage(buf, view))

	output := buf.String()
	assert.Contains(t, output, "<p>Login: octocat</p>")
	assert.Contains(t, output, "<p>Public Repos: 8</p>")
	assert.Contains(t, output, `<canvas id="languages-chart"></canvas>`)
	assert.Contains(t, output, chartJSURL)
	assert.Contains(t, output, `"labels":["Ruby","\u003c/script\u003e"]`)
	assert.Contains(t, output, `"values":[3000,1]`)
	assert.NotContains(t, output, `"</script>"`)
}

func TestHTMLRenderer_RenderPage_AnalysisWithoutLanguages(t *testing.T) {
	view := baseView()
	analysis := &domain.Analysis{Login: "ghost"}
	view.Result = &domain.Result{Endpoint: domain.EndpointAnalyze, Analysis: analysis}
	view.Chart = domain.NewPieChart(analysis)
	buf := &bytes.Buffer{}

	require.NoError(t, NewHTMLRenderer().RenderPage(buf, view))

	output := buf.String()
	assert.Contains(t, output, "<p>Login: ghost</p>")
	assert.NotContains(t, output, "languages-chart")
}

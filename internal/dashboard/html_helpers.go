package dashboard

import (
	"fmt"
	"strings"
)

// chartJSURL is the charting library used to draw the language pie chart.
const chartJSURL = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"

// htmlHead returns the common HTML head section with proper meta tags.
func htmlHead(title, description string, autoRefresh bool) string {
	if description == "" {
		description = "Query GitHub user data across multiple backend APIs"
	}

	refresh := ""
	if autoRefresh {
		refresh = `<meta http-equiv="refresh" content="1">`
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<meta name="description" content="%s">
	%s
	<link rel="icon" type="image/svg+xml" href="data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'><text y='0.9em' font-size='90'>🔎</text></svg>">
	<title>%s</title>
	%s
</head>`, escapeHTML(description), refresh, escapeHTML(title), commonCSS())
}

// commonCSS returns the shared CSS styles.
func commonCSS() string {
	return `<style>
		:root {
			--bg-primary: #f5f5f5;
			--bg-secondary: white;
			--text-primary: #333;
			--text-secondary: #666;
			--button-bg: #2563eb;
			--button-hover: #1d4ed8;
			--chip-bg: #e5e7eb;
			--chip-text: #374151;
			--active-bg: #3b82f6;
			--border-color: #d1d5db;
			--error-text: #dc2626;
			--code-bg: #1f2937;
			--code-text: #f3f4f6;
			--shadow: rgba(0,0,0,0.1);
		}

		[data-theme="dark"] {
			--bg-primary: #1a1a1a;
			--bg-secondary: #2d2d2d;
			--text-primary: #e0e0e0;
			--text-secondary: #b0b0b0;
			--button-bg: #4d9fff;
			--button-hover: #3d89ef;
			--chip-bg: #404040;
			--chip-text: #e0e0e0;
			--border-color: #4b5563;
			--error-text: #ff6b6b;
			--code-bg: #111827;
			--shadow: rgba(0,0,0,0.3);
		}

		* { box-sizing: border-box; }

		body {
			font-family: system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
			margin: 0;
			padding: 32px;
			background: var(--bg-primary);
			color: var(--text-primary);
			transition: background-color 0.3s, color 0.3s;
			line-height: 1.5;
		}

		.container { max-width: 672px; margin: 0 auto; }

		h1 { font-size: 2.25rem; font-weight: 700; text-align: center; letter-spacing: -0.025em; }

		.explorer { display: flex; flex-direction: column; gap: 24px; }
		.backends { order: -1; display: flex; flex-wrap: wrap; justify-content: center; gap: 12px; }
		.endpoints { display: flex; justify-content: center; gap: 8px; }
		.search { display: flex; gap: 8px; }

		.chip {
			padding: 8px 16px;
			border: none;
			border-radius: 6px;
			font-size: 14px;
			font-weight: 500;
			cursor: pointer;
			background: var(--chip-bg);
			color: var(--chip-text);
			transition: background-color 0.2s;
		}
		.chip.active { background: var(--active-bg); color: white; }
		.chip:disabled, .fetch:disabled { opacity: 0.6; cursor: not-allowed; }

		.search input {
			flex: 1;
			padding: 12px;
			font-size: 1.125rem;
			border: 1px solid var(--border-color);
			border-radius: 6px;
			background: var(--bg-secondary);
			color: var(--text-primary);
		}

		.fetch {
			min-width: 144px;
			padding: 12px 24px;
			border: none;
			border-radius: 6px;
			background: var(--button-bg);
			color: white;
			cursor: pointer;
		}
		.fetch:hover { background: var(--button-hover); }

		.error { color: var(--error-text); font-size: 1.125rem; font-weight: 500; }
		.cache { color: var(--text-secondary); font-size: 1.125rem; }

		pre.json {
			padding: 16px;
			background: var(--code-bg);
			color: var(--code-text);
			border-radius: 6px;
			font-size: 0.875rem;
			overflow: auto;
			box-shadow: 0 2px 4px var(--shadow);
		}

		.analysis p { font-size: 1.125rem; font-weight: 600; margin: 4px 0; }
		.chart { max-width: 448px; margin: 16px auto; }

		.spinner-wrap { display: none; justify-content: center; padding: 16px 0; }
		.spinner-wrap.visible { display: flex; }
		.spinner {
			width: 64px;
			height: 64px;
			border: 8px solid var(--chip-bg);
			border-top-color: var(--active-bg);
			border-radius: 50%;
			animation: spin 0.8s linear infinite;
		}
		@keyframes spin { to { transform: rotate(360deg); } }

		.theme-toggle {
			position: fixed;
			top: 16px;
			right: 16px;
			padding: 8px 16px;
			background: var(--bg-secondary);
			color: var(--text-primary);
			border: 1px solid var(--border-color);
			border-radius: 4px;
			cursor: pointer;
		}
	</style>`
}

// loadingSpinner returns the spinner markup, visible when loading is true.
func loadingSpinner(loading bool) string {
	class := "spinner-wrap"
	if loading {
		class += " visible"
	}
	return fmt.Sprintf(`<div class="%s" id="spinner"><div class="spinner"></div></div>`, class)
}

// submitScript disables the controls and shows the spinner once a form is sent.
func submitScript() string {
	return `<script>
		document.getElementById('explorer-form').addEventListener('submit', function(e) {
			const form = e.target;
			setTimeout(function() {
				form.querySelectorAll('button').forEach(function(b) { b.disabled = true; });
			}, 0);
			const fetchButton = form.querySelector('.fetch');
			if (fetchButton) { fetchButton.textContent = 'Fetching...'; }
			document.getElementById('spinner').classList.add('visible');
		});
	</script>`
}

// themeToggleScript returns the common theme toggle JavaScript.
func themeToggleScript() string {
	return `<script>
		function toggleTheme() {
			const html = document.documentElement;
			const currentTheme = html.getAttribute('data-theme');
			const newTheme = currentTheme === 'dark' ? 'light' : 'dark';
			html.setAttribute('data-theme', newTheme);
			localStorage.setItem('theme', newTheme);
			updateToggleButton(newTheme);
		}

		function updateToggleButton(theme) {
			const button = document.querySelector('.theme-toggle');
			if (button) {
				button.textContent = theme === 'dark' ? '☀️ Light Mode' : '🌙 Dark Mode';
			}
		}

		(function() {
			const savedTheme = localStorage.getItem('theme') || 'light';
			document.documentElement.setAttribute('data-theme', savedTheme);
			updateToggleButton(savedTheme);
		})();
	</script>`
}

// chartScript draws the pie chart from JSON produced by json.Marshal,
// which escapes <, > and & so the payload is safe inside a script element.
func chartScript(chartJSON string) string {
	return fmt.Sprintf(`<script src="%s"></script>
	<script>
		(function() {
			const data = %s;
			const textColor = getComputedStyle(document.documentElement).getPropertyValue('--text-primary');
			new Chart(document.getElementById('languages-chart'), {
				type: 'pie',
				data: {
					labels: data.labels,
					datasets: [{ data: data.values, backgroundColor: data.colors, borderWidth: 1 }]
				},
				options: {
					responsive: true,
					plugins: {
						legend: { position: 'top', labels: { color: textColor } },
						tooltip: { callbacks: { label: function(ctx) { return ctx.label + ': ' + ctx.raw + ' bytes'; } } }
					}
				}
			});
		})();
	</script>`, chartJSURL, chartJSON)
}

// htmlFooter returns the common HTML footer with all scripts.
func htmlFooter(extraScripts string) string {
	return submitScript() + themeToggleScript() + extraScripts + `
</body>
</html>`
}

// escapeHTML escapes special HTML characters to prevent XSS.
func escapeHTML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}

// disabledAttr returns the disabled attribute when the controls are locked.
func disabledAttr(loading bool) string {
	if loading {
		return " disabled"
	}
	return ""
}

// activeClass returns the button classes for a selectable chip.
func activeClass(active bool) string {
	if active {
		return "chip active"
	}
	return "chip"
}

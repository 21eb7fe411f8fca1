package domain

// Backend identifiers of the built-in registry.
const (
	BackendNode    = "node"
	BackendFastAPI = "fastapi"
	BackendDjango  = "django"
	BackendRails   = "rails"
	BackendDeno    = "deno"
)

// CacheHeader is the response header a backend uses to report cache status.
const CacheHeader = "X-Cache"

// ChartPalette holds the slice colours of the language pie chart.
var ChartPalette = []string{"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF"}

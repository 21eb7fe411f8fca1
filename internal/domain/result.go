package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Result holds a successful fetch. Exactly one of GitHub and Analysis is set,
// matching Endpoint.
type Result struct {
	Backend     Backend         `json:"backend"`
	Endpoint    Endpoint        `json:"endpoint"`
	Username    string          `json:"username"`
	Raw         json.RawMessage `json:"data"`
	GitHub      *GitHubUser     `json:"-"`
	Analysis    *Analysis       `json:"-"`
	CacheStatus string          `json:"cacheStatus,omitempty"`
	FetchedAt   time.Time       `json:"fetchedAt"`
}

// PrettyJSON returns the raw body indented with two spaces.
func (r *Result) PrettyJSON() string {
	if r == nil || len(r.Raw) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Raw, "", "  "); err != nil {
		return string(r.Raw)
	}
	return buf.String()
}

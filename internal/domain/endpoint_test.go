package domain

import (
	"errors"
	"testing"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Endpoint
		wantErr bool
	}{
		{name: "github", input: "github", want: EndpointGitHub},
		{name: "analyze", input: "analyze", want: EndpointAnalyze},
		{name: "unknown", input: "repos", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "case sensitive", input: "GitHub", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEndpoint(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownEndpoint) {
					t.Fatalf("expected ErrUnknownEndpoint, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEndpoint_Label(t *testing.T) {
	if got := EndpointGitHub.Label(); got != "GitHub Data" {
		t.Errorf("expected 'GitHub Data', got %q", got)
	}
	if got := EndpointAnalyze.Label(); got != "Profile Analysis" {
		t.Errorf("expected 'Profile Analysis', got %q", got)
	}
}

func TestFindBackend(t *testing.T) {
	backends := DefaultBackends()

	b, ok := FindBackend(backends, BackendRails)
	if !ok {
		t.Fatal("expected rails backend to be found")
	}
	if b.URL != "http://localhost:3004" {
		t.Errorf("expected rails URL http://localhost:3004, got %s", b.URL)
	}

	if _, ok := FindBackend(backends, "spring"); ok {
		t.Error("expected unknown backend not to be found")
	}
}

func TestDefaultBackends_ReturnsCopy(t *testing.T) {
	first := DefaultBackends()
	first[0].URL = "http://changed"

	if DefaultBackends()[0].URL != "http://localhost:3001" {
		t.Error("expected DefaultBackends to return a fresh slice")
	}
}

func TestResult_PrettyJSON(t *testing.T) {
	r := &Result{Raw: []byte(`{"login":"octocat","bio":"<b>"}`)}

	want := "{\n  \"login\": \"octocat\",\n  \"bio\": \"<b>\"\n}"
	if got := r.PrettyJSON(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	var empty *Result
	if got := empty.PrettyJSON(); got != "" {
		t.Errorf("expected empty string for nil result, got %q", got)
	}
}

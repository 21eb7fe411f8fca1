package domain

import (
	"errors"
	"fmt"
)

// Endpoint is a backend route the explorer knows how to display.
type Endpoint string

const (
	// EndpointGitHub returns the raw GitHub user profile.
	EndpointGitHub Endpoint = "github"
	// EndpointAnalyze returns a derived profile analysis.
	EndpointAnalyze Endpoint = "analyze"
)

// ErrUnknownEndpoint is returned when parsing an unsupported endpoint name.
var ErrUnknownEndpoint = errors.New("unknown endpoint")

// Endpoints lists the supported endpoints in display order.
func Endpoints() []Endpoint {
	return []Endpoint{EndpointGitHub, EndpointAnalyze}
}

// ParseEndpoint converts a route name into an Endpoint.
func ParseEndpoint(s string) (Endpoint, error) {
	switch Endpoint(s) {
	case EndpointGitHub, EndpointAnalyze:
		return Endpoint(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEndpoint, s)
}

// Label returns the button caption for the endpoint.
func (e Endpoint) Label() string {
	switch e {
	case EndpointGitHub:
		return "GitHub Data"
	case EndpointAnalyze:
		return "Profile Analysis"
	default:
		return string(e)
	}
}

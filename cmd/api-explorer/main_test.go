package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vilaca/api-explorer/internal/config"
	"github.com/vilaca/api-explorer/internal/domain"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		verbose bool
		want    zapcore.Level
	}{
		{"info", "info", false, zapcore.InfoLevel},
		{"warn", "warn", false, zapcore.WarnLevel},
		{"invalid falls back to info", "loud", false, zapcore.InfoLevel},
		{"verbose wins", "error", true, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := newLogger(tt.level, tt.verbose)
			require.NoError(t, err)

			assert.True(t, log.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestBuildServer_Routes(t *testing.T) {
	// Arrange
	t.Setenv("BACKENDS_FILE", "")
	cfg, err := config.Load()
	require.NoError(t, err)

	a, err := newApp(cfg)
	require.NoError(t, err)
	handler := buildServer(cfg, a, zap.NewNop().Sugar())
	defer handler.Close()

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"health", http.MethodGet, "/api/health", http.StatusOK},
		{"index", http.MethodGet, "/", http.StatusOK},
		{"backends", http.MethodGet, "/api/backends", http.StatusOK},
		{"missing username", http.MethodGet, "/api/fetch?endpoint=github", http.StatusBadRequest},
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			// Assert
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestWriteRawBody_KeepsFormatting(t *testing.T) {
	raw := []byte("{\n  \"login\":   \"octocat\"\n}")
	buf := &bytes.Buffer{}

	require.NoError(t, writeRawBody(buf, raw))

	assert.Equal(t, string(raw)+"\n", buf.String())
}

func TestNewApp_DefaultRegistry(t *testing.T) {
	t.Setenv("BACKENDS_FILE", "")
	cfg, err := config.Load()
	require.NoError(t, err)

	a, err := newApp(cfg)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultBackends(), a.registry.List())
	_, ok := a.registry.Find(domain.BackendDeno)
	assert.True(t, ok)
}

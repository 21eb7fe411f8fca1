package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/vilaca/api-explorer/internal/config"
	"github.com/vilaca/api-explorer/internal/domain"
)

var servePort int

// serveCmd starts the web interface
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger.Sugar()

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	if _, ok := a.registry.Find(cfg.DefaultBackend); !ok {
		log.Warnw("default backend not in registry", "backend", cfg.DefaultBackend)
	}

	if cfg.BackendsFile != "" {
		go func() {
			err := config.Watch(ctx, cfg.BackendsFile, log, func(b []domain.Backend) {
				a.registry.Replace(b)
			})
			if err != nil {
				log.Warnw("backends file watcher stopped", "error", err)
			}
		}()
	}

	handler := buildServer(cfg, a, log)
	defer handler.Close()

	port := cfg.Port
	if servePort > 0 {
		port = servePort
	}
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Infow("starting API Explorer", "url", fmt.Sprintf("http://localhost:%d", port), "backends", len(a.registry.List()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vilaca/api-explorer/internal/domain"
)

// Prober checks which backends have a server behind them.
type Prober struct {
	base *BaseClient
	// OnResult, when set, is called as each probe finishes. It may be called
	// from several goroutines at once.
	OnResult func(domain.BackendStatus)
}

// NewProber creates a prober sharing base's HTTP client.
func NewProber(base *BaseClient) *Prober {
	return &Prober{base: base}
}

// Probe requests the root of every backend concurrently, sharing the
// request limit with fetches. Any HTTP response counts as reachable.
// Results keep the order of backends.
func (p *Prober) Probe(ctx context.Context, backends []domain.Backend) []domain.BackendStatus {
	statuses := make([]domain.BackendStatus, len(backends))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentRequests)
	for i, b := range backends {
		g.Go(func() error {
			statuses[i] = p.probe(gctx, b)
			if p.OnResult != nil {
				p.OnResult(statuses[i])
			}
			return nil
		})
	}
	_ = g.Wait()

	return statuses
}

func (p *Prober) probe(ctx context.Context, backend domain.Backend) domain.BackendStatus {
	status := domain.BackendStatus{Backend: backend}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(backend.URL, "/")+"/", nil)
	if err != nil {
		status.Error = fmt.Sprintf("invalid url: %v", err)
		return status
	}

	err = p.base.DoRateLimited(ctx, func() error {
		start := time.Now()
		resp, err := p.base.HTTPClient.Do(req)
		status.Latency = time.Since(start)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

		status.StatusCode = resp.StatusCode
		return nil
	})
	if err != nil {
		status.Error = err.Error()
		return status
	}

	status.Reachable = true
	return status
}

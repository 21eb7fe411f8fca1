package main

import (
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/vilaca/api-explorer/internal/domain"
)

// probeCmd checks which backends have a server running
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check which backends are reachable",
	RunE:  runProbe,
}

func runProbe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	backends := a.registry.List()

	bar := pb.StartNew(len(backends))
	bar.SetWriter(os.Stderr)
	a.prober.OnResult = func(domain.BackendStatus) { bar.Increment() }

	statuses := a.prober.Probe(cmd.Context(), backends)
	bar.Finish()

	renderer, err := newTerminalRenderer()
	if err != nil {
		return err
	}
	return renderer.RenderStatuses(os.Stdout, statuses)
}

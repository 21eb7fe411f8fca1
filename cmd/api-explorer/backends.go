package main

import (
	"os"

	"github.com/spf13/cobra"
)

// backendsCmd lists the configured backends
var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List configured backends (* marks the default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}

		renderer, err := newTerminalRenderer()
		if err != nil {
			return err
		}
		return renderer.RenderBackends(os.Stdout, a.registry.List(), cfg.DefaultBackend)
	},
}

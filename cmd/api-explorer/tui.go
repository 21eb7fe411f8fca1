package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vilaca/api-explorer/internal/terminal"
	"github.com/vilaca/api-explorer/internal/tui"
)

// tuiCmd starts the interactive terminal interface
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}

		renderer, err := terminal.NewRenderer(true, 100)
		if err != nil {
			return err
		}

		// Log lines would corrupt the alternate screen.
		session := a.newSession(cfg, zap.NewNop().Sugar())
		return tui.Run(cmd.Context(), session, renderer, cfg.RequestTimeout())
	},
}

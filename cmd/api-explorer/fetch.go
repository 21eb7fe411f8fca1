package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vilaca/api-explorer/internal/domain"
	"github.com/vilaca/api-explorer/internal/explorer"
	"github.com/vilaca/api-explorer/internal/terminal"
)

var (
	fetchBackend  string
	fetchEndpoint string
	fetchJSON     bool
)

// fetchCmd performs a single fetch and prints the result
var fetchCmd = &cobra.Command{
	Use:   "fetch [username]",
	Short: "Fetch GitHub data or a profile analysis for a user",
	Example: `  api-explorer fetch octocat
  api-explorer fetch octocat --backend fastapi --endpoint analyze`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchBackend, "backend", "b", "", "backend id (default DEFAULT_BACKEND)")
	fetchCmd.Flags().StringVarP(&fetchEndpoint, "endpoint", "e", "", "github or analyze (default DEFAULT_ENDPOINT)")
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "print the raw response body")
}

func runFetch(cmd *cobra.Command, args []string) error {
	username := strings.TrimSpace(args[0])
	if username == "" {
		return fmt.Errorf("username must not be blank")
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	backendID := cfg.DefaultBackend
	if fetchBackend != "" {
		backendID = fetchBackend
	}
	if _, ok := a.registry.Find(backendID); !ok {
		return fmt.Errorf("%w: %q", explorer.ErrUnknownBackend, backendID)
	}
	endpoint := cfg.DefaultEndpoint
	if fetchEndpoint != "" {
		if endpoint, err = domain.ParseEndpoint(fetchEndpoint); err != nil {
			return err
		}
	}

	session := explorer.NewSession(explorer.SessionConfig{
		Fetcher:         a.client,
		Registry:        a.registry,
		Logger:          logger.Sugar(),
		DefaultBackend:  backendID,
		DefaultEndpoint: endpoint,
	})
	session.SetUsername(username)
	_ = session.Submit(cmd.Context())

	view := session.View()
	if view.Error != "" {
		renderer, rerr := newTerminalRenderer()
		if rerr != nil {
			return rerr
		}
		_ = renderer.Render(os.Stderr, view)
		return fmt.Errorf("fetch failed: %s", view.Error)
	}

	if fetchJSON && view.Result != nil {
		return writeRawBody(os.Stdout, view.Result.Raw)
	}

	renderer, err := newTerminalRenderer()
	if err != nil {
		return err
	}
	return renderer.Render(os.Stdout, view)
}

// writeRawBody prints the backend body byte for byte, newline terminated.
func writeRawBody(w io.Writer, raw []byte) error {
	if _, err := w.Write(raw); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// newTerminalRenderer styles output only when stdout is a terminal.
func newTerminalRenderer() (*terminal.Renderer, error) {
	styled := isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("NO_COLOR") == ""
	return terminal.NewRenderer(styled, 100)
}

// Package main implements the luna CLI, a client for the lunad HTTP API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var version = "dev"

const defaultServer = "http://127.0.0.1:8087"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli holds the persistent flags shared by every subcommand.
type cli struct {
	server  string
	timeout time.Duration
	json    bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "luna",
		Short: "CLI for the lunad analytics server",
		Long: `luna talks to a running lunad server. It predicts cycle calendars, scores the
PCOS/thyroid symptom checklist, forecasts mood and cramp risk, and records and summarises
daily logs.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.server, "server", defaultServer, "lunad server URL")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 30*time.Second, "request timeout")
	root.PersistentFlags().BoolVar(&c.json, "json", false, "print the raw JSON response")

	root.AddCommand(
		newHealthCmd(c),
		newCycleCmd(c),
		newRiskCmd(c),
		newForecastCmd(c),
		newLogCmd(c),
		newSummaryCmd(c),
		newModelCmd(c),
	)
	return root
}

// apiError is a non-2xx response from lunad.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}

// call sends in as JSON (when non-nil) and decodes the response into out. The raw body is
// returned for --json output.
func (c *cli) call(ctx context.Context, method, path string, in, out interface{}) ([]byte, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := strings.TrimRight(c.server, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &e) != nil || e.Message == "" {
			e.Message = strings.TrimSpace(string(raw))
		}
		return raw, &apiError{Status: resp.StatusCode, Message: e.Message}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return raw, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return raw, nil
}

// printJSON writes raw indented. It reports whether --json was set.
func (c *cli) printJSON(cmd *cobra.Command, raw []byte) bool {
	if !c.json {
		return false
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		cmd.Println(string(raw))
		return true
	}
	cmd.Println(buf.String())
	return true
}

func newHealthCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check lunad server health",
		Long: `Check the health status of the lunad server.

Examples:
  luna health
  luna health --server http://localhost:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Status     string `json:"status"`
				ModelReady bool   `json:"model_ready"`
			}
			raw, err := c.call(cmd.Context(), http.MethodGet, "/health", nil, &resp)
			if err != nil {
				return err
			}
			if c.printJSON(cmd, raw) {
				return nil
			}
			cmd.Printf("Server Status: %s\n", resp.Status)
			cmd.Printf("Model Ready:   %t\n", resp.ModelReady)
			cmd.Printf("Server URL:    %s\n", c.server)
			return nil
		},
	}
}

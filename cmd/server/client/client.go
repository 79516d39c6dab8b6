// Package client provides commands for trying the AGE Toolbox API from a terminal
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/age-toolbox/internal/errors"
	v1 "github.com/KirkDiggler/age-toolbox/internal/handlers/api/v1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the AGE Toolbox API",
	Long:  `Client commands make real HTTP requests against a running AGE Toolbox server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "http://localhost:5000", "API server base URL")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	ClientCmd.AddCommand(pingCmd)
	ClientCmd.AddCommand(healthCmd)
	ClientCmd.AddCommand(rollCmd)
	ClientCmd.AddCommand(historyCmd)
	ClientCmd.AddCommand(stuntsCmd)
}

// apiClient calls the JSON API
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient() *apiClient {
	base := strings.TrimRight(serverAddr, "/")
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return &apiClient{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
	}
}

// do sends body as JSON and decodes the response into out. Error bodies
// come back as *errors.Error carrying the server's code and details.
func (c *apiClient) do(ctx context.Context, method, path string, body, out any) (http.Header, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to reach server")
	}
	defer func() {
		_ = resp.Body.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return resp.Header, decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.Header, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.Header, nil
}

func decodeError(resp *http.Response) error {
	var body v1.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return errors.Newf(errors.CodeInternal, "server returned %s", resp.Status)
	}

	apiErr := errors.New(errors.Code(strings.ToUpper(body.Code)), body.Error)
	if body.Details != nil {
		apiErr.WithMeta("validation_errors", body.Details)
	}
	return apiErr
}

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

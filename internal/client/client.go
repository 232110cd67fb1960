// Package client talks to the load-optimization service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/rs/zerolog"
)

// ErrStatus is returned when the service answers with a non-200 status.
var ErrStatus = errors.New("unexpected status from optimization service")

// maxErrorBody caps how much of an error response is kept in the message.
const maxErrorBody = 512

// Client handles communication with the optimization service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a new service client. A zero timeout means 60 seconds.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// OptimizeRequest is the body posted to /optimize.
type OptimizeRequest struct {
	ProductIDs  []string       `json:"product_ids"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

// Healthcheck checks if the service is reachable.
func (c *Client) Healthcheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("healthcheck request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: healthcheck returned %d", ErrStatus, resp.StatusCode)
	}
	return nil
}

// Optimize asks the service to distribute the given products over
// containers. An empty ID list lets the service use its whole catalog.
func (c *Client) Optimize(ctx context.Context, productIDs []string, prefs map[string]any) (model.Manifest, error) {
	if productIDs == nil {
		productIDs = []string{}
	}
	body, err := json.Marshal(OptimizeRequest{ProductIDs: productIDs, Preferences: prefs})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/optimize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("optimize request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: optimize returned %d: %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var manifest model.Manifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("failed to decode optimize response: %w", err)
	}

	c.log.Info().
		Int("products", len(productIDs)).
		Int("containers", len(manifest)).
		Dur("took", time.Since(start)).
		Msg("optimization service responded")
	return manifest, nil
}

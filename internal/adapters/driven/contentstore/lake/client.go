package lake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

// Default configuration values.
const (
	DefaultTimeout = 30 * time.Second

	// Conservative defaults well below typical lake quotas.
	defaultRequestsPerSecond = 10.0
	defaultBurstSize         = 20
)

// Config holds connection settings for the lake client.
type Config struct {
	// Endpoint is the lake base URL (required).
	Endpoint string

	// Dataset is the dataset name within the lake (required).
	Dataset string

	// Token is the bearer token. Empty means unauthenticated access,
	// which public datasets allow for reads.
	Token string

	// APIVersion selects the lake API version (default: v1).
	APIVersion string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Client is a low-level HTTP client for the lake's query and mutate
// endpoints. All requests pass through a token-bucket rate limiter.
type Client struct {
	http     *http.Client
	limiter  *rate.Limiter
	endpoint string
	dataset  string
	version  string
}

// NewClient creates a lake client. A client built from incomplete
// settings is still valid; its requests fail with ErrNotConfigured.
func NewClient(cfg Config) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = domain.DefaultAPIVersion
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Token != "" {
		httpClient.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
		}
	}

	return &Client{
		http:     httpClient,
		limiter:  rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), defaultBurstSize),
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		dataset:  cfg.Dataset,
		version:  cfg.APIVersion,
	}
}

// lakeError is the error object the lake embeds in failed responses.
type lakeError struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// queryResponse is the lake's /data/query envelope.
type queryResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *lakeError      `json:"error,omitempty"`
}

// mutationResult is one entry of the lake's /data/mutate response.
type mutationResult struct {
	ID        string         `json:"id"`
	Operation string         `json:"operation"`
	Document  map[string]any `json:"document,omitempty"`
}

// mutateResponse is the lake's /data/mutate envelope.
type mutateResponse struct {
	Results []mutationResult `json:"results"`
	Error   *lakeError       `json:"error,omitempty"`
}

// query runs a query string with named parameters and returns the raw
// result payload.
func (c *Client) query(ctx context.Context, query string, params map[string]any) (json.RawMessage, error) {
	if err := c.ready(ctx); err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("query", query)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode parameter %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	reqURL := fmt.Sprintf("%s/%s/data/query/%s?%s", c.endpoint, c.version, c.dataset, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var envelope queryResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if err := c.checkStatus(resp.StatusCode, envelope.Error, body); err != nil {
		return nil, err
	}

	return envelope.Result, nil
}

// mutate posts a mutation batch and returns the per-mutation results.
// Mutated documents are returned inline.
func (c *Client) mutate(ctx context.Context, mutations []map[string]any) (*mutateResponse, error) {
	if err := c.ready(ctx); err != nil {
		return nil, err
	}

	jsonBody, err := json.Marshal(map[string]any{"mutations": mutations})
	if err != nil {
		return nil, fmt.Errorf("marshal mutations: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/data/mutate/%s?returnDocuments=true", c.endpoint, c.version, c.dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var envelope mutateResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if err := c.checkStatus(resp.StatusCode, envelope.Error, body); err != nil {
		return nil, err
	}

	return &envelope, nil
}

// ready guards every request: the connection must be configured and a
// rate-limiter token available.
func (c *Client) ready(ctx context.Context) error {
	if c.endpoint == "" || c.dataset == "" {
		return domain.ErrNotConfigured
	}
	return c.limiter.Wait(ctx)
}

// checkStatus maps a non-2xx response to an error, preferring the
// lake's own error description over the raw body.
func (c *Client) checkStatus(status int, lakeErr *lakeError, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	if lakeErr != nil {
		return fmt.Errorf("lake error (status %d): %s", status, lakeErr.Description)
	}
	return fmt.Errorf("lake error (status %d): %s", status, string(body))
}

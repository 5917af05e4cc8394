package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is matched by APIError values with a 404 status
var ErrNotFound = errors.New("upstream resource not found")

// maxErrorBody bounds how much of a failed response body is read
const maxErrorBody = 4 << 10

// APIError represents a non-2xx answer of the upstream API
type APIError struct {
	StatusCode int
	Path       string
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream API error [%d] %s: %s", e.StatusCode, e.Path, e.Detail)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client reads the attendance, late-stay and reports REST API
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for baseURL, e.g. "http://localhost:8000/api"
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// getJSON performs a GET against path and decodes the JSON body into out.
// Empty query values are dropped.
func (c *Client) getJSON(ctx context.Context, path string, query map[string]string, out interface{}) error {
	values := url.Values{}
	for k, v := range query {
		if v != "" {
			values.Set(k, v)
		}
	}
	endpoint := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Detail:     errorDetail(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// errorDetail extracts the {"detail": ...} message the upstream returns on errors
func errorDetail(body []byte) string {
	var payload struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			return s
		}
		if b, err := json.Marshal(payload.Detail); err == nil {
			return string(b)
		}
	}
	return strings.TrimSpace(string(body))
}

// Health checks the upstream /health endpoint, one level above the API prefix
func (c *Client) Health(ctx context.Context) error {
	var out map[string]interface{}
	health := &Client{baseURL: strings.TrimSuffix(c.baseURL, "/api"), http: c.http}
	return health.getJSON(ctx, "/health", nil, &out)
}

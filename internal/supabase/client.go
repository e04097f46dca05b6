// Package supabase is a thin client over Supabase's GoTrue auth and
// PostgREST table APIs. Provider failures are normalized into the layer's
// error taxonomy before they reach callers; nothing above this package
// sees a provider-specific error shape. The client does not retry.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Anasnah/Adkari-fin4/internal/domain"
	"github.com/Anasnah/Adkari-fin4/internal/metrics"
)

// Config holds client configuration.
type Config struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
}

// Client is a Supabase REST API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new Supabase client.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("APIKey is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

// Auth returns the auth client.
func (c *Client) Auth() *AuthClient {
	return &AuthClient{client: c}
}

// From starts a query builder for a table.
func (c *Client) From(table string) *QueryBuilder {
	return &QueryBuilder{client: c, table: table}
}

type response struct {
	statusCode int
	body       []byte
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	if req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
}

func (c *Client) do(req *http.Request, endpoint string) (*response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RemoteRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, domain.ProviderError("supabase request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RemoteRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, domain.ProviderError("read supabase response", err)
	}

	metrics.RemoteRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	return &response{statusCode: resp.StatusCode, body: body}, nil
}

func (c *Client) newRequest(ctx context.Context, method, url string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, domain.ProviderError("marshal request", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, domain.ProviderError("create request", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// providerMessage digs the human-readable message out of the provider's
// error body. GoTrue and PostgREST use different field names.
func providerMessage(body []byte, statusCode int) string {
	var errResp struct {
		Code             string `json:"code"`
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		for _, m := range []string{errResp.Message, errResp.Msg, errResp.ErrorDescription, errResp.Error} {
			if m != "" {
				return m
			}
		}
	}
	return fmt.Sprintf("supabase error: status %d", statusCode)
}

// authError normalizes a GoTrue failure. Rejected credentials come back as
// 400/401; a duplicate signup as 422 or a message naming the conflict.
func authError(body []byte, statusCode int) error {
	msg := providerMessage(body, statusCode)
	lower := strings.ToLower(msg)
	if statusCode == http.StatusUnprocessableEntity || strings.Contains(lower, "already registered") || strings.Contains(lower, "already exists") {
		return domain.ConflictError(msg)
	}
	if statusCode == http.StatusBadRequest || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		return domain.AuthError(msg)
	}
	return domain.ProviderError(msg, nil)
}

// tableError normalizes a PostgREST failure. 406 is what PostgREST returns
// when a single-object request matched no rows.
func tableError(body []byte, statusCode int) error {
	msg := providerMessage(body, statusCode)
	switch statusCode {
	case http.StatusNotAcceptable, http.StatusNotFound:
		return domain.NotFoundError(msg)
	case http.StatusConflict:
		return domain.ConflictError(msg)
	default:
		return domain.ProviderError(msg, nil)
	}
}

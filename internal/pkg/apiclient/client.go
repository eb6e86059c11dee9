// internal/pkg/apiclient/client.go
package apiclient

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

	"github.com/sirupsen/logrus"
)

// TokenSource supplies the bearer token for authenticated requests. An empty
// string means no token is attached.
type TokenSource interface {
	Token() string
}

// Meta is the pagination metadata returned by list endpoints
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Client is a generic REST client for the backend collaborator. Every
// authenticated request carries a bearer token from the token source.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *logrus.Logger
}

// New creates a client for the given API base URL (including the /api/v1
// prefix). No retries and no timeouts beyond the one configured here.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// envelope is the standard backend response wrapper. Some endpoints respond
// with the payload unwrapped; Do falls back to decoding the whole body then.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// listPayload is the inner shape of list responses: { data: records[], meta: {...} }
type listPayload struct {
	Data json.RawMessage `json:"data"`
	Meta Meta            `json:"meta"`
}

// Do issues a request against the backend and decodes the response payload
// into out. body is JSON-encoded when non-nil. path is relative to the API
// base, e.g. "auth/login" or "cart/items/42".
func (c *Client) Do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp.StatusCode, path, raw)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// List fetches a page of a resource. query should contain page, limit, and
// any non-empty filter values. out must be a pointer to a slice.
func (c *Client) List(ctx context.Context, resource string, query url.Values, out any) (Meta, error) {
	path := resource
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page listPayload
	if err := c.Do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return Meta{}, err
	}
	if len(page.Data) > 0 {
		if err := json.Unmarshal(page.Data, out); err != nil {
			return Meta{}, fmt.Errorf("failed to decode %s records: %w", resource, err)
		}
	}

	meta := page.Meta
	if meta.TotalPages == 0 && meta.Limit > 0 {
		meta.TotalPages = (meta.Total + meta.Limit - 1) / meta.Limit
	}
	return meta, nil
}

// Get fetches a single record by id
func (c *Client) Get(ctx context.Context, resource, id string, out any) error {
	return c.Do(ctx, http.MethodGet, resource+"/"+id, nil, out)
}

// Create posts a new record
func (c *Client) Create(ctx context.Context, resource string, payload any, out any) error {
	return c.Do(ctx, http.MethodPost, resource, payload, out)
}

// Update replaces a record's caller-editable fields
func (c *Client) Update(ctx context.Context, resource, id string, payload any, out any) error {
	return c.Do(ctx, http.MethodPut, resource+"/"+id, payload, out)
}

// Remove deletes a record
func (c *Client) Remove(ctx context.Context, resource, id string) error {
	return c.Do(ctx, http.MethodDelete, resource+"/"+id, nil, nil)
}

// statusError maps a non-2xx response to the error taxonomy
func (c *Client) statusError(status int, path string, raw []byte) error {
	message := backendMessage(raw)

	c.log.WithFields(logrus.Fields{
		"status": status,
		"path":   path,
	}).Debug("Backend request failed")

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if message == "" {
			message = "Authentication failed"
		}
		return &AuthError{Message: message}
	case status == http.StatusNotFound:
		return &NotFoundError{Resource: path}
	default:
		if message == "" {
			message = fmt.Sprintf("Request failed with status %d", status)
		}
		return &APIError{StatusCode: status, Message: message}
	}
}

// backendMessage extracts the backend-provided error message when present
func backendMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

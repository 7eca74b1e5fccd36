package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"storefront-client/models"
	"storefront-client/utils/logger"
)

// Client is the HTTP access layer for the catalog and order collections.
// Every call attaches the current bearer token; every failure, whatever its
// cause, surfaces as *models.OperationError. Retries and status-code
// interpretation are deliberately absent.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  logger.Logger
}

// New creates a Client against cfg.APIBaseURL with the configured timeout
func New(cfg *models.Config, tokens TokenSource, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		tokens:  tokens,
		logger:  log,
	}
}

// do executes one request and decodes a JSON response into out when out is
// non-nil. op names the logical operation for error reporting.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &models.OperationError{Op: op, Err: err}
	}

	req.Header.Set("Authorization", "Bearer "+c.tokens.AccessToken())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Errorf("%s: request failed: %v", op, err)
		return &models.OperationError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Drain a little of the body for the log; the caller only ever
		// sees the generic failure.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Errorf("%s: unexpected status %s: %s", op, resp.Status, snippet)
		return &models.OperationError{Op: op, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.logger.Errorf("%s: decoding response failed: %v", op, err)
			return &models.OperationError{Op: op, Err: err}
		}
	}

	return nil
}

// doJSON marshals payload and executes a JSON request
func (c *Client) doJSON(ctx context.Context, op, method, path string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return &models.OperationError{Op: op, Err: err}
	}
	return c.do(ctx, op, method, path, bytes.NewReader(data), "application/json", out)
}

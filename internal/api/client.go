// Package api is the gateway for every call to the referral platform
// backend. It injects the bearer credential, normalizes error handling, and
// owns the global reaction to authorization failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/reftrack/refadmin/internal/errors"
	"github.com/reftrack/refadmin/internal/log"
)

// Credentials supplies the current bearer credential. The session store
// satisfies this; the gateway never reads durable storage itself.
type Credentials interface {
	Credential() (string, bool)
}

// Client is the referral platform API client.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	creds         Credentials
	onAuthExpired func()
	logger        *log.Logger
}

// NewClient creates a platform API client.
func NewClient(baseURL string, timeout time.Duration, creds Credentials, logger *log.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
		logger:     logger,
	}
}

// SetOnAuthExpired installs the policy invoked when any request comes back
// unauthorized. The wiring points this at session teardown plus navigation
// to the login screen; tests point it at a spy.
func (c *Client) SetOnAuthExpired(fn func()) {
	c.onAuthExpired = fn
}

// APIError is a non-success HTTP response.
type APIError struct {
	Status  int
	Body    string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
}

// errorBody is the backend's error envelope. Both fields are optional.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return stderrors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// do performs a request and decodes the response into target.
//
// The body is always read fully as text first. A non-2xx status yields an
// *APIError carrying the status and raw text; a 2xx status with an
// undecodable body yields a parse error, kept distinct because it signals a
// contract mismatch with the backend. The gateway never retries.
func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.ErrCodeAPIRequest, "failed to encode request body", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPIRequest, "failed to create request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if credential, ok := c.creds.Credential(); ok {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPITransport, "request failed", err).
			WithSuggestion("check the API base URL and your network connection")
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPITransport, "failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Body: string(text)}

		var eb errorBody
		if json.Unmarshal(text, &eb) == nil {
			if eb.Error != "" {
				apiErr.Message = eb.Error
			} else if eb.Message != "" {
				apiErr.Message = eb.Message
			}
		}

		c.logger.Debug("request failed",
			"method", method, "path", path, "status", resp.StatusCode)

		if resp.StatusCode == http.StatusUnauthorized && c.onAuthExpired != nil {
			// Global, unconditional reaction, independent of the caller.
			c.onAuthExpired()
		}

		return apiErr
	}

	if target != nil {
		if err := json.Unmarshal(text, target); err != nil {
			return errors.Wrap(errors.ErrCodeAPIParse, "response is not valid JSON", err).
				WithSuggestion("the backend may be misconfigured or behind a proxy")
		}
	}

	return nil
}

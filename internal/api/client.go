// Package api is the single point of egress to the museum backend. Every
// call goes through the same two interception stages: the request stage
// injects the session token header, the response stage unwraps the business
// envelope and funnels every failure through the side-effect policy before
// handing the error back to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/musegate-dev/musegate/internal/session"
)

const requestIDHeader = "X-Request-Id"

// Doer executes HTTP requests. *http.Client satisfies it; tests inject fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// envelope is the business wrapper every non-blob response arrives in.
// Code 0 means success and Data is the payload.
type envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client represents the HTTP client for the museum API
type Client struct {
	baseURL    string
	httpClient Doer
	sessions   session.Store
	policy     *Policy
	validate   *validator.Validate
	log        zerolog.Logger
}

// New creates a new API client
func New(baseURL string, timeout time.Duration, sessions session.Store, policy *Policy, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		sessions:   sessions,
		policy:     policy,
		validate:   validator.New(),
		log:        log,
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient Doer) {
	c.httpClient = httpClient
}

// validateRequest checks an outgoing request body before it leaves the
// process, so obviously malformed input never costs a round trip.
func (c *Client) validateRequest(body any) error {
	if err := c.validate.Struct(body); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// newRequest builds the outgoing request and runs the request stage: token
// header injection (no-op when logged out) and a fresh request ID. Pure and
// synchronous; never blocks or retries.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(requestIDHeader, ulid.Make().String())

	if token := c.sessions.Token(); token != "" {
		name := c.sessions.TokenName()
		if name == "" {
			name = session.DefaultTokenName
		}
		req.Header.Set(name, token)
	}

	return req, nil
}

// do executes one call and runs the response stage. On success the envelope
// is stripped and Data is unmarshalled into out (out may be nil when the
// caller discards the payload). Every failure performs its side effect
// exactly once through the policy and is still returned to the caller.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reqBody io.Reader
	contentType := ""
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, query, reqBody, contentType)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.policy.notify(msgNetworkFailed)
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request never reached the backend")
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.policy.notify(msgNetworkFailed)
		return &NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	return c.unwrapEnvelope(resp.StatusCode, respBody, out)
}

// unwrapEnvelope runs the response stage for JSON calls: classify failures,
// strip the envelope, hand back Data only.
func (c *Client) unwrapEnvelope(status int, body []byte, out any) error {
	if status >= http.StatusBadRequest {
		return c.failedResponse(status, body)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.policy.notify(msgRequestFailed)
		return &APIError{Status: status, Message: fmt.Sprintf("malformed response envelope: %v", err)}
	}

	if env.Code != 0 {
		c.policy.notify(env.Message)
		return &BusinessError{Code: env.Code, Data: env.Data, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

// failedResponse classifies a non-2xx response. The envelope is decoded
// best-effort since error bodies are not guaranteed to carry one.
func (c *Client) failedResponse(status int, body []byte) error {
	var env envelope
	_ = json.Unmarshal(body, &env)

	// 401, plain or embedded: the session is gone. Wipe it, move to the
	// login page of the current namespace, then surface the failure.
	if status == http.StatusUnauthorized || env.Code == http.StatusUnauthorized {
		c.policy.authExpired()
		return &AuthError{Status: status, Message: msgSessionExpired}
	}

	// 402: authenticated but not permitted. Session stays intact.
	if status == http.StatusPaymentRequired || env.Code == http.StatusPaymentRequired {
		message := env.Message
		if message == "" {
			message = msgNoPermission
		}
		c.policy.notify(message)
		return &PermissionError{Status: status, Message: message}
	}

	message := env.Message
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = msgRequestFailed
	}
	c.policy.notify(message)
	return &APIError{Status: status, Message: message}
}

// getBlob fetches a binary payload. Blob responses bypass the envelope
// entirely and come back as raw bytes; failures go through the same response
// stage as everything else.
func (c *Client) getBlob(ctx context.Context, path string, query url.Values) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.policy.notify(msgNetworkFailed)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.policy.notify(msgNetworkFailed)
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, c.failedResponse(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// doMultipart uploads a single file as a multipart form and unwraps the
// envelope like any JSON call.
func (c *Client) doMultipart(ctx context.Context, path, fieldName, fileName string, content io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("failed to buffer upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf, writer.FormDataContentType())
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.policy.notify(msgNetworkFailed)
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.policy.notify(msgNetworkFailed)
		return &NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	return c.unwrapEnvelope(resp.StatusCode, respBody, out)
}

// Page is the backend's standard paged envelope payload.
type Page[T any] struct {
	Records []T   `json:"records"`
	Total   int64 `json:"total"`
	Size    int   `json:"size"`
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
}

// Package api is the typed client for the proposals platform REST backend.
//
// Every exported Client method maps to exactly one endpoint. Failures are
// always returned as *Error, whose Kind is one of KindAuth, KindValidation,
// KindRemote or KindUnexpected.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/propuestas-project/propctl/internal/session"
)

// DefaultBaseURL is the local development backend
const DefaultBaseURL = "http://localhost:8000/api"

// RequestIDHeader carries a per-request UUID
const RequestIDHeader = "X-Request-ID"

const maxLoggedBody = 512

type authMode int

const (
	authNone authMode = iota
	authRequired
	// authOptional attaches the token when one is stored
	authOptional
)

// Client talks to the proposals backend on behalf of the stored session
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	logger     *slog.Logger
	limiter    *rate.Limiter
	userAgent  string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a client-wide timeout. Zero keeps the http.Client default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRateLimit throttles outbound requests. A non-positive rps disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client rooted at baseURL that reads and writes
// session state through store
func NewClient(baseURL string, store session.Store, logger *slog.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		store:      store,
		logger:     logger,
		userAgent:  "propctl",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client was built with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Store returns the session store the client reads tokens from
func (c *Client) Store() session.Store {
	return c.store
}

type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	auth   authMode
	// fallback is used when the backend gives no usable message
	fallback   string
	fallbackFn func(status int) string
}

func (r *request) fallbackMessage(status int) string {
	if r.fallbackFn != nil {
		return r.fallbackFn(status)
	}
	if r.fallback != "" {
		return r.fallback
	}
	return msgUnexpected
}

type response struct {
	status int
	body   []byte
}

// decode unmarshals the body into out. An empty body leaves out untouched.
func (r *response) decode(op string, out any) error {
	if out == nil || len(bytes.TrimSpace(r.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.body, out); err != nil {
		return &Error{
			Kind:    KindUnexpected,
			Op:      op,
			Status:  r.status,
			Message: msgUnexpected,
			Body:    json.RawMessage(bytes.Clone(r.body)),
			Err:     fmt.Errorf("decoding response: %w", err),
		}
	}
	return nil
}

// send performs r. On a non-2xx status both the response and an *Error are
// returned so callers can apply endpoint-specific handling.
func (c *Client) send(ctx context.Context, r *request) (*response, error) {
	var token string
	if r.auth != authNone {
		token, _ = c.store.Get(session.KeyAccessToken)
		if token == "" && r.auth == authRequired {
			return nil, newAuthError(r.op)
		}
	}

	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, &Error{
				Kind:    KindUnexpected,
				Op:      r.op,
				Message: msgUnexpected,
				Err:     fmt.Errorf("failed to marshal request payload: %w", err),
			}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, newTransportError(r.op, fmt.Errorf("failed to create request: %w", err))
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, newTransportError(r.op, fmt.Errorf("rate limiter: %w", err))
		}
	}

	c.logger.Debug("api request",
		"op", r.op,
		"method", r.method,
		"path", r.path,
		"request_id", requestID,
		"authenticated", token != "")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api request failed",
			"op", r.op,
			"request_id", requestID,
			"error", err)
		return nil, newTransportError(r.op, fmt.Errorf("failed to make request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(r.op, fmt.Errorf("failed to read response body: %w", err))
	}

	c.logger.Debug("api response",
		"op", r.op,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	out := &response{status: resp.StatusCode, body: data}
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := normalize(r, resp.StatusCode, data, token != "")
		c.logger.Warn("api error response",
			"op", r.op,
			"request_id", requestID,
			"status", resp.StatusCode,
			"kind", apiErr.Kind.String(),
			"body", truncate(string(data), maxLoggedBody))
		return out, apiErr
	}
	return out, nil
}

// call performs r and decodes a successful body into T
func call[T any](ctx context.Context, c *Client, r *request) (T, error) {
	var out T
	resp, err := c.send(ctx, r)
	if err != nil {
		return out, err
	}
	if err := resp.decode(r.op, &out); err != nil {
		return out, err
	}
	return out, nil
}

// rotateTokens stores fresh tokens returned by password endpoints
func (c *Client) rotateTokens(op, access, refresh string) error {
	if err := session.RotateTokens(c.store, access, refresh); err != nil {
		return &Error{Kind: KindUnexpected, Op: op, Message: msgUnexpected, Err: err}
	}
	return nil
}

func requireID(op string, id int64) error {
	if id <= 0 {
		return newInvalidIDError(op)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

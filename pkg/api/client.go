package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reportmygrievance/rmg-go/pkg/logger"
)

const (
	// DefaultBaseURL points at a local backend instance.
	DefaultBaseURL = "http://localhost:8000/api/"

	// DefaultTimeout bounds every request end to end.
	DefaultTimeout = 10 * time.Second

	authScheme = "Token"
)

// SessionSource supplies the persisted auth token for outgoing requests
// and clears the persisted session when the backend rejects it.
// Implemented by the sessionstore backends.
type SessionSource interface {
	// Token returns the persisted auth token.
	// An error (or empty token) means the request goes out unauthenticated.
	Token(ctx context.Context) (string, error)

	// Clear removes the persisted token and cached user together.
	Clear(ctx context.Context) error
}

// InvalidationFunc is notified after the client detects a rejected session
// (HTTP 401) and has cleared persisted state. A single top-level subscriber
// owns the decision of what happens next (navigation, state reset); the
// client itself stays free of UI concerns.
type InvalidationFunc func(ctx context.Context)

// Client is the single point of outgoing HTTP configuration: base URL,
// timeout, JSON content negotiation, token injection, and global
// unauthorized handling. It does not interpret response bodies beyond
// decoding them into the caller's target.
type Client struct {
	http      *http.Client
	session   SessionSource
	log       *slog.Logger
	baseURL   string
	userAgent string

	mu            sync.RWMutex
	onInvalidated []InvalidationFunc
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets the backend base URL.
// Defaults to DefaultBaseURL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTimeout sets the per-request timeout.
// Defaults to DefaultTimeout. Ignored when a custom HTTP client is set.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client for requests.
// This is useful for testing with httptest servers or injecting
// custom transports.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithSessionSource sets the session store the client reads tokens from
// and clears on 401 responses. Without one, all requests go out
// unauthenticated.
func WithSessionSource(s SessionSource) ClientOption {
	return func(c *Client) {
		c.session = s
	}
}

// WithLogger sets the client logger.
// Defaults to a no-op logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithUserAgent sets the User-Agent header on outgoing requests.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a configured request client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		baseURL: DefaultBaseURL,
		log:     logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if !strings.HasSuffix(c.baseURL, "/") {
		c.baseURL += "/"
	}
	return c
}

// OnSessionInvalidated registers a subscriber for the session-invalidated
// signal. Subscribers run synchronously, after persisted state is cleared
// and before the triggering call returns its error.
func (c *Client) OnSessionInvalidated(fn InvalidationFunc) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onInvalidated = append(c.onInvalidated, fn)
}

// ClearSession clears the persisted session, if a session source is set.
// It does not fire the invalidation signal; that is reserved for
// backend-detected rejection.
func (c *Client) ClearSession(ctx context.Context) {
	if c.session != nil {
		_ = c.session.Clear(ctx)
	}
}

// Get issues a GET request and decodes the response into out (may be nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body (may be nil).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx = withRequestID(ctx, uuid.NewString())

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Join(ErrEncodeFailed, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", RequestIDFromContext(ctx))
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.session != nil {
		if token, terr := c.session.Token(ctx); terr == nil && token != "" {
			req.Header.Set("Authorization", authScheme+" "+token)
		}
	}

	c.log.DebugContext(ctx, "dispatching request",
		slog.String("method", method),
		slog.String("path", path),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.DebugContext(ctx, "request failed", slog.String("error", err.Error()))
		return errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidateSession(ctx)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		se := &statusError{status: resp.StatusCode}
		var payload ErrorPayload
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil {
			se.payload = &payload
		}
		c.log.DebugContext(ctx, "request rejected",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return se
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrDecodeFailed, err)
	}

	return nil
}

// invalidateSession clears persisted state and notifies subscribers.
// Runs before the triggering call's own error path, independent of which
// operation issued the request.
func (c *Client) invalidateSession(ctx context.Context) {
	c.log.WarnContext(ctx, "session rejected by backend, clearing persisted state")
	c.ClearSession(ctx)

	c.mu.RLock()
	subscribers := make([]InvalidationFunc, len(c.onInvalidated))
	copy(subscribers, c.onInvalidated)
	c.mu.RUnlock()

	for _, fn := range subscribers {
		fn(ctx)
	}
}

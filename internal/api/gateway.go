package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/bankconsole/internal/logging"
)

// RequestIDHeader carries the per-call identifier the gateway attaches.
const RequestIDHeader = "X-Request-ID"

// GenericMessage is used when a failed response carries no message field.
const GenericMessage = "API error"

// Error is a failure reported by the banking service.
type Error struct {
	Status    int
	Message   string
	RequestID string
}

func (e *Error) Error() string { return e.Message }

// MessageOf returns the user-facing text for err: the service message for
// *Error and the error text for anything else.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// Gateway sends requests to the service rooted at Root. It holds no
// per-call state and is safe for concurrent use.
type Gateway struct {
	root    string
	client  *http.Client
	timeout time.Duration
	log     *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the default http.Client. The gateway never
// modifies c.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.client = c }
}

// WithTimeout bounds each call. Zero keeps the client's own timeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

// NewGateway returns a gateway for the API mounted at root, e.g.
// "http://localhost:3000/api".
func NewGateway(root string, opts ...Option) *Gateway {
	g := &Gateway{
		root:   strings.TrimRight(root, "/"),
		client: &http.Client{},
		log:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.timeout > 0 {
		c := *g.client
		c.Timeout = g.timeout
		g.client = &c
	}
	return g
}

// Root returns the configured API root.
func (g *Gateway) Root() string { return g.root }

// Call sends method to root+path with body JSON-encoded when non-nil and
// returns the raw JSON response. The body is decoded whatever the status;
// a non-2xx status becomes *Error.
func (g *Gateway) Call(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.root+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := g.client.Do(req)
	if err != nil {
		g.log.Debug("api call failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	g.log.Debug("api call", "method", method, "path", path, "status", res.StatusCode, "request_id", reqID)

	if !json.Valid(data) {
		return nil, fmt.Errorf("%s %s: malformed response body (status %d)", method, path, res.StatusCode)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		var envelope struct {
			Message *string `json:"message"`
		}
		msg := GenericMessage
		if json.Unmarshal(data, &envelope) == nil && envelope.Message != nil && *envelope.Message != "" {
			msg = *envelope.Message
		}
		return nil, &Error{Status: res.StatusCode, Message: msg, RequestID: reqID}
	}
	return json.RawMessage(data), nil
}

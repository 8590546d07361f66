// Package predict is the client side of the remote career prediction
// endpoint (POST /predict).
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pathfinder/internal/logging"

	"github.com/google/uuid"
)

const maxResponseBytes = 1 << 20

// Client performs prediction exchanges against one endpoint URL.
type Client struct {
	url        string
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout bounds each exchange. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a client for the full endpoint URL, e.g.
// http://127.0.0.1:5000/predict.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{},
		userAgent:  "pathfinder/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type requestIDKey struct{}

// WithRequestID attaches a correlation ID sent as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the correlation ID attached to ctx.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// Predict performs exactly one request/response exchange.
//
// Any JSON object in the response body is returned as a Response regardless
// of the HTTP status; callers inspect Success. A failure to send, read, or
// decode yields a *TransportError.
func (c *Client) Predict(ctx context.Context, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reqID, ok := RequestIDFromContext(ctx)
	if !ok {
		reqID = uuid.NewString()
	}
	log := logging.WithRequestID(logging.CategoryAPI, reqID)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", reqID)

	log.Debug("POST %s body=%s", c.url, body)
	timer := logging.StartTimer(logging.CategoryAPI, "predict exchange")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		timer.Stop()
		log.Warn("exchange failed: %v", err)
		return nil, &TransportError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	timer.Stop()
	if err != nil {
		return nil, &TransportError{Op: "read response", Err: err}
	}

	out, err := decodeResponse(raw)
	if err != nil {
		log.Warn("undecodable response (HTTP %d): %v", resp.StatusCode, err)
		return nil, &TransportError{Op: "decode response", Err: err}
	}
	log.Info("HTTP %d success=%v", resp.StatusCode, out.Success)
	return out, nil
}

var errNotObject = errors.New("response is not a JSON object")

func decodeResponse(raw []byte) (*Response, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errNotObject
	}
	var out Response
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

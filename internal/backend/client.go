package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/loghoi/loghoi/internal/errors"
	"github.com/loghoi/loghoi/internal/logger"
)

// RequestIDHeader is set on every request.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of an error response is read for a detail message.
const maxErrorBody = 4096

// HTTPError is the cause attached to errors for non-2xx responses.
type HTTPError struct {
	StatusCode int
	Status     string // e.g. "503 Service Unavailable"
	Detail     string // backend-provided detail, if any
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return e.Status + ": " + e.Detail
	}
	return e.Status
}

// Client is an HTTP client for the Log Hoihoi backend.
type Client struct {
	resolve   Resolver
	http      *http.Client
	userAgent string
	log       logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client that resolves the backend origin on every
// request. timeout bounds each request; zero means no client-side timeout.
func NewClient(resolve Resolver, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		resolve:   resolve,
		http:      &http.Client{Timeout: timeout},
		userAgent: "loghoi",
		log:       logger.NewEnvLogger("[backend]"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Origin returns the currently resolved backend origin.
func (c *Client) Origin() string {
	return c.resolve()
}

// SetupSSHKey asks the backend to make sure its SSH key exists.
//
// A 2xx response whose body can't be decoded is not an error: it yields an
// empty SetupResponse, which callers treat as "already set up".
func (c *Client) SetupSSHKey(ctx context.Context) (*SetupResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, SetupPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out SetupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.Debug("setup response body not understood, assuming key exists: %v", err)
		return &SetupResponse{}, nil
	}
	return &out, nil
}

// ListDevices fetches registered devices.
func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	resp, err := c.do(ctx, http.MethodGet, DeviceListPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out deviceList
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrBackend,
			"Device list response was not valid JSON",
			"Check that backend.url points at a Log Hoihoi backend")
	}
	return out.Devices, nil
}

// RegisterDevice registers a new device with the backend.
func (c *Client) RegisterDevice(ctx context.Context, reg Registration) error {
	body, err := json.Marshal(reg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrDevice, "Failed to encode registration", "")
	}

	resp, err := c.do(ctx, http.MethodPost, RegisterPath, body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// do sends a request and returns the response for any 2xx status. The caller
// closes the body. Non-2xx responses are drained, closed, and returned as
// errors carrying an *HTTPError cause.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	origin := c.resolve()
	url := origin + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrBackend,
			fmt.Sprintf("Invalid backend request %s %s", method, url),
			"Check backend.url in your config")
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("%s %s (request %s)", method, url, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrBackend,
			fmt.Sprintf("Cannot reach backend at %s", origin),
			"Check that the backend is running and backend.url is correct")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		httpErr := &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Detail:     readDetail(resp.Body),
		}
		c.log.Debug("%s %s -> %s (request %s)", method, url, resp.Status, requestID)
		return nil, errors.WrapWithCode(httpErr, errors.ErrBackend,
			fmt.Sprintf("%s %s failed", method, path),
			"Check the backend logs for request "+requestID)
	}

	return resp, nil
}

// readDetail pulls a {"detail": "..."} message out of an error body.
func readDetail(r io.Reader) string {
	var body struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&body); err != nil {
		return ""
	}
	if s, ok := body.Detail.(string); ok {
		return s
	}
	return ""
}

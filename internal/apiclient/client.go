package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// Logger is the minimal structured logger the client needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Client talks to the campaign backend REST API. It attaches bearer
// credentials, decodes typed responses, and normalizes every failure into
// an APIError. It never clears credentials or issues redirects; that policy
// lives with the callers that know whether a call was authenticated.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a backend client rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     noopLogger{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RequestOptions customizes a single call. Token, when present, is attached
// as a bearer credential; the call is still attempted without one since the
// server is authoritative.
type RequestOptions struct {
	Token string
	Query url.Values
}

func (c *Client) Get(ctx context.Context, path string, out any, opts RequestOptions) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts RequestOptions) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts RequestOptions) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts)
}

func (c *Client) Delete(ctx context.Context, path string, opts RequestOptions) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, opts)
}

// errorBody is the backend's optional error envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts RequestOptions) error {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(opts.Query) > 0 {
		endpoint += "?" + opts.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to build backend request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	c.logger.Debug("backend request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend unreachable", "method", method, "path", path, "error", err)
		return &APIError{Status: 0, Message: "network error", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: 0, Message: "network error", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.normalizeFailure(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to decode backend response").
			WithMetadata(map[string]any{"path": path, "status": resp.StatusCode})
	}

	return nil
}

// normalizeFailure builds an APIError from a non-2xx response. A body that
// is not the {error, message} envelope falls back to the HTTP status text
// rather than failing the normalization itself.
func (c *Client) normalizeFailure(status int, raw []byte) error {
	apiErr := &APIError{
		Status:  status,
		Message: http.StatusText(status),
	}

	var parsed errorBody
	if len(raw) > 0 && json.Unmarshal(raw, &parsed) == nil {
		apiErr.Code = parsed.Error
		if parsed.Message != "" {
			apiErr.Message = parsed.Message
		} else if parsed.Error != "" {
			apiErr.Message = parsed.Error
		}

		var rawMap map[string]any
		if json.Unmarshal(raw, &rawMap) == nil && len(rawMap) > 0 {
			apiErr.Raw = rawMap
		}
	}

	c.logger.Debug("backend error response", "status", status, "code", apiErr.Code, "message", apiErr.Message)

	return apiErr
}

// Package erp provides the typed HTTP client for the remote ERP backend.
// It covers exactly the endpoints the admin screens consume: paginated
// lists, single-record reads, create/update/delete and status-transition
// actions. Failures reject immediately; there is no retry or caching here.
package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/erp/console/internal/infrastructure/logger"
	"github.com/erp/console/internal/infrastructure/telemetry"
)

// Config holds the connection settings for the ERP backend.
type Config struct {
	// BaseURL is the absolute root of the ERP REST API,
	// e.g. http://localhost:8080/api/v1.
	BaseURL string
	// Timeout bounds every upstream call end to end.
	Timeout time.Duration
}

// Client is the shared transport for all resource sub-clients.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient validates the configuration and builds a client.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base URL must be absolute: %s", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		logger: log,
	}, nil
}

type tokenKey struct{}

// WithToken stores the caller's bearer token in the context. Every
// upstream call forwards it; calls without a token go out anonymous and
// the backend answers 401.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token stored by WithToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

// request describes one upstream call.
type request struct {
	method  string
	path    string
	query   url.Values
	headers map[string]string
	body    interface{}
}

// do executes the request and decodes a 2xx body into out. Non-2xx
// responses and transport failures come back as *APIError.
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	u, err := c.buildURL(req.path, req.query)
	if err != nil {
		return fmt.Errorf("building URL: %w", err)
	}

	var bodyReader io.Reader
	if req.body != nil {
		bodyBytes, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), bodyReader)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token, ok := TokenFromContext(ctx); ok {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &APIError{StatusCode: 0, Message: err.Error()}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return &APIError{StatusCode: httpResp.StatusCode, Message: fmt.Sprintf("reading response body: %v", err)}
	}

	log := c.logger
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}
	log.Debug("upstream call",
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return parseAPIError(httpResp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{StatusCode: httpResp.StatusCode, Message: fmt.Sprintf("decoding response: %v", err)}
	}
	return nil
}

func (c *Client) buildURL(path string, query url.Values) (*url.URL, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := c.baseURL.Parse(strings.TrimSuffix(c.baseURL.Path, "/") + path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u, nil
}

// Page is the list envelope the ERP backend wraps every collection in.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Pages int   `json:"pages"`
}

func list[T any](ctx context.Context, c *Client, resource, path string, q ListQuery) (*Page[T], error) {
	ctx, span := telemetry.StartClientSpan(ctx, resource, "list",
		telemetry.WithAttribute(telemetry.SpanAttrPage, q.Page),
		telemetry.WithAttribute(telemetry.SpanAttrPageSize, q.Size),
	)
	defer span.End()

	var page Page[T]
	if err := c.do(ctx, request{method: http.MethodGet, path: path, query: q.Values()}, &page); err != nil {
		recordUpstreamError(span, err)
		return nil, err
	}
	return &page, nil
}

func get[T any](ctx context.Context, c *Client, resource, path string) (*T, error) {
	ctx, span := telemetry.StartClientSpan(ctx, resource, "get")
	defer span.End()

	var item T
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &item); err != nil {
		recordUpstreamError(span, err)
		return nil, err
	}
	return &item, nil
}

// create POSTs the payload with a fresh idempotency key so a duplicated
// submission cannot produce two resources.
func create[T any](ctx context.Context, c *Client, resource, path string, payload interface{}) (*T, error) {
	key := uuid.NewString()
	ctx, span := telemetry.StartClientSpan(ctx, resource, "create",
		telemetry.WithAttribute(telemetry.SpanAttrIdempotencyKey, key),
	)
	defer span.End()

	var item T
	req := request{
		method:  http.MethodPost,
		path:    path,
		headers: map[string]string{"X-Idempotency-Key": key},
		body:    payload,
	}
	if err := c.do(ctx, req, &item); err != nil {
		recordUpstreamError(span, err)
		return nil, err
	}
	return &item, nil
}

func update[T any](ctx context.Context, c *Client, resource, path string, payload interface{}) (*T, error) {
	ctx, span := telemetry.StartClientSpan(ctx, resource, "update")
	defer span.End()

	var item T
	if err := c.do(ctx, request{method: http.MethodPut, path: path, body: payload}, &item); err != nil {
		recordUpstreamError(span, err)
		return nil, err
	}
	return &item, nil
}

func remove(ctx context.Context, c *Client, resource, path string) error {
	ctx, span := telemetry.StartClientSpan(ctx, resource, "delete")
	defer span.End()

	if err := c.do(ctx, request{method: http.MethodDelete, path: path}, nil); err != nil {
		recordUpstreamError(span, err)
		return err
	}
	return nil
}

// action POSTs to the /{id}/{action} sub-path used for status transitions.
func action[T any](ctx context.Context, c *Client, resource, path, name string) (*T, error) {
	ctx, span := telemetry.StartClientSpan(ctx, resource, name)
	defer span.End()

	var item T
	if err := c.do(ctx, request{method: http.MethodPost, path: path + "/" + name}, &item); err != nil {
		recordUpstreamError(span, err)
		return nil, err
	}
	return &item, nil
}

func recordUpstreamError(span trace.Span, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		telemetry.SetAttribute(span, telemetry.SpanAttrUpstreamStatus, apiErr.StatusCode)
	}
	telemetry.RecordError(span, err)
}

// Package apiclient is the single request helper used to talk to the catalog
// backend. Every call goes to one configured base URL, carries the caller's
// bearer token when one is present, and returns the status code alongside the
// raw JSON payload so callers can branch on the status themselves.
//
// The client has no retry policy and no client-side timeout. Cancellation
// comes only from the request context.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
)

const defaultMessagePath = "message"

// Metrics is the subset of a StatsD sink the client reports to.
type Metrics interface {
	Count(name string, value int64, tags map[string]string)
	Timing(name string, value time.Duration, tags map[string]string)
}

// Doer performs one backend round trip.
type Doer interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Options configures a Client.
type Options struct {
	// BaseURL is prefixed to every request path (required).
	BaseURL string
	// MessagePath is a JMESPath expression locating the error message in a response body.
	MessagePath string
	// HTTPClient overrides the transport (optional). Its Timeout is left as provided.
	HTTPClient *http.Client
	Metrics    Metrics      // optional
	Logger     *slog.Logger // optional
}

// Client performs requests against the backend.
type Client struct {
	baseURL *url.URL
	message jmespath.JMESPath
	http    *http.Client
	metrics Metrics
	logger  *slog.Logger
}

var _ Doer = (*Client)(nil)

// New validates options and builds a Client.
func New(opts Options) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("apiclient: base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: base url must be http or https, got %q", base.Scheme)
	}

	path := strings.TrimSpace(opts.MessagePath)
	if path == "" {
		path = defaultMessagePath
	}
	message, err := jmespath.Compile(path)
	if err != nil {
		return nil, fmt.Errorf("apiclient: compile message path %q: %w", path, err)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: base,
		message: message,
		http:    hc,
		metrics: opts.Metrics,
		logger:  logger,
	}, nil
}

// Request describes one backend call. Body is ignored for GET.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Do sends the request and reads the whole response body.
// A non-2xx status is not an error; errors are reserved for transport failures
// and 2xx bodies that are not JSON. A non-2xx body that is not JSON (a proxy
// error page, say) is dropped and the response carries the status alone.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := c.buildRequest(ctx, method, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.observe(method, req.Path, 0, time.Since(start))
		return nil, fmt.Errorf("%s %s: %w", method, req.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.observe(method, req.Path, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, req.Path, err)
	}

	body = bytes.TrimSpace(body)
	if len(body) > 0 && !json.Valid(body) {
		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			return nil, fmt.Errorf("%s %s: status %d: response is not json", method, req.Path, resp.StatusCode)
		}
		c.logger.Warn("backend error response is not json",
			slog.String("method", method),
			slog.String("route", RouteTemplate(req.Path)),
			slog.Int("status", resp.StatusCode),
		)
		body = nil
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Data:       json.RawMessage(body),
		message:    c.message,
	}, nil
}

func (c *Client) buildRequest(ctx context.Context, method string, req Request) (*http.Request, error) {
	target := c.resolve(req.Path, req.Query)

	var body io.Reader
	if method != http.MethodGet {
		payload := req.Body
		if payload == nil {
			payload = struct{}{}
		}
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode body: %w", method, req.Path, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: build request: %w", method, req.Path, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if token := TokenFromContext(ctx); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	return httpReq, nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) observe(method, path string, status int, elapsed time.Duration) {
	route := RouteTemplate(path)
	c.logger.Debug("backend request",
		slog.String("method", method),
		slog.String("route", route),
		slog.Int("status", status),
		slog.Duration("duration", elapsed),
	)
	if c.metrics == nil {
		return
	}
	tags := map[string]string{
		"method": method,
		"route":  route,
		"status": statusClass(status),
	}
	c.metrics.Count("api.request", 1, tags)
	c.metrics.Timing("api.request.duration", elapsed, tags)
}

// RouteTemplate collapses numeric path segments so metrics do not explode per id.
func RouteTemplate(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if p != "" && strings.Trim(p, "0123456789") == "" {
			parts[i] = "{id}"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func statusClass(status int) string {
	if status <= 0 {
		return "error"
	}
	return fmt.Sprintf("%dxx", status/100)
}

package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Response is the uniform {statusCode, data} result of a backend call.
type Response struct {
	StatusCode int
	Data       json.RawMessage

	message jmespath.JMESPath
}

var defaultMessage = jmespath.MustCompile(defaultMessagePath)

// Is reports whether the response carries the given status code.
func (r *Response) Is(code int) bool {
	return r != nil && r.StatusCode == code
}

// Decode unmarshals the payload into v. An empty payload leaves v untouched.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode status %d payload: %w", r.StatusCode, err)
	}
	return nil
}

// Message extracts the backend's human-readable message, or "" when absent.
// Array messages (as produced by some validation pipes) are joined with "; ".
func (r *Response) Message() string {
	if r == nil || len(r.Data) == 0 {
		return ""
	}
	var doc any
	if err := json.Unmarshal(r.Data, &doc); err != nil {
		return ""
	}
	expr := r.message
	if expr == nil {
		expr = defaultMessage
	}
	found, err := expr.Search(doc)
	if err != nil || found == nil {
		return ""
	}
	switch v := found.(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}

// Result is a decoded response. Data is only populated for 2xx statuses.
type Result[T any] struct {
	StatusCode int
	Data       T
	Message    string
}

// Fetch performs req and decodes a successful payload into T.
func Fetch[T any](ctx context.Context, d Doer, req Request) (Result[T], error) {
	var out Result[T]
	resp, err := d.Do(ctx, req)
	if err != nil {
		return out, err
	}
	out.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		out.Message = resp.Message()
		return out, nil
	}
	if err := resp.Decode(&out.Data); err != nil {
		return out, err
	}
	return out, nil
}

package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Reply is a canned backend answer.
type Reply struct {
	Status int
	Body   any // marshalled as JSON; a string is written verbatim
}

// RecordedRequest is what the stub backend saw.
type RecordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Body          string
}

// Backend is an httptest server that answers "METHOD /path" routes with canned
// replies and records every request. Unknown routes answer 404 with a message.
type Backend struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]Reply
	requests []RecordedRequest
}

// NewBackend starts a stub backend that is closed when the test finishes.
func NewBackend(t TestingTB) *Backend {
	t.Helper()
	b := &Backend{routes: make(map[string]Reply)}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

// On registers a reply for a route such as "GET /company/1".
func (b *Backend) On(route string, status int, body any) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[route] = Reply{Status: status, Body: body}
	return b
}

// Requests returns a copy of every recorded request.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// Last returns the most recent request recorded for route, if any.
func (b *Backend) Last(route string) (RecordedRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.requests) - 1; i >= 0; i-- {
		r := b.requests[i]
		if r.Method+" "+r.Path == route {
			return r, true
		}
	}
	return RecordedRequest{}, false
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	route := r.Method + " " + r.URL.Path

	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		RawQuery:      r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		Body:          strings.TrimSpace(string(body)),
	})
	reply, ok := b.routes[route]
	b.mu.Unlock()

	if !ok {
		reply = Reply{Status: http.StatusNotFound, Body: map[string]any{"statusCode": 404, "message": "Cannot " + route}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.Status)
	switch v := reply.Body.(type) {
	case nil:
	case string:
		_, _ = io.WriteString(w, v)
	default:
		_ = json.NewEncoder(w).Encode(v)
	}
}

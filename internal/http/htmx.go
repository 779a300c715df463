package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// htmx request and response headers used by the console.
const (
	hxRequest     = "Hx-Request"
	hxTriggerName = "Hx-Trigger-Name"
	hxRedirect    = "Hx-Redirect"
	hxRefresh     = "Hx-Refresh"
	hxTrigger     = "Hx-Trigger"
)

// IsHTMX reports whether the request was initiated by htmx (Hx-Request: true).
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(hxRequest), "true")
}

// WantsPartial is true when only the page section should be rendered.
// Search and pager swaps target #content, so every htmx request qualifies.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r)
}

// HXTriggerName returns the name of the input that fired a validation request.
func HXTriggerName(r *http.Request) string { return r.Header.Get(hxTriggerName) }

// HTMXResponse sets htmx response headers on w.
type HTMXResponse struct {
	w http.ResponseWriter
}

// HTMX wraps w for htmx response building.
func HTMX(w http.ResponseWriter) *HTMXResponse {
	return &HTMXResponse{w: w}
}

// Navigate sets Hx-Redirect without writing a status, for callers that pick their own.
func (h *HTMXResponse) Navigate(url string) *HTMXResponse {
	h.w.Header().Set(hxRedirect, url)
	return h
}

// Redirect makes the browser perform a full navigation to url and answers 204.
// The handler must return immediately afterwards.
func (h *HTMXResponse) Redirect(url string) {
	h.Navigate(url)
	h.w.WriteHeader(http.StatusNoContent)
}

// Refresh asks the browser to reload the current page.
func (h *HTMXResponse) Refresh() *HTMXResponse {
	h.w.Header().Set(hxRefresh, "true")
	return h
}

// Trigger fires a client-side event after the swap. A nil payload is sent as true.
func (h *HTMXResponse) Trigger(event string, payload any) *HTMXResponse {
	var value any = true
	if payload != nil {
		value = payload
	}
	b, err := json.Marshal(map[string]any{event: value})
	if err != nil {
		b = []byte(`{"` + event + `":true}`)
	}
	h.w.Header().Set(hxTrigger, string(b))
	return h
}

// redirect sends htmx requests an Hx-Redirect and everything else a 303.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if IsHTMX(r) {
		HTMX(w).Redirect(url)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

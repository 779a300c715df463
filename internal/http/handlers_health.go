package httpx

import (
	"io"
	"net/http"
)

// healthHandler reports liveness without touching the backend, so a backend
// outage does not take the console out of rotation. Passing through the
// middleware chain also primes the CSRF cookie for scripted clients.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	}
}

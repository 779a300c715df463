package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultCSRFCookieName is also the hidden form field every page form posts.
	DefaultCSRFCookieName = "csrf_token"
	// DefaultCSRFHeaderName is set by htmx from the body's hx-headers attribute.
	DefaultCSRFHeaderName = "X-Csrf-Token"

	defaultCSRFTokenBytes = 32
	defaultCSRFMaxAge     = 12 * time.Hour
)

// CSRFConfig configures the double-submit guard.
type CSRFConfig struct {
	CookieName string
	HeaderName string
	FieldName  string
	Domain     string
	TokenBytes int
	MaxAge     time.Duration
	Logger     *slog.Logger
}

func (c CSRFConfig) withDefaults() CSRFConfig {
	if c.CookieName == "" {
		c.CookieName = DefaultCSRFCookieName
	}
	if c.HeaderName == "" {
		c.HeaderName = DefaultCSRFHeaderName
	}
	if c.FieldName == "" {
		c.FieldName = DefaultCSRFCookieName
	}
	if c.TokenBytes <= 0 {
		c.TokenBytes = defaultCSRFTokenBytes
	}
	if c.MaxAge <= 0 {
		c.MaxAge = defaultCSRFMaxAge
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

type csrfGuard struct {
	cfg CSRFConfig
}

// CSRFProtection guards every state-changing request with a double-submit
// token. The token is rendered into each page, so the cookie stays HttpOnly.
func CSRFProtection(cfg CSRFConfig) func(http.Handler) http.Handler {
	g := &csrfGuard{cfg: cfg.withDefaults()}
	return g.middleware
}

func (g *csrfGuard) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := g.ensure(w, r)
		if err != nil {
			g.cfg.Logger.ErrorContext(r.Context(), "csrf token generation failed", "error", err)
			http.Error(w, "unable to generate CSRF token", http.StatusInternalServerError)
			return
		}
		r = r.WithContext(context.WithValue(r.Context(), csrfTokenKey{}, token))

		if isUnsafeMethod(r.Method) && !tokensMatch(g.submitted(r), token) {
			g.reject(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ensure returns the browser's token, issuing a new cookie when there is none.
func (g *csrfGuard) ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	if ck, err := r.Cookie(g.cfg.CookieName); err == nil && ck.Value != "" {
		return ck.Value, nil
	}
	token, err := newCSRFToken(g.cfg.TokenBytes)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     g.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Domain:   g.cfg.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(g.cfg.MaxAge.Seconds()),
	})
	return token, nil
}

// submitted reads the header first, then the form field of form-encoded bodies.
func (g *csrfGuard) submitted(r *http.Request) string {
	if v := r.Header.Get(g.cfg.HeaderName); v != "" {
		return v
	}
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/x-www-form-urlencoded") &&
		!strings.HasPrefix(ct, "multipart/form-data") {
		return ""
	}
	if err := r.ParseForm(); err != nil {
		return ""
	}
	return r.PostFormValue(g.cfg.FieldName)
}

// reject answers 403. A stale token usually means the page sat open past the
// cookie lifetime, so htmx callers are told to reload.
func (g *csrfGuard) reject(w http.ResponseWriter, r *http.Request) {
	g.cfg.Logger.WarnContext(r.Context(), "csrf validation failed",
		"path", r.URL.Path,
		"method", r.Method,
		"htmx", IsHTMX(r),
	)
	if IsHTMX(r) {
		HTMX(w).Refresh()
	}
	http.Error(w, "CSRF token validation failed", http.StatusForbidden)
}

func isUnsafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}

func tokensMatch(got, want string) bool {
	if got == "" || want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// newCSRFToken fails closed when the system random source is unavailable.
func newCSRFToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

type csrfTokenKey struct{}

// GetCSRFToken returns the token the guard attached to the request.
func GetCSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenKey{}).(string)
	return token
}

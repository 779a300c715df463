package httpx

import (
	"compress/gzip"
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/target/catalog-console/internal/apiclient"
	"github.com/target/catalog-console/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CompressionConfig holds configuration for the compression middleware.
type CompressionConfig struct {
	Level   int // gzip level, 1-9
	MinSize int // bytes; smaller responses are sent as-is
}

// Compression gzips text responses for clients that accept it. An invalid
// configuration falls back to the library defaults.
func Compression(cfg CompressionConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	level := cfg.Level
	if level <= 0 {
		level = gzip.DefaultCompression
	}
	minSize := cfg.MinSize
	if minSize <= 0 {
		minSize = gzhttp.DefaultMinSize
	}

	wrap, err := gzhttp.NewWrapper(
		gzhttp.CompressionLevel(level),
		gzhttp.MinSize(minSize),
		gzhttp.ContentTypes(compressibleTypes),
	)
	if err != nil {
		logger.Warn("invalid compression config, using defaults", "error", err)
		wrap, _ = gzhttp.NewWrapper()
	}
	return func(next http.Handler) http.Handler {
		return wrap(next)
	}
}

//nolint:gochecknoglobals // static read-only list
var compressibleTypes = []string{
	"text/html", "text/css", "text/plain", "text/javascript",
	"application/javascript", "application/json", "image/svg+xml",
}

// SessionProvider resolves the per-request session from the browser token.
type SessionProvider interface {
	AutoLogin(ctx context.Context, token, path string) service.AutoLoginResult
}

var _ SessionProvider = (*service.SessionService)(nil)

// AutoLogin runs the session check on every navigation. It verifies the token
// cookie with the backend, stores the resulting session and bearer token on the
// request context, and sends unauthenticated browsers to the login screen.
// Static assets, the health probe and the validation endpoint skip the check.
func AutoLogin(sessions SessionProvider, cookies CookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipsSession(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			res := sessions.AutoLogin(r.Context(), cookies.token(r), r.URL.Path)
			if res.ClearToken {
				cookies.clearToken(w, r)
			}
			if res.Redirect != "" && res.Redirect != r.URL.Path {
				redirectToLogin(w, r, res.Redirect)
				return
			}

			ctx := WithSession(r.Context(), res.Session)
			if res.Session.Token != "" {
				ctx = apiclient.WithToken(ctx, res.Session.Token)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func skipsSession(path string) bool {
	return strings.HasPrefix(path, "/static/") ||
		path == "/healthz" ||
		path == "/favicon.ico" ||
		strings.HasPrefix(path, validateRoutePrefix)
}

// redirectToLogin sends htmx requests an HX-Redirect so the whole page
// navigates instead of swapping the login form into a fragment.
func redirectToLogin(w http.ResponseWriter, r *http.Request, target string) {
	if target == "" {
		target = service.LoginPath
	}
	if IsHTMX(r) {
		HTMX(w).Navigate(target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

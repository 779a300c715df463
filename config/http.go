package config

import "time"

// HTTPConfig configures the listener the console serves browsers on.
type HTTPConfig struct {
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// CookieDomain scopes the token, flash and csrf cookies. Empty means the
	// request host.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// Gzip for HTML, CSS and JS responses.
	CompressionEnabled bool `env:"HTTP_COMPRESSION_ENABLED"  envDefault:"false"`
	CompressionLevel   int  `env:"HTTP_COMPRESSION_LEVEL"    envDefault:"6"`
	CompressionMinSize int  `env:"HTTP_COMPRESSION_MIN_SIZE" envDefault:"1024"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Sanitize clamps the gzip level to 1-9 and restores non-positive durations.
func (h *HTTPConfig) Sanitize() {
	h.CompressionLevel = min(max(h.CompressionLevel, 1), 9)
	if h.CompressionMinSize < 0 {
		h.CompressionMinSize = 0
	}
	h.ReadTimeout = positiveOr(h.ReadTimeout, 30*time.Second)
	h.WriteTimeout = positiveOr(h.WriteTimeout, 30*time.Second)
	h.IdleTimeout = positiveOr(h.IdleTimeout, 120*time.Second)
	h.ShutdownTimeout = positiveOr(h.ShutdownTimeout, 10*time.Second)
}

func positiveOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

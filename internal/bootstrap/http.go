package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/target/catalog-console/config"
	httpx "github.com/target/catalog-console/internal/http"
)

const (
	defaultAddr       = ":8080"
	readHeaderTimeout = 10 * time.Second
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// BuildRouterServices maps the service container and config onto the router's inputs.
func BuildRouterServices(cfg *HTTPServerConfig) httpx.RouterServices {
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	services := httpx.RouterServices{
		Sessions:  cfg.Services.Sessions,
		Companies: cfg.Services.Companies,
		Products:  cfg.Services.Products,
		Dashboard: cfg.Services.Dashboard,
		Flash:     cfg.Services.Flash,
		Cookies: httpx.CookieConfig{
			TokenName: appCfg.Session.CookieName,
			Domain:    appCfg.HTTP.CookieDomain,
			MaxAge:    appCfg.Session.MaxAge,
		},
		PageSize: appCfg.API.PageSize,
		IsDev:    appCfg.IsDev,
		Logger:   logger,
	}
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		services.Compression = &httpx.CompressionConfig{
			Level:   appCfg.HTTP.CompressionLevel,
			MinSize: appCfg.HTTP.CompressionMinSize,
		}
	}
	return services
}

// StartHTTPServer creates the router and starts serving in the background.
// Listener failures are delivered on the returned channel.
func StartHTTPServer(cfg *HTTPServerConfig) (*http.Server, <-chan error, error) {
	if cfg == nil {
		return nil, nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler, err := httpx.NewRouter(BuildRouterServices(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("build router: %w", err)
	}

	httpCfg := config.HTTPConfig{}
	if cfg.Config != nil {
		httpCfg = cfg.Config.HTTP
	}
	httpCfg.Sanitize()

	server := newServer(httpCfg, handler)
	errCh := make(chan error, 1)

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	return server, errCh, nil
}

func newServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	addr := cfg.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = defaultAddr
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// ShutdownHTTPServer gracefully shuts down the HTTP server, waiting up to
// timeout for in-flight requests.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, timeout time.Duration, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("HTTP server stopped")
	return nil
}

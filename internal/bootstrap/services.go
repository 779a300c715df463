package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/catalog-console/config"
	"github.com/target/catalog-console/internal/adapters/memory"
	redisadapter "github.com/target/catalog-console/internal/adapters/redis"
	"github.com/target/catalog-console/internal/apiclient"
	"github.com/target/catalog-console/internal/observability/statsd"
	"github.com/target/catalog-console/internal/ports"
	"github.com/target/catalog-console/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Sessions      *service.SessionService
	Companies     *service.CompanyService
	Products      *service.ProductService
	Dashboard     *service.DashboardService
	Flash         ports.FlashStore
	API           *apiclient.Client
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink   *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// Close releases resources owned by the container.
func (c ServiceContainer) Close() error {
	if c.Observability.MetricsSink == nil {
		return nil
	}
	return c.Observability.MetricsSink.Close()
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient // required when the flash store is redis
	HTTPClient  *http.Client          // optional backend transport override
	Logger      *slog.Logger
}

// buildObservability configures the metrics sink. A sink that cannot be
// reached is logged and skipped rather than failing startup.
func buildObservability(ctx context.Context, logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obs := ObservabilityContainer{MetricsConfig: cfg.Metrics}
	if !cfg.Metrics.IsEnabled() {
		return obs
	}

	client, err := statsd.NewClient(ctx, statsd.Config{
		Enabled: true,
		Address: cfg.Metrics.StatsdAddress,
		Prefix:  cfg.Metrics.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return obs
	}
	obs.MetricsSink = client
	return obs
}

//nolint:ireturn // the flash store implementation is chosen from config.
func buildFlashStore(cfg config.FlashConfig, client redis.UniversalClient) (ports.FlashStore, error) {
	switch cfg.Store {
	case config.FlashStoreRedis:
		if client == nil {
			return nil, errors.New("redis flash store requires a redis client")
		}
		return redisadapter.NewFlashStore(redisadapter.FlashStoreOptions{
			Client: client,
			TTL:    cfg.TTL,
		}), nil
	default:
		return memory.NewFlashStore(cfg.TTL), nil
	}
}

func newAPIClient(deps *ServiceDeps, obs ObservabilityContainer) (*apiclient.Client, error) {
	opts := apiclient.Options{
		BaseURL:     deps.Config.API.BaseURL,
		MessagePath: deps.Config.API.MessagePath,
		HTTPClient:  deps.HTTPClient,
		Logger:      deps.Logger,
	}
	if obs.MetricsSink != nil {
		opts.Metrics = obs.MetricsSink
	}
	return apiclient.New(opts)
}

// NewServices wires the backend client, flash store and domain services.
func NewServices(ctx context.Context, deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps require config")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	obs := buildObservability(ctx, deps.Logger, deps.Config.Observability)

	api, err := newAPIClient(deps, obs)
	if err != nil {
		return ServiceContainer{}, errors.Join(fmt.Errorf("build api client: %w", err), closeSink(obs))
	}

	flash, err := buildFlashStore(deps.Config.Flash, deps.RedisClient)
	if err != nil {
		return ServiceContainer{}, errors.Join(err, closeSink(obs))
	}

	companies := service.NewCompanyService(service.CompanyServiceOptions{API: api, Logger: deps.Logger})
	products := service.NewProductService(service.ProductServiceOptions{API: api, Logger: deps.Logger})

	return ServiceContainer{
		Sessions:  service.NewSessionService(service.SessionServiceOptions{API: api, Logger: deps.Logger}),
		Companies: companies,
		Products:  products,
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			Companies: companies,
			Products:  products,
		}),
		Flash:         flash,
		API:           api,
		Observability: obs,
	}, nil
}

func closeSink(obs ObservabilityContainer) error {
	if obs.MetricsSink == nil {
		return nil
	}
	return obs.MetricsSink.Close()
}

// ServiceOrchestrationConfig holds what RunWithShutdown needs to serve traffic.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunWithShutdown serves HTTP until SIGINT/SIGTERM arrives, ctx is cancelled,
// or the listener fails, then drains in-flight requests.
func RunWithShutdown(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, errCh, err := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	var runErr error
	select {
	case <-sigCtx.Done():
		logger.Info("shutting down services...")
	case runErr = <-errCh:
		logger.Error("service error", "error", runErr)
	}

	timeout := 10 * time.Second
	if cfg.Config != nil && cfg.Config.HTTP.ShutdownTimeout > 0 {
		timeout = cfg.Config.HTTP.ShutdownTimeout
	}
	if stopErr := ShutdownHTTPServer(context.WithoutCancel(ctx), server, timeout, logger); stopErr != nil {
		logger.Error("graceful stop failed", "error", stopErr)
		if runErr == nil {
			runErr = stopErr
		}
	}
	return runErr
}

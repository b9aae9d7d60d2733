package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/pagekeep/digest-api/config"
	"github.com/pagekeep/digest-api/internal/adapters/devauth"
	"github.com/pagekeep/digest-api/internal/adapters/oidc"
	"github.com/pagekeep/digest-api/internal/adapters/queue"
	"github.com/pagekeep/digest-api/internal/data"
	httpx "github.com/pagekeep/digest-api/internal/http"
	"github.com/pagekeep/digest-api/internal/observability/analytics"
	"github.com/pagekeep/digest-api/internal/observability/statsd"
	"github.com/pagekeep/digest-api/internal/ports"
	"github.com/pagekeep/digest-api/internal/service"
)

// ServiceDeps carries shared infrastructure into service construction.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds the constructed application services and the
// closable infrastructure behind them.
type ServiceContainer struct {
	Auth     *service.AuthService
	Digest   *service.DigestService
	Feedback *service.FeedbackService
	Health   map[string]httpx.HealthChecker
	Metrics  *statsd.Client
	Queue    *queue.Publisher
}

// Close releases infrastructure owned by the container.
func (c *ServiceContainer) Close(logger *slog.Logger) {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil && logger != nil {
			logger.Error("close queue publisher failed", "error", err)
		}
	}
	if c.Metrics != nil {
		if err := c.Metrics.Close(); err != nil && logger != nil {
			logger.Error("close statsd client failed", "error", err)
		}
	}
}

// NewServices wires repositories, adapters, and services from configuration.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger

	metrics, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.Metrics.IsEnabled(),
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  "digest_api",
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create statsd client: %w", err)
	}

	verifier, err := newTokenVerifier(cfg)
	if err != nil {
		return nil, err
	}

	sink, err := newEventSink(cfg, logger)
	if err != nil {
		return nil, err
	}

	publisher, err := queue.NewPublisher(queue.PublisherConfig{
		URL:            cfg.Queue.URL,
		Queue:          cfg.Queue.Name,
		PublishTimeout: cfg.Queue.PublishTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create queue publisher: %w", err)
	}

	users := data.NewUserRepo(deps.DB)
	features := data.NewFeatureRepo(deps.DB)
	jobs := data.NewRedisJobStore(deps.RedisClient, cfg.Digest.Retention)
	ledger := data.NewRedisUsageLedger(deps.RedisClient, &data.RealTimeProvider{})

	authSvc, err := service.NewAuthService(service.AuthServiceOptions{
		Verifier: verifier,
		Users:    users,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create auth service: %w", err)
	}

	digestSvc, err := service.NewDigestService(service.DigestServiceOptions{
		Jobs:        jobs,
		Queue:       publisher,
		Features:    features,
		Ledger:      ledger,
		Logger:      logger,
		Metrics:     metrics,
		FeatureName: cfg.Digest.FeatureName,
		DailyLimit:  cfg.Digest.DailyLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("create digest service: %w", err)
	}

	feedbackSvc, err := service.NewFeedbackService(service.FeedbackServiceOptions{
		Analytics:   sink,
		Features:    features,
		Logger:      logger,
		Metrics:     metrics,
		FeatureName: cfg.Digest.FeatureName,
	})
	if err != nil {
		return nil, fmt.Errorf("create feedback service: %w", err)
	}

	db := deps.DB
	health := map[string]httpx.HealthChecker{
		"redis": jobs,
		"postgres": httpx.HealthCheckerFunc(func(ctx context.Context) error {
			return db.PingContext(ctx)
		}),
	}

	return &ServiceContainer{
		Auth:     authSvc,
		Digest:   digestSvc,
		Feedback: feedbackSvc,
		Health:   health,
		Metrics:  metrics,
		Queue:    publisher,
	}, nil
}

//nolint:ireturn // the verifier implementation is chosen by configuration.
func newTokenVerifier(cfg *config.AppConfig) (ports.TokenVerifier, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return devauth.NewVerifier(cfg.Auth.DevAuth.UserID, cfg.Auth.DevAuth.Email), nil
	default:
		verifier, err := oidc.NewVerifier(oidc.VerifierConfig{
			ClientID:     cfg.Auth.OIDC.ClientID,
			IssuerURL:    cfg.Auth.OIDC.IssuerURL,
			DiscoveryURL: cfg.Auth.OIDC.DiscoveryURL,
		})
		if err != nil {
			return nil, fmt.Errorf("create oidc verifier: %w", err)
		}
		return verifier, nil
	}
}

//nolint:ireturn // a disabled collector degrades to a logging no-op sink.
func newEventSink(cfg *config.AppConfig, logger *slog.Logger) (ports.EventSink, error) {
	ac := cfg.Observability.Analytics
	if !ac.Enabled {
		return ports.EventSinkFunc(func(ctx context.Context, ev ports.Event) error {
			if logger != nil {
				logger.DebugContext(ctx, "analytics disabled; event dropped", "event", ev.Name)
			}
			return nil
		}), nil
	}

	sink, err := analytics.NewClient(analytics.Config{
		CaptureURL: ac.CaptureURL,
		APIKey:     ac.APIKey,
		Source:     ac.Source,
		Timeout:    ac.Timeout,
		RetryLimit: ac.RetryLimit,
		Projection: ac.Projection,
	})
	if err != nil {
		return nil, fmt.Errorf("create analytics client: %w", err)
	}
	return sink, nil
}

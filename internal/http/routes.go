package httpx

import (
	"log/slog"
	"net/http"

	"github.com/pagekeep/digest-api/internal/observability/statsd"
	"github.com/pagekeep/digest-api/internal/service"
)

// RouterServices groups the services the router depends on.
type RouterServices struct {
	Digest   *service.DigestService
	Feedback *service.FeedbackService
	Auth     Authenticator

	// Health maps dependency names to health checkers for /healthz.
	Health map[string]HealthChecker

	// AuthCookieName is the cookie consulted when no Authorization header is present.
	AuthCookieName string

	Metrics statsd.Sink
	Logger  *slog.Logger
}

// NewRouter builds the API route table.
//
// The digest surface is versioned under /v1: submissions and polls on the
// root, feedback on /v1/feedback. All three require an authenticated,
// active account.
func NewRouter(svcs RouterServices) http.Handler {
	logger := svcs.Logger
	if logger == nil {
		logger = slog.Default()
	}

	digest := &DigestHandlers{Svc: svcs.Digest, Logger: logger}
	feedback := &FeedbackHandlers{Svc: svcs.Feedback, Logger: logger}
	health := &HealthHandlers{Checks: svcs.Health}

	requireAuth := RequireAuth(svcs.Auth, logger, svcs.AuthCookieName)

	mux := http.NewServeMux()
	mux.Handle("POST /v1", requireAuth(http.HandlerFunc(digest.Submit)))
	mux.Handle("GET /v1", requireAuth(http.HandlerFunc(digest.GetStatus)))
	mux.Handle("POST /v1/feedback", requireAuth(http.HandlerFunc(feedback.Submit)))
	mux.HandleFunc("GET /healthz", health.Health)

	// Order: Recover -> Logging -> Metrics -> Router
	var h http.Handler = mux
	h = Metrics(svcs.Metrics)(h)
	h = Logging(logger)(h)
	h = Recover(logger)(h)

	return h
}

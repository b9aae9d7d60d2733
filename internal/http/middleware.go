package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/pagekeep/digest-api/internal/domain/auth"
	"github.com/pagekeep/digest-api/internal/observability/statsd"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
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

// Metrics returns a middleware that emits a request timing per route.
func Metrics(sink statsd.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if sink == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			sink.Timing("http.request", time.Since(start), map[string]string{
				"method": r.Method,
				"path":   r.URL.Path,
			})
		})
	}
}

// Authenticator resolves a raw credential token into an active account.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (domainauth.User, error)
}

// RequireAuth returns a middleware that requires authentication.
// The credential is read from the Authorization header (Bearer scheme)
// or, failing that, from the named cookie. Unauthenticated requests get
// a 401 response.
func RequireAuth(auth Authenticator, logger *slog.Logger, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r, cookieName)
			if token == "" {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "unauthorized",
					Err:     errors.New("authentication required"),
				})
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				RenderError(w, r, logger, err)
				return
			}

			ctx := SetUserInContext(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenFromRequest extracts the raw credential from the request.
func tokenFromRequest(r *http.Request, cookieName string) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}

	if cookieName != "" {
		if cookie, err := r.Cookie(cookieName); err == nil {
			return cookie.Value
		}
	}

	return ""
}

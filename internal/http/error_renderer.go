package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/pagekeep/digest-api/internal/errors"
)

// RenderError maps an application error onto an HTTP response.
// Unexpected failures are logged with context and surfaced as a generic
// internal error; internal detail never reaches the client.
func RenderError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := apperrors.GetCode(err)

	switch code {
	case apperrors.ErrCodeUnauthorized:
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: string(code), Err: err})
	case apperrors.ErrCodeForbidden:
		WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: string(code), Err: err})
	case apperrors.ErrCodeNotFound:
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: string(code), Err: err})
	case apperrors.ErrCodeValidation:
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: string(code), Err: err})
	case apperrors.ErrCodeRateLimited:
		WriteError(w, ErrorParams{Code: http.StatusTooManyRequests, ErrCode: string(code), Err: err})
	case apperrors.ErrCodeConflict:
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: string(code), Err: err})
	default:
		if logger != nil {
			logger.ErrorContext(r.Context(), "request failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
		}
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "internal",
			Err:     errors.New("internal server error"),
		})
	}
}

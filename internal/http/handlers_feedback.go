package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pagekeep/digest-api/internal/domain/model"
	"github.com/pagekeep/digest-api/internal/service"
)

// FeedbackHandlers provides HTTP handlers for digest feedback.
type FeedbackHandlers struct {
	Svc    *service.FeedbackService
	Logger *slog.Logger
}

// Submit handles HTTP requests to record digest feedback.
func (h *FeedbackHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "unauthorized",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var fb model.DigestFeedback
	if !DecodeJSON(w, r, &fb) {
		return
	}

	if err := h.Svc.Submit(r.Context(), user.ID, fb); err != nil {
		RenderError(w, r, h.Logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

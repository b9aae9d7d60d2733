// Package httpx provides HTTP handlers and utilities for the digest API.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pagekeep/digest-api/internal/domain/model"
	"github.com/pagekeep/digest-api/internal/service"
)

// DigestHandlers provides HTTP handlers for digest job operations.
type DigestHandlers struct {
	Svc    *service.DigestService
	Logger *slog.Logger
}

// Submit handles HTTP requests to start digest generation.
// A fresh submission returns 201; an idempotent hit on an in-flight job
// returns 202 with the existing record.
func (h *DigestHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "unauthorized",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var req model.DigestRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Submit(r.Context(), user.ID, req)
	if err != nil {
		RenderError(w, r, h.Logger, err)
		return
	}

	status := http.StatusCreated
	if !result.Created {
		status = http.StatusAccepted
	}
	WriteJSON(w, status, result.Job)
}

// GetStatus handles HTTP requests to poll a digest job.
// While the job is Running only the partial {jobId, state} view is
// returned; every other state returns the full record.
func (h *DigestHandlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "unauthorized",
			Err:     errors.New("authentication required"),
		})
		return
	}

	job, err := h.Svc.GetStatus(r.Context(), user.ID)
	if err != nil {
		RenderError(w, r, h.Logger, err)
		return
	}

	if job.State == model.JobStateRunning {
		WriteJSON(w, http.StatusOK, job.Status())
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

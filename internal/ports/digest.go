package ports

import (
	"context"

	"github.com/pagekeep/digest-api/internal/domain/model"
)

// JobStore persists the single digest job record each user may hold.
// Records expire passively after the store's retention window; expiry is
// the only recovery path for jobs whose worker never reports back.
type JobStore interface {
	// Get returns the user's current job, or data.ErrJobNotFound.
	Get(ctx context.Context, userID string) (*model.DigestJob, error)

	// PutIfAbsent writes the record only when the user holds no record,
	// atomically with respect to concurrent writers. Returns false when a
	// record already exists.
	PutIfAbsent(ctx context.Context, userID string, job *model.DigestJob) (bool, error)

	// Put unconditionally overwrites the user's record. Used when a new
	// submission supersedes a terminal record, and by the worker side of
	// the lifecycle.
	Put(ctx context.Context, userID string, job *model.DigestJob) error

	// Delete removes the user's record. Only used to compensate a failed
	// enqueue; the lifecycle has no caller-facing delete.
	Delete(ctx context.Context, userID string) error
}

// EnqueueRequest is the message handed to the external digest worker.
type EnqueueRequest struct {
	JobID   string              `json:"jobId"`
	UserID  string              `json:"userId"`
	Request model.DigestRequest `json:"request"`
}

// JobEnqueuer pushes an accepted job to the external work queue.
// Called exactly once per accepted submission.
type JobEnqueuer interface {
	Enqueue(ctx context.Context, req EnqueueRequest) error
}

// UsageLedger tracks per-user, per-action, per-day counts.
//
// CheckQuota reads today's count; RecordUsage increments it and must be
// atomic per key. Callers follow the check / perform / confirm / record
// ordering so failed attempts never consume quota.
type UsageLedger interface {
	// CheckQuota returns true when the action is still under today's limit.
	CheckQuota(ctx context.Context, userID, action string, limit int) (bool, error)

	// RecordUsage increments today's counter for the action.
	RecordUsage(ctx context.Context, userID, action string) error
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pagekeep/digest-api/internal/data"
	"github.com/pagekeep/digest-api/internal/domain/model"
	apperrors "github.com/pagekeep/digest-api/internal/errors"
	"github.com/pagekeep/digest-api/internal/observability/statsd"
	"github.com/pagekeep/digest-api/internal/ports"
)

// SubmitAction is the usage-ledger action name for digest submissions.
const SubmitAction = "digest-submit"

// DigestServiceOptions groups dependencies for DigestService.
type DigestServiceOptions struct {
	Jobs        ports.JobStore      // Required: job state store
	Queue       ports.JobEnqueuer   // Required: worker hand-off
	Features    ports.FeatureSource // Required: entitlement gate
	Ledger      ports.UsageLedger   // Required when DailyLimit > 0
	Clock       data.TimeProvider   // Optional: defaults to system time
	Logger      *slog.Logger        // Optional: structured logger
	Metrics     statsd.Sink         // Optional: operation counters
	FeatureName string              // Required: entitlement feature gating digests
	DailyLimit  int                 // Optional: submissions per user per day, 0 = unlimited
}

// DigestService is the single authority over digest job submission and
// status retrieval. It enforces entitlement, idempotency, and quota
// ordering deterministically; the external worker owns every transition
// after Pending.
type DigestService struct {
	jobs        ports.JobStore
	queue       ports.JobEnqueuer
	features    ports.FeatureSource
	ledger      ports.UsageLedger
	clock       data.TimeProvider
	logger      *slog.Logger
	metrics     statsd.Sink
	featureName string
	dailyLimit  int
}

// NewDigestService constructs a new DigestService.
func NewDigestService(opts DigestServiceOptions) (*DigestService, error) {
	if opts.Jobs == nil {
		return nil, errors.New("JobStore is required")
	}
	if opts.Queue == nil {
		return nil, errors.New("JobEnqueuer is required")
	}
	if opts.Features == nil {
		return nil, errors.New("FeatureSource is required")
	}
	if opts.FeatureName == "" {
		return nil, errors.New("FeatureName is required")
	}
	if opts.DailyLimit > 0 && opts.Ledger == nil {
		return nil, errors.New("UsageLedger is required when DailyLimit is set")
	}

	clock := opts.Clock
	if clock == nil {
		clock = &data.RealTimeProvider{}
	}

	logger := opts.Logger
	if logger != nil {
		logger = logger.With("component", "digest_service")
	}

	return &DigestService{
		jobs:        opts.Jobs,
		queue:       opts.Queue,
		features:    opts.Features,
		ledger:      opts.Ledger,
		clock:       clock,
		logger:      logger,
		metrics:     opts.Metrics,
		featureName: opts.FeatureName,
		dailyLimit:  opts.DailyLimit,
	}, nil
}

// SubmitResult reports the outcome of a submission.
type SubmitResult struct {
	Job *model.DigestJob
	// Created is false when an in-flight job already existed and the
	// submission was an idempotent no-op.
	Created bool
}

// Submit validates a digest request and hands it to the worker.
//
// Order matters: entitlement, then the in-flight check, then quota, then
// slot reservation, then enqueue. A resubmit that hits an in-flight job is
// answered before quota is consulted, so idempotency holds even for users
// at their daily limit. The Pending record is reserved in the
// store before the enqueue so two concurrent submissions cannot both win;
// if the enqueue fails the reservation is deleted so no Pending record
// the worker will never service survives. Quota is consumed only after
// the submission fully succeeded.
func (s *DigestService) Submit(
	ctx context.Context,
	userID string,
	req model.DigestRequest,
) (*SubmitResult, error) {
	if err := s.requireFeature(ctx, userID); err != nil {
		return nil, err
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.jobs.Get(ctx, userID)
	if err != nil && !errors.Is(err, data.ErrJobNotFound) {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "read job state")
	}
	if existing != nil && existing.State.InFlight() {
		// Idempotent resubmit; never gated by quota.
		s.count("digest.submit.already_running")
		return &SubmitResult{Job: existing}, nil
	}

	if s.dailyLimit > 0 {
		under, quotaErr := s.ledger.CheckQuota(ctx, userID, SubmitAction, s.dailyLimit)
		if quotaErr != nil {
			return nil, apperrors.Wrap(quotaErr, apperrors.ErrCodeInternal, "check quota")
		}
		if !under {
			s.count("digest.submit.rate_limited")
			return nil, apperrors.RateLimited("daily digest limit reached")
		}
	}

	job := &model.DigestJob{
		ID:        uuid.NewString(),
		State:     model.JobStatePending,
		Request:   req,
		CreatedAt: s.clock.Now(),
	}

	created, err := s.reserve(ctx, userID, job, existing)
	if err != nil {
		return nil, err
	}
	if !created {
		// A concurrent submission won the slot; return its job.
		winner, getErr := s.jobs.Get(ctx, userID)
		if getErr != nil {
			return nil, apperrors.Wrap(getErr, apperrors.ErrCodeInternal, "read job state")
		}
		s.count("digest.submit.already_running")
		return &SubmitResult{Job: winner}, nil
	}

	if err := s.enqueue(ctx, userID, job); err != nil {
		return nil, err
	}

	if s.dailyLimit > 0 {
		// Recorded only after the submission confirmed success; a failed
		// enqueue never consumes quota.
		if recordErr := s.ledger.RecordUsage(ctx, userID, SubmitAction); recordErr != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "record usage failed", "user_id", userID, "error", recordErr)
		}
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "digest job accepted", "job_id", job.ID, "user_id", userID)
	}
	s.count("digest.submit.accepted")

	return &SubmitResult{Job: job, Created: true}, nil
}

// reserve writes the Pending record. A fresh slot is claimed atomically;
// a terminal record is superseded by an overwrite. The overwrite path has
// a narrow read-to-write race under concurrent submissions for the same
// user, which the lifecycle accepts: one record survives (last writer
// wins) and the store stays consistent.
func (s *DigestService) reserve(
	ctx context.Context,
	userID string,
	job *model.DigestJob,
	existing *model.DigestJob,
) (bool, error) {
	if existing == nil {
		created, err := s.jobs.PutIfAbsent(ctx, userID, job)
		if err != nil {
			return false, apperrors.Wrap(err, apperrors.ErrCodeInternal, "reserve job slot")
		}
		return created, nil
	}

	if err := s.jobs.Put(ctx, userID, job); err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeInternal, "supersede job record")
	}
	return true, nil
}

func (s *DigestService) enqueue(ctx context.Context, userID string, job *model.DigestJob) error {
	err := s.queue.Enqueue(ctx, ports.EnqueueRequest{
		JobID:   job.ID,
		UserID:  userID,
		Request: job.Request,
	})
	if err == nil {
		return nil
	}

	// Compensate the reservation so the record doesn't sit in Pending
	// with no worker ever coming. If the delete also fails the stale
	// record blocks resubmission until retention expiry.
	if delErr := s.jobs.Delete(ctx, userID); delErr != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "compensating delete failed; stale record until expiry",
			"job_id", job.ID, "user_id", userID, "error", delErr)
	}
	s.count("digest.submit.enqueue_failed")

	return apperrors.Wrap(err, apperrors.ErrCodeInternal, "enqueue digest job")
}

// GetStatus returns the user's current job. Callers render the partial
// status view while the job is Running; this is a pure read with no side
// effects.
func (s *DigestService) GetStatus(ctx context.Context, userID string) (*model.DigestJob, error) {
	if err := s.requireFeature(ctx, userID); err != nil {
		return nil, err
	}

	job, err := s.jobs.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, data.ErrJobNotFound) {
			return nil, apperrors.NotFound("no digest job for user")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "read job state")
	}

	s.count("digest.status")
	return job, nil
}

func (s *DigestService) requireFeature(ctx context.Context, userID string) error {
	granted, err := s.features.HasFeature(ctx, userID, s.featureName)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "check entitlement")
	}
	if !granted {
		s.count("digest.forbidden")
		return apperrors.Forbidden(fmt.Sprintf("feature %q not granted", s.featureName))
	}
	return nil
}

func (s *DigestService) count(name string) {
	if s.metrics != nil {
		s.metrics.Count(name, 1, nil)
	}
}

// validateRequest rejects parameter combinations the worker cannot serve.
func validateRequest(req model.DigestRequest) error {
	switch req.Schedule {
	case "", "daily", "weekdays":
	default:
		return apperrors.ValidationField("schedule", "schedule must be \"daily\" or \"weekdays\"")
	}
	for _, id := range req.LibraryItemIDs {
		if id == "" {
			return apperrors.ValidationField("libraryItemIds", "library item ids must be non-empty")
		}
	}
	return nil
}

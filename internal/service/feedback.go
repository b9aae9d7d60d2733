package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/pagekeep/digest-api/internal/domain/model"
	apperrors "github.com/pagekeep/digest-api/internal/errors"
	"github.com/pagekeep/digest-api/internal/observability/statsd"
	"github.com/pagekeep/digest-api/internal/ports"
)

// FeedbackEventName is the fixed analytics event name for digest feedback.
const FeedbackEventName = "digest_feedback"

// captureTimeout bounds the detached analytics forward.
const captureTimeout = 10 * time.Second

// FeedbackServiceOptions groups dependencies for FeedbackService.
type FeedbackServiceOptions struct {
	Analytics   ports.EventSink     // Required: event collector
	Features    ports.FeatureSource // Required: entitlement gate
	Logger      *slog.Logger        // Optional: structured logger
	Metrics     statsd.Sink         // Optional: operation counters
	FeatureName string              // Required: entitlement feature gating digests
}

// FeedbackService validates digest feedback and forwards it to analytics.
// The free-text comment never leaves this process; the forward is
// fire-and-forget, so collector failures never fail the caller's request.
type FeedbackService struct {
	analytics   ports.EventSink
	features    ports.FeatureSource
	logger      *slog.Logger
	metrics     statsd.Sink
	featureName string
}

// NewFeedbackService constructs a new FeedbackService.
func NewFeedbackService(opts FeedbackServiceOptions) (*FeedbackService, error) {
	if opts.Analytics == nil {
		return nil, errors.New("EventSink is required")
	}
	if opts.Features == nil {
		return nil, errors.New("FeatureSource is required")
	}
	if opts.FeatureName == "" {
		return nil, errors.New("FeatureName is required")
	}

	logger := opts.Logger
	if logger != nil {
		logger = logger.With("component", "feedback_service")
	}

	return &FeedbackService{
		analytics:   opts.Analytics,
		features:    opts.Features,
		logger:      logger,
		metrics:     opts.Metrics,
		featureName: opts.FeatureName,
	}, nil
}

// Submit validates the payload shape and forwards the comment-stripped
// event. Returns once the payload is accepted; delivery happens in the
// background.
func (s *FeedbackService) Submit(ctx context.Context, userID string, fb model.DigestFeedback) error {
	granted, err := s.features.HasFeature(ctx, userID, s.featureName)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "check entitlement")
	}
	if !granted {
		return apperrors.Forbidden("feature not granted")
	}

	if missing := fb.MissingRatings(); len(missing) > 0 {
		return apperrors.ValidationField(missing[0],
			"missing required rating fields: "+strings.Join(missing, ", "))
	}

	ev := ports.Event{
		Name:       FeedbackEventName,
		UserID:     userID,
		Properties: feedbackProperties(fb),
	}

	// Detach from the request context so the client's response never
	// waits on the collector.
	captureCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), captureTimeout)
	go func() {
		defer cancel()
		if captureErr := s.analytics.Capture(captureCtx, ev); captureErr != nil && s.logger != nil {
			s.logger.WarnContext(captureCtx, "analytics capture failed",
				"event", FeedbackEventName, "error", captureErr)
		}
	}()

	if s.metrics != nil {
		s.metrics.Count("feedback.accepted", 1, nil)
	}

	return nil
}

// feedbackProperties builds the analytics payload. The comment field is
// deliberately absent.
func feedbackProperties(fb model.DigestFeedback) map[string]any {
	props := map[string]any{
		"digestRating":  *fb.DigestRating,
		"rankingRating": *fb.RankingRating,
		"summaryRating": *fb.SummaryRating,
		"voiceRating":   *fb.VoiceRating,
		"musicRating":   *fb.MusicRating,
	}
	if len(fb.RankingModels) > 0 {
		props["rankingModels"] = fb.RankingModels
	}
	if len(fb.SummaryModels) > 0 {
		props["summaryModels"] = fb.SummaryModels
	}
	return props
}

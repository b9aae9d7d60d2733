package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pagekeep/digest-api/internal/data"
	"github.com/pagekeep/digest-api/internal/domain/model"
	apperrors "github.com/pagekeep/digest-api/internal/errors"
	"github.com/pagekeep/digest-api/internal/mocks"
	"github.com/pagekeep/digest-api/internal/ports"
)

const testFeature = "ai-digest"

type digestFixture struct {
	jobs     *mocks.MockJobStore
	queue    *mocks.MockJobEnqueuer
	features *mocks.MockFeatureSource
	ledger   *mocks.MockUsageLedger
	clock    *data.FixedTimeProvider
}

func newDigestFixture(t *testing.T) *digestFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	return &digestFixture{
		jobs:     mocks.NewMockJobStore(ctrl),
		queue:    mocks.NewMockJobEnqueuer(ctrl),
		features: mocks.NewMockFeatureSource(ctrl),
		ledger:   mocks.NewMockUsageLedger(ctrl),
		clock:    data.NewFixedTimeProvider(time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)),
	}
}

func (f *digestFixture) service(t *testing.T, dailyLimit int) *DigestService {
	t.Helper()
	svc, err := NewDigestService(DigestServiceOptions{
		Jobs:        f.jobs,
		Queue:       f.queue,
		Features:    f.features,
		Ledger:      f.ledger,
		Clock:       f.clock,
		FeatureName: testFeature,
		DailyLimit:  dailyLimit,
	})
	require.NoError(t, err)
	return svc
}

func testRequest() model.DigestRequest {
	return model.DigestRequest{
		Voices:         []string{"nova"},
		Language:       "en",
		LibraryItemIDs: []string{"item-1", "item-2"},
	}
}

func TestDigestServiceSubmit(t *testing.T) {
	ctx := context.Background()
	const userID = "user-1"

	t.Run("accepts new submission", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 0)

		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil)
		f.jobs.EXPECT().Get(ctx, userID).Return(nil, data.ErrJobNotFound)
		f.jobs.EXPECT().PutIfAbsent(ctx, userID, gomock.Any()).Return(true, nil)
		f.queue.EXPECT().Enqueue(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req ports.EnqueueRequest) error {
				assert.Equal(t, userID, req.UserID)
				assert.NotEmpty(t, req.JobID)
				assert.Equal(t, []string{"item-1", "item-2"}, req.Request.LibraryItemIDs)
				return nil
			})

		res, err := svc.Submit(ctx, userID, testRequest())
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.Equal(t, model.JobStatePending, res.Job.State)
		assert.NotEmpty(t, res.Job.ID)
		assert.Equal(t, f.clock.Now(), res.Job.CreatedAt)
	})

	t.Run("returns existing in-flight job without enqueueing", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 0)

		existing := &model.DigestJob{ID: "job-1", State: model.JobStateRunning}
		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil)
		f.jobs.EXPECT().Get(ctx, userID).Return(existing, nil)

		res, err := svc.Submit(ctx, userID, testRequest())
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, "job-1", res.Job.ID)
	})

	t.Run("resubmit of pending job is idempotent", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 0)

		existing := &model.DigestJob{ID: "job-1", State: model.JobStatePending}
		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil).Times(2)
		f.jobs.EXPECT().Get(ctx, userID).Return(existing, nil).Times(2)

		first, err := svc.Submit(ctx, userID, testRequest())
		require.NoError(t, err)
		second, err := svc.Submit(ctx, userID, testRequest())
		require.NoError(t, err)
		assert.Equal(t, first.Job.ID, second.Job.ID)
	})

	t.Run("supersedes terminal job with a fresh one", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 0)

		existing := &model.DigestJob{ID: "job-old", State: model.JobStateSucceeded}
		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil)
		f.jobs.EXPECT().Get(ctx, userID).Return(existing, nil)
		f.jobs.EXPECT().Put(ctx, userID, gomock.Any()).Return(nil)
		f.queue.EXPECT().Enqueue(ctx, gomock.Any()).Return(nil)

		res, err := svc.Submit(ctx, userID, testRequest())
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.NotEqual(t, "job-old", res.Job.ID)
		assert.Equal(t, model.JobStatePending, res.Job.State)
	})

	t.Run("returns concurrent winner when reservation is lost", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 0)

		winner := &model.DigestJob{ID: "job-winner", State: model.JobStatePending}
		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil)
		gomock.InOrder(
			f.jobs.EXPECT().Get(ctx, userID).Return(nil, data.ErrJobNotFound),
			f.jobs.EXPECT().PutIfAbsent(ctx, userID, gomock.Any()).Return(false, nil),
			f.jobs.EXPECT().Get(ctx, userID).Return(winner, nil),
		)

		res, err := svc.Submit(ctx, userID, testRequest())
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, "job-winner", res.Job.ID)
	})

	t.Run("rejects user without entitlement before any state change", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 0)

		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(false, nil)

		res, err := svc.Submit(ctx, userID, testRequest())
		require.Error(t, err)
		assert.True(t, apperrors.IsForbidden(err))
		assert.Nil(t, res)
	})

	t.Run("rejects unknown schedule", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 0)

		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil)

		req := testRequest()
		req.Schedule = "hourly"
		_, err := svc.Submit(ctx, userID, req)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, "schedule", apperrors.GetField(err))
	})

	t.Run("compensates reservation when enqueue fails", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 0)

		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil)
		gomock.InOrder(
			f.jobs.EXPECT().Get(ctx, userID).Return(nil, data.ErrJobNotFound),
			f.jobs.EXPECT().PutIfAbsent(ctx, userID, gomock.Any()).Return(true, nil),
			f.queue.EXPECT().Enqueue(ctx, gomock.Any()).Return(errors.New("broker unavailable")),
			f.jobs.EXPECT().Delete(ctx, userID).Return(nil),
		)

		_, err := svc.Submit(ctx, userID, testRequest())
		require.Error(t, err)
		assert.True(t, apperrors.IsInternal(err))
	})

	t.Run("rejects submission over the daily limit", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 2)

		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil)
		f.jobs.EXPECT().Get(ctx, userID).Return(nil, data.ErrJobNotFound)
		f.ledger.EXPECT().CheckQuota(ctx, userID, SubmitAction, 2).Return(false, nil)

		_, err := svc.Submit(ctx, userID, testRequest())
		require.Error(t, err)
		assert.True(t, apperrors.IsRateLimited(err))
	})

	t.Run("terminal record at the limit is still rejected", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 2)

		existing := &model.DigestJob{ID: "job-old", State: model.JobStateFailed}
		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil)
		f.jobs.EXPECT().Get(ctx, userID).Return(existing, nil)
		f.ledger.EXPECT().CheckQuota(ctx, userID, SubmitAction, 2).Return(false, nil)

		_, err := svc.Submit(ctx, userID, testRequest())
		require.Error(t, err)
		assert.True(t, apperrors.IsRateLimited(err))
	})

	t.Run("resubmit of in-flight job wins over an exhausted quota", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 1)

		existing := &model.DigestJob{ID: "job-1", State: model.JobStateRunning}
		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil)
		f.jobs.EXPECT().Get(ctx, userID).Return(existing, nil)

		res, err := svc.Submit(ctx, userID, testRequest())
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, "job-1", res.Job.ID)
	})

	t.Run("records usage only after a successful submission", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 2)

		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil)
		f.ledger.EXPECT().CheckQuota(ctx, userID, SubmitAction, 2).Return(true, nil)
		f.jobs.EXPECT().Get(ctx, userID).Return(nil, data.ErrJobNotFound)
		f.jobs.EXPECT().PutIfAbsent(ctx, userID, gomock.Any()).Return(true, nil)
		f.queue.EXPECT().Enqueue(ctx, gomock.Any()).Return(nil)
		f.ledger.EXPECT().RecordUsage(ctx, userID, SubmitAction).Return(nil)

		res, err := svc.Submit(ctx, userID, testRequest())
		require.NoError(t, err)
		assert.True(t, res.Created)
	})

	t.Run("failed enqueue consumes no quota", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 2)

		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil)
		f.ledger.EXPECT().CheckQuota(ctx, userID, SubmitAction, 2).Return(true, nil)
		f.jobs.EXPECT().Get(ctx, userID).Return(nil, data.ErrJobNotFound)
		f.jobs.EXPECT().PutIfAbsent(ctx, userID, gomock.Any()).Return(true, nil)
		f.queue.EXPECT().Enqueue(ctx, gomock.Any()).Return(errors.New("broker unavailable"))
		f.jobs.EXPECT().Delete(ctx, userID).Return(nil)

		_, err := svc.Submit(ctx, userID, testRequest())
		require.Error(t, err)
	})

	t.Run("idempotent resubmit never consults or consumes quota", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 2)

		existing := &model.DigestJob{ID: "job-1", State: model.JobStatePending}
		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil)
		f.jobs.EXPECT().Get(ctx, userID).Return(existing, nil)

		res, err := svc.Submit(ctx, userID, testRequest())
		require.NoError(t, err)
		assert.False(t, res.Created)
	})

	t.Run("wraps store read failures as internal", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 0)

		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil)
		f.jobs.EXPECT().Get(ctx, userID).Return(nil, errors.New("connection reset"))

		_, err := svc.Submit(ctx, userID, testRequest())
		require.Error(t, err)
		assert.True(t, apperrors.IsInternal(err))
	})
}

func TestDigestServiceGetStatus(t *testing.T) {
	ctx := context.Background()
	const userID = "user-1"

	t.Run("returns the current job", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 0)

		job := &model.DigestJob{ID: "job-1", State: model.JobStateSucceeded}
		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil)
		f.jobs.EXPECT().Get(ctx, userID).Return(job, nil)

		got, err := svc.GetStatus(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, job, got)
	})

	t.Run("maps a missing record to not found", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 0)

		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(true, nil)
		f.jobs.EXPECT().Get(ctx, userID).Return(nil, data.ErrJobNotFound)

		_, err := svc.GetStatus(ctx, userID)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("requires entitlement", func(t *testing.T) {
		f := newDigestFixture(t)
		svc := f.service(t, 0)

		f.features.EXPECT().HasFeature(ctx, userID, testFeature).Return(false, nil)

		_, err := svc.GetStatus(ctx, userID)
		require.Error(t, err)
		assert.True(t, apperrors.IsForbidden(err))
	})
}

func TestNewDigestService(t *testing.T) {
	f := newDigestFixture(t)

	t.Run("requires a job store", func(t *testing.T) {
		_, err := NewDigestService(DigestServiceOptions{
			Queue:       f.queue,
			Features:    f.features,
			FeatureName: testFeature,
		})
		require.Error(t, err)
	})

	t.Run("requires a ledger when a daily limit is set", func(t *testing.T) {
		_, err := NewDigestService(DigestServiceOptions{
			Jobs:        f.jobs,
			Queue:       f.queue,
			Features:    f.features,
			FeatureName: testFeature,
			DailyLimit:  5,
		})
		require.Error(t, err)
	})
}

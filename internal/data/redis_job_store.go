package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pagekeep/digest-api/internal/domain/model"
)

const defaultJobKeyPrefix = "digest:"

// RedisJobStore holds digest job records in Redis, one per user id.
// Every write refreshes the retention TTL; records that outlive it are
// evicted by Redis, which is the lifecycle's only cleanup path.
type RedisJobStore struct {
	client    redis.UniversalClient
	prefix    string
	retention time.Duration
}

// NewRedisJobStore creates a job store with the given retention window.
func NewRedisJobStore(client redis.UniversalClient, retention time.Duration) *RedisJobStore {
	if retention <= 0 {
		retention = 168 * time.Hour
	}
	return &RedisJobStore{
		client:    client,
		prefix:    defaultJobKeyPrefix,
		retention: retention,
	}
}

func (s *RedisJobStore) key(userID string) string {
	return s.prefix + userID
}

// Get returns the user's current job record, or ErrJobNotFound.
func (s *RedisJobStore) Get(ctx context.Context, userID string) (*model.DigestJob, error) {
	if userID == "" {
		return nil, ErrJobNotFound
	}

	data, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var job model.DigestJob
	if unmarshalErr := json.Unmarshal([]byte(data), &job); unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal digest job: %w", unmarshalErr)
	}

	return &job, nil
}

// PutIfAbsent writes the record only when the user holds none.
//
// SETNX followed by EXPIRE is not atomic; SET with NX + TTL is, and the
// submit race between two concurrent callers hinges on that atomicity.
func (s *RedisJobStore) PutIfAbsent(
	ctx context.Context,
	userID string,
	job *model.DigestJob,
) (bool, error) {
	data, err := s.marshal(userID, job)
	if err != nil {
		return false, err
	}

	cmd := s.client.SetArgs(ctx, s.key(userID), data, redis.SetArgs{Mode: "NX", TTL: s.retention})
	status, err := cmd.Result()
	if err != nil {
		// When the NX condition is not met (key exists), Redis returns a nil
		// reply, which go-redis surfaces as redis.Nil. That is "was not set",
		// not an error.
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis SET NX: %w", err)
	}

	return status == "OK", nil
}

// Put unconditionally overwrites the user's record, refreshing retention.
func (s *RedisJobStore) Put(ctx context.Context, userID string, job *model.DigestJob) error {
	data, err := s.marshal(userID, job)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.key(userID), data, s.retention).Err()
}

// Delete removes the user's record.
func (s *RedisJobStore) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return nil // Nothing to delete
	}

	return s.client.Del(ctx, s.key(userID)).Err()
}

// Health checks the health of the Redis connection.
func (s *RedisJobStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisJobStore) marshal(userID string, job *model.DigestJob) ([]byte, error) {
	if userID == "" {
		return nil, errors.New("user id cannot be empty")
	}
	if job == nil || job.ID == "" {
		return nil, errors.New("job id cannot be empty")
	}

	data, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("marshal digest job: %w", err)
	}
	return data, nil
}

package data

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// counterRetention keeps yesterday's buckets around briefly for inspection;
// the day-stamped key means rollover needs no explicit reset.
const counterRetention = 48 * time.Hour

// RedisUsageLedger counts per-user, per-action usage in day-stamped Redis keys.
//
// INCR is atomic per key, so concurrent requests from the same user never
// undercount. The check and the increment are separate commands on purpose:
// callers check before performing the gated action and record only after it
// confirmed success, so a failed attempt never consumes quota.
type RedisUsageLedger struct {
	client redis.UniversalClient
	clock  TimeProvider
}

// NewRedisUsageLedger creates a ledger using the given clock for day bucketing.
func NewRedisUsageLedger(client redis.UniversalClient, clock TimeProvider) *RedisUsageLedger {
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	return &RedisUsageLedger{client: client, clock: clock}
}

func (l *RedisUsageLedger) key(userID, action string) string {
	return "usage:" + userID + ":" + action + ":" + DayKey(l.clock.Now())
}

// CheckQuota returns true when the action is still under today's limit.
// A non-positive limit disables the quota.
func (l *RedisUsageLedger) CheckQuota(
	ctx context.Context,
	userID, action string,
	limit int,
) (bool, error) {
	if limit <= 0 {
		return true, nil
	}

	val, err := l.client.Get(ctx, l.key(userID, action)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil // No usage recorded today
		}
		return false, fmt.Errorf("redis get usage: %w", err)
	}

	count, err := strconv.Atoi(val)
	if err != nil {
		return false, fmt.Errorf("parse usage counter: %w", err)
	}

	return count < limit, nil
}

// RecordUsage increments today's counter for the action.
func (l *RedisUsageLedger) RecordUsage(ctx context.Context, userID, action string) error {
	key := l.key(userID, action)

	// INCR and the TTL refresh run in one pipeline round trip. ExpireNX
	// only stamps the TTL on the bucket's first increment.
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, counterRetention)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis incr usage: %w", err)
	}

	return nil
}

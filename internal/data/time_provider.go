package data

import "time"

// TimeProvider provides time-related functionality that can be mocked for testing.
// The usage ledger buckets counters by calendar day, so tests need to
// simulate day rollover deterministically rather than rely on wall-clock timing.
type TimeProvider interface {
	// Now returns the current time
	Now() time.Time
}

// DayKey formats a time as the UTC calendar-day bucket used by the usage ledger.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// RealTimeProvider implements TimeProvider using real system time.
type RealTimeProvider struct{}

// Now returns the current system time.
func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// FixedTimeProvider implements TimeProvider with a fixed time for testing.
type FixedTimeProvider struct {
	fixedTime time.Time
}

// NewFixedTimeProvider creates a new FixedTimeProvider with the given time.
func NewFixedTimeProvider(t time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{fixedTime: t}
}

// Now returns the fixed time.
func (f *FixedTimeProvider) Now() time.Time {
	return f.fixedTime
}

// SetTime updates the fixed time (useful for testing time progression).
func (f *FixedTimeProvider) SetTime(t time.Time) {
	f.fixedTime = t
}

// AddTime adds a duration to the current fixed time.
func (f *FixedTimeProvider) AddTime(d time.Duration) {
	f.fixedTime = f.fixedTime.Add(d)
}

package core

// analysis_limiter.go bounds how many analysis runs execute at the same time.
//
// Each run is single-threaded and holds its whole input in memory, so the
// HTTP layer admits at most maxConcurrent runs. A request that cannot get a
// slot within maxWait fails with ErrTooManyAnalyses. WaitForDrain lets
// shutdown wait for the runs already admitted.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyAnalyses is returned when every slot stays occupied for maxWait.
var ErrTooManyAnalyses = errors.New("too many concurrent analyses, please try again later")

// Default limiter settings used when the configured values are not positive.
const (
	DefaultMaxConcurrentAnalyses = 4
	DefaultMaxWaitTime           = 30 * time.Second
)

// drainPollInterval is how often WaitForDrain checks for active runs.
const drainPollInterval = 50 * time.Millisecond

// AnalysisLimiter is a counting semaphore for analysis runs.
type AnalysisLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// LimiterStatus is a snapshot of the limiter for monitoring.
type LimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// NewAnalysisLimiter creates a limiter admitting maxConcurrent runs.
func NewAnalysisLimiter(maxConcurrent int, maxWait time.Duration) *AnalysisLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentAnalyses
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}
	return &AnalysisLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire waits for a free slot. On success the caller must call Release.
// Returns ctx.Err() if ctx ends first, ErrTooManyAnalyses on timeout.
func (l *AnalysisLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyAnalyses
	}
}

// Release frees a slot obtained by Acquire.
func (l *AnalysisLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// ActiveCount returns the number of runs holding a slot.
func (l *AnalysisLimiter) ActiveCount() int {
	return int(l.active.Load())
}

// MaxConcurrent returns the number of slots.
func (l *AnalysisLimiter) MaxConcurrent() int {
	return cap(l.slots)
}

// Status returns the current limiter state.
func (l *AnalysisLimiter) Status() LimiterStatus {
	active := l.ActiveCount()
	return LimiterStatus{
		Active:        active,
		Available:     cap(l.slots) - active,
		MaxConcurrent: cap(l.slots),
	}
}

// WaitForDrain blocks until no run holds a slot or ctx ends.
func (l *AnalysisLimiter) WaitForDrain(ctx context.Context) error {
	if l.ActiveCount() == 0 {
		return nil
	}
	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.ActiveCount() == 0 {
				return nil
			}
		}
	}
}

package core

// limiter.go bounds how many column analyses run at once. Each analysis holds
// every cell of the selected columns in memory, so unbounded parallelism on a
// busy server turns into unbounded heap. A request that cannot get a slot
// within maxWait fails with ErrTooManyAnalyses.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyAnalyses is returned when no slot frees up within the wait time.
var ErrTooManyAnalyses = errors.New("too many concurrent analyses, please try again later")

const (
	DefaultMaxConcurrentAnalyses = 5
	DefaultMaxWaitTime           = 30 * time.Second
)

// AnalysisLimiter is a counting semaphore with drain support.
type AnalysisLimiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu     sync.Mutex
	active int
	idle   chan struct{} // closed while active == 0
}

// AnalysisLimiterStatus is a point-in-time view of the limiter.
type AnalysisLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// NewAnalysisLimiter allows at most maxConcurrent analyses. Non-positive
// arguments fall back to the defaults.
func NewAnalysisLimiter(maxConcurrent int, maxWait time.Duration) *AnalysisLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentAnalyses
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}
	idle := make(chan struct{})
	close(idle)
	return &AnalysisLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
		idle:    idle,
	}
}

// Acquire waits for a slot. Callers must Release after a nil return.
func (l *AnalysisLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.inc()
		return nil
	case <-timer.C:
		return ErrTooManyAnalyses
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire takes a slot only if one is free right now.
func (l *AnalysisLimiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		l.inc()
		return true
	default:
		return false
	}
}

// Release returns a slot taken by Acquire or TryAcquire.
func (l *AnalysisLimiter) Release() {
	l.mu.Lock()
	l.active--
	if l.active == 0 {
		close(l.idle)
	}
	l.mu.Unlock()
	<-l.slots
}

func (l *AnalysisLimiter) inc() {
	l.mu.Lock()
	if l.active == 0 {
		l.idle = make(chan struct{})
	}
	l.active++
	l.mu.Unlock()
}

// ActiveCount returns the number of running analyses.
func (l *AnalysisLimiter) ActiveCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// MaxConcurrent returns the slot count.
func (l *AnalysisLimiter) MaxConcurrent() int { return cap(l.slots) }

// Available returns the number of free slots.
func (l *AnalysisLimiter) Available() int { return cap(l.slots) - len(l.slots) }

// WaitForDrain blocks until no analysis is running or ctx is done.
func (l *AnalysisLimiter) WaitForDrain(ctx context.Context) error {
	for {
		l.mu.Lock()
		idle, active := l.idle, l.active
		l.mu.Unlock()
		if active == 0 {
			return nil
		}
		select {
		case <-idle:
			// A new analysis may have started since; check again.
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Status returns a snapshot for /api/limiter.
func (l *AnalysisLimiter) Status() AnalysisLimiterStatus {
	return AnalysisLimiterStatus{
		Active:        l.ActiveCount(),
		Available:     l.Available(),
		MaxConcurrent: l.MaxConcurrent(),
	}
}

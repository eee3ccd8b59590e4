package temporal

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Clock supplies time to a State driver.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the
	// latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time with monotonic clock reading.
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep waits on a timer.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ManualClock is a Clock that only moves when told to. Sleepers wake once
// Advance or SetTime carries the clock past their deadline.
type ManualClock struct {
	mu       sync.Mutex
	now      time.Time
	sleepers []*sleeper
}

type sleeper struct {
	deadline time.Time
	done     chan struct{}
}

// NewManualClock creates a clock reading start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current simulated time.
func (m *ManualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Sleep blocks until simulated time reaches now+d.
func (m *ManualClock) Sleep(ctx context.Context, d time.Duration) error {
	m.mu.Lock()
	if d <= 0 {
		m.mu.Unlock()
		return ctx.Err()
	}
	s := &sleeper{deadline: m.now.Add(d), done: make(chan struct{})}
	m.sleepers = append(m.sleepers, s)
	m.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		m.mu.Lock()
		m.sleepers = slices.DeleteFunc(m.sleepers, func(o *sleeper) bool { return o == s })
		m.mu.Unlock()
		return ctx.Err()
	}
}

// Advance moves the clock forward by d.
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(m.now.Add(d))
}

// SetTime sets the current time.
func (m *ManualClock) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(t)
}

// Sleepers reports how many goroutines are blocked in Sleep.
func (m *ManualClock) Sleepers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sleepers)
}

func (m *ManualClock) setLocked(t time.Time) {
	m.now = t
	m.sleepers = slices.DeleteFunc(m.sleepers, func(s *sleeper) bool {
		if s.deadline.After(t) {
			return false
		}
		close(s.done)
		return true
	})
}

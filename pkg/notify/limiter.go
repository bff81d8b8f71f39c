package notify

import "time"

// Limiter throttles delivery attempts to at most one per interval. It
// advances its clock on every allowed attempt, whether or not the delivery
// later succeeds, so a flapping endpoint cannot be hammered.
//
// Not safe for concurrent use; each session owns its own Limiter.
type Limiter struct {
	interval time.Duration
	last     time.Time
}

// NewLimiter returns a limiter that allows one attempt per interval. The
// first call to Allow always passes.
func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{interval: interval}
}

// Allow reports whether a delivery may be attempted at now, and if so,
// records the attempt.
func (l *Limiter) Allow(now time.Time) bool {
	if !l.last.IsZero() && now.Sub(l.last) < l.interval {
		return false
	}
	l.last = now
	return true
}

// Interval returns the configured minimum spacing.
func (l *Limiter) Interval() time.Duration { return l.interval }

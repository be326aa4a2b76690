// Package clock implements the playback position estimator: a pure
// extrapolation of the current stream position from a (position, wall-time,
// rate) anchor.
package clock

import "time"

// Now is the wall-clock source. Swappable for deterministic tests.
type Now func() time.Time

// Anchor is the reference point from which all expected positions are
// extrapolated until the next rate change or seek replaces it.
//
// Rate must be non-negative; zero means paused.
type Anchor struct {
	Position time.Duration
	Wall     time.Time
	Rate     float64
}

// Estimator derives the expected playback position for any wall-clock
// instant. The anchor is owned by the seek/rate coordinator; the estimator
// itself holds no other state and performs no side effects.
type Estimator struct {
	anchor   Anchor
	duration time.Duration
	now      Now
}

// NewEstimator returns an estimator saturating at the given stream duration.
// A nil now defaults to time.Now.
func NewEstimator(duration time.Duration, now Now) *Estimator {
	if now == nil {
		now = time.Now
	}
	return &Estimator{
		anchor:   Anchor{Wall: now()},
		duration: duration,
		now:      now,
	}
}

// Rebase replaces the anchor.
func (e *Estimator) Rebase(a Anchor) {
	e.anchor = a
}

// Anchor returns the current anchor.
func (e *Estimator) Anchor() Anchor {
	return e.anchor
}

// Rate returns the anchor's playback rate.
func (e *Estimator) Rate() float64 {
	return e.anchor.Rate
}

// Duration returns the stream duration the estimator saturates at.
func (e *Estimator) Duration() time.Duration {
	return e.duration
}

// SetDuration updates the saturation bound once the stream has been scanned.
func (e *Estimator) SetDuration(d time.Duration) {
	e.duration = d
}

// Now returns the estimator's wall-clock reading.
func (e *Estimator) Now() time.Time {
	return e.now()
}

// Expected returns the extrapolated stream position at the given instant,
// clamped to [0, duration]. Monotonic in now for a non-negative rate: frames
// past end-of-stream are never expected beyond the last sample.
func (e *Estimator) Expected(now time.Time) time.Duration {
	elapsed := now.Sub(e.anchor.Wall)
	pos := e.anchor.Position + time.Duration(float64(elapsed)*e.anchor.Rate)

	if pos < 0 {
		return 0
	}
	if pos > e.duration {
		return e.duration
	}
	return pos
}

// ExpectedNow is Expected at the estimator's current wall-clock reading.
func (e *Estimator) ExpectedNow() time.Duration {
	return e.Expected(e.now())
}

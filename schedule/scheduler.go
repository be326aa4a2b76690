// Package schedule implements the frame release scheduler: for every decoded
// frame it decides whether the frame is still worth showing and arms a timer
// for the exact instant it should be handed back to the decoder.
package schedule

import (
	"sort"
	"time"

	"github.com/fujifruity/videoplayer/clock"
	"github.com/fujifruity/videoplayer/log"
	"github.com/samber/lo"
)

// MaxDelay caps every armed timer. It bounds the staleness of parked frames
// so that closing a session never waits on an unbounded sleep, and keeps
// near-zero rates from producing effectively infinite timeouts.
const MaxDelay = time.Hour

// Frame is one decoded picture borrowed from the decoder's buffer pool.
type Frame struct {
	Buffer int
	PTS    time.Duration
}

// Release returns a frame handle to the decoder, rendering it when render is
// true. The scheduler calls it exactly once per accepted frame.
type Release func(frame Frame, render bool)

// Stats counts scheduling outcomes since session start.
type Stats struct {
	Scheduled int64
	Rendered  int64
	Dropped   int64
	Parked    int64
}

type entry struct {
	frame  Frame
	render bool
	timer  *time.Timer
}

// Scheduler owns the pending-release registry for one session.
//
// All methods must run on the session loop; expired timers re-enter through
// post, so nothing here needs a lock.
type Scheduler struct {
	est     *clock.Estimator
	post    func(func()) bool
	release Release

	base         time.Duration // intermission at rate 1.0
	intermission time.Duration // base scaled by the current rate
	lastAccepted time.Duration
	caughtUp     bool
	parked       bool

	pending map[int]*entry
	stats   Stats
}

// New returns a scheduler releasing frames through release. Timer expirations
// are funneled back onto the session loop through post, which reports false
// once the session is gone.
func New(est *clock.Estimator, base time.Duration, post func(func()) bool, release Release) *Scheduler {
	return &Scheduler{
		est:     est,
		post:    post,
		release: release,
		base:    base,
		pending: make(map[int]*entry),
	}
}

// SetRate rescales the minimum render intermission. At high rates frames are
// thinned to a perceptible cadence instead of flashing faster than the
// display can show them.
func (s *Scheduler) SetRate(rate float64) {
	s.intermission = time.Duration(float64(s.base) * rate)
}

// ResetPacing clears the pacing memory after a seek: the next eligible frame
// bypasses the intermission and deadline checks so playback resumes without
// waiting out a whole intermission window.
func (s *Scheduler) ResetPacing() {
	s.lastAccepted = 0
	s.caughtUp = false
}

// Park suspends (or resumes) scheduling while a seek is pending. Parked
// frames are held with the maximum timeout instead of being rendered or
// dropped, so no release can fire after the decoder has been flushed.
func (s *Scheduler) Park(parked bool) {
	s.parked = parked
}

// Schedule decides the fate of a newly decoded frame and arms its timer.
func (s *Scheduler) Schedule(f Frame) {
	s.stats.Scheduled++

	if s.parked {
		s.stats.Parked++
		log.Tracef("schedule: park buffer=%d pts=%v", f.Buffer, f.PTS)
		s.arm(f, false, MaxDelay)
		return
	}

	now := s.est.Now()
	expected := s.est.Expected(now)
	rate := s.est.Rate()

	// Right after a seek the gap between the first frame and the anchor can
	// be minuscule relative to a very slow rate; waiting it out would stall
	// visibly. The first frame at or past the expected position goes through
	// immediately instead.
	if !s.caughtUp && f.PTS >= expected {
		s.caughtUp = true
		s.lastAccepted = expected
		log.Tracef("schedule: catch up buffer=%d pts=%v expected=%v", f.Buffer, f.PTS, expected)
		s.arm(f, true, 0)
		return
	}

	if rate == 0 {
		// Paused: hold the frame. A rate change reschedules it with a real
		// deadline; the ceiling merely bounds how long it can sit here.
		s.arm(f, true, MaxDelay)
		return
	}

	timeout := time.Duration(float64(f.PTS-expected) / rate)
	if timeout < 0 {
		// Already behind the expected position: the frame is stale.
		log.Tracef("schedule: drop stale buffer=%d pts=%v expected=%v", f.Buffer, f.PTS, expected)
		s.arm(f, false, 0)
		return
	}
	if timeout > MaxDelay {
		timeout = MaxDelay
	}

	renderTime := expected + timeout
	if s.intermission > 0 && absDuration(renderTime-s.lastAccepted) < s.intermission {
		// Too close to the previously accepted frame; thin it out. The
		// handle still goes back promptly, just without display.
		log.Tracef("schedule: drop close buffer=%d pts=%v renderTime=%v last=%v", f.Buffer, f.PTS, renderTime, s.lastAccepted)
		s.arm(f, false, 0)
		return
	}

	s.lastAccepted = renderTime
	s.arm(f, true, timeout)
}

// CancelAll removes every pending timer without releasing any handle: the
// frames remain owned by the decoder's queue until it is flushed or stopped.
func (s *Scheduler) CancelAll() {
	for id, e := range s.pending {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(s.pending, id)
	}
}

// RescheduleAll re-runs the release decision for every pending frame. Used
// on rate changes, when every outstanding deadline was computed against the
// old anchor and old intermission.
func (s *Scheduler) RescheduleAll() {
	if len(s.pending) == 0 {
		return
	}

	frames := lo.Map(lo.Values(s.pending), func(e *entry, _ int) Frame { return e.frame })
	sort.Slice(frames, func(i, j int) bool { return frames[i].PTS < frames[j].PTS })

	s.CancelAll()
	for _, f := range frames {
		s.Schedule(f)
	}
}

// Pending returns the number of frames awaiting release.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Stats returns a copy of the scheduling counters.
func (s *Scheduler) Stats() Stats {
	return s.stats
}

// arm registers the frame and fires its release after delay. A zero delay
// releases synchronously; we are already on the session loop.
func (s *Scheduler) arm(f Frame, render bool, delay time.Duration) {
	e := &entry{frame: f, render: render}
	s.pending[f.Buffer] = e

	if delay <= 0 {
		s.fire(f.Buffer, e)
		return
	}

	e.timer = time.AfterFunc(delay, func() {
		s.post(func() { s.fire(f.Buffer, e) })
	})
}

// fire releases the frame if the given entry is still the registered one.
// A timer that lost the race against CancelAll finds no registry entry, or
// an entry from a later scheduling of the same buffer id after the frame was
// re-armed, and does nothing either way.
func (s *Scheduler) fire(id int, e *entry) {
	if s.pending[id] != e {
		return
	}
	delete(s.pending, id)

	if e.render {
		s.stats.Rendered++
	} else {
		s.stats.Dropped++
	}
	s.release(e.frame, e.render)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

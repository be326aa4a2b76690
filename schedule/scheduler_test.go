package schedule

import (
	"sync"
	"testing"
	"time"

	"github.com/fujifruity/videoplayer/clock"
	. "github.com/smartystreets/goconvey/convey"
)

// releaseLog collects release callbacks; timers fire from their own
// goroutine, so access is locked.
type releaseLog struct {
	mu       sync.Mutex
	rendered []time.Duration
	dropped  []time.Duration
}

func (l *releaseLog) release(f Frame, render bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if render {
		l.rendered = append(l.rendered, f.PTS)
	} else {
		l.dropped = append(l.dropped, f.PTS)
	}
}

func (l *releaseLog) renderedPTS() []time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]time.Duration, len(l.rendered))
	copy(out, l.rendered)
	return out
}

func (l *releaseLog) droppedPTS() []time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]time.Duration, len(l.dropped))
	copy(out, l.dropped)
	return out
}

func inlinePost(f func()) bool {
	f()
	return true
}

func TestScheduler(t *testing.T) {
	Convey("Given a scheduler over a controllable clock", t, func() {
		base := time.Unix(1000, 0)
		current := base
		est := clock.NewEstimator(time.Minute, func() time.Time { return current })
		est.Rebase(clock.Anchor{Position: time.Second, Wall: base, Rate: 1.0})

		lg := &releaseLog{}
		s := New(est, 0, inlinePost, lg.release)
		s.SetRate(1.0)

		Convey("The first frame at or past the expected position renders immediately", func() {
			s.Schedule(Frame{Buffer: 0, PTS: 1200 * time.Millisecond})

			So(lg.renderedPTS(), ShouldResemble, []time.Duration{1200 * time.Millisecond})
			So(s.Pending(), ShouldEqual, 0)
			So(s.Stats().Rendered, ShouldEqual, 1)
		})

		Convey("Once caught up, a frame behind the expected position is dropped as stale", func() {
			s.Schedule(Frame{Buffer: 0, PTS: time.Second})
			current = current.Add(2 * time.Second)

			s.Schedule(Frame{Buffer: 1, PTS: 1500 * time.Millisecond})

			So(lg.droppedPTS(), ShouldResemble, []time.Duration{1500 * time.Millisecond})
			So(s.Stats().Dropped, ShouldEqual, 1)
		})

		Convey("A future frame is held until its deadline and then rendered", func() {
			s.Schedule(Frame{Buffer: 0, PTS: time.Second})

			s.Schedule(Frame{Buffer: 1, PTS: 1030 * time.Millisecond})
			So(s.Pending(), ShouldEqual, 1)

			time.Sleep(120 * time.Millisecond)
			So(lg.renderedPTS(), ShouldContain, 1030*time.Millisecond)
			So(s.Pending(), ShouldEqual, 0)
		})

		Convey("While paused, frames are held instead of dropped", func() {
			est.Rebase(clock.Anchor{Position: time.Second, Wall: base, Rate: 0})
			s.SetRate(0)
			s.Schedule(Frame{Buffer: 0, PTS: time.Second}) // catches up immediately

			s.Schedule(Frame{Buffer: 1, PTS: 900 * time.Millisecond})
			So(s.Pending(), ShouldEqual, 1)
			So(lg.droppedPTS(), ShouldBeEmpty)
		})

		Convey("With an intermission, frames too close to the last accepted one are thinned", func() {
			s = New(est, 100*time.Millisecond, inlinePost, lg.release)
			s.SetRate(1.0)
			s.Schedule(Frame{Buffer: 0, PTS: time.Second})

			s.Schedule(Frame{Buffer: 1, PTS: 1050 * time.Millisecond})
			So(lg.droppedPTS(), ShouldContain, 1050*time.Millisecond)

			s.Schedule(Frame{Buffer: 2, PTS: 1150 * time.Millisecond})
			So(s.Pending(), ShouldEqual, 1)

			s.CancelAll()
		})

		Convey("While parked, every frame is held regardless of its timestamp", func() {
			s.Park(true)
			s.Schedule(Frame{Buffer: 0, PTS: 0})
			s.Schedule(Frame{Buffer: 1, PTS: 59 * time.Second})

			So(s.Pending(), ShouldEqual, 2)
			So(lg.renderedPTS(), ShouldBeEmpty)
			So(lg.droppedPTS(), ShouldBeEmpty)
			So(s.Stats().Parked, ShouldEqual, 2)

			s.CancelAll()
		})

		Convey("CancelAll removes pending timers without releasing any handle", func() {
			s.Schedule(Frame{Buffer: 0, PTS: time.Second})
			s.Schedule(Frame{Buffer: 1, PTS: 1040 * time.Millisecond})
			So(s.Pending(), ShouldEqual, 1)

			s.CancelAll()
			So(s.Pending(), ShouldEqual, 0)

			// A fire racing the cancellation finds no registry entry.
			time.Sleep(100 * time.Millisecond)
			So(lg.renderedPTS(), ShouldResemble, []time.Duration{time.Second})
		})

		Convey("RescheduleAll re-runs the decision for every pending frame", func() {
			est.Rebase(clock.Anchor{Position: time.Second, Wall: current, Rate: 0})
			s.SetRate(0)
			s.Schedule(Frame{Buffer: 0, PTS: time.Second})
			s.Schedule(Frame{Buffer: 1, PTS: 1020 * time.Millisecond})
			s.Schedule(Frame{Buffer: 2, PTS: 1040 * time.Millisecond})
			So(s.Pending(), ShouldEqual, 2)

			// Resuming reschedules the held frames against the new anchor.
			est.Rebase(clock.Anchor{Position: time.Second, Wall: current, Rate: 1.0})
			s.SetRate(1.0)
			s.RescheduleAll()

			time.Sleep(120 * time.Millisecond)
			So(lg.renderedPTS(), ShouldContain, 1020*time.Millisecond)
			So(lg.renderedPTS(), ShouldContain, 1040*time.Millisecond)
			So(s.Pending(), ShouldEqual, 0)
		})

		Convey("At double rate no two rendered frames are closer than twice the base intermission", func() {
			s = New(est, 100*time.Millisecond, inlinePost, lg.release)
			est.Rebase(clock.Anchor{Position: time.Second, Wall: base, Rate: 2.0})
			s.SetRate(2.0)
			s.Schedule(Frame{Buffer: 0, PTS: time.Second})

			// Advance the clock so every frame arrives exactly on time.
			buffer := 1
			for pts := 1050 * time.Millisecond; pts <= 1400*time.Millisecond; pts += 50 * time.Millisecond {
				current = base.Add((pts - time.Second) / 2)
				s.Schedule(Frame{Buffer: buffer, PTS: pts})
				buffer++
			}

			rendered := lg.renderedPTS()
			So(rendered, ShouldResemble, []time.Duration{time.Second, 1200 * time.Millisecond, 1400 * time.Millisecond})
			for i := 1; i < len(rendered); i++ {
				So(rendered[i]-rendered[i-1], ShouldBeGreaterThanOrEqualTo, 200*time.Millisecond)
			}
		})

		Convey("An expired timer queued behind a reschedule does not release the re-armed frame", func() {
			var (
				mu     sync.Mutex
				queued []func()
			)
			deferredPost := func(f func()) bool {
				mu.Lock()
				defer mu.Unlock()
				queued = append(queued, f)
				return true
			}
			s = New(est, 0, deferredPost, lg.release)
			s.SetRate(1.0)
			s.Schedule(Frame{Buffer: 0, PTS: time.Second})

			s.Schedule(Frame{Buffer: 1, PTS: 1050 * time.Millisecond})
			So(s.Pending(), ShouldEqual, 1)

			// Let the timer expire into the queue, then re-arm the same buffer
			// with a far later deadline.
			time.Sleep(100 * time.Millisecond)
			est.Rebase(clock.Anchor{Position: time.Second, Wall: current, Rate: 0.001})
			s.RescheduleAll()
			So(s.Pending(), ShouldEqual, 1)

			mu.Lock()
			stale := queued
			queued = nil
			mu.Unlock()
			for _, f := range stale {
				f()
			}

			So(lg.renderedPTS(), ShouldResemble, []time.Duration{time.Second})
			So(s.Pending(), ShouldEqual, 1)

			s.CancelAll()
		})

		Convey("ResetPacing lets the next eligible frame through immediately", func() {
			s = New(est, 100*time.Millisecond, inlinePost, lg.release)
			s.SetRate(1.0)
			s.Schedule(Frame{Buffer: 0, PTS: time.Second})

			s.ResetPacing()
			s.Schedule(Frame{Buffer: 1, PTS: 1010 * time.Millisecond})

			So(lg.renderedPTS(), ShouldResemble, []time.Duration{time.Second, 1010 * time.Millisecond})
		})
	})
}

package session

import (
	"time"

	"github.com/fujifruity/videoplayer/clock"
	"github.com/fujifruity/videoplayer/log"
	"github.com/fujifruity/videoplayer/media"
	"github.com/fujifruity/videoplayer/util"
	"github.com/samber/mo"
)

// SetRate changes the playback rate. Setting the current rate again is a
// no-op with no rescheduling side effects. The anchor swap, the intermission
// rescale and the rescheduling of every outstanding deadline happen as one
// step on the session loop, so no timer or callback can observe a
// half-updated anchor.
func (c *Controller) SetRate(rate float64) error {
	if rate < 0 {
		rate = 0
	}
	if !c.post(func() { c.applyRate(rate) }) {
		return ErrClosed
	}
	return nil
}

func (c *Controller) applyRate(rate float64) {
	if rate == c.est.Rate() {
		return
	}

	now := c.est.Now()
	c.est.Rebase(clock.Anchor{Position: c.est.Expected(now), Wall: now, Rate: rate})
	c.sched.SetRate(rate)
	c.sched.RescheduleAll()
	c.setRateSnapshot(rate)

	log.Debugf("session %s: rate=%v anchor=%v", c.sourceID, rate, c.est.Anchor().Position)
}

// SeekTo requests a jump to the target position. At most one seek is
// outstanding; a newer request supersedes the pending one. Frames decoded
// while the request is pending are parked, never rendered.
//
// Execution is deferred until the decoder has confirmed output-format
// stability: running the flush while buffer-ready callbacks for the old
// position are still in flight would release stale frames into a flushed
// decoder. If stability has already been confirmed the request runs
// immediately on the loop; otherwise the next stability signal triggers it.
func (c *Controller) SeekTo(target time.Duration, mode media.SeekMode) error {
	target = util.Clamp(target, 0, c.duration)

	ok := c.post(func() {
		c.pendingSeek = mo.Some(seekRequest{target: target, mode: mode})
		c.sched.Park(true)
		c.setState(Seeking)

		if c.formatStable {
			c.executeSeek()
		}
	})
	if !ok {
		return ErrClosed
	}
	return nil
}

// executeSeek runs the deferred seek block: flush everything computed
// against the old position, move the extractor, restart the decoder and
// re-anchor the clock at the sync point actually landed on.
func (c *Controller) executeSeek() {
	r, ok := c.pendingSeek.Get()
	if !ok {
		return
	}

	c.sched.CancelAll()
	c.sched.ResetPacing()
	c.keyframeSeen = false
	c.inputEOS = false
	c.failed = false

	mode := r.mode
	if r.target == 0 {
		// Preceding-sync at time zero is typically unreachable; snap forward
		// to the stream's first sample instead.
		mode = media.SeekNextSync
	}
	c.ext.SeekTo(r.target, mode)

	// The next stability signal belongs to the restarted decoder; a seek
	// arriving before it stays queued until then. The epoch bump retires
	// every callback still in flight from the flushed generation.
	c.formatStable = false
	c.epoch++
	c.dec.Flush()
	if err := c.dec.Start(&decoderEvents{c: c, epoch: c.epoch}); err != nil {
		c.pendingSeek = mo.None[seekRequest]()
		c.sched.Park(false)
		c.handleDecoderError(err)
		return
	}

	landed := c.ext.SampleTime()
	if landed == media.EndOfStream {
		landed = c.duration
	}
	now := c.est.Now()
	c.est.Rebase(clock.Anchor{Position: landed, Wall: now, Rate: c.est.Rate()})

	c.pendingSeek = mo.None[seekRequest]()
	c.sched.Park(false)
	c.awaitAnchor = true
	c.setState(Playing)

	log.Debugf("session %s: seek target=%v mode=%v landed=%v", c.sourceID, r.target, r.mode, landed)
}

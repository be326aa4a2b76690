// Package session owns the lifecycle of a single playback attempt: one media
// source, one decoder, one extractor, and the serialized event loop that all
// scheduling decisions run on.
package session

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fujifruity/videoplayer/clock"
	"github.com/fujifruity/videoplayer/log"
	"github.com/fujifruity/videoplayer/media"
	"github.com/fujifruity/videoplayer/schedule"
	"github.com/fujifruity/videoplayer/util"
	"github.com/samber/mo"
)

// State is the session lifecycle phase.
type State int

const (
	Starting State = iota
	Playing
	Seeking
	Closed
)

// String returns the state identifier used in logs.
func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Playing:
		return "playing"
	case Seeking:
		return "seeking"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// ErrClosed reports an operation against a session that has been torn down.
var ErrClosed = fmt.Errorf("session closed")

// sampleBufferSize bounds a single extracted sample.
const sampleBufferSize = 512 * 1024

// loopBacklog bounds queued loop work; decoder callbacks, timer expirations
// and facade calls all funnel through it.
const loopBacklog = 256

// Options tunes a session at construction time.
type Options struct {
	// StartAt is the initial playback position.
	StartAt time.Duration
	// Rate is the initial playback rate; zero starts paused.
	Rate float64
	// BaseIntermission is the minimum spacing between rendered frames at
	// rate 1.0.
	BaseIntermission time.Duration
	// Now overrides the wall-clock source.
	Now clock.Now
}

// seekRequest is the single outstanding seek; a newer request supersedes it.
type seekRequest struct {
	target time.Duration
	mode   media.SeekMode
}

// Controller wires decoder events into the release scheduler and carries the
// seek/rate coordination for one source.
//
// Every mutation runs on the session loop goroutine; public methods post onto
// it and the read-side getters are backed by atomics or a snapshot mutex.
type Controller struct {
	sourceID string
	dec      media.Decoder
	ext      media.Extractor
	est      *clock.Estimator
	sched    *schedule.Scheduler

	loop chan func()
	done chan struct{}

	// loop-owned state
	pendingSeek  mo.Option[seekRequest]
	formatStable bool
	keyframeSeen bool
	awaitAnchor  bool
	inputEOS     bool
	failed       bool
	epoch        int
	readBuf      []byte

	// read-side snapshots
	position atomic.Int64
	duration time.Duration
	mu       sync.Mutex
	rate     float64
	state    State

	closeOnce sync.Once
}

// Start scans the source, seeks to the starting position and begins decoding.
// The returned controller is live; Close releases everything it owns.
func Start(sourceID string, dec media.Decoder, ext media.Extractor, opts Options) (*Controller, error) {
	rate := opts.Rate

	c := &Controller{
		sourceID:    sourceID,
		dec:         dec,
		ext:         ext,
		loop:        make(chan func(), loopBacklog),
		done:        make(chan struct{}),
		rate:        rate,
		state:       Starting,
		awaitAnchor: true,
		readBuf:     make([]byte, sampleBufferSize),
	}

	// Duration comes from walking the sample timestamps, not from container
	// metadata.
	c.duration = scanDuration(ext)

	start := util.Clamp(opts.StartAt, 0, c.duration)
	ext.SeekTo(start, startSeekMode(start))

	c.est = clock.NewEstimator(c.duration, opts.Now)
	anchored := ext.SampleTime()
	if anchored == media.EndOfStream {
		anchored = c.duration
	}
	c.est.Rebase(clock.Anchor{Position: anchored, Wall: c.est.Now(), Rate: rate})
	c.position.Store(int64(anchored))

	c.sched = schedule.New(c.est, opts.BaseIntermission, c.post, c.releaseFrame)
	c.sched.SetRate(rate)

	go c.run()

	if err := dec.Start(&decoderEvents{c: c, epoch: 0}); err != nil {
		c.Close()
		return nil, fmt.Errorf("start decoder for %q: %w", sourceID, err)
	}

	log.Debugf("session %s: started duration=%v start=%v rate=%v", sourceID, c.duration, anchored, rate)
	return c, nil
}

// startSeekMode picks the sync snap for the initial or requested position.
// Nearest-preceding at time zero is typically unreachable, so zero snaps
// forward to the first sample instead.
func startSeekMode(target time.Duration) media.SeekMode {
	if target == 0 {
		return media.SeekNextSync
	}
	return media.SeekPreviousSync
}

// scanDuration walks the extractor to the last sample timestamp.
func scanDuration(ext media.Extractor) time.Duration {
	var last time.Duration
	for {
		t := ext.SampleTime()
		if t == media.EndOfStream {
			break
		}
		if t > last {
			last = t
		}
		if !ext.Advance() {
			break
		}
	}
	return last
}

// run is the session loop: the single goroutine every mutation runs on.
func (c *Controller) run() {
	for {
		select {
		case <-c.done:
			return
		case f := <-c.loop:
			f()
		}
	}
}

// post enqueues work onto the session loop. It reports false once the
// session is closed; callers treat that as a stale operation and drop it.
func (c *Controller) post(f func()) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.loop <- f:
		return true
	case <-c.done:
		return false
	}
}

// releaseFrame hands a frame back to the decoder and, when it was actually
// rendered, advances the observable position. Runs on the loop.
func (c *Controller) releaseFrame(f schedule.Frame, render bool) {
	c.dec.ReleaseOutput(f.Buffer, render)
	if render {
		c.position.Store(int64(f.PTS))
	}
}

// Close cancels all pending releases, then stops and releases the decoder
// and the extractor, in that order, so no callback can touch a freed
// resource. Idempotent; safe from any goroutine.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		released := make(chan struct{})
		if c.post(func() {
			c.sched.CancelAll()
			c.dec.Stop()
			c.dec.Release()
			c.ext.Release()
			c.setState(Closed)
			close(c.done)
			close(released)
		}) {
			<-released
		}
		log.Debugf("session %s: closed %+v", c.sourceID, c.sched.Stats())
	})
}

// SourceID returns the identifier this session was opened with.
func (c *Controller) SourceID() string {
	return c.sourceID
}

// Position returns the presentation time of the last rendered frame. It only
// ever advances on an actual render, never on a drop.
func (c *Controller) Position() time.Duration {
	return time.Duration(c.position.Load())
}

// Duration returns the scanned stream duration.
func (c *Controller) Duration() time.Duration {
	return c.duration
}

// Rate returns the current playback rate; zero means paused.
func (c *Controller) Rate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rate
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Controller) setRateSnapshot(r float64) {
	c.mu.Lock()
	c.rate = r
	c.mu.Unlock()
}

// decoderEvents adapts the decoder callbacks onto the session loop. The
// decoder invokes these from its own goroutine; nothing here may touch the
// decoder directly.
//
// The epoch pins the adapter to one decoder generation. Every flush bumps
// the session's epoch, so a callback that was already in flight when the
// decoder got flushed is recognized as stale and discarded: its buffer ids
// were reclaimed by the flush and must not be touched again.
type decoderEvents struct {
	c     *Controller
	epoch int
}

func (d *decoderEvents) OnInputBufferAvailable(id int) {
	d.c.post(func() { d.c.feedInput(d.epoch, id) })
}

func (d *decoderEvents) OnOutputBufferAvailable(id int, pts time.Duration, eos bool) {
	d.c.post(func() { d.c.handleOutput(d.epoch, id, pts, eos) })
}

func (d *decoderEvents) OnOutputFormatStable() {
	d.c.post(func() { d.c.handleFormatStable(d.epoch) })
}

func (d *decoderEvents) OnError(err error) {
	d.c.post(func() { d.c.handleDecoderError(err) })
}

// feedInput pulls the next sample from the extractor into a free decoder
// input buffer, or signals end of stream.
func (c *Controller) feedInput(epoch, id int) {
	if epoch != c.epoch || c.failed || c.inputEOS {
		return
	}

	n, eos := c.ext.ReadSample(c.readBuf)
	if eos {
		c.inputEOS = true
		if err := c.dec.QueueInput(id, nil, true); err != nil {
			c.handleDecoderError(err)
		}
		return
	}

	// The first sync sample at or after the starting position opens the
	// render gate; everything decoded before it is a partial picture.
	if !c.keyframeSeen && c.ext.IsSyncSample() {
		c.keyframeSeen = true
	}

	sample := make([]byte, n)
	copy(sample, c.readBuf[:n])
	c.ext.Advance()

	if err := c.dec.QueueInput(id, sample, false); err != nil {
		c.handleDecoderError(err)
	}
}

// handleOutput routes a decoded frame into the scheduler, or straight back
// to the pool when it cannot be shown.
func (c *Controller) handleOutput(epoch, id int, pts time.Duration, eos bool) {
	if epoch != c.epoch || c.failed {
		return
	}
	if eos {
		c.dec.ReleaseOutput(id, false)
		log.Debugf("session %s: end of stream", c.sourceID)
		return
	}
	if !c.keyframeSeen {
		c.dec.ReleaseOutput(id, false)
		return
	}

	// The anchor set at start or seek time predates the decode of the frame
	// it referred to; by the time that frame arrives the clock has already
	// moved past it and it would be dropped as stale. Re-anchoring on the
	// first frame that reaches the scheduler removes that latency from the
	// timeline, so the landed frame renders at exactly its own timestamp.
	if c.awaitAnchor && c.pendingSeek.IsAbsent() {
		c.awaitAnchor = false
		c.est.Rebase(clock.Anchor{Position: pts, Wall: c.est.Now(), Rate: c.est.Rate()})
	}

	c.sched.Schedule(schedule.Frame{Buffer: id, PTS: pts})
}

// handleFormatStable marks the decoder's output settled and runs the
// deferred seek, if one is queued.
func (c *Controller) handleFormatStable(epoch int) {
	if epoch != c.epoch {
		return
	}
	c.formatStable = true

	if c.pendingSeek.IsPresent() {
		c.executeSeek()
		return
	}
	if c.State() == Starting {
		c.setState(Playing)
	}
}

// handleDecoderError stops scheduling. Playback freezes at the last rendered
// frame; resumption policy is left to the caller.
func (c *Controller) handleDecoderError(err error) {
	if c.failed {
		return
	}
	c.failed = true
	c.sched.CancelAll()
	log.Errorf("session %s: decoder error: %v", c.sourceID, err)
}

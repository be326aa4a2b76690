// Package player exposes the public playback control surface and sequences
// session replacement when the source changes. All of the timing machinery
// lives one level down, in session and schedule; this layer is deliberately
// thin.
package player

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fujifruity/videoplayer/clock"
	"github.com/fujifruity/videoplayer/key"
	"github.com/fujifruity/videoplayer/log"
	"github.com/fujifruity/videoplayer/media"
	"github.com/fujifruity/videoplayer/session"
	"github.com/spf13/viper"
)

// Player drives at most one playback session at a time. Safe for concurrent
// use; every session mutation is serialized by the session's own loop.
type Player struct {
	opener media.Opener
	now    clock.Now

	mu       sync.Mutex
	session  *session.Controller
	sourceID string
	lastRate float64 // last non-zero rate, restored by TogglePause
}

// New returns an idle player resolving sources through opener.
func New(opener media.Opener) *Player {
	rate := viper.GetFloat64(key.PlayerRate)
	if rate <= 0 {
		rate = 1.0
	}
	return &Player{
		opener:   opener,
		lastRate: rate,
	}
}

// SetClock overrides the wall-clock source of subsequently started sessions.
func (p *Player) SetClock(now clock.Now) {
	p.now = now
}

// Play opens the source and starts a new session at the given position,
// replacing (and closing) the current one. A synchronous call blocks only
// until the session worker has accepted the request, not until playback
// visibly starts; an async call returns immediately and reports failure
// through the log.
func (p *Player) Play(sourceID string, startAt time.Duration, async bool) error {
	if async {
		go func() {
			if err := p.play(sourceID, startAt); err != nil {
				log.Errorf("play %q: %v", sourceID, err)
			}
		}()
		return nil
	}
	return p.play(sourceID, startAt)
}

func (p *Player) play(sourceID string, startAt time.Duration) error {
	dec, ext, err := p.opener.Open(sourceID)
	if err != nil {
		return fmt.Errorf("open source %q: %w", sourceID, err)
	}

	rate := viper.GetFloat64(key.PlayerRate)
	if rate < 0 {
		rate = 0
	}

	sess, err := session.Start(sourceID, dec, ext, session.Options{
		StartAt:          startAt,
		Rate:             rate,
		BaseIntermission: time.Duration(viper.GetInt(key.PlayerIntermission)) * time.Millisecond,
		Now:              p.now,
	})
	if err != nil {
		return err
	}

	p.mu.Lock()
	old := p.session
	p.session = sess
	p.sourceID = sourceID
	if rate > 0 {
		p.lastRate = rate
	}
	p.mu.Unlock()

	if old != nil {
		old.Close()
	}
	return nil
}

// Close tears down the current session, if any. Idempotent.
func (p *Player) Close() {
	p.mu.Lock()
	sess := p.session
	p.session = nil
	p.sourceID = ""
	p.mu.Unlock()

	if sess != nil {
		sess.Close()
	}
}

// SeekTo jumps the current session to the target position. Seeks against a
// closed or absent session are stale and silently ignored.
func (p *Player) SeekTo(target time.Duration, mode media.SeekMode) {
	if sess := p.current(); sess != nil {
		if err := sess.SeekTo(target, mode); err != nil && !errors.Is(err, session.ErrClosed) {
			log.Warnf("seek to %v: %v", target, err)
		}
	}
}

// SeekToMs is SeekTo with the target in milliseconds.
func (p *Player) SeekToMs(targetMs int64, mode media.SeekMode) {
	p.SeekTo(time.Duration(targetMs)*time.Millisecond, mode)
}

// SetRate changes the playback rate; zero pauses. A non-zero rate is
// remembered so TogglePause can restore it. Stale calls are ignored.
func (p *Player) SetRate(rate float64) {
	if rate < 0 {
		rate = 0
	}

	p.mu.Lock()
	if rate > 0 {
		p.lastRate = rate
	}
	sess := p.session
	p.mu.Unlock()

	if sess != nil {
		if err := sess.SetRate(rate); err != nil && !errors.Is(err, session.ErrClosed) {
			log.Warnf("set rate %v: %v", rate, err)
		}
	}
}

// Rate returns the current playback rate, zero when paused or idle.
func (p *Player) Rate() float64 {
	if sess := p.current(); sess != nil {
		return sess.Rate()
	}
	return 0
}

// TogglePause inverts the playback suspension state, restoring the last
// non-zero rate on resume.
func (p *Player) TogglePause() {
	sess := p.current()
	if sess == nil {
		return
	}

	if sess.Rate() > 0 {
		p.SetRate(0)
		return
	}

	p.mu.Lock()
	rate := p.lastRate
	p.mu.Unlock()
	if rate <= 0 {
		rate = 1.0
	}
	p.SetRate(rate)
}

// Position returns the presentation time of the last rendered frame.
func (p *Player) Position() time.Duration {
	if sess := p.current(); sess != nil {
		return sess.Position()
	}
	return 0
}

// PositionMs returns Position in milliseconds.
func (p *Player) PositionMs() int64 {
	return p.Position().Milliseconds()
}

// Duration returns the scanned duration of the current source.
func (p *Player) Duration() time.Duration {
	if sess := p.current(); sess != nil {
		return sess.Duration()
	}
	return 0
}

// DurationMs returns Duration in milliseconds.
func (p *Player) DurationMs() int64 {
	return p.Duration().Milliseconds()
}

// SourceID returns the identifier of the current source, empty when idle.
func (p *Player) SourceID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sourceID
}

// IsPlaying reports whether a session is live and advancing (not paused).
func (p *Player) IsPlaying() bool {
	sess := p.current()
	return sess != nil && sess.State() != session.Closed && sess.Rate() > 0
}

func (p *Player) current() *session.Controller {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session
}

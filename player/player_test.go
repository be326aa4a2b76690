package player

import (
	"testing"
	"time"

	"github.com/fujifruity/videoplayer/key"
	"github.com/fujifruity/videoplayer/media"
	"github.com/fujifruity/videoplayer/media/sim"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	viper.Set(key.PlayerRate, 1.0)
	viper.Set(key.PlayerIntermission, 0)
}

func newTestPlayer() *Player {
	opener := sim.NewOpener()
	opener.SetLatency(time.Millisecond)
	opener.Register("clip", sim.Track{
		Duration:      2 * time.Second,
		FrameInterval: 50 * time.Millisecond,
		GOPSize:       4,
	})
	return New(opener)
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(d time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestPlayer(t *testing.T) {
	Convey("Given a player over a registered source", t, func() {
		p := newTestPlayer()
		defer p.Close()

		Convey("An unknown source fails to play", func() {
			err := p.Play("nope", 0, false)
			So(err, ShouldNotBeNil)
			So(p.SourceID(), ShouldBeEmpty)
			So(p.IsPlaying(), ShouldBeFalse)
		})

		Convey("Playing reports the source and advances the position", func() {
			So(p.Play("clip", 0, false), ShouldBeNil)
			So(p.SourceID(), ShouldEqual, "clip")
			So(p.DurationMs(), ShouldEqual, 2000)
			So(p.IsPlaying(), ShouldBeTrue)

			So(waitFor(2*time.Second, func() bool {
				return p.PositionMs() > 0
			}), ShouldBeTrue)
		})

		Convey("TogglePause freezes and restores the rate", func() {
			So(p.Play("clip", 0, false), ShouldBeNil)
			p.SetRate(1.5)
			waitFor(time.Second, func() bool { return p.Rate() == 1.5 })

			p.TogglePause()
			So(waitFor(time.Second, func() bool { return p.Rate() == 0 }), ShouldBeTrue)
			So(p.IsPlaying(), ShouldBeFalse)

			p.TogglePause()
			So(waitFor(time.Second, func() bool { return p.Rate() == 1.5 }), ShouldBeTrue)
		})

		Convey("Seeking lands on the requested sync point", func() {
			So(p.Play("clip", 0, false), ShouldBeNil)
			waitFor(time.Second, func() bool { return p.PositionMs() > 0 })

			p.SeekToMs(1250, media.SeekPreviousSync)
			So(waitFor(2*time.Second, func() bool {
				return p.PositionMs() >= 1200
			}), ShouldBeTrue)
		})

		Convey("Replaying the source replaces the session", func() {
			So(p.Play("clip", 0, false), ShouldBeNil)
			So(p.Play("clip", 500*time.Millisecond, false), ShouldBeNil)
			So(p.SourceID(), ShouldEqual, "clip")
			So(p.PositionMs(), ShouldBeGreaterThanOrEqualTo, 400)
		})

		Convey("Controls against a closed player are silently ignored", func() {
			So(p.Play("clip", 0, false), ShouldBeNil)
			p.Close()

			So(func() {
				p.SeekToMs(1000, media.SeekPreviousSync)
				p.TogglePause()
			}, ShouldNotPanic)
			So(p.Position(), ShouldEqual, time.Duration(0))
			So(p.IsPlaying(), ShouldBeFalse)
		})
	})
}

package sim

import (
	"testing"
	"time"

	"github.com/fujifruity/videoplayer/media"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtractor(t *testing.T) {
	// 41 frames at 50 ms, sync every 4th: sync points at 0, 200, 400, ... ms.
	track := Track{
		Duration:      2 * time.Second,
		FrameInterval: 50 * time.Millisecond,
		GOPSize:       4,
	}

	Convey("Given an extractor over a two second track", t, func() {
		ext := NewExtractor(track)

		Convey("The cursor starts on the first sample, a sync sample", func() {
			So(ext.SampleTime(), ShouldEqual, time.Duration(0))
			So(ext.IsSyncSample(), ShouldBeTrue)
		})

		Convey("ReadSample encodes the timestamp and the sync flag", func() {
			buf := make([]byte, SampleSize)
			n, eos := ext.ReadSample(buf)
			So(n, ShouldEqual, SampleSize)
			So(eos, ShouldBeFalse)
			So(buf[8], ShouldEqual, 1)

			ext.Advance()
			n, eos = ext.ReadSample(buf)
			So(n, ShouldEqual, SampleSize)
			So(eos, ShouldBeFalse)
			So(buf[8], ShouldEqual, 0) // frame 1 is not on a sync point
		})

		Convey("Advance walks every sample and then reports end of stream", func() {
			count := 1
			for ext.Advance() {
				count++
			}
			So(count, ShouldEqual, 41)
			So(ext.SampleTime(), ShouldEqual, media.EndOfStream)

			buf := make([]byte, SampleSize)
			_, eos := ext.ReadSample(buf)
			So(eos, ShouldBeTrue)
		})

		Convey("Seeking to the previous sync snaps backwards", func() {
			ext.SeekTo(450*time.Millisecond, media.SeekPreviousSync)
			So(ext.SampleTime(), ShouldEqual, 400*time.Millisecond)
			So(ext.IsSyncSample(), ShouldBeTrue)
		})

		Convey("Seeking to the next sync snaps forwards", func() {
			ext.SeekTo(450*time.Millisecond, media.SeekNextSync)
			So(ext.SampleTime(), ShouldEqual, 600*time.Millisecond)
		})

		Convey("Seeking to the closest sync picks the nearer side", func() {
			ext.SeekTo(450*time.Millisecond, media.SeekClosestSync)
			So(ext.SampleTime(), ShouldEqual, 400*time.Millisecond)

			ext.SeekTo(550*time.Millisecond, media.SeekClosestSync)
			So(ext.SampleTime(), ShouldEqual, 600*time.Millisecond)
		})

		Convey("A target on a sync point is exact in every mode", func() {
			for _, mode := range []media.SeekMode{media.SeekPreviousSync, media.SeekNextSync, media.SeekClosestSync} {
				ext.SeekTo(400*time.Millisecond, mode)
				So(ext.SampleTime(), ShouldEqual, 400*time.Millisecond)
			}
		})

		Convey("A seek to zero lands on the first sample", func() {
			ext.SeekTo(0, media.SeekNextSync)
			So(ext.SampleTime(), ShouldEqual, time.Duration(0))
		})

		Convey("A seek past the end clamps to the last sync sample", func() {
			ext.SeekTo(time.Hour, media.SeekNextSync)
			So(ext.SampleTime(), ShouldEqual, 2*time.Second)
			So(ext.IsSyncSample(), ShouldBeTrue)
		})

		Convey("Negative targets clamp to zero", func() {
			ext.SeekTo(-time.Second, media.SeekPreviousSync)
			So(ext.SampleTime(), ShouldEqual, time.Duration(0))
		})
	})
}

package media

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSeekMode(t *testing.T) {
	Convey("SeekMode identifiers round-trip through parsing", t, func() {
		for _, mode := range []SeekMode{SeekPreviousSync, SeekNextSync, SeekClosestSync} {
			parsed, err := ParseSeekMode(mode.String())
			So(err, ShouldBeNil)
			So(parsed, ShouldEqual, mode)
		}
	})

	Convey("An unknown identifier falls back to previous-sync with an error", t, func() {
		mode, err := ParseSeekMode("sideways")
		So(err, ShouldNotBeNil)
		So(mode, ShouldEqual, SeekPreviousSync)
	})
}

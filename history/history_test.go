package history

import (
	"testing"
	"time"

	"github.com/fujifruity/videoplayer/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a playback position", t, func() {
		Convey("When saving it", func() {
			err := Save("clip.mkv", 90*time.Second, 20*time.Minute)

			Convey("Then the record can be read back", func() {
				So(err, ShouldBeNil)

				record, ok := For("clip.mkv")
				So(ok, ShouldBeTrue)
				So(record.Position(), ShouldEqual, 90*time.Second)
				So(record.Duration(), ShouldEqual, 20*time.Minute)
			})

			Convey("Then an earlier position does not regress the record", func() {
				So(Save("clip.mkv", 10*time.Second, 20*time.Minute), ShouldBeNil)

				record, ok := For("clip.mkv")
				So(ok, ShouldBeTrue)
				So(record.Position(), ShouldEqual, 90*time.Second)
			})

			Convey("Then a later position advances the record", func() {
				So(Save("clip.mkv", 5*time.Minute, 20*time.Minute), ShouldBeNil)

				record, ok := For("clip.mkv")
				So(ok, ShouldBeTrue)
				So(record.Position(), ShouldEqual, 5*time.Minute)
			})

			Convey("Then removing it forgets the source", func() {
				So(Remove("clip.mkv"), ShouldBeNil)

				_, ok := For("clip.mkv")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("An unknown source has no record", func() {
			_, ok := For("never-played.mkv")
			So(ok, ShouldBeFalse)
		})
	})
}

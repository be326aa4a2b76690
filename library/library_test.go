package library

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/fujifruity/videoplayer/filesystem"
	"github.com/fujifruity/videoplayer/key"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func populate(dir string, names ...string) {
	lo.Must0(filesystem.API().MkdirAll(dir, 0755))
	for _, name := range names {
		lo.Must0(filesystem.API().WriteFile(filepath.Join(dir, name), []byte{}, 0644))
	}
}

func TestLibrary(t *testing.T) {
	Convey("Given a library directory with sources", t, func() {
		dir := "/videos"
		populate(dir, "holiday.mkv", "concert.mp4", "lecture-01.mp4")
		viper.Set(key.LibraryPath, dir)

		Convey("Path prefers the configured directory", func() {
			So(Path(), ShouldEqual, dir)
		})

		Convey("List returns the file names sorted", func() {
			names, err := List()
			So(err, ShouldBeNil)
			So(names, ShouldResemble, []string{"concert.mp4", "holiday.mkv", "lecture-01.mp4"})
		})

		Convey("List skips subdirectories", func() {
			lo.Must0(filesystem.API().MkdirAll(filepath.Join(dir, "extras"), 0755))
			names, err := List()
			So(err, ShouldBeNil)
			So(names, ShouldNotContain, "extras")
		})

		Convey("Resolve matches an exact name first", func() {
			name, err := Resolve("holiday.mkv")
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "holiday.mkv")
		})

		Convey("Resolve falls back to the best fuzzy match", func() {
			name, err := Resolve("lecture")
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "lecture-01.mp4")
		})

		Convey("Resolve fails when nothing matches", func() {
			_, err := Resolve("zzzzzz")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("TrackFor builds the track from the configured shape", t, func() {
		viper.Set(key.LibraryDuration, 4000)
		viper.Set(key.LibraryFrameInterval, 40)
		viper.Set(key.LibraryGOPSize, 5)

		track := TrackFor("anything.mkv")
		So(track.Duration, ShouldEqual, 4*time.Second)
		So(track.FrameInterval, ShouldEqual, 40*time.Millisecond)
		So(track.GOPSize, ShouldEqual, 5)
	})
}

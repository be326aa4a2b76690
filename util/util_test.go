package util

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "frame", "frames"), ShouldEqual, "1 frame")
		So(Quantify(2, "frame", "frames"), ShouldEqual, "2 frames")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFormatDuration(t *testing.T) {
	Convey("FormatDuration", t, func() {
		Convey("Should render sub-hour positions as m:ss", func() {
			So(FormatDuration(0), ShouldEqual, "0:00")
			So(FormatDuration(42*time.Second), ShouldEqual, "0:42")
			So(FormatDuration(3*time.Minute+5*time.Second), ShouldEqual, "3:05")
		})
		Convey("Should render longer positions as h:mm:ss", func() {
			So(FormatDuration(time.Hour+time.Minute+time.Second), ShouldEqual, "1:01:01")
			So(FormatDuration(2*time.Hour+30*time.Minute), ShouldEqual, "2:30:00")
		})
		Convey("Should clamp negatives to zero", func() {
			So(FormatDuration(-time.Second), ShouldEqual, "0:00")
		})
		Convey("Should round to the nearest second", func() {
			So(FormatDuration(1900*time.Millisecond), ShouldEqual, "0:02")
		})
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(5, 0, 10), ShouldEqual, 5)
		So(Clamp(-5, 0, 10), ShouldEqual, 0)
		So(Clamp(15, 0, 10), ShouldEqual, 10)
	})
}

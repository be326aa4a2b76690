package clock

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEstimator(t *testing.T) {
	Convey("Given an estimator anchored at one second", t, func() {
		base := time.Unix(1000, 0)
		current := base
		est := NewEstimator(10*time.Second, func() time.Time { return current })
		est.Rebase(Anchor{Position: time.Second, Wall: base, Rate: 1.0})

		Convey("The expected position tracks elapsed wall time", func() {
			So(est.Expected(base), ShouldEqual, time.Second)
			So(est.Expected(base.Add(500*time.Millisecond)), ShouldEqual, 1500*time.Millisecond)
			So(est.Expected(base.Add(3*time.Second)), ShouldEqual, 4*time.Second)
		})

		Convey("The rate scales the extrapolation", func() {
			est.Rebase(Anchor{Position: time.Second, Wall: base, Rate: 2.0})
			So(est.Expected(base.Add(time.Second)), ShouldEqual, 3*time.Second)

			est.Rebase(Anchor{Position: time.Second, Wall: base, Rate: 0.5})
			So(est.Expected(base.Add(time.Second)), ShouldEqual, 1500*time.Millisecond)
		})

		Convey("A zero rate freezes the position", func() {
			est.Rebase(Anchor{Position: time.Second, Wall: base, Rate: 0})
			So(est.Expected(base.Add(time.Hour)), ShouldEqual, time.Second)
		})

		Convey("The position saturates at the stream duration", func() {
			So(est.Expected(base.Add(time.Hour)), ShouldEqual, 10*time.Second)
		})

		Convey("The position never goes below zero", func() {
			So(est.Expected(base.Add(-time.Hour)), ShouldEqual, time.Duration(0))
		})

		Convey("ExpectedNow reads the injected clock", func() {
			current = base.Add(2 * time.Second)
			So(est.ExpectedNow(), ShouldEqual, 3*time.Second)
		})

		Convey("SetDuration moves the saturation bound", func() {
			est.SetDuration(2 * time.Second)
			So(est.Expected(base.Add(time.Hour)), ShouldEqual, 2*time.Second)
		})

		Convey("Rebase replaces the anchor wholesale", func() {
			est.Rebase(Anchor{Position: 5 * time.Second, Wall: base.Add(time.Minute), Rate: 1.0})
			So(est.Anchor().Position, ShouldEqual, 5*time.Second)
			So(est.Rate(), ShouldEqual, 1.0)
			So(est.Expected(base.Add(time.Minute+time.Second)), ShouldEqual, 6*time.Second)
		})
	})

	Convey("A nil clock source defaults to time.Now", t, func() {
		est := NewEstimator(time.Minute, nil)
		So(est.Now(), ShouldHappenWithin, time.Second, time.Now())
	})
}

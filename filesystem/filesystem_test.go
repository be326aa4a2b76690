package filesystem

import (
	"os"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "MemMapFS")
		})

		Convey("GacheFs should write through the active backend", func() {
			SetMemMapFs()
			lo.Must0(GacheFs{}.MkdirAll("/cache", 0755))

			f := lo.Must(GacheFs{}.OpenFile("/cache/resume", os.O_CREATE|os.O_WRONLY, 0644))
			lo.Must(f.Write([]byte("position")))
			So(f.Close(), ShouldBeNil)

			So(lo.Must(API().Exists("/cache/resume")), ShouldBeTrue)
		})
	})
}

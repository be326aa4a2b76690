package config

import (
	"testing"

	"github.com/fujifruity/videoplayer/filesystem"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("player.intermission_ms")
			So(result, ShouldEqual, "player_intermission_ms")
		})

		Convey("Env names carry the application prefix", func() {
			field := Default["player.rate"]
			So(field.Env(), ShouldEqual, "VIDEOPLAYER_PLAYER_RATE")
		})
	})
}

package log

import (
	"testing"

	"github.com/castdeck/castdeck/filesystem"
	"github.com/castdeck/castdeck/key"
	"github.com/castdeck/castdeck/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup should not create any log file", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeFalse)
			files := lo.Must(filesystem.API().ReadDir(where.Logs()))
			So(files, ShouldBeEmpty)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		Convey("Setup should open a dated log file and accept writes", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeTrue)
			Infof("surface %s ready", "mock")

			files := lo.Must(filesystem.API().ReadDir(where.Logs()))
			So(len(files), ShouldEqual, 1)
			So(files[0].Name(), ShouldEndWith, ".log")
		})
	})
}

package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/castdeck/castdeck/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		for name, fn := range map[string]func() string{
			"Config":   Config,
			"Cache":    Cache,
			"Catalogs": Catalogs,
			"Logs":     Logs,
			"Temp":     Temp,
		} {
			Convey(name+"() should resolve to an existing directory", func() {
				path := fn()
				So(path, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			})
		}

		Convey("Config() should honour the override env variable", func() {
			custom := filepath.Join(os.TempDir(), "castdeck-where-test")
			t.Setenv(EnvConfigPath, custom)
			So(Config(), ShouldEqual, custom)
			So(Logs(), ShouldEqual, filepath.Join(custom, "logs"))
		})
	})
}

package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestGacheFs(t *testing.T) {
	Convey("Given the in-memory backend", t, func() {
		SetMemMapFs()
		var fs GacheFs

		Convey("Files written through the adapter are visible to the API", func() {
			So(fs.MkdirAll("/cache/catalogs", os.ModePerm), ShouldBeNil)

			f, err := fs.OpenFile("/cache/catalogs/a.json", os.O_CREATE|os.O_WRONLY, 0o644)
			So(err, ShouldBeNil)
			_, err = f.Write([]byte("{}"))
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			data, err := API().ReadFile("/cache/catalogs/a.json")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "{}")
		})
	})
}

package cmd

import (
	"testing"

	"github.com/castdeck/castdeck/config"
	"github.com/castdeck/castdeck/key"
	"github.com/castdeck/castdeck/media"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseValue(t *testing.T) {
	Convey("Given configuration fields", t, func() {
		Convey("Ints are parsed", func() {
			v, err := parseValue(config.Default[key.SkipSeconds], []string{"15"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 15)

			_, err = parseValue(config.Default[key.SkipSeconds], []string{"soon"})
			So(err, ShouldNotBeNil)
		})

		Convey("Floats are parsed", func() {
			v, err := parseValue(config.Default[key.VolumeStep], []string{"0.1"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 0.1)
		})

		Convey("Bools are parsed", func() {
			v, err := parseValue(config.Default[key.LogsWrite], []string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)
		})

		Convey("Strings are taken verbatim", func() {
			v, err := parseValue(config.Default[key.Player], []string{"mock"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "mock")
		})

		Convey("A missing value is an error", func() {
			_, err := parseValue(config.Default[key.Player], nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestClosestKey(t *testing.T) {
	Convey("Typos resolve to the nearest known key", t, func() {
		So(closestKey("player.skip_second"), ShouldEqual, key.SkipSeconds)
		So(closestKey("logs.levl"), ShouldEqual, key.LogsLevel)
	})
}

func TestMatchTitles(t *testing.T) {
	Convey("Given the default catalog", t, func() {
		items := media.Default().Items()

		Convey("An empty query keeps everything", func() {
			So(matchTitles(items, ""), ShouldHaveLength, len(items))
		})

		Convey("A fuzzy query narrows the list", func() {
			titles := lo.Map(matchTitles(items, "bbb"), func(i media.Item, _ int) string { return i.Title })
			So(titles, ShouldContain, "Big Buck Bunny")
		})

		Convey("Nothing matches nonsense", func() {
			So(matchTitles(items, "zzzzqqq"), ShouldBeEmpty)
		})
	})
}

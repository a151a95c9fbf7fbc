package selection

import (
	"testing"
	"time"

	"github.com/castdeck/castdeck/filesystem"
	"github.com/castdeck/castdeck/media"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func catalogOf(titles ...string) media.Catalog {
	items := make([]media.Item, len(titles))
	for i, t := range titles {
		items[i] = media.Item{ID: t, Title: t, Source: t + ".mp4"}
	}
	return media.NewCatalog(items)
}

type loads struct {
	indices []int
	titles  []string
}

func (l *loads) record(i int, item media.Item) {
	l.indices = append(l.indices, i)
	l.titles = append(l.titles, item.Title)
}

func TestConstruction(t *testing.T) {
	Convey("Given a fresh controller", t, func() {
		scheduler := NewManualScheduler()
		var got loads
		c := New(catalogOf("A", "B", "C"), scheduler, time.Second, got.record)

		Convey("The first item is being activated", func() {
			s := c.State()
			So(s.Activating, ShouldBeTrue)
			So(s.Pending, ShouldEqual, 1)
			So(s.SelectedIndex.IsAbsent(), ShouldBeTrue)
			So(got.indices, ShouldBeEmpty)
		})

		Convey("Nothing happens before the delay elapses", func() {
			scheduler.Advance(999 * time.Millisecond)
			So(got.indices, ShouldBeEmpty)
		})

		Convey("After the delay catalog[0] is loaded exactly once", func() {
			scheduler.Advance(time.Second)
			scheduler.Advance(10 * time.Second)

			So(got.titles, ShouldResemble, []string{"A"})
			s := c.State()
			So(s.SelectedIndex.MustGet(), ShouldEqual, 0)
			So(s.Activating, ShouldBeFalse)
			So(s.Pending, ShouldEqual, 0)

			item, ok := c.Selected()
			So(ok, ShouldBeTrue)
			So(item.Title, ShouldEqual, "A")
		})
	})

	Convey("An empty catalog activates nothing", t, func() {
		scheduler := NewManualScheduler()
		c := New(media.NewCatalog(nil), scheduler, time.Second, nil)
		So(scheduler.Pending(), ShouldEqual, 0)
		So(c.State().Activating, ShouldBeFalse)
		_, ok := c.Selected()
		So(ok, ShouldBeFalse)
	})
}

func TestActivate(t *testing.T) {
	Convey("Given a settled controller", t, func() {
		scheduler := NewManualScheduler()
		var got loads
		c := New(catalogOf("A", "B", "C", "D", "E", "F"), scheduler, time.Second, got.record)
		scheduler.Advance(time.Second)
		got = loads{}

		Convey("The last activation to fire wins and both load in call order", func() {
			So(c.Activate(2), ShouldBeTrue)
			scheduler.Advance(100 * time.Millisecond)
			So(c.Activate(5), ShouldBeTrue)
			So(c.State().Pending, ShouldEqual, 2)

			scheduler.Advance(2 * time.Second)

			So(got.indices, ShouldResemble, []int{2, 5})
			So(c.State().SelectedIndex.MustGet(), ShouldEqual, 5)
			So(c.State().Activating, ShouldBeFalse)
		})

		Convey("Activations issued together complete in call order", func() {
			c.Activate(4)
			c.Activate(1)
			scheduler.Advance(time.Second)
			So(got.indices, ShouldResemble, []int{4, 1})
			So(c.State().SelectedIndex.MustGet(), ShouldEqual, 1)
		})

		Convey("The first completion clears Activating while another is still in flight", func() {
			c.Activate(2)
			scheduler.Advance(500 * time.Millisecond)
			c.Activate(3)
			scheduler.Advance(500 * time.Millisecond)

			s := c.State()
			So(s.SelectedIndex.MustGet(), ShouldEqual, 2)
			So(s.Activating, ShouldBeFalse)
			So(s.Pending, ShouldEqual, 1)
		})

		Convey("Indices outside the catalog are ignored", func() {
			So(c.Activate(-1), ShouldBeFalse)
			So(c.Activate(6), ShouldBeFalse)
			So(scheduler.Pending(), ShouldEqual, 0)
			So(c.State().SelectedIndex.MustGet(), ShouldEqual, 0)
		})

		Convey("Catalog indices hidden by the filter can be activated", func() {
			c.SetFilter("a")
			So(c.Activate(3), ShouldBeTrue)
			scheduler.Advance(time.Second)
			So(got.titles, ShouldResemble, []string{"D"})
		})
	})
}

func TestFilter(t *testing.T) {
	Convey("Given catalog [A, B, C]", t, func() {
		scheduler := NewManualScheduler()
		c := New(catalogOf("Alpha", "Bravo", "Charlie"), scheduler, time.Second, nil)
		scheduler.Advance(time.Second)

		Convey("Everything is visible without a filter", func() {
			So(c.State().Visible, ShouldHaveLength, 3)
		})

		Convey("Filtering on b shows only B and keeps the selection", func() {
			c.SetFilter("b")
			s := c.State()
			So(s.Visible, ShouldHaveLength, 1)
			So(s.Visible[0].Item.Title, ShouldEqual, "Bravo")
			So(s.Visible[0].Index, ShouldEqual, 1)
			So(s.SelectedIndex.MustGet(), ShouldEqual, 0)
		})

		Convey("Matching ignores case", func() {
			c.SetFilter("CHAR")
			So(c.State().FilterQuery, ShouldEqual, "char")
			So(c.State().Visible, ShouldHaveLength, 1)
		})

		Convey("Visible positions map to catalog indices", func() {
			c.SetFilter("ar")
			index, ok := c.VisibleIndex(0)
			So(ok, ShouldBeTrue)
			So(index, ShouldEqual, 2)
			_, ok = c.VisibleIndex(1)
			So(ok, ShouldBeFalse)
		})

		Convey("A query matching nothing leaves no visible items", func() {
			c.SetFilter("zulu")
			So(c.State().Visible, ShouldBeEmpty)
			So(c.State().SelectedIndex.MustGet(), ShouldEqual, 0)
		})

		Convey("Snapshots do not share the visible slice", func() {
			s := c.State()
			s.Visible[0].Item.Title = "changed"
			So(c.State().Visible[0].Item.Title, ShouldEqual, "Alpha")
		})
	})
}

func TestSuggest(t *testing.T) {
	Convey("Suggest", t, func() {
		c := New(catalogOf("Big Buck Bunny", "Elephants Dream", "Sintel"), NewManualScheduler(), time.Second, nil)

		So(c.Suggest("bbb", 3), ShouldResemble, []string{"Big Buck Bunny"})
		So(c.Suggest("e", 1), ShouldHaveLength, 1)
		So(c.Suggest("", 3), ShouldBeEmpty)
		So(c.Suggest("qqq", 3), ShouldBeEmpty)
	})
}

func TestManualScheduler(t *testing.T) {
	Convey("Given a manual scheduler", t, func() {
		s := NewManualScheduler()
		var order []string

		Convey("Tasks run by deadline", func() {
			s.After(2*time.Second, func() { order = append(order, "late") })
			s.After(time.Second, func() { order = append(order, "early") })

			So(s.Advance(3*time.Second), ShouldEqual, 2)
			So(order, ShouldResemble, []string{"early", "late"})
		})

		Convey("Stopped tasks do not run", func() {
			timer := s.After(time.Second, func() { order = append(order, "x") })
			So(timer.Stop(), ShouldBeTrue)
			So(timer.Stop(), ShouldBeFalse)
			s.Advance(time.Second)
			So(order, ShouldBeEmpty)
		})

		Convey("Tasks scheduled while advancing run if they fall due", func() {
			s.After(time.Second, func() {
				order = append(order, "first")
				s.After(time.Second, func() { order = append(order, "second") })
			})
			s.Advance(2 * time.Second)
			So(order, ShouldResemble, []string{"first", "second"})
		})
	})
}

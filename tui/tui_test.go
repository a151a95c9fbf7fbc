package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/castdeck/castdeck/config"
	"github.com/castdeck/castdeck/filesystem"
	"github.com/castdeck/castdeck/media"
	"github.com/castdeck/castdeck/playback"
	"github.com/castdeck/castdeck/player"
	"github.com/castdeck/castdeck/selection"
	"github.com/castdeck/castdeck/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
	_ = config.Setup()
}

func newTestBubble() *statefulBubble {
	catalog := media.NewCatalog([]media.Item{
		{ID: "a", Title: "Alpha", Subtitle: "First", Source: "a.mp4"},
		{ID: "b", Title: "Bravo", Source: "b.mp4"},
		{ID: "c", Title: "Charlie", Source: "c.mp4"},
	})
	s := session.New(session.Options{Catalog: catalog, Surface: player.NewMock(), ActivationDelay: time.Hour})
	b := newBubble(&Options{Session: s})
	b.resize(100, 40)
	return b
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBubble(t *testing.T) {
	Convey("Given a bubble over a fresh session", t, func() {
		b := newTestBubble()

		Convey("Every catalog item is listed", func() {
			So(b.catalogC.Items(), ShouldHaveLength, 3)
			So(b.View(), ShouldContainSubstring, "Alpha")
			So(b.View(), ShouldContainSubstring, "Nothing playing yet")
		})

		Convey("The list cursor maps to catalog indices", func() {
			snapshot := b.snapshot
			snapshot.Selection.FilterQuery = "r"
			snapshot.Selection.Visible = []selection.Entry{
				{Index: 1, Item: media.Item{Title: "Bravo"}},
				{Index: 2, Item: media.Item{Title: "Charlie"}},
			}
			b.applySnapshot(snapshot)
			b.catalogC.Select(1)

			index, ok := b.highlighted()
			So(ok, ShouldBeTrue)
			So(index, ShouldEqual, 2)
		})

		Convey("Suggestions appear when nothing matches", func() {
			snapshot := b.snapshot
			snapshot.Selection.FilterQuery = "brv"
			snapshot.Selection.Visible = nil
			b.applySnapshot(snapshot)

			So(b.suggestions, ShouldResemble, []string{"Bravo"})
			So(b.View(), ShouldContainSubstring, "did you mean")
		})

		Convey("The now playing pane follows the snapshot", func() {
			snapshot := b.snapshot
			snapshot.Playback.Item = mo.Some(media.Item{Title: "Alpha", Subtitle: "First"})
			snapshot.Playback.Playing = true
			snapshot.Playback.CurrentTime = 30
			snapshot.Playback.Duration = mo.Some(120.0)
			snapshot.Playback.ShowSettingsMenu = true
			b.applySnapshot(snapshot)

			view := b.View()
			So(view, ShouldContainSubstring, "00:30 / 02:00")
			So(view, ShouldContainSubstring, "First")
			So(view, ShouldContainSubstring, "[Normal]")
		})

		Convey("Slash enters the filter and escape leaves it", func() {
			b.Update(keyPress("/"))
			So(b.state, ShouldEqual, filterState)

			b.Update(keyPress("b"))
			So(b.inputC.Value(), ShouldEqual, "b")

			b.Update(tea.KeyMsg{Type: tea.KeyEsc})
			So(b.state, ShouldEqual, browseState)
			So(b.inputC.Value(), ShouldBeEmpty)
		})

		Convey("A closed session quits the program", func() {
			_, cmd := b.Update(sessionClosedMsg{})
			So(cmd, ShouldNotBeNil)
			So(cmd(), ShouldResemble, tea.Quit())
		})

		Convey("Errors are shown in the error state", func() {
			b.raiseError(errors.New("boom"))
			So(b.state, ShouldEqual, errorState)
			So(b.View(), ShouldContainSubstring, "boom")
		})
	})
}

func TestNotices(t *testing.T) {
	Convey("Given a playback core on a mock surface", t, func() {
		surface := player.NewMock()
		core := &session.Core{Playback: playback.New(surface)}

		Convey("Speed notices report the applied rate", func() {
			text, ok := speedNotice(core, true)
			So(ok, ShouldBeTrue)
			So(text, ShouldEqual, "speed 1.25x")

			text, ok = speedNotice(core, false)
			So(ok, ShouldBeTrue)
			So(text, ShouldEqual, "speed Normal")
		})

		Convey("A rejected speed change shows nothing", func() {
			surface.Reject(player.OpSetPlaybackRate)
			_, ok := speedNotice(core, true)
			So(ok, ShouldBeFalse)
			So(core.Playback.State().Speed, ShouldEqual, 1.0)
		})

		Convey("Volume notices report the applied level", func() {
			text, ok := volumeNotice(core, -0.25)
			So(ok, ShouldBeTrue)
			So(text, ShouldEqual, "volume 75%")

			text, ok = volumeNotice(core, -1)
			So(ok, ShouldBeTrue)
			So(text, ShouldEqual, "muted")
		})

		Convey("A rejected or clamped volume change shows nothing", func() {
			_, ok := volumeNotice(core, 0.1)
			So(ok, ShouldBeFalse)

			surface.Reject(player.OpSetVolume)
			_, ok = volumeNotice(core, -0.5)
			So(ok, ShouldBeFalse)
			So(core.Playback.State().Volume, ShouldEqual, 1.0)
		})
	})
}

func TestKeymap(t *testing.T) {
	Convey("Help follows the state", t, func() {
		k := newStatefulKeymap()

		k.setState(browseState)
		So(len(k.FullHelp()[0]), ShouldBeGreaterThan, len(k.ShortHelp()))

		k.setState(filterState)
		So(k.ShortHelp(), ShouldContain, k.acceptSuggestion)
	})
}

func TestFirstSentences(t *testing.T) {
	Convey("firstSentences", t, func() {
		So(firstSentences("short", 10), ShouldEqual, "short")
		So(firstSentences("One two. Three four five six.", 15), ShouldEqual, "One two.")
		So(firstSentences("abcdefghij", 4), ShouldEqual, "abcd…")
	})
}

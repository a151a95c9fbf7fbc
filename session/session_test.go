package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/castdeck/castdeck/filesystem"
	"github.com/castdeck/castdeck/input"
	"github.com/castdeck/castdeck/key"
	"github.com/castdeck/castdeck/media"
	"github.com/castdeck/castdeck/player"
	"github.com/castdeck/castdeck/reaction"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	filesystem.SetMemMapFs()
	goleak.VerifyTestMain(m)
}

const delay = 20 * time.Millisecond

func catalog() media.Catalog {
	titles := []string{"A", "B", "C", "D", "E", "F"}
	items := make([]media.Item, len(titles))
	for i, t := range titles {
		items[i] = media.Item{ID: t, Title: t, Source: t + ".mp4"}
	}
	return media.NewCatalog(items)
}

// eventually polls cond until it holds or the deadline passes.
func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

type running struct {
	session *Session
	surface *player.Mock
	stop    func()
	result  chan error
}

func start() *running {
	return startWith(delay)
}

func startWith(activationDelay time.Duration) *running {
	surface := player.NewMock()
	s := New(Options{Catalog: catalog(), Surface: surface, ActivationDelay: activationDelay, SkipSeconds: 10})

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- s.Run(ctx) }()

	r := &running{session: s, surface: surface, result: result}
	r.stop = func() {
		cancel()
		<-result
	}
	return r
}

func opened(m *player.Mock) []string {
	var sources []string
	for _, c := range m.CallsOf(player.OpOpen) {
		sources = append(sources, c.Source)
	}
	return sources
}

func TestSession(t *testing.T) {
	Convey("Given a running session", t, func() {
		r := start()
		defer r.stop()
		s := r.session

		Convey("The first item is loaded once without interaction", func() {
			So(eventually(func() bool {
				return s.Snapshot().Selection.SelectedIndex.IsPresent()
			}), ShouldBeTrue)

			time.Sleep(3 * delay)
			So(opened(r.surface), ShouldResemble, []string{"A.mp4"})

			snapshot := s.Snapshot()
			So(snapshot.Playback.Playing, ShouldBeTrue)
			So(snapshot.Playback.Item.MustGet().Title, ShouldEqual, "A")
			So(snapshot.Shortcuts, ShouldBeTrue)
		})

		Convey("Racing activations load in call order and the last one wins", func() {
			So(eventually(func() bool { return len(opened(r.surface)) == 1 }), ShouldBeTrue)

			s.Do(func(c *Core) { c.Selection.Activate(2) })
			s.Do(func(c *Core) { c.Selection.Activate(5) })

			So(eventually(func() bool { return s.Snapshot().Selection.Pending == 0 && len(opened(r.surface)) == 3 }), ShouldBeTrue)
			So(opened(r.surface), ShouldResemble, []string{"A.mp4", "C.mp4", "F.mp4"})
			So(s.Snapshot().Selection.SelectedIndex.MustGet(), ShouldEqual, 5)
		})

		Convey("Surface notifications update playback", func() {
			So(eventually(func() bool { return s.Snapshot().Playback.Playing }), ShouldBeTrue)

			r.surface.EmitTimeUpdate(3, 60)
			r.surface.EmitPause()

			So(eventually(func() bool { return !s.Snapshot().Playback.Playing }), ShouldBeTrue)
			So(s.Snapshot().Playback.CurrentTime, ShouldEqual, 3.0)
			So(s.Snapshot().Playback.Duration.MustGet(), ShouldEqual, 60.0)
		})

		Convey("Shortcut keys reach the mounted controller", func() {
			So(eventually(func() bool { return s.Snapshot().Playback.Playing }), ShouldBeTrue)
			r.surface.EmitTimeUpdate(3, 60)
			s.Press(input.Left)

			So(eventually(func() bool { return len(r.surface.CallsOf(player.OpSetPosition)) == 1 }), ShouldBeTrue)
			So(r.surface.CallsOf(player.OpSetPosition)[0].Value, ShouldEqual, -7.0)
		})

		Convey("Reactions are kept across item changes", func() {
			s.Do(func(c *Core) { c.Reactions.Like() })
			s.Do(func(c *Core) { c.Selection.Activate(1) })

			So(eventually(func() bool {
				return len(opened(r.surface)) == 2 && s.Snapshot().Selection.Pending == 0
			}), ShouldBeTrue)
			So(s.Snapshot().Reactions, ShouldResemble, reaction.State{Likes: 1, Opinion: reaction.Liked})
		})

		Convey("Updates carry the latest state", func() {
			s.Do(func(c *Core) { c.Playback.ToggleSettingsMenu() })

			So(eventually(func() bool {
				select {
				case snapshot := <-s.Updates():
					return snapshot.Playback.ShowSettingsMenu
				default:
					return false
				}
			}), ShouldBeTrue)
		})

		Convey("Run cannot be started twice", func() {
			So(errors.Is(s.Run(context.Background()), ErrAlreadyRunning), ShouldBeTrue)
		})
	})

	Convey("When a session stops", t, func() {
		r := start()
		s := r.session
		So(eventually(func() bool { return s.Snapshot().Selection.SelectedIndex.IsPresent() }), ShouldBeTrue)

		s.Do(func(c *Core) { c.Selection.Activate(3) })
		r.stop()

		Convey("Shortcuts are unmounted and the surface is closed", func() {
			So(s.core.Bus.Len(), ShouldEqual, 0)
			So(s.Snapshot().Shortcuts, ShouldBeFalse)
			So(r.surface.Closed(), ShouldBeTrue)
		})

		Convey("Later intents are refused", func() {
			So(s.Do(func(c *Core) {}), ShouldBeFalse)
			So(s.Press(input.Space), ShouldBeFalse)
		})

		Convey("The updates channel is closed after the final snapshot", func() {
			var last Snapshot
			for snapshot := range s.Updates() {
				last = snapshot
			}
			So(last.Shortcuts, ShouldBeFalse)
		})

		Convey("Pending timers do not deliver anything", func() {
			time.Sleep(3 * delay)
			So(opened(r.surface), ShouldResemble, []string{"A.mp4"})
		})
	})
}

func TestActivationOrder(t *testing.T) {
	for _, d := range []time.Duration{0, delay} {
		Convey(fmt.Sprintf("Activations issued in one intent with a %v delay", d), t, func() {
			for i := 0; i < 25; i++ {
				r := startWith(d)
				s := r.session
				So(eventually(func() bool { return len(opened(r.surface)) == 1 }), ShouldBeTrue)

				s.Do(func(c *Core) {
					c.Selection.Activate(2)
					c.Selection.Activate(5)
				})

				So(eventually(func() bool {
					return s.Snapshot().Selection.Pending == 0 && len(opened(r.surface)) == 3
				}), ShouldBeTrue)
				So(opened(r.surface), ShouldResemble, []string{"A.mp4", "C.mp4", "F.mp4"})
				So(s.Snapshot().Selection.SelectedIndex.MustGet(), ShouldEqual, 5)
				So(s.Snapshot().Playback.Item.MustGet().Title, ShouldEqual, "F")

				r.stop()
			}
		})
	}
}

func TestScheduledTasks(t *testing.T) {
	Convey("Given a session that is not running", t, func() {
		s := New(Options{Catalog: catalog(), Surface: player.NewMock(), ActivationDelay: time.Hour})

		Convey("Due tasks run by deadline, then by scheduling order", func() {
			var ran []int
			s.after(0, func() { ran = append(ran, 1) })
			s.after(0, func() { ran = append(ran, 2) })
			s.after(time.Hour, func() { ran = append(ran, 3) })

			time.Sleep(5 * time.Millisecond)
			s.runDue()
			So(ran, ShouldResemble, []int{1, 2})

			s.halt()
		})

		Convey("Stopped tasks never run", func() {
			var ran bool
			timer := s.after(0, func() { ran = true })
			So(timer.Stop(), ShouldBeTrue)
			So(timer.Stop(), ShouldBeFalse)

			time.Sleep(5 * time.Millisecond)
			s.runDue()
			So(ran, ShouldBeFalse)

			s.halt()
		})
	})
}

func TestOptionsFromConfig(t *testing.T) {
	Convey("Options come from the configuration", t, func() {
		viper.Set(key.Player, "mock")
		viper.Set(key.ActivationDelayMs, 250)
		viper.Set(key.SkipSeconds, 5)

		options, err := OptionsFromConfig(catalog(), "")
		So(err, ShouldBeNil)
		So(options.Surface, ShouldHaveSameTypeAs, &player.Mock{})
		So(options.ActivationDelay, ShouldEqual, 250*time.Millisecond)
		So(options.SkipSeconds, ShouldEqual, 5.0)

		_, err = OptionsFromConfig(catalog(), "nope")
		So(err, ShouldNotBeNil)
	})
}

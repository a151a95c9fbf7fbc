package player

import (
	"errors"
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type recorder struct {
	times  [][2]float64
	plays  int
	pauses int
	ended  int
}

func (r *recorder) OnTimeUpdate(current, duration float64) {
	r.times = append(r.times, [2]float64{current, duration})
}
func (r *recorder) OnPlay()  { r.plays++ }
func (r *recorder) OnPause() { r.pauses++ }
func (r *recorder) OnEnded() { r.ended++ }

func TestNew(t *testing.T) {
	Convey("New", t, func() {
		Convey("Should return registered backends", func() {
			s, err := New("mock")
			So(err, ShouldBeNil)
			So(s, ShouldHaveSameTypeAs, &Mock{})

			s, err = New(" MPV ")
			So(err, ShouldBeNil)
			So(s, ShouldHaveSameTypeAs, &MPV{})
		})

		Convey("Should reject unknown names", func() {
			_, err := New("vlc")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "mock, mpv")
		})
	})
}

func TestMock(t *testing.T) {
	Convey("Given a mock surface", t, func() {
		m := NewMock()

		Convey("Commands are recorded in order", func() {
			So(m.Open("a.mp4"), ShouldBeNil)
			So(m.Play(), ShouldBeNil)
			So(m.SetPosition(-7), ShouldBeNil)

			calls := m.Calls()
			So(calls, ShouldHaveLength, 3)
			So(calls[0], ShouldResemble, Call{Op: OpOpen, Source: "a.mp4"})
			So(calls[2].Value, ShouldEqual, -7.0)
			So(m.CallsOf(OpPlay), ShouldHaveLength, 1)
		})

		Convey("Rejected operations fail but are still recorded", func() {
			m.Reject(OpPlay)
			So(errors.Is(m.Play(), ErrRejected), ShouldBeTrue)
			So(m.CallsOf(OpPlay), ShouldHaveLength, 1)

			m.Accept(OpPlay)
			So(m.Play(), ShouldBeNil)
		})

		Convey("Fullscreen requests are tracked", func() {
			active, err := m.IsFullscreenActive()
			So(err, ShouldBeNil)
			So(active, ShouldBeFalse)

			So(m.RequestFullscreen(), ShouldBeNil)
			active, _ = m.IsFullscreenActive()
			So(active, ShouldBeTrue)

			m.Reject(OpExitFullscreen)
			So(m.ExitFullscreen(), ShouldNotBeNil)
			active, _ = m.IsFullscreenActive()
			So(active, ShouldBeTrue)
		})

		Convey("Notifications reach the listener", func() {
			r := &recorder{}
			m.EmitPlay()
			m.Listen(r)
			m.EmitPlay()
			m.EmitPause()
			m.EmitEnded()
			m.EmitTimeUpdate(3, 60)

			So(r.plays, ShouldEqual, 1)
			So(r.pauses, ShouldEqual, 1)
			So(r.ended, ShouldEqual, 1)
			So(r.times, ShouldResemble, [][2]float64{{3, 60}})
		})

		Convey("Close marks the surface closed", func() {
			So(m.Close(), ShouldBeNil)
			So(m.Closed(), ShouldBeTrue)
		})
	})
}

func TestTranslator(t *testing.T) {
	Convey("Given a translator", t, func() {
		r := &recorder{}
		tr := newTranslator(r, time.Hour)

		Convey("Pause changes map to play and pause", func() {
			tr.handle([]byte(`{"event":"property-change","id":3,"name":"pause","data":true}`))
			tr.handle([]byte(`{"event":"property-change","id":3,"name":"pause","data":false}`))
			tr.handle([]byte(`{"event":"property-change","id":3,"name":"pause","data":null}`))
			So(r.pauses, ShouldEqual, 1)
			So(r.plays, ShouldEqual, 1)
		})

		Convey("eof-reached maps to ended only when true", func() {
			tr.handle([]byte(`{"event":"property-change","id":4,"name":"eof-reached","data":false}`))
			tr.handle([]byte(`{"event":"property-change","id":4,"name":"eof-reached","data":true}`))
			So(r.ended, ShouldEqual, 1)
		})

		Convey("Time updates carry the last known duration", func() {
			tr.handle([]byte(`{"event":"property-change","id":1,"name":"time-pos","data":1.5}`))
			So(r.times, ShouldHaveLength, 1)
			So(r.times[0][0], ShouldEqual, 1.5)
			So(math.IsNaN(r.times[0][1]), ShouldBeTrue)

			tr.handle([]byte(`{"event":"property-change","id":2,"name":"duration","data":596.5}`))
			So(r.times, ShouldHaveLength, 2)
			So(r.times[1], ShouldResemble, [2]float64{1.5, 596.5})
		})

		Convey("time-pos changes are throttled but duration changes are not", func() {
			tr.handle([]byte(`{"event":"property-change","id":1,"name":"time-pos","data":1}`))
			tr.handle([]byte(`{"event":"property-change","id":1,"name":"time-pos","data":2}`))
			tr.handle([]byte(`{"event":"property-change","id":2,"name":"duration","data":10}`))
			So(r.times, ShouldHaveLength, 2)
			So(r.times[0][0], ShouldEqual, 1.0)
			So(r.times[1], ShouldResemble, [2]float64{2, 10})
		})

		Convey("Replies and garbage are ignored", func() {
			tr.handle([]byte(`{"request_id":0,"error":"success"}`))
			tr.handle([]byte(`not json`))
			So(r.times, ShouldBeEmpty)
			So(r.plays+r.pauses+r.ended, ShouldEqual, 0)
		})
	})
}

func TestIPCEncoding(t *testing.T) {
	Convey("IPC lines", t, func() {
		Convey("Commands are newline terminated json", func() {
			line, err := encodeCommand([]interface{}{"set_property", "volume", 50.0})
			So(err, ShouldBeNil)
			So(string(line), ShouldEqual, `{"command":["set_property","volume",50]}`+"\n")
		})

		Convey("Replies are decoded and events skipped", func() {
			data, reply, err := decodeResponse([]byte(`{"data":true,"error":"success"}`))
			So(err, ShouldBeNil)
			So(reply, ShouldBeTrue)
			So(data, ShouldEqual, true)

			_, reply, _ = decodeResponse([]byte(`{"event":"playback-restart"}`))
			So(reply, ShouldBeFalse)

			_, reply, err = decodeResponse([]byte(`{"error":"property unavailable"}`))
			So(reply, ShouldBeTrue)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		target, err := sanitizeMediaTarget(" https://example.com/v.mp4 ")
		So(err, ShouldBeNil)
		So(target, ShouldEqual, "https://example.com/v.mp4")

		target, err = sanitizeMediaTarget("videos/../videos/a.mp4")
		So(err, ShouldBeNil)
		So(target, ShouldEqual, "videos/a.mp4")

		for _, bad := range []string{"", "--script=evil.lua", "file:///etc/passwd", "a\nb"} {
			_, err = sanitizeMediaTarget(bad)
			So(err, ShouldNotBeNil)
		}
	})
}

func TestMPVNotStarted(t *testing.T) {
	Convey("An MPV surface that was never opened", t, func() {
		m := NewMPV("")

		Convey("Rejects commands without spawning anything", func() {
			So(errors.Is(m.Play(), errNotStarted), ShouldBeTrue)
			_, err := m.IsFullscreenActive()
			So(err, ShouldNotBeNil)
			So(m.Running(), ShouldBeFalse)
		})

		Convey("Closes cleanly", func() {
			So(m.Close(), ShouldBeNil)
		})
	})
}

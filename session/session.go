// Package session composes the playback, selection and reaction controllers
// on a single event loop and publishes read-only snapshots to the views.
//
// Every intent, surface notification and timer expiry runs on the loop
// goroutine, one at a time, in arrival order.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/castdeck/castdeck/input"
	"github.com/castdeck/castdeck/log"
	"github.com/castdeck/castdeck/media"
	"github.com/castdeck/castdeck/playback"
	"github.com/castdeck/castdeck/player"
	"github.com/castdeck/castdeck/reaction"
	"github.com/castdeck/castdeck/selection"
)

const queueSize = 64

// ErrAlreadyRunning is returned by Run when the loop was started before.
var ErrAlreadyRunning = errors.New("session already running")

// Core is the state owned by the loop. It is only valid inside a Do callback.
type Core struct {
	Playback  *playback.Controller
	Selection *selection.Controller
	Reactions *reaction.Tracker
	Bus       *input.Bus
}

// Snapshot is a copy of the whole session state.
type Snapshot struct {
	Playback  playback.State
	Selection selection.State
	Reactions reaction.State
	// Shortcuts reports whether the keyboard shortcuts are mounted.
	Shortcuts bool
}

// Options configures a Session.
type Options struct {
	Catalog         media.Catalog
	Surface         player.Surface
	ActivationDelay time.Duration
	SkipSeconds     float64
}

type Session struct {
	core    *Core
	surface player.Surface

	events  chan func()
	updates chan Snapshot
	stopped chan struct{}
	started atomic.Bool
	last    atomic.Pointer[Snapshot]

	timersMu sync.Mutex
	seq      uint64
	tasks    map[*task]struct{}
	halted   bool
}

// task is a callback scheduled with after. Due tasks run on the loop ordered
// by deadline, then by scheduling order, whichever timer goroutine wakes first.
type task struct {
	session *Session
	at      time.Time
	seq     uint64
	fn      func()
	timer   *time.Timer
	done    bool
}

func (t *task) Stop() bool {
	t.session.timersMu.Lock()
	defer t.session.timersMu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	delete(t.session.tasks, t)
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}

func (t *task) before(other *task) bool {
	if !t.at.Equal(other.at) {
		return t.at.Before(other.at)
	}
	return t.seq < other.seq
}

// New builds the controllers. The first catalog item starts activating
// immediately and completes once Run is processing events.
func New(options Options) *Session {
	s := &Session{
		surface: options.Surface,
		events:  make(chan func(), queueSize),
		updates: make(chan Snapshot, 1),
		stopped: make(chan struct{}),
		tasks:   make(map[*task]struct{}),
	}

	var skip []playback.Option
	if options.SkipSeconds > 0 {
		skip = append(skip, playback.WithSkipSeconds(options.SkipSeconds))
	}

	pb := playback.New(options.Surface, skip...)
	s.core = &Core{
		Playback:  pb,
		Reactions: reaction.New(),
		Bus:       input.NewBus(),
	}
	s.core.Selection = selection.New(
		options.Catalog,
		selection.SchedulerFunc(s.after),
		options.ActivationDelay,
		func(_ int, item media.Item) {
			pb.Load(item)
		},
	)

	options.Surface.Listen(&surfaceEvents{session: s})

	snapshot := s.snapshot()
	s.last.Store(&snapshot)
	return s
}

// Run processes events until ctx is done. Shortcuts are mounted for the
// duration of the call and the surface is closed on return.
func (s *Session) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	unmount := s.core.Playback.Mount(s.core.Bus)
	log.Info("session started")
	s.publish()

	defer func() {
		unmount()
		s.halt()
		close(s.stopped)
		s.publish()
		close(s.updates)

		if err := s.surface.Close(); err != nil {
			log.Warnf("close surface: %v", err)
		}
		log.Info("session stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-s.events:
			fn()
			s.publish()
		}
	}
}

// Do queues fn to run on the loop and reports whether it was accepted.
// It must not be called from inside another Do callback.
func (s *Session) Do(fn func(*Core)) bool {
	return s.post(func() {
		fn(s.core)
	})
}

// Press dispatches a shortcut key on the loop.
func (s *Session) Press(k input.Key) bool {
	return s.Do(func(c *Core) {
		c.Bus.Dispatch(k)
	})
}

// Snapshot returns the current state, computed on the loop.
// Once the session has stopped it returns the final state.
func (s *Session) Snapshot() Snapshot {
	reply := make(chan Snapshot, 1)
	if !s.post(func() { reply <- s.snapshot() }) {
		return *s.last.Load()
	}

	select {
	case snapshot := <-reply:
		return snapshot
	case <-s.stopped:
		return *s.last.Load()
	}
}

// Latest returns the most recently published snapshot without waiting for the loop.
func (s *Session) Latest() Snapshot {
	return *s.last.Load()
}

// Updates delivers the latest snapshot after every event. Intermediate
// snapshots are dropped when the reader falls behind. The channel is closed
// when Run returns.
func (s *Session) Updates() <-chan Snapshot {
	return s.updates
}

// Done is closed when Run has returned.
func (s *Session) Done() <-chan struct{} {
	return s.stopped
}

func (s *Session) post(fn func()) bool {
	select {
	case <-s.stopped:
		return false
	default:
	}

	select {
	case s.events <- fn:
		return true
	case <-s.stopped:
		return false
	}
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Playback:  s.core.Playback.State(),
		Selection: s.core.Selection.State(),
		Reactions: s.core.Reactions.State(),
		Shortcuts: s.core.Playback.Mounted(),
	}
}

func (s *Session) publish() {
	snapshot := s.snapshot()
	s.last.Store(&snapshot)

	select {
	case <-s.updates:
	default:
	}
	s.updates <- snapshot
}

// after schedules fn on the loop once d has elapsed.
func (s *Session) after(d time.Duration, fn func()) selection.Timer {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()

	s.seq++
	t := &task{session: s, at: time.Now().Add(d), seq: s.seq, fn: fn}
	if s.halted {
		t.done = true
		return t
	}

	s.tasks[t] = struct{}{}
	t.timer = time.AfterFunc(d, func() {
		s.post(s.runDue)
	})
	return t
}

// runDue runs every task whose deadline has passed. It only runs on the loop.
func (s *Session) runDue() {
	for {
		t := s.nextDue(time.Now())
		if t == nil {
			return
		}
		t.fn()
	}
}

func (s *Session) nextDue(now time.Time) *task {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()

	var next *task
	for t := range s.tasks {
		if t.at.After(now) {
			continue
		}
		if next == nil || t.before(next) {
			next = t
		}
	}

	if next != nil {
		next.done = true
		delete(s.tasks, next)
	}
	return next
}

// halt stops timers that have not fired yet. It only runs when the loop exits.
func (s *Session) halt() {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()

	s.halted = true
	for t := range s.tasks {
		t.done = true
		t.timer.Stop()
	}
	s.tasks = nil
}

// surfaceEvents forwards surface notifications onto the loop.
type surfaceEvents struct {
	session *Session
}

func (e *surfaceEvents) OnTimeUpdate(current, duration float64) {
	e.session.Do(func(c *Core) {
		c.Playback.OnSurfaceTimeUpdate(current, duration)
	})
}

func (e *surfaceEvents) OnPlay() {
	e.session.Do(func(c *Core) { c.Playback.OnSurfacePlay() })
}

func (e *surfaceEvents) OnPause() {
	e.session.Do(func(c *Core) { c.Playback.OnSurfacePause() })
}

func (e *surfaceEvents) OnEnded() {
	e.session.Do(func(c *Core) { c.Playback.OnSurfaceEnded() })
}

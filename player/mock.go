package player

import (
	"errors"
	"sync"
)

// Op names a Surface command recorded by Mock.
type Op string

const (
	OpOpen              Op = "open"
	OpPlay              Op = "play"
	OpPause             Op = "pause"
	OpSetPosition       Op = "set_position"
	OpSetPlaybackRate   Op = "set_playback_rate"
	OpSetVolume         Op = "set_volume"
	OpRequestFullscreen Op = "request_fullscreen"
	OpExitFullscreen    Op = "exit_fullscreen"
	OpIsFullscreen      Op = "is_fullscreen_active"
	OpClose             Op = "close"
)

// ErrRejected is returned by Mock for operations it was told to reject.
var ErrRejected = errors.New("operation rejected by surface")

// Call is one recorded command.
type Call struct {
	Op     Op
	Source string
	Value  float64
}

// Mock is an in-memory Surface. It records every command, keeps a fullscreen
// flag, and can be told to reject operations.
type Mock struct {
	mu         sync.Mutex
	calls      []Call
	rejected   map[Op]bool
	fullscreen bool
	closed     bool
	listener   Listener
}

// NewMock returns a Mock that accepts everything.
func NewMock() *Mock {
	return &Mock{rejected: make(map[Op]bool)}
}

// Reject makes the given operations fail with ErrRejected.
func (m *Mock) Reject(ops ...Op) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range ops {
		m.rejected[op] = true
	}
}

// Accept undoes Reject.
func (m *Mock) Accept(ops ...Op) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range ops {
		delete(m.rejected, op)
	}
}

// Calls returns a copy of every recorded command in order.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallsOf returns the recorded commands of a single kind.
func (m *Mock) CallsOf(op Op) []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Call
	for _, c := range m.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded commands.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Mock) record(c Call) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
	if m.rejected[c.Op] {
		return ErrRejected
	}
	return nil
}

func (m *Mock) Open(source string) error {
	return m.record(Call{Op: OpOpen, Source: source})
}

func (m *Mock) Play() error {
	return m.record(Call{Op: OpPlay})
}

func (m *Mock) Pause() error {
	return m.record(Call{Op: OpPause})
}

func (m *Mock) SetPosition(seconds float64) error {
	return m.record(Call{Op: OpSetPosition, Value: seconds})
}

func (m *Mock) SetPlaybackRate(rate float64) error {
	return m.record(Call{Op: OpSetPlaybackRate, Value: rate})
}

func (m *Mock) SetVolume(level float64) error {
	return m.record(Call{Op: OpSetVolume, Value: level})
}

func (m *Mock) RequestFullscreen() error {
	if err := m.record(Call{Op: OpRequestFullscreen}); err != nil {
		return err
	}
	m.mu.Lock()
	m.fullscreen = true
	m.mu.Unlock()
	return nil
}

func (m *Mock) ExitFullscreen() error {
	if err := m.record(Call{Op: OpExitFullscreen}); err != nil {
		return err
	}
	m.mu.Lock()
	m.fullscreen = false
	m.mu.Unlock()
	return nil
}

func (m *Mock) IsFullscreenActive() (bool, error) {
	if err := m.record(Call{Op: OpIsFullscreen}); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fullscreen, nil
}

func (m *Mock) Listen(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listener = l
}

func (m *Mock) Close() error {
	err := m.record(Call{Op: OpClose})
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return err
}

func (m *Mock) currentListener() Listener {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listener
}

// EmitTimeUpdate delivers a time update to the registered listener.
func (m *Mock) EmitTimeUpdate(current, duration float64) {
	if l := m.currentListener(); l != nil {
		l.OnTimeUpdate(current, duration)
	}
}

// EmitPlay delivers a play notification to the registered listener.
func (m *Mock) EmitPlay() {
	if l := m.currentListener(); l != nil {
		l.OnPlay()
	}
}

// EmitPause delivers a pause notification to the registered listener.
func (m *Mock) EmitPause() {
	if l := m.currentListener(); l != nil {
		l.OnPause()
	}
}

// EmitEnded delivers an ended notification to the registered listener.
func (m *Mock) EmitEnded() {
	if l := m.currentListener(); l != nil {
		l.OnEnded()
	}
}

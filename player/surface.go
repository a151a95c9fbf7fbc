// Package player defines the media surface: the element that actually renders
// an item and reports what it is doing. The primary backend drives mpv over its
// JSON-IPC interface.
package player

import (
	"fmt"
	"sort"
	"strings"

	"github.com/castdeck/castdeck/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Surface is the set of commands a playback backend accepts.
// Any command may be rejected; callers treat a rejection as "nothing happened".
type Surface interface {
	// Open loads the media referenced by source without starting playback.
	// The new item starts at normal speed and full volume.
	Open(source string) error

	Play() error
	Pause() error

	// SetPosition moves playback to an absolute position in seconds.
	SetPosition(seconds float64) error

	SetPlaybackRate(rate float64) error

	// SetVolume sets the output level, where 0 is silent and 1 is full volume.
	SetVolume(level float64) error

	RequestFullscreen() error
	ExitFullscreen() error
	IsFullscreenActive() (bool, error)

	// Listen registers the receiver of playback notifications.
	// A later call replaces the previous listener.
	Listen(l Listener)

	// Close stops the backend and releases its resources.
	Close() error
}

// Listener receives notifications emitted by a Surface.
// Calls may arrive on any goroutine.
type Listener interface {
	// OnTimeUpdate reports the current position and the duration in seconds.
	// The duration is NaN while it is not known.
	OnTimeUpdate(current, duration float64)
	OnPlay()
	OnPause()
	OnEnded()
}

const (
	BackendMPV  = "mpv"
	BackendMock = "mock"
)

var backends = map[string]func() Surface{
	BackendMPV: func() Surface {
		return NewMPV(viper.GetString(key.PlayerBinary))
	},
	BackendMock: func() Surface {
		return NewMock()
	},
}

// Available lists the names accepted by New.
func Available() []string {
	names := lo.Keys(backends)
	sort.Strings(names)
	return names
}

// New returns the backend registered under name.
func New(name string) (Surface, error) {
	constructor, ok := backends[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown player %q, available: %s", name, strings.Join(Available(), ", "))
	}
	return constructor(), nil
}

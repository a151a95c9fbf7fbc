package playback

import (
	"math"
	"sync"

	"github.com/castdeck/castdeck/input"
	"github.com/castdeck/castdeck/log"
	"github.com/castdeck/castdeck/media"
	"github.com/castdeck/castdeck/player"
	"github.com/castdeck/castdeck/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// DefaultSkipSeconds is the arrow-key skip distance.
const DefaultSkipSeconds = 10

// Controller holds the PlaybackState and exclusively owns its surface.
// It is not safe for concurrent use; callers serialize access.
type Controller struct {
	surface player.Surface
	state   State
	skip    float64
	bus     *input.Bus
	unmount func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithSkipSeconds changes how far the arrow keys skip.
func WithSkipSeconds(seconds float64) Option {
	return func(c *Controller) {
		if seconds > 0 && !math.IsInf(seconds, 0) {
			c.skip = seconds
		}
	}
}

// New creates a controller driving surface.
func New(surface player.Surface, options ...Option) *Controller {
	c := &Controller{
		surface: surface,
		state:   Defaults(),
		skip:    DefaultSkipSeconds,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// State returns a snapshot of the transport state.
func (c *Controller) State() State {
	return c.state
}

func rejected(op string, err error) bool {
	if err == nil {
		return false
	}
	log.Debugf("surface rejected %s: %v", op, err)
	return true
}

// Load replaces the state with defaults for item, opens it and starts playback.
func (c *Controller) Load(item media.Item) {
	c.state = Defaults()
	c.state.Item = mo.Some(item)

	log.Infof("loading %q (%s)", item.Title, item.Source)

	if rejected("open", c.surface.Open(item.Source)) {
		return
	}
	if rejected("play", c.surface.Play()) {
		return
	}
	c.state.Playing = true
}

// TogglePlay pauses when playing and plays otherwise.
func (c *Controller) TogglePlay() {
	if c.state.Playing {
		if rejected("pause", c.surface.Pause()) {
			return
		}
		c.state.Playing = false
		return
	}

	if rejected("play", c.surface.Play()) {
		return
	}
	c.state.Playing = true
}

// Click handles a click on the video itself.
func (c *Controller) Click() {
	c.TogglePlay()
}

// Seek moves to target, kept within [0, duration] once the duration is known.
func (c *Controller) Seek(target float64) {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return
	}

	if d, ok := c.state.Duration.Get(); ok {
		target = util.Clamp(target, 0, d)
	}

	if rejected("set position", c.surface.SetPosition(target)) {
		return
	}
	c.state.CurrentTime = target
}

// Skip moves by delta seconds from the current time. The target is passed
// through as is; the next time update from the surface reports where playback landed.
func (c *Controller) Skip(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	rejected("set position", c.surface.SetPosition(c.state.CurrentTime+delta))
}

// SetSpeed applies v if it is one of Speeds and reports whether it was applied.
func (c *Controller) SetSpeed(v float64) bool {
	if !ValidSpeed(v) {
		return false
	}
	if rejected("set playback rate", c.surface.SetPlaybackRate(v)) {
		return false
	}
	c.state.Speed = v
	return true
}

// NextSpeed steps to the next faster rate, if any.
func (c *Controller) NextSpeed() bool {
	_, i, ok := lo.FindIndexOf(speeds, func(v float64) bool { return v == c.state.Speed })
	if !ok || i+1 >= len(speeds) {
		return false
	}
	return c.SetSpeed(speeds[i+1])
}

// PrevSpeed steps to the next slower rate, if any.
func (c *Controller) PrevSpeed() bool {
	_, i, ok := lo.FindIndexOf(speeds, func(v float64) bool { return v == c.state.Speed })
	if !ok || i == 0 {
		return false
	}
	return c.SetSpeed(speeds[i-1])
}

// SetVolume sets the level, clamped to [0, 1]. Muted follows the level exactly.
func (c *Controller) SetVolume(v float64) {
	if math.IsNaN(v) {
		return
	}
	v = util.Clamp(v, 0, 1)

	if rejected("set volume", c.surface.SetVolume(v)) {
		return
	}
	c.state.Volume = v
	c.state.Muted = v == 0
}

// NudgeVolume changes the level by delta.
func (c *Controller) NudgeVolume(delta float64) {
	c.SetVolume(c.state.Volume + delta)
}

// ToggleMute silences playback, or brings it back to full volume.
// The previous level is not remembered.
func (c *Controller) ToggleMute() {
	if c.state.Muted {
		c.SetVolume(1)
		return
	}
	c.SetVolume(0)
}

// ToggleFullscreen asks the surface whether it is fullscreen and flips that.
func (c *Controller) ToggleFullscreen() {
	active, err := c.surface.IsFullscreenActive()
	if rejected("fullscreen query", err) {
		return
	}

	if !active {
		if rejected("request fullscreen", c.surface.RequestFullscreen()) {
			return
		}
		c.state.Fullscreen = true
		return
	}

	if rejected("exit fullscreen", c.surface.ExitFullscreen()) {
		return
	}
	c.state.Fullscreen = false
}

func (c *Controller) ToggleSettingsMenu() {
	c.state.ShowSettingsMenu = !c.state.ShowSettingsMenu
}

func (c *Controller) ToggleVolumeSlider() {
	c.state.ShowVolumeSlider = !c.state.ShowVolumeSlider
}

// OnSurfaceTimeUpdate records the position and duration reported by the surface.
// A duration that is negative or not finite is treated as unknown.
func (c *Controller) OnSurfaceTimeUpdate(current, duration float64) {
	if !math.IsNaN(current) && !math.IsInf(current, 0) {
		c.state.CurrentTime = math.Max(current, 0)
	}

	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration < 0 {
		c.state.Duration = mo.None[float64]()
	} else {
		c.state.Duration = mo.Some(duration)
	}
}

func (c *Controller) OnSurfacePlay() {
	c.state.Playing = true
}

func (c *Controller) OnSurfacePause() {
	c.state.Playing = false
}

func (c *Controller) OnSurfaceEnded() {
	c.state.Playing = false
}

// HandleKey runs the shortcut bound to k.
func (c *Controller) HandleKey(k input.Key) {
	switch k {
	case input.Space:
		c.TogglePlay()
	case input.Left:
		c.Skip(-c.skip)
	case input.Right:
		c.Skip(c.skip)
	}
}

// Mount subscribes the shortcuts to bus and returns the function that removes them.
// The controller is mounted on at most one bus: mounting again on the same bus
// returns the existing unmount function, mounting on another bus moves the
// shortcuts there.
func (c *Controller) Mount(bus *input.Bus) (unmount func()) {
	if c.unmount != nil {
		if c.bus == bus {
			return c.unmount
		}
		c.unmount()
	}

	unsubscribe := bus.Subscribe(c.HandleKey)
	var once sync.Once
	c.bus = bus
	c.unmount = func() {
		once.Do(func() {
			unsubscribe()
			c.bus = nil
			c.unmount = nil
		})
	}
	return c.unmount
}

// Mounted reports whether shortcuts are currently subscribed.
func (c *Controller) Mounted() bool {
	return c.unmount != nil
}

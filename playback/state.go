// Package playback owns the transport state of the active item and turns user
// intents into media surface commands.
package playback

import (
	"fmt"
	"strconv"

	"github.com/castdeck/castdeck/media"
	"github.com/castdeck/castdeck/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var speeds = []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2}

// Speeds returns the accepted playback rates in ascending order.
func Speeds() []float64 {
	return append([]float64(nil), speeds...)
}

// ValidSpeed reports whether v is one of Speeds.
func ValidSpeed(v float64) bool {
	return lo.Contains(speeds, v)
}

// SpeedLabel renders a rate the way menus show it.
func SpeedLabel(v float64) string {
	if v == 1 {
		return "Normal"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "x"
}

// State is the transport status of the active item.
type State struct {
	Item        mo.Option[media.Item]
	Playing     bool
	CurrentTime float64
	// Duration is None until the surface reports it.
	Duration         mo.Option[float64]
	Speed            float64
	Volume           float64
	Muted            bool
	Fullscreen       bool
	ShowSettingsMenu bool
	ShowVolumeSlider bool
}

// Defaults is the state every load starts from.
func Defaults() State {
	return State{
		Duration: mo.None[float64](),
		Speed:    1,
		Volume:   1,
	}
}

// Clock renders "mm:ss / mm:ss". The duration half is 00:00 while unknown.
func (s State) Clock() string {
	return fmt.Sprintf("%s / %s", util.FormatClock(s.CurrentTime), util.FormatClock(s.Duration.OrElse(0)))
}

// Progress is CurrentTime as a fraction of Duration, in [0, 1].
func (s State) Progress() float64 {
	d, ok := s.Duration.Get()
	if !ok || d <= 0 {
		return 0
	}
	return util.Clamp(s.CurrentTime/d, 0, 1)
}

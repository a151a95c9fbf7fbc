package tui

import (
	"github.com/castdeck/castdeck/color"
	"github.com/castdeck/castdeck/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
)

// statefulKeymap defines the keyboard interactions available within each state.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	activate,
	filter, acceptFilter, clearFilter, acceptSuggestion,
	playPause, skipBack, skipForward,
	speedUp, speedDown, settings,
	volumeUp, volumeDown, mute, volumeSlider,
	fullscreen,
	like, dislike,
	up, down, top, bottom,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("play")),
		),
		filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		acceptFilter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		clearFilter: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		acceptSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept suggestion"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		skipBack: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "skip back"),
		),
		skipForward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "skip forward"),
		),
		speedUp: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp(">", "faster"),
		),
		speedDown: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("<", "slower"),
		),
		settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "speed menu"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "louder"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "quieter"),
		),
		mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		volumeSlider: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "volume"),
		),
		fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		like: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "like"),
		),
		dislike: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "dislike"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	switch k.state {
	case browseState:
		return h(k.activate, k.playPause, k.filter, k.showHelp, k.quit),
			h(k.activate, k.playPause, k.skipBack, k.skipForward,
				k.speedDown, k.speedUp, k.settings,
				k.volumeDown, k.volumeUp, k.mute, k.volumeSlider,
				k.fullscreen, k.like, k.dislike, k.filter, k.quit)
	case filterState:
		return h(k.acceptFilter, k.acceptSuggestion, k.clearFilter), h(k.acceptFilter, k.acceptSuggestion, k.clearFilter, k.forceQuit)
	case errorState:
		return h(k.quit), h(k.quit, k.forceQuit)
	default:
		return h(), h()
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:   k.up,
		CursorDown: k.down,
		GoToStart:  k.top,
		GoToEnd:    k.bottom,
	}
}

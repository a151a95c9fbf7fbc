package mini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/castdeck/castdeck/icon"
	"github.com/castdeck/castdeck/input"
	"github.com/castdeck/castdeck/key"
	"github.com/castdeck/castdeck/playback"
	"github.com/castdeck/castdeck/reaction"
	"github.com/castdeck/castdeck/selection"
	"github.com/castdeck/castdeck/session"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type state int

const (
	itemSelectState state = iota + 1
	transportState
	quitState
)

const (
	quitOption  = "Quit"
	allOption   = "Show everything"
	pollEvery   = 50 * time.Millisecond
	loadTimeout = 10 * time.Second
)

func (m *mini) handleItemSelectState(ctx context.Context) error {
	title("Catalog")

	query, err := getInput("Filter by title:", "Leave empty to list every video", nil)
	if err != nil {
		return err
	}

	m.session.Do(func(c *session.Core) { c.Selection.SetFilter(query) })
	sel := m.session.Snapshot().Selection

	if len(sel.Visible) == 0 {
		fail(fmt.Sprintf("Nothing matches %q", query))
		if suggestions := selection.Suggest(sel.Catalog, query, viper.GetInt(key.SuggestionLimit)); len(suggestions) > 0 {
			info("Did you mean: " + strings.Join(suggestions, ", "))
		}
		return nil
	}

	options := lo.Map(sel.Visible, func(e selection.Entry, _ int) string {
		if i, ok := sel.SelectedIndex.Get(); ok && i == e.Index {
			return e.Item.Title + " " + icon.Get(icon.Mark)
		}
		return e.Item.Title
	})
	options = append(options, quitOption)

	choice, err := menu("Select a video", options)
	if err != nil {
		return err
	}
	if options[choice] == quitOption {
		m.setState(quitState)
		return nil
	}

	index := sel.Visible[choice].Index
	m.session.Do(func(c *session.Core) { c.Selection.Activate(index) })

	erase := progress("Loading " + sel.Visible[choice].Item.Title + "..")
	err = m.waitForActivation(ctx)
	erase()
	if err != nil {
		return err
	}

	m.setState(transportState)
	return nil
}

// waitForActivation polls the session until no activation is in flight.
func (m *mini) waitForActivation(ctx context.Context) error {
	deadline := time.After(loadTimeout)
	ticker := time.NewTicker(pollEvery)
	defer ticker.Stop()

	for {
		if m.session.Snapshot().Selection.Pending == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-m.session.Done():
			return fmt.Errorf("session stopped while loading")
		case <-deadline:
			return fmt.Errorf("timed out waiting for the video to load")
		case <-ticker.C:
		}
	}
}

// action is one entry of the transport menu.
type action struct {
	label string
	run   func(m *mini) error
}

func (m *mini) actions(s session.Snapshot) []action {
	do := func(fn func(*session.Core)) func(*mini) error {
		return func(m *mini) error {
			m.session.Do(fn)
			return nil
		}
	}
	press := func(k input.Key) func(*mini) error {
		return func(m *mini) error {
			m.session.Press(k)
			return nil
		}
	}

	playLabel := "Play"
	if s.Playback.Playing {
		playLabel = "Pause"
	}
	muteLabel := "Mute"
	if s.Playback.Muted {
		muteLabel = "Unmute"
	}
	likeLabel := "Like"
	if s.Reactions.Opinion == reaction.Liked {
		likeLabel = "Remove like"
	}
	dislikeLabel := "Dislike"
	if s.Reactions.Opinion == reaction.Disliked {
		dislikeLabel = "Remove dislike"
	}

	return []action{
		{playLabel, press(input.Space)},
		{"Skip back", press(input.Left)},
		{"Skip forward", press(input.Right)},
		{"Seek to..", (*mini).askSeek},
		{"Speed..", (*mini).askSpeed},
		{"Volume..", (*mini).askVolume},
		{muteLabel, do(func(c *session.Core) { c.Playback.ToggleMute() })},
		{"Toggle fullscreen", do(func(c *session.Core) { c.Playback.ToggleFullscreen() })},
		{likeLabel, do(func(c *session.Core) { c.Reactions.Like() })},
		{dislikeLabel, do(func(c *session.Core) { c.Reactions.Dislike() })},
		{"Back to catalog", func(m *mini) error {
			m.setState(itemSelectState)
			return nil
		}},
		{quitOption, func(m *mini) error {
			m.setState(quitState)
			return nil
		}},
	}
}

func (m *mini) handleTransportState() error {
	snapshot := m.session.Snapshot()
	title(nowPlaying(snapshot))
	info(status(snapshot))

	actions := m.actions(snapshot)
	choice, err := menu("Action", lo.Map(actions, func(a action, _ int) string { return a.label }))
	if err != nil {
		return err
	}
	return actions[choice].run(m)
}

func (m *mini) askSeek() error {
	answer, err := getInput("Seek to (mm:ss):", "Seconds, mm:ss or hh:mm:ss", func(s string) error {
		_, err := parseClock(s)
		return err
	})
	if err != nil {
		return err
	}

	target, _ := parseClock(answer)
	m.session.Do(func(c *session.Core) { c.Playback.Seek(target) })
	return nil
}

func (m *mini) askSpeed() error {
	speeds := playback.Speeds()
	choice, err := menu("Playback speed", lo.Map(speeds, func(v float64, _ int) string {
		return playback.SpeedLabel(v)
	}))
	if err != nil {
		return err
	}

	speed := speeds[choice]
	m.session.Do(func(c *session.Core) { c.Playback.SetSpeed(speed) })
	return nil
}

func (m *mini) askVolume() error {
	answer, err := getInput("Volume (0-100):", "", func(s string) error {
		_, err := parsePercent(s)
		return err
	})
	if err != nil {
		return err
	}

	level, _ := parsePercent(answer)
	m.session.Do(func(c *session.Core) { c.Playback.SetVolume(level) })
	return nil
}

func nowPlaying(s session.Snapshot) string {
	item, ok := s.Playback.Item.Get()
	if !ok {
		return "Nothing playing"
	}

	mark := icon.Get(icon.Pause)
	if s.Playback.Playing {
		mark = icon.Get(icon.Play)
	}
	return strings.TrimSpace(mark + " " + item.Title)
}

func status(s session.Snapshot) string {
	pb := s.Playback
	volume := fmt.Sprintf("volume %d%%", int(pb.Volume*100+0.5))
	if pb.Muted {
		volume = "muted"
	}

	parts := []string{
		pb.Clock(),
		"speed " + playback.SpeedLabel(pb.Speed),
		volume,
		fmt.Sprintf("%d likes, %d dislikes", s.Reactions.Likes, s.Reactions.Dislikes),
	}
	if pb.Fullscreen {
		parts = append(parts, "fullscreen")
	}
	return strings.Join(parts, " | ")
}

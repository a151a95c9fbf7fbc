package tui

import (
	"fmt"
	"strings"

	"github.com/castdeck/castdeck/input"
	"github.com/castdeck/castdeck/internal/ui"
	"github.com/castdeck/castdeck/key"
	"github.com/castdeck/castdeck/playback"
	"github.com/castdeck/castdeck/selection"
	"github.com/castdeck/castdeck/session"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type snapshotMsg session.Snapshot

type sessionClosedMsg struct{}

// waitForSnapshot blocks until the session publishes again.
func (b *statefulBubble) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-b.session.Updates()
		if !ok {
			return sessionClosedMsg{}
		}
		return snapshotMsg(snapshot)
	}
}

// do runs fn on the session loop.
func (b *statefulBubble) do(fn func(*session.Core)) {
	if !b.session.Do(fn) {
		b.raiseError(fmt.Errorf("session is no longer running"))
	}
}

func (b *statefulBubble) press(k input.Key) {
	if !b.session.Press(k) {
		b.raiseError(fmt.Errorf("session is no longer running"))
	}
}

// applySnapshot stores s and rebuilds the catalog list from its visible entries.
func (b *statefulBubble) applySnapshot(s session.Snapshot) tea.Cmd {
	b.snapshot = s
	sel := s.Selection

	selected, hasSelection := sel.SelectedIndex.Get()
	items := lo.Map(sel.Visible, func(e selection.Entry, _ int) list.Item {
		return &listItem{entry: e, selected: hasSelection && e.Index == selected}
	})

	cursor := b.catalogC.Index()
	cmd := b.catalogC.SetItems(items)
	if sel.FilterQuery != b.query {
		b.query = sel.FilterQuery
		b.catalogC.ResetSelected()
	} else if cursor < len(items) {
		b.catalogC.Select(cursor)
	}

	b.suggestions = nil
	if len(sel.Visible) == 0 && sel.FilterQuery != "" {
		b.suggestions = selection.Suggest(sel.Catalog, sel.FilterQuery, viper.GetInt(key.SuggestionLimit))
	}

	return cmd
}

// highlighted returns the catalog index under the list cursor.
func (b *statefulBubble) highlighted() (int, bool) {
	item, ok := b.catalogC.SelectedItem().(*listItem)
	if !ok {
		return 0, false
	}
	return item.entry.Index, true
}

func (b *statefulBubble) activateHighlighted() {
	index, ok := b.highlighted()
	if !ok {
		return
	}
	b.do(func(c *session.Core) {
		c.Selection.Activate(index)
	})
}

func (b *statefulBubble) setFilter(query string) {
	b.do(func(c *session.Core) {
		c.Selection.SetFilter(query)
	})
}

// notifyAfter runs fn on the session loop and shows the text it reports.
// Nothing is shown when fn reports false.
func (b *statefulBubble) notifyAfter(fn func(*session.Core) (string, bool)) tea.Cmd {
	type result struct {
		text string
		ok   bool
	}

	reply := make(chan result, 1)
	if !b.session.Do(func(c *session.Core) {
		text, ok := fn(c)
		reply <- result{text, ok}
	}) {
		b.raiseError(fmt.Errorf("session is no longer running"))
		return nil
	}

	done := b.session.Done()
	return func() tea.Msg {
		select {
		case r := <-reply:
			if !r.ok {
				return nil
			}
			return ui.NotificationMsg{Text: r.text}
		case <-done:
			return nil
		}
	}
}

func speedNotice(c *session.Core, faster bool) (string, bool) {
	changed := c.Playback.PrevSpeed()
	if faster {
		changed = c.Playback.NextSpeed()
	}
	if !changed {
		return "", false
	}
	return "speed " + playback.SpeedLabel(c.Playback.State().Speed), true
}

func volumeNotice(c *session.Core, delta float64) (string, bool) {
	before := c.Playback.State().Volume
	c.Playback.NudgeVolume(delta)
	after := c.Playback.State()
	if after.Volume == before {
		return "", false
	}
	if after.Muted {
		return "muted", true
	}
	return fmt.Sprintf("volume %d%%", int(after.Volume*100+0.5)), true
}

func (b *statefulBubble) changeSpeed(faster bool) tea.Cmd {
	return b.notifyAfter(func(c *session.Core) (string, bool) {
		return speedNotice(c, faster)
	})
}

func (b *statefulBubble) nudgeVolume(delta float64) tea.Cmd {
	return b.notifyAfter(func(c *session.Core) (string, bool) {
		return volumeNotice(c, delta)
	})
}

func (b *statefulBubble) react(like bool) {
	b.do(func(c *session.Core) {
		if like {
			c.Reactions.Like()
		} else {
			c.Reactions.Dislike()
		}
	})
}

func (b *statefulBubble) acceptSuggestion() {
	if len(b.suggestions) == 0 {
		return
	}
	query := strings.ToLower(b.suggestions[0])
	b.inputC.SetValue(query)
	b.inputC.CursorEnd()
	b.setFilter(query)
}

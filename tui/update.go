package tui

import (
	"github.com/castdeck/castdeck/input"
	"github.com/castdeck/castdeck/session"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmds = append(cmds, uiCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case snapshotMsg:
		cmds = append(cmds, b.applySnapshot(session.Snapshot(msg)), b.waitForSnapshot())
		return b, tea.Batch(cmds...)
	case sessionClosedMsg:
		return b, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, tea.Batch(append(cmds, cmd)...)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case browseState:
		cmd = b.updateBrowse(msg)
	case filterState:
		cmd = b.updateFilter(msg)
	case errorState:
		cmd = b.updateError(msg)
	}

	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) updateBrowse(msg tea.Msg) tea.Cmd {
	msg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case bubblesKey.Matches(msg, b.keymap.quit):
		return tea.Quit
	case bubblesKey.Matches(msg, b.keymap.activate):
		b.activateHighlighted()
	case bubblesKey.Matches(msg, b.keymap.filter):
		b.setState(filterState)
		return b.inputC.Focus()
	case bubblesKey.Matches(msg, b.keymap.clearFilter):
		b.inputC.SetValue("")
		b.setFilter("")
	case bubblesKey.Matches(msg, b.keymap.playPause):
		b.press(input.Space)
	case bubblesKey.Matches(msg, b.keymap.skipBack):
		b.press(input.Left)
	case bubblesKey.Matches(msg, b.keymap.skipForward):
		b.press(input.Right)
	case bubblesKey.Matches(msg, b.keymap.speedUp):
		return b.changeSpeed(true)
	case bubblesKey.Matches(msg, b.keymap.speedDown):
		return b.changeSpeed(false)
	case bubblesKey.Matches(msg, b.keymap.settings):
		b.do(func(c *session.Core) { c.Playback.ToggleSettingsMenu() })
	case bubblesKey.Matches(msg, b.keymap.volumeUp):
		return b.nudgeVolume(b.volumeStep)
	case bubblesKey.Matches(msg, b.keymap.volumeDown):
		return b.nudgeVolume(-b.volumeStep)
	case bubblesKey.Matches(msg, b.keymap.mute):
		b.do(func(c *session.Core) { c.Playback.ToggleMute() })
	case bubblesKey.Matches(msg, b.keymap.volumeSlider):
		b.do(func(c *session.Core) { c.Playback.ToggleVolumeSlider() })
	case bubblesKey.Matches(msg, b.keymap.fullscreen):
		b.do(func(c *session.Core) { c.Playback.ToggleFullscreen() })
	case bubblesKey.Matches(msg, b.keymap.like):
		b.react(true)
	case bubblesKey.Matches(msg, b.keymap.dislike):
		b.react(false)
	case bubblesKey.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	default:
		var cmd tea.Cmd
		b.catalogC, cmd = b.catalogC.Update(msg)
		return cmd
	}

	return nil
}

func (b *statefulBubble) updateFilter(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.acceptFilter):
			b.inputC.Blur()
			b.setState(browseState)
			return nil
		case bubblesKey.Matches(msg, b.keymap.clearFilter):
			b.inputC.SetValue("")
			b.inputC.Blur()
			b.setFilter("")
			b.setState(browseState)
			return nil
		case bubblesKey.Matches(msg, b.keymap.acceptSuggestion):
			b.acceptSuggestion()
			return nil
		}
	}

	before := b.inputC.Value()
	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	if after := b.inputC.Value(); after != before {
		b.setFilter(after)
	}
	return cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
		return tea.Quit
	}
	return nil
}

// Package ui provides ephemeral notifications rendered at the bottom of a view.
package ui

import (
	"strings"
	"time"

	"github.com/castdeck/castdeck/style"
	tea "github.com/charmbracelet/bubbletea"
)

// Lifetime is how long a notification stays visible.
const Lifetime = 3 * time.Second

// Model holds the notification currently shown, if any.
type Model struct {
	notification string
	id           int
}

// NotificationMsg asks the model to show Text.
type NotificationMsg struct {
	Text string
}

// ClearNotificationMsg hides the notification with the given id.
type ClearNotificationMsg struct {
	id int
}

// Notify returns a command that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Text: text}
	}
}

func clearAfter(id int) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{id: id}
	})
}

// Update handles notification messages. A newer notification is not cleared
// by the timer of an older one.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.id++
		m.notification = msg.Text
		return clearAfter(m.id)
	case ClearNotificationMsg:
		if msg.id == m.id {
			m.notification = ""
		}
	}
	return nil
}

// Current returns the visible notification text.
func (m *Model) Current() string {
	return m.notification
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}

package tui

import (
	"fmt"

	"github.com/castdeck/castdeck/icon"
	"github.com/castdeck/castdeck/selection"
	"github.com/castdeck/castdeck/style"
	"github.com/charmbracelet/lipgloss"
)

// listItem implements list.Item for one visible catalog entry.
type listItem struct {
	entry    selection.Entry
	selected bool
}

func (t *listItem) Title() string {
	title := t.entry.Item.Title
	if t.selected {
		mark := lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Mark))
		title = fmt.Sprintf("%s %s", title, mark)
	}
	return title
}

func (t *listItem) Description() string {
	if t.entry.Item.Subtitle != "" {
		return t.entry.Item.Subtitle
	}
	return style.Faint(t.entry.Item.ID)
}

func (t *listItem) FilterValue() string {
	return t.entry.Item.Title
}

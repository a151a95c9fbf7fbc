// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"errors"

	"github.com/castdeck/castdeck/session"
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Session *session.Session
}

// Run executes the Bubble Tea program until the user quits, ctx is done, or the session stops.
func Run(ctx context.Context, options *Options) error {
	bubble := newBubble(options)

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

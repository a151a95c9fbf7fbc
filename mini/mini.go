// Package mini implements a prompt-driven interface for terminals where the
// full TUI is unwanted.
package mini

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/castdeck/castdeck/session"
	"github.com/castdeck/castdeck/util"
)

var truncateAt = 100

type Options struct {
	Session *session.Session
}

type mini struct {
	state   state
	session *session.Session
}

func newMini(options *Options) *mini {
	return &mini{
		state:   itemSelectState,
		session: options.Session,
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

// Run prompts until the user quits or ctx is done.
func Run(ctx context.Context, options *Options) error {
	m := newMini(options)

	if w, _, err := util.TerminalSize(); err == nil {
		truncateAt = w
	}

	for m.state != quitState {
		if ctx.Err() != nil {
			return nil
		}

		if err := m.handleState(ctx); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		}
	}

	return nil
}

func (m *mini) handleState(ctx context.Context) error {
	switch m.state {
	case itemSelectState:
		return m.handleItemSelectState(ctx)
	case transportState:
		return m.handleTransportState()
	}
	return nil
}

package handlers

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"pccopy/internal/profile"
	"pccopy/internal/screens"
	"pccopy/internal/state"
	"pccopy/internal/transfer"
)

// ActionHandler turns a pressed form button into a running transfer.
type ActionHandler struct {
	dispatcher *transfer.Dispatcher
}

// NewActionHandler creates a new action handler
func NewActionHandler(d *transfer.Dispatcher) *ActionHandler {
	return &ActionHandler{dispatcher: d}
}

// HandleSelection starts the transfer for action and returns the next screen
// with the command that runs it. Params and selection are captured now; later
// edits to the form do not affect the running transfer.
//
// Invalid params never reach the dispatcher. The error screen is returned
// instead, with a command that delivers the message as a state.ErrorMsg.
func (h *ActionHandler) HandleSelection(ctx context.Context, action screens.Action, p profile.Params, sel profile.Selection, rep transfer.Reporter) (screen screens.Screen, message string, cmd tea.Cmd) {
	p = p.Trimmed()
	if err := p.Validate(); err != nil {
		msg := err.Error()
		return screens.ScreenError, msg, func() tea.Msg {
			return state.ErrorMsg{Message: msg}
		}
	}

	var run func() (transfer.Summary, error)
	switch action {
	case screens.ActionCopySelected:
		snapshot := profile.NewSelection()
		for _, c := range sel.Ordered() {
			snapshot.Set(c, true)
		}
		run = func() (transfer.Summary, error) {
			return h.dispatcher.CopySelected(ctx, snapshot, p, rep)
		}
	case screens.ActionCopyAll:
		run = func() (transfer.Summary, error) {
			return h.dispatcher.CopyAll(ctx, p, rep)
		}
	default:
		return screens.ScreenForm, "", nil
	}

	// The result travels through the reporter; the command's own message is unused.
	return screens.ScreenRunning, action.String(), func() tea.Msg {
		_, _ = run()
		return nil
	}
}

// Resolver returns the path resolver transfers are copied with.
func (h *ActionHandler) Resolver() *profile.Resolver {
	return h.dispatcher.Resolver()
}

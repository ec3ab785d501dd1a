// Package internal provides the application model for PC Copy's terminal form.
//
// This package implements the Bubble Tea model pattern for the interactive form.
// The model handles:
//   - The three text fields, the six category checkboxes and the two buttons
//   - Focus movement across fields, the checkbox grid and the buttons
//   - Running a transfer off the event loop and streaming its console lines
//   - Completion and error screens that wait for a key press
package internal

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pccopy/internal/handlers"
	"pccopy/internal/profile"
	"pccopy/internal/screens"
	"pccopy/internal/state"
	"pccopy/internal/transfer"
)

// eventBuffer is the reporter channel size. The UI drains it continuously.
const eventBuffer = 64

// Options configures the form model.
type Options struct {
	Context    context.Context
	Dispatcher *transfer.Dispatcher
	LogPath    string
}

// Model represents the complete state of the terminal form.
type Model struct {
	// Screen and navigation state
	screen screens.Screen
	focus  screens.Focus

	// Form state, kept across transfers
	inputs    []textinput.Model
	selection profile.Selection

	// Transfer state
	handler   *handlers.ActionHandler
	ctx       context.Context
	cancel    context.CancelFunc
	events    <-chan transfer.Event
	action    screens.Action
	lines     []string // console lines of the current transfer
	summary   transfer.Summary
	message   string
	canceling bool

	// Widgets
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	logPath string
	width   int
	height  int
}

// InitialModel creates a form with empty fields, nothing selected and the
// first field focused.
func InitialModel(opts Options) Model {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	d := opts.Dispatcher
	if d == nil {
		d = transfer.NewDispatcher(transfer.Options{})
	}

	inputs := make([]textinput.Model, len(screens.FieldLabels))
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 0 // unlimited
		ti.Width = 24
		switch i {
		case 0:
			ti.Placeholder = "e.g. PC1"
		case 1:
			ti.Placeholder = "e.g. PC2"
		case 2:
			ti.Placeholder = "e.g. jdoe"
		}
		inputs[i] = ti
	}
	inputs[0].Focus()

	sp := spinner.New()
	sp.Spinner = progressSpinner()
	sp.Style = spinnerStyle

	return Model{
		screen:    screens.ScreenForm,
		focus:     screens.FieldFocus(0),
		inputs:    inputs,
		selection: profile.NewSelection(),
		handler:   handlers.NewActionHandler(d),
		ctx:       ctx,
		cancel:    cancel,
		spinner:   sp,
		help:      help.New(),
		keys:      newKeyMap(),
		logPath:   opts.LogPath,
		width:     100,
		height:    30,
	}
}

// Init implements tea.Model.Init().
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Params returns the current field values.
func (m Model) Params() profile.Params {
	return profile.Params{
		OldComputer: m.inputs[0].Value(),
		NewComputer: m.inputs[1].Value(),
		Username:    m.inputs[2].Value(),
	}
}

// Selection returns a copy of the current checkbox state.
func (m Model) Selection() profile.Selection {
	sel := profile.NewSelection()
	for _, c := range m.selection.Ordered() {
		sel.Set(c, true)
	}
	return sel
}

// Screen returns the active screen.
func (m Model) Screen() screens.Screen {
	return m.screen
}

// Update implements tea.Model.Update() and handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.screen != screens.ScreenRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case state.TransferEventMsg:
		if msg.Event.Kind == transfer.EventCategoryStarted {
			m.lines = append(m.lines, "Copying "+msg.Event.Category.String()+"...")
		}
		return m, waitForEvent(m.events)

	case state.TransferDoneMsg:
		return m.finishTransfer(msg)

	case state.ErrorMsg:
		m.screen = screens.ScreenError
		m.message = msg.Message
		return m, nil

	case state.CancelMsg:
		return m.quit()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen.Locked() {
		// Input is locked while copying, only quitting is honoured
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		return m, nil
	}

	switch m.screen {
	case screens.ScreenError, screens.ScreenComplete, screens.ScreenAbout:
		// Any key press dismisses the screen, the form keeps its values
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		m.screen = screens.ScreenForm
		m.message = ""
		return m, m.setFocus(m.focus)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()

	case key.Matches(msg, m.keys.about):
		m.screen = screens.ScreenAbout
		return m, nil

	case key.Matches(msg, m.keys.next):
		return m, m.setFocus(m.focus.Next())

	case key.Matches(msg, m.keys.prev):
		return m, m.setFocus(m.focus.Prev())

	case key.Matches(msg, m.keys.down):
		return m, m.setFocus(m.focus.Down())

	case key.Matches(msg, m.keys.up):
		return m, m.setFocus(m.focus.Up())
	}

	if _, onField := m.focus.Field(); onField {
		if key.Matches(msg, m.keys.press) {
			return m, m.setFocus(m.focus.Next())
		}
		return m.updateFocusedInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.left):
		return m, m.setFocus(m.focus.Left())

	case key.Matches(msg, m.keys.right):
		return m, m.setFocus(m.focus.Right())

	case key.Matches(msg, m.keys.toggle), key.Matches(msg, m.keys.press):
		if c, ok := m.focus.Category(); ok {
			m.selection.Toggle(c)
			return m, nil
		}
		if a, ok := m.focus.Action(); ok {
			return m.startTransfer(a)
		}
	}

	return m, nil
}

// updateFocusedInput forwards msg to the focused text field, if any.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	i, ok := m.focus.Field()
	if !ok || m.screen != screens.ScreenForm {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)
	return m, cmd
}

// setFocus moves focus and focuses or blurs the text fields to match.
func (m *Model) setFocus(f screens.Focus) tea.Cmd {
	m.focus = f
	var cmd tea.Cmd
	for i := range m.inputs {
		if idx, ok := f.Field(); ok && idx == i {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

// startTransfer captures the form values and runs the transfer for a in the background.
func (m Model) startTransfer(a screens.Action) (tea.Model, tea.Cmd) {
	rep := transfer.NewChanReporter(eventBuffer)
	screen, message, run := m.handler.HandleSelection(m.ctx, a, m.Params(), m.selection, rep)
	if screen != screens.ScreenRunning {
		// the error screen arrives as a state.ErrorMsg
		return m, run
	}
	m.screen = screen
	m.message = message

	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.action = a
	m.lines = nil
	m.summary = transfer.Summary{}
	m.events = rep.C

	return m, tea.Batch(run, waitForEvent(m.events), m.spinner.Tick)
}

func (m Model) finishTransfer(msg state.TransferDoneMsg) (tea.Model, tea.Cmd) {
	m.events = nil
	m.summary = msg.Summary
	m.lines = append(m.lines, transfer.CompletionLine(msg.Err))

	if m.canceling {
		return m, tea.Quit
	}

	if msg.Err != nil {
		m.screen = screens.ScreenError
		m.message = msg.Err.Error()
		return m, nil
	}
	m.screen = screens.ScreenComplete
	m.message = transfer.CompletionLine(nil)
	return m, nil
}

// quit cancels any running transfer. The program exits right away when idle,
// or once the transfer reports back.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	if m.screen == screens.ScreenRunning {
		m.canceling = true
		return m, nil
	}
	return m, tea.Quit
}

// waitForEvent reads the next reporter event. The closing event becomes a
// TransferDoneMsg.
func waitForEvent(events <-chan transfer.Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		ev, ok := <-events
		if !ok {
			return state.TransferDoneMsg{}
		}
		if ev.Kind == transfer.EventTransferFinished {
			return state.TransferDoneMsg{Summary: ev.Summary, Err: ev.Err}
		}
		return state.TransferEventMsg{Event: ev}
	}
}

// View delegates to the render function of the active screen.
func (m Model) View() string {
	switch m.screen {
	case screens.ScreenForm:
		return m.renderForm()
	case screens.ScreenRunning:
		return m.renderRunning()
	case screens.ScreenComplete:
		return m.renderComplete()
	case screens.ScreenError:
		return m.renderError()
	case screens.ScreenAbout:
		return m.renderAbout()
	default:
		return "Unknown screen"
	}
}

// Package form provides the classic single-window form, laid out like the
// original helpdesk dialog: three fields, six checkboxes, two buttons and an
// output pane for the console lines.
package form

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"pccopy/internal/handlers"
	"pccopy/internal/profile"
	"pccopy/internal/screens"
	"pccopy/internal/transfer"
)

// Options configures a Classic form.
type Options struct {
	Title      string
	Dispatcher *transfer.Dispatcher
	Logger     *log.Logger
}

// Classic is a tview form. Copies run off the UI goroutine, one at a time.
type Classic struct {
	app        *tview.Application
	root       tview.Primitive
	form       *tview.Form
	output     *tview.TextView
	fields     []*tview.InputField
	checkboxes map[profile.Category]*tview.Checkbox

	handler *handlers.ActionHandler
	logger  *log.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool
}

// New builds the form. Closing it cancels ctx for any running copy.
func New(ctx context.Context, opts Options) *Classic {
	if opts.Dispatcher == nil {
		opts.Dispatcher = transfer.NewDispatcher(transfer.Options{})
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(ctx)

	c := &Classic{
		app:        tview.NewApplication(),
		form:       tview.NewForm(),
		output:     tview.NewTextView(),
		checkboxes: make(map[profile.Category]*tview.Checkbox),
		handler:    handlers.NewActionHandler(opts.Dispatcher),
		logger:     opts.Logger,
		ctx:        ctx,
		cancel:     cancel,
	}

	for _, label := range screens.FieldLabels {
		field := tview.NewInputField().
			SetLabel(label).
			SetFieldWidth(24)
		c.fields = append(c.fields, field)
		c.form.AddFormItem(field)
	}
	for _, cat := range profile.Categories() {
		box := tview.NewCheckbox().SetLabel(cat.String())
		c.checkboxes[cat] = box
		c.form.AddFormItem(box)
	}
	for i, label := range screens.ActionChoices {
		action := screens.Action(i)
		c.form.AddButton(label, func() { c.Trigger(action) })
	}
	c.form.SetButtonsAlign(tview.AlignCenter)
	c.form.SetBorder(true)
	c.form.SetTitle(" " + opts.Title + " ")

	c.output.SetScrollable(true)
	c.output.SetBorder(true)
	c.output.SetTitle(" Output ")

	c.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(c.form, 0, 3, true).
		AddItem(c.output, 0, 1, false)

	c.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			c.Stop()
			return nil
		}
		return event
	})

	return c
}

// Run shows the form and blocks until it is closed.
func (c *Classic) Run() error {
	c.output.SetChangedFunc(func() {
		c.output.ScrollToEnd()
		c.app.Draw()
	})
	return c.app.SetRoot(c.root, true).EnableMouse(true).Run()
}

// Stop cancels any running copy and closes the form.
func (c *Classic) Stop() {
	c.cancel()
	c.app.Stop()
}

// Params returns the current field values.
func (c *Classic) Params() profile.Params {
	return profile.Params{
		OldComputer: c.fields[0].GetText(),
		NewComputer: c.fields[1].GetText(),
		Username:    c.fields[2].GetText(),
	}
}

// Selection returns the checked categories.
func (c *Classic) Selection() profile.Selection {
	sel := profile.NewSelection()
	for cat, box := range c.checkboxes {
		sel.Set(cat, box.IsChecked())
	}
	return sel
}

// Output returns the text of the output pane.
func (c *Classic) Output() string {
	return c.output.GetText(true)
}

// Trigger starts the transfer for a button press. The returned channel is
// closed once the transfer has finished; it is nil when nothing was started.
func (c *Classic) Trigger(a screens.Action) <-chan struct{} {
	if !c.running.CompareAndSwap(false, true) {
		fmt.Fprintln(c.output, "A transfer is already running.")
		return nil
	}

	done := make(chan struct{})
	rep := transfer.MultiReporter{
		transfer.ConsoleReporter{W: c.output},
		finishHook(func(transfer.Summary, error) {
			c.running.Store(false)
			close(done)
		}),
	}

	screen, message, run := c.handler.HandleSelection(c.ctx, a, c.Params(), c.Selection(), rep)
	if screen != screens.ScreenRunning {
		c.running.Store(false)
		if message != "" {
			c.logger.Warn("transfer not started", "action", a, "err", message)
			fmt.Fprintf(c.output, "Transfer aborted: %s\n", message)
		}
		return nil
	}

	go run()
	return done
}

// finishHook adapts a function to the TransferFinished call of a Reporter.
type finishHook func(transfer.Summary, error)

func (finishHook) CategoryStarted(profile.Category)                     {}
func (finishHook) PairFinished(profile.PathPair, transfer.Stats, error) {}
func (f finishHook) TransferFinished(s transfer.Summary, err error)     { f(s, err) }

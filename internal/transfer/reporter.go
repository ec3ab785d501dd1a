package transfer

import (
	"fmt"
	"io"
	"sync"

	"pccopy/internal/profile"
)

// Reporter receives the lifecycle of one trigger. Calls arrive in order from
// a single goroutine.
type Reporter interface {
	CategoryStarted(c profile.Category)
	PairFinished(pair profile.PathPair, stats Stats, err error)
	TransferFinished(summary Summary, err error)
}

// ConsoleReporter prints one line per category and one closing line.
type ConsoleReporter struct {
	W io.Writer
}

func (r ConsoleReporter) CategoryStarted(c profile.Category) {
	fmt.Fprintf(r.W, "Copying %s...\n", c)
}

func (r ConsoleReporter) PairFinished(profile.PathPair, Stats, error) {}

func (r ConsoleReporter) TransferFinished(_ Summary, err error) {
	fmt.Fprintln(r.W, CompletionLine(err))
}

// CompletionLine is the closing console line for a trigger.
func CompletionLine(err error) string {
	if err != nil {
		return fmt.Sprintf("Transfer aborted: %v", err)
	}
	return "Transfer complete."
}

// EventKind identifies what an Event carries.
type EventKind int

const (
	EventCategoryStarted EventKind = iota
	EventPairFinished
	EventTransferFinished
)

// Event is a Reporter call turned into a value, for UIs that consume a channel.
type Event struct {
	Kind     EventKind
	Category profile.Category
	Pair     profile.PathPair
	Stats    Stats
	Summary  Summary
	Err      error
}

// ChanReporter forwards every call to a channel. The channel is closed after
// TransferFinished.
type ChanReporter struct {
	C    chan Event
	once sync.Once
}

// NewChanReporter returns a reporter with a buffered channel.
func NewChanReporter(buffer int) *ChanReporter {
	return &ChanReporter{C: make(chan Event, buffer)}
}

func (r *ChanReporter) CategoryStarted(c profile.Category) {
	r.C <- Event{Kind: EventCategoryStarted, Category: c}
}

func (r *ChanReporter) PairFinished(pair profile.PathPair, stats Stats, err error) {
	r.C <- Event{Kind: EventPairFinished, Category: pair.Category, Pair: pair, Stats: stats, Err: err}
}

func (r *ChanReporter) TransferFinished(summary Summary, err error) {
	r.C <- Event{Kind: EventTransferFinished, Summary: summary, Err: err}
	r.once.Do(func() { close(r.C) })
}

// MultiReporter fans calls out to several reporters in order.
type MultiReporter []Reporter

func (m MultiReporter) CategoryStarted(c profile.Category) {
	for _, r := range m {
		r.CategoryStarted(c)
	}
}

func (m MultiReporter) PairFinished(pair profile.PathPair, stats Stats, err error) {
	for _, r := range m {
		r.PairFinished(pair, stats, err)
	}
}

func (m MultiReporter) TransferFinished(summary Summary, err error) {
	for _, r := range m {
		r.TransferFinished(summary, err)
	}
}

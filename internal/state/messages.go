package state

import "pccopy/internal/transfer"

// TransferEventMsg carries one reporter event from a running transfer.
type TransferEventMsg struct {
	Event transfer.Event
}

// TransferDoneMsg is sent once the event stream of a transfer has closed.
type TransferDoneMsg struct {
	Summary transfer.Summary
	Err     error
}

// ErrorMsg represents an error message that requires dismissal
type ErrorMsg struct {
	Message string
}

// CancelMsg represents a cancellation request
type CancelMsg struct{}

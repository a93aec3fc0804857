// Package msg defines the tea.Msg types dispatched within the TUI.
// It imports only the chat value types so every other package can use it.
package msg

import (
	"time"

	"github.com/aicat/aicat-tui/chat"
)

// -- Conversation controller --

// Reply carries a finished assistant message.
type Reply struct {
	Message chat.Message
}

// Failure reports that the controller could not produce a reply to Request.
type Failure struct {
	Request chat.Message
	Err     error
}

// -- Error banner actions --

// RetryRequested is emitted after the banner's retry callback ran.
type RetryRequested struct{}

// ClearRequested is emitted after the banner's clear callback ran.
type ClearRequested struct{}

// -- Animation --

// PendingTick advances the pending indicator with the given ID.
type PendingTick struct {
	ID   int64
	Time time.Time
}

// -- UI events --

// Copied reports the outcome of a clipboard copy.
type Copied struct {
	Bytes int
	Err   error
}

package poll

import (
	"fmt"
	"io"

	"github.com/fwojciec/chatwatch"
)

// Handlers are the extension points of a Loop. A nil OnTick, OnError or
// OnDuplicateError falls back to the matching Default* policy. A nil OnReady
// or OnMessage does nothing; DefaultHandlers supplies printing versions.
//
// Every handler except OnReady returns stop; true ends the loop.
type Handlers struct {
	// OnReady fires once, after the first non-empty snapshot is cached.
	OnReady func(initial chatwatch.Snapshot)

	// OnMessage fires for each new message, oldest first. An error
	// abandons the rest of the batch and is handled like a poll error.
	OnMessage func(msg chatwatch.Message) (stop bool, err error)

	// OnTick runs at the start of every active iteration.
	OnTick func() (stop bool, err error)

	// OnError receives an iteration error that differs from the previous one.
	OnError func(msg string) (stop bool)

	// OnDuplicateError receives an iteration error identical to the
	// previous iteration's error.
	OnDuplicateError func(msg string) (stop bool)
}

// DefaultHandlers returns handlers that print to w and otherwise apply the
// default policies.
func DefaultHandlers(w io.Writer) *Handlers {
	return &Handlers{
		OnReady: func(chatwatch.Snapshot) {
			fmt.Fprintln(w, "Messages found")
		},
		OnMessage: func(msg chatwatch.Message) (bool, error) {
			fmt.Fprintf(w, "%s: %s\n", msg.Sender, msg.Text)
			return false, nil
		},
		OnTick:           DefaultOnTick,
		OnError:          DefaultOnError,
		OnDuplicateError: DefaultOnDuplicateError,
	}
}

// DefaultOnTick keeps the loop running.
func DefaultOnTick() (bool, error) { return false, nil }

// DefaultOnError keeps the loop running; most errors come from reading
// the feed while it re-renders.
func DefaultOnError(string) bool { return false }

// DefaultOnDuplicateError stops the loop. An error that repeats unchanged
// usually means the page is stuck and polling again will not help.
func DefaultOnDuplicateError(string) bool { return true }

func (h *Handlers) ready(initial chatwatch.Snapshot) {
	if h == nil || h.OnReady == nil {
		return
	}
	h.OnReady(initial)
}

func (h *Handlers) message(msg chatwatch.Message) (bool, error) {
	if h == nil || h.OnMessage == nil {
		return false, nil
	}
	return h.OnMessage(msg)
}

func (h *Handlers) tick() (bool, error) {
	if h == nil || h.OnTick == nil {
		return DefaultOnTick()
	}
	return h.OnTick()
}

func (h *Handlers) distinctError(msg string) bool {
	if h == nil || h.OnError == nil {
		return DefaultOnError(msg)
	}
	return h.OnError(msg)
}

func (h *Handlers) duplicateError(msg string) bool {
	if h == nil || h.OnDuplicateError == nil {
		return DefaultOnDuplicateError(msg)
	}
	return h.OnDuplicateError(msg)
}

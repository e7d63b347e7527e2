// Package poll turns repeated full reads of a chat feed into a stream of
// new messages.
package poll

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/chatwatch"
)

// Polling policy defaults. The new-message ceiling and the bootstrap rule
// work around feeds that occasionally re-render everything at once.
const (
	DefaultInitialDelay    = 1 * time.Second
	DefaultInitialInterval = 1 * time.Second
	DefaultPollInterval    = 100 * time.Millisecond
	DefaultMaxNewMessages  = 5
)

// State is the lifecycle position of a Loop.
type State int

const (
	StateAwaitingInitial State = iota
	StateActive
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateAwaitingInitial:
		return "awaiting_initial"
	case StateActive:
		return "active"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Loop polls a SnapshotSource and dispatches new messages to Handlers.
//
// A Loop runs on the caller's goroutine and is not safe for concurrent use.
// It runs once: after Run returns the Loop cannot be restarted.
type Loop struct {
	Source   chatwatch.SnapshotSource
	Handlers *Handlers
	Logger   *slog.Logger

	InitialDelay    time.Duration
	InitialInterval time.Duration
	PollInterval    time.Duration

	// MaxNewMessages is the largest batch dispatched from one poll. Larger
	// batches are treated as a re-render and dropped.
	MaxNewMessages int

	// Sleep waits between polls. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error

	state        State
	cache        chatwatch.Snapshot
	lastError    string
	hasLastError bool
}

// State returns the current lifecycle state.
func (l *Loop) State() State {
	return l.state
}

// Cache returns a copy of the most recent snapshot seen by the loop.
func (l *Loop) Cache() chatwatch.Snapshot {
	return l.cache.Clone()
}

// Run bootstraps from the first non-empty snapshot and then polls until a
// handler asks to stop, in which case it returns nil. It returns ctx.Err()
// if ctx is done first.
func (l *Loop) Run(ctx context.Context) error {
	if l.Source == nil {
		return chatwatch.Errorf(chatwatch.EINVALID, "snapshot source required")
	}
	if l.state != StateAwaitingInitial {
		return chatwatch.Errorf(chatwatch.EINVALID, "loop already started")
	}

	if err := l.awaitInitial(ctx); err != nil {
		l.state = StateTerminated
		return err
	}

	for l.state == StateActive {
		err := l.iterate(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			l.state = StateTerminated
			return ctxErr
		}
		if err != nil {
			l.handleError(err)
			continue
		}
		l.lastError, l.hasLastError = "", false
	}
	return nil
}

// awaitInitial polls until the feed shows at least one message and caches
// it verbatim.
func (l *Loop) awaitInitial(ctx context.Context) error {
	if err := l.sleep(ctx, durationOr(l.InitialDelay, DefaultInitialDelay)); err != nil {
		return err
	}
	for {
		snap, err := l.Source.CurrentSnapshot(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			l.logger().Debug("initial snapshot", "err", err)
		}
		if err == nil && len(snap) > 0 {
			l.cache = snap.Clone()
			l.state = StateActive
			l.logger().Info("initial snapshot",
				"messages", len(snap),
				"fingerprint", snap.Fingerprint(),
			)
			l.Handlers.ready(l.Cache())
			return nil
		}
		if err := l.sleep(ctx, durationOr(l.InitialInterval, DefaultInitialInterval)); err != nil {
			return err
		}
	}
}

// iterate runs one active poll. A returned error abandons the iteration.
func (l *Loop) iterate(ctx context.Context) error {
	stop, err := l.Handlers.tick()
	if err != nil {
		return err
	}
	if stop {
		l.state = StateTerminated
		return nil
	}

	if err := l.sleep(ctx, durationOr(l.PollInterval, DefaultPollInterval)); err != nil {
		return err
	}

	snap, err := l.Source.CurrentSnapshot(ctx)
	if err != nil {
		return err
	}

	for _, msg := range l.advance(snap) {
		stop, err := l.Handlers.message(msg)
		if err != nil {
			return err
		}
		if stop {
			l.state = StateTerminated
			return nil
		}
	}
	return nil
}

// advance moves the cache to snap and returns the messages to dispatch.
func (l *Loop) advance(snap chatwatch.Snapshot) chatwatch.Snapshot {
	if l.cache.Equal(snap) {
		return nil
	}

	suffix, ok := NewSuffix(l.cache, snap)
	l.cache = snap.Clone()
	if !ok {
		l.logger().Debug("snapshot discontinuity",
			"messages", len(snap),
			"fingerprint", snap.Fingerprint(),
		)
		return nil
	}

	maxNew := l.MaxNewMessages
	if maxNew <= 0 {
		maxNew = DefaultMaxNewMessages
	}
	if len(suffix) > maxNew {
		l.logger().Warn("noisy poll suppressed",
			"new", len(suffix),
			"max", maxNew,
		)
		return nil
	}
	return suffix
}

// handleError routes an iteration error to the distinct or duplicate
// handler and remembers it for the next comparison.
func (l *Loop) handleError(err error) {
	msg := err.Error()
	duplicate := l.isSameErrorAsLastTime(msg)
	l.lastError, l.hasLastError = msg, true

	var stop bool
	if duplicate {
		stop = l.Handlers.duplicateError(msg)
	} else {
		stop = l.Handlers.distinctError(msg)
	}
	l.logger().Error("poll iteration",
		"err", msg,
		"duplicate", duplicate,
		"stop", stop,
	)
	if stop {
		l.state = StateTerminated
	}
}

// isSameErrorAsLastTime reports whether msg repeats the previous
// iteration's error. Errors are compared by their text only.
func (l *Loop) isSameErrorAsLastTime(msg string) bool {
	return l.hasLastError && l.lastError == msg
}

func (l *Loop) sleep(ctx context.Context, d time.Duration) error {
	if l.Sleep != nil {
		return l.Sleep(ctx, d)
	}
	return sleepContext(ctx, d)
}

func (l *Loop) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
